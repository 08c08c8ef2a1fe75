package metric

import (
	"io"
	"net/http"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/common/expfmt"
)

const namespace = "csrftok"

// Registry holds all application metrics.
type Registry struct {
	registry *prometheus.Registry

	TokensCreated     prometheus.Counter
	TokenCreateErrors prometheus.Counter
	Verifications     *prometheus.CounterVec
	VerifyDuration    prometheus.Histogram
	SecretsGenerated  prometheus.Counter
	SecretErrors      prometheus.Counter
	TokenizerReloads  *prometheus.CounterVec
}

// NewRegistry creates a registry with Go runtime and process collectors
// and all csrftok metrics registered.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	r := &Registry{
		registry: reg,
		TokensCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tokens_created_total",
			Help:      "Total number of tokens created.",
		}),
		TokenCreateErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "token_create_errors_total",
			Help:      "Total number of rejected create calls.",
		}),
		Verifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "verifications_total",
			Help:      "Total number of token verifications by result.",
		}, []string{"result"}),
		VerifyDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "verify_duration_seconds",
			Help:      "Token verification latency in seconds.",
			Buckets:   []float64{.000001, .0000025, .000005, .00001, .000025, .00005, .0001, .00025, .001},
		}),
		SecretsGenerated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "secrets_generated_total",
			Help:      "Total number of secrets generated.",
		}),
		SecretErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "secret_errors_total",
			Help:      "Total number of failed secret generations.",
		}),
		TokenizerReloads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tokenizer_reloads_total",
			Help:      "Total number of tokenizer configuration reloads by outcome.",
		}, []string{"outcome"}),
	}

	reg.MustRegister(
		r.TokensCreated,
		r.TokenCreateErrors,
		r.Verifications,
		r.VerifyDuration,
		r.SecretsGenerated,
		r.SecretErrors,
		r.TokenizerReloads,
	)
	return r
}

// Handler returns an HTTP handler serving this registry.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

// Register adds an extra collector, such as a Collector.
func (r *Registry) Register(c prometheus.Collector) error {
	return r.registry.Register(c)
}

// Unregister removes a collector added with Register.
func (r *Registry) Unregister(c prometheus.Collector) bool {
	return r.registry.Unregister(c)
}

// WriteText writes every metric in the Prometheus text format.
// When prefix is non-empty only families whose name starts with it are written.
func (r *Registry) WriteText(w io.Writer, prefix string) error {
	families, err := r.registry.Gather()
	if err != nil {
		return err
	}
	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if prefix != "" && !strings.HasPrefix(mf.GetName(), prefix) {
			continue
		}
		if err := enc.Encode(mf); err != nil {
			return err
		}
	}
	return nil
}

// IncTokenCreated records a created token.
func (r *Registry) IncTokenCreated() { r.TokensCreated.Inc() }

// IncTokenCreateError records a rejected create call.
func (r *Registry) IncTokenCreateError() { r.TokenCreateErrors.Inc() }

// RecordVerification records a verification with its result and latency.
func (r *Registry) RecordVerification(result string, seconds float64) {
	r.Verifications.WithLabelValues(result).Inc()
	r.VerifyDuration.Observe(seconds)
}

// IncSecretGenerated records a generated secret.
func (r *Registry) IncSecretGenerated() { r.SecretsGenerated.Inc() }

// IncSecretError records a failed secret generation.
func (r *Registry) IncSecretError() { r.SecretErrors.Inc() }

// RecordReload records a tokenizer reload with outcome "ok" or "error".
func (r *Registry) RecordReload(outcome string) {
	r.TokenizerReloads.WithLabelValues(outcome).Inc()
}
