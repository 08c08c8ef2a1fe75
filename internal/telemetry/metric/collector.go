package metric

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/yndnr/csrftok/pkg/csrf"
)

// Collector exports the settings of the active tokenizer. The config
// function is called on every scrape so reloads are picked up.
type Collector struct {
	config func() csrf.Config

	info       *prometheus.Desc
	validity   *prometheus.Desc
	saltLength *prometheus.Desc
	secretLen  *prometheus.Desc
}

// NewCollector creates a collector reading the tokenizer config from config.
func NewCollector(config func() csrf.Config) *Collector {
	return &Collector{
		config: config,
		info: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "tokenizer", "info"),
			"Active tokenizer settings.",
			[]string{"algorithm", "user_binding", "hmac"}, nil,
		),
		validity: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "tokenizer", "validity_seconds"),
			"Token validity window in seconds, 0 when disabled.",
			nil, nil,
		),
		saltLength: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "tokenizer", "salt_length"),
			"Salt length in characters.",
			nil, nil,
		),
		secretLen: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "tokenizer", "secret_length_bytes"),
			"Secret length in bytes.",
			nil, nil,
		),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.info
	ch <- c.validity
	ch <- c.saltLength
	ch <- c.secretLen
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	cfg := c.config()

	ch <- prometheus.MustNewConstMetric(c.info, prometheus.GaugeValue, 1,
		cfg.Algorithm,
		strconv.FormatBool(cfg.UserInfo),
		strconv.FormatBool(len(cfg.HMACKey) > 0),
	)
	ch <- prometheus.MustNewConstMetric(c.validity, prometheus.GaugeValue, cfg.Validity.Seconds())
	ch <- prometheus.MustNewConstMetric(c.saltLength, prometheus.GaugeValue, float64(cfg.SaltLength))
	ch <- prometheus.MustNewConstMetric(c.secretLen, prometheus.GaugeValue, float64(cfg.SecretLength))
}
