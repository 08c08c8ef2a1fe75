package benchmark

import (
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/yndnr/csrftok/pkg/csrf"
)

// BenchAlgorithms are the digests benchmarked by default.
var BenchAlgorithms = []string{"sha1", "sha256", "sha512", "sha3-256", "blake2b-256"}

// newUserID returns a user identity that looks like a real one.
func newUserID() string {
	return "user-" + strings.ToLower(ulid.Make().String())
}

// newTokenizer builds a tokenizer or fails the benchmark.
func newTokenizer(b *testing.B, cfg csrf.Config) *csrf.Tokenizer {
	b.Helper()
	tok, err := csrf.New(cfg)
	if err != nil {
		b.Fatalf("csrf.New(%+v) failed: %v", cfg, err)
	}
	return tok
}

// configFor returns the default configuration with algorithm alg.
func configFor(alg string) csrf.Config {
	cfg := csrf.DefaultConfig()
	cfg.Algorithm = alg
	return cfg
}

// variants are the token layouts worth measuring separately.
var variants = []struct {
	name  string
	apply func(*csrf.Config)
}{
	{"plain", func(*csrf.Config) {}},
	{"validity", func(c *csrf.Config) { c.Validity = time.Hour }},
	{"user", func(c *csrf.Config) { c.UserInfo = true }},
	{"hmac", func(c *csrf.Config) { c.HMACKey = []byte("benchmark-hmac-key") }},
	{"full", func(c *csrf.Config) {
		c.Validity = time.Hour
		c.UserInfo = true
		c.HMACKey = []byte("benchmark-hmac-key")
	}},
}

// reportMemory reports memory usage.
func reportMemory(b *testing.B, prefix string) {
	var m runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&m)
	b.ReportMetric(float64(m.Alloc)/(1024*1024), prefix+"_MB")
	b.ReportMetric(float64(m.NumGC), prefix+"_GC")
}

// runWithAlgorithms runs benchFn once per algorithm.
func runWithAlgorithms(b *testing.B, benchFn func(b *testing.B, cfg csrf.Config)) {
	for _, alg := range BenchAlgorithms {
		b.Run(alg, func(b *testing.B) {
			benchFn(b, configFor(alg))
		})
	}
}
