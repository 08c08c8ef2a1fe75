package benchmark

import (
	"context"
	"fmt"
	"testing"

	"github.com/yndnr/csrftok/internal/core/service"
	"github.com/yndnr/csrftok/internal/telemetry/logger"
	"github.com/yndnr/csrftok/internal/telemetry/metric"
	"github.com/yndnr/csrftok/pkg/csrf"
)

// BenchmarkSecret benchmarks the synchronous secret source.
func BenchmarkSecret(b *testing.B) {
	for _, n := range []int{18, 32, 64} {
		b.Run(fmt.Sprintf("bytes_%d", n), func(b *testing.B) {
			cfg := csrf.DefaultConfig()
			cfg.SecretLength = n
			tok := newTokenizer(b, cfg)

			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				if _, err := tok.Secret(); err != nil {
					b.Fatalf("Secret failed: %v", err)
				}
			}
		})
	}
}

// BenchmarkSecretAsync benchmarks the channel based secret source.
func BenchmarkSecretAsync(b *testing.B) {
	tok := newTokenizer(b, csrf.DefaultConfig())

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if res := <-tok.SecretAsync(); res.Err != nil {
			b.Fatalf("SecretAsync failed: %v", res.Err)
		}
	}
}

// BenchmarkServiceNewSecrets benchmarks batched secret generation through
// the service, metrics included.
func BenchmarkServiceNewSecrets(b *testing.B) {
	svc, err := service.NewCSRFService(csrf.DefaultConfig(),
		service.WithLogger(logger.Discard()),
		service.WithMetrics(metric.NewRegistry()),
	)
	if err != nil {
		b.Fatalf("NewCSRFService failed: %v", err)
	}
	ctx := context.Background()

	for _, n := range []int{1, 16, 128} {
		b.Run(fmt.Sprintf("batch_%d", n), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				if _, err := svc.NewSecrets(ctx, n); err != nil {
					b.Fatalf("NewSecrets failed: %v", err)
				}
			}
		})
	}
}

// BenchmarkServiceCheck benchmarks verification through the service with
// logging discarded and metrics recorded.
func BenchmarkServiceCheck(b *testing.B) {
	svc, err := service.NewCSRFService(csrf.DefaultConfig(),
		service.WithLogger(logger.Discard()),
		service.WithMetrics(metric.NewRegistry()),
	)
	if err != nil {
		b.Fatalf("NewCSRFService failed: %v", err)
	}
	ctx := logger.WithLogger(context.Background(), logger.Discard())
	secret, _ := svc.NewSecret(ctx)
	token, _ := svc.Issue(ctx, secret, "")
	req := service.CheckRequest{Secret: secret, Token: token}

	b.ResetTimer()
	b.ReportAllocs()

	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			if !svc.Check(ctx, req).Valid {
				b.Error("Check rejected a valid token")
				return
			}
		}
	})
	reportMemory(b, "heap")
}
