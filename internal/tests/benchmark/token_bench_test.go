package benchmark

import (
	"testing"

	"github.com/yndnr/csrftok/pkg/csrf"
)

// BenchmarkCreate benchmarks token creation per algorithm.
func BenchmarkCreate(b *testing.B) {
	runWithAlgorithms(b, func(b *testing.B, cfg csrf.Config) {
		tok := newTokenizer(b, cfg)
		secret, _ := tok.Secret()

		b.ResetTimer()
		b.ReportAllocs()

		for i := 0; i < b.N; i++ {
			if _, err := tok.Create(secret, ""); err != nil {
				b.Fatalf("Create failed: %v", err)
			}
		}
	})
}

// BenchmarkVerify benchmarks verification of a valid token per algorithm.
func BenchmarkVerify(b *testing.B) {
	runWithAlgorithms(b, func(b *testing.B, cfg csrf.Config) {
		tok := newTokenizer(b, cfg)
		secret, _ := tok.Secret()
		token, _ := tok.Create(secret, "")

		b.ResetTimer()
		b.ReportAllocs()

		for i := 0; i < b.N; i++ {
			if !tok.Verify(secret, token, "") {
				b.Fatal("Verify rejected a valid token")
			}
		}
	})
}

// BenchmarkVerify_Variants benchmarks verification for each token layout.
func BenchmarkVerify_Variants(b *testing.B) {
	for _, v := range variants {
		b.Run(v.name, func(b *testing.B) {
			cfg := csrf.DefaultConfig()
			v.apply(&cfg)
			tok := newTokenizer(b, cfg)
			secret, _ := tok.Secret()
			user := newUserID()
			token, err := tok.Create(secret, user)
			if err != nil {
				b.Fatalf("Create failed: %v", err)
			}

			b.ResetTimer()
			b.ReportAllocs()

			for i := 0; i < b.N; i++ {
				if !tok.Verify(secret, token, user) {
					b.Fatal("Verify rejected a valid token")
				}
			}
		})
	}
}

// BenchmarkVerify_Rejected benchmarks the rejection paths, which must not
// be cheaper than a successful verification for same-length input.
func BenchmarkVerify_Rejected(b *testing.B) {
	tok := newTokenizer(b, csrf.DefaultConfig())
	secret, _ := tok.Secret()
	token, _ := tok.Create(secret, "")
	tampered := token[:len(token)-1] + "A"
	if tampered == token {
		tampered = token[:len(token)-1] + "B"
	}

	cases := []struct {
		name   string
		secret string
		token  string
	}{
		{"wrong_secret", "not-the-secret", token},
		{"tampered", secret, tampered},
		{"malformed", secret, "malformed"},
	}

	for _, c := range cases {
		b.Run(c.name, func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				if tok.Verify(c.secret, c.token, "") {
					b.Fatal("Verify accepted a bad token")
				}
			}
		})
	}
}

// BenchmarkVerify_Parallel benchmarks concurrent verification on a shared
// tokenizer.
func BenchmarkVerify_Parallel(b *testing.B) {
	tok := newTokenizer(b, csrf.DefaultConfig())
	secret, _ := tok.Secret()
	token, _ := tok.Create(secret, "")

	b.ResetTimer()
	b.ReportAllocs()

	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			tok.Verify(secret, token, "")
		}
	})
}

// BenchmarkParse benchmarks token decoding.
func BenchmarkParse(b *testing.B) {
	cfg := csrf.DefaultConfig()
	variants[4].apply(&cfg)
	tok := newTokenizer(b, cfg)
	secret, _ := tok.Secret()
	token, _ := tok.Create(secret, newUserID())

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		if _, err := tok.Parse(token); err != nil {
			b.Fatalf("Parse failed: %v", err)
		}
	}
}

// BenchmarkEqualString benchmarks the constant-time compare.
func BenchmarkEqualString(b *testing.B) {
	tok := newTokenizer(b, csrf.DefaultConfig())
	secret, _ := tok.Secret()
	x, _ := tok.Create(secret, "")
	y, _ := tok.Create(secret, "")

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		csrf.EqualString(x, y)
	}
}
