package output

import (
	"time"

	"github.com/yndnr/csrftok/pkg/csrf"
)

// TokenInfo describes a decoded token.
type TokenInfo struct {
	Token      string    `json:"token" yaml:"token" table:",wide"`
	IssuedAt   time.Time `json:"issued_at,omitempty" yaml:"issued_at,omitempty"`
	ExpiresAt  time.Time `json:"expires_at,omitempty" yaml:"expires_at,omitempty"`
	Expired    bool      `json:"expired" yaml:"expired"`
	UserDigest string    `json:"user_digest,omitempty" yaml:"user_digest,omitempty"`
	Salt       string    `json:"salt" yaml:"salt"`
	Signature  string    `json:"signature" yaml:"signature"`
}

// NewTokenInfo builds a TokenInfo from parsed parts. Expired is judged
// against now and is only meaningful when the token carries a timestamp.
func NewTokenInfo(p *csrf.Parts, now time.Time) TokenInfo {
	info := TokenInfo{
		Token:      p.Raw,
		UserDigest: p.UserDigest,
		Salt:       p.Salt,
		Signature:  p.Signature,
	}
	if p.HasTimestamp() {
		info.IssuedAt = p.IssuedAt.UTC()
		info.ExpiresAt = p.ExpiresAt.UTC()
		info.Expired = now.After(p.ExpiresAt)
	}
	return info
}

// VerifyInfo is the outcome of a verification.
type VerifyInfo struct {
	Valid    bool   `json:"valid" yaml:"valid"`
	Result   string `json:"result" yaml:"result"`
	Duration string `json:"duration" yaml:"duration" table:",wide"`
}

// NewVerifyInfo builds a VerifyInfo.
func NewVerifyInfo(result csrf.Result, took time.Duration) VerifyInfo {
	return VerifyInfo{
		Valid:    result == csrf.ResultValid,
		Result:   result.String(),
		Duration: took.String(),
	}
}

// TokenizerInfo describes a tokenizer configuration. The HMAC key itself
// is never shown.
type TokenizerInfo struct {
	Algorithm    string `json:"algorithm" yaml:"algorithm"`
	SaltLength   int    `json:"salt_length" yaml:"salt_length"`
	SecretLength int    `json:"secret_length" yaml:"secret_length"`
	Validity     string `json:"validity" yaml:"validity"`
	UserBinding  bool   `json:"user_binding" yaml:"user_binding"`
	HMAC         bool   `json:"hmac" yaml:"hmac"`
	TokenLength  int    `json:"token_length,omitempty" yaml:"token_length,omitempty" table:",wide"`
}

// NewTokenizerInfo builds a TokenizerInfo for cfg.
func NewTokenizerInfo(cfg csrf.Config) TokenizerInfo {
	validity := "disabled"
	if cfg.Validity > 0 {
		validity = cfg.Validity.String()
	}
	return TokenizerInfo{
		Algorithm:    cfg.Algorithm,
		SaltLength:   cfg.SaltLength,
		SecretLength: cfg.SecretLength,
		Validity:     validity,
		UserBinding:  cfg.UserInfo,
		HMAC:         len(cfg.HMACKey) > 0,
		TokenLength:  TokenLength(cfg),
	}
}

// AlgorithmInfo lists a digest and the token length it yields.
type AlgorithmInfo struct {
	Name        string `json:"name" yaml:"name"`
	TokenLength int    `json:"token_length" yaml:"token_length"`
	Current     bool   `json:"current" yaml:"current"`
}

// Algorithms lists every supported digest with the token length it
// yields under cfg.
func Algorithms(cfg csrf.Config) []AlgorithmInfo {
	names := csrf.Algorithms()
	out := make([]AlgorithmInfo, 0, len(names))
	for _, name := range names {
		c := cfg
		c.Algorithm = name
		out = append(out, AlgorithmInfo{
			Name:        name,
			TokenLength: TokenLength(c),
			Current:     name == cfg.Algorithm,
		})
	}
	return out
}

// TokenLength returns the length of tokens created under cfg, or 0 when
// cfg is invalid. Tokens have a constant length for a given cfg.
func TokenLength(cfg csrf.Config) int {
	tok, err := csrf.New(cfg)
	if err != nil {
		return 0
	}
	token, err := tok.Create("length-sample", "length-sample")
	if err != nil {
		return 0
	}
	return len(token)
}

// BenchInfo summarizes one benchmark run.
type BenchInfo struct {
	Operation   string  `json:"operation" yaml:"operation"`
	Iterations  int     `json:"iterations" yaml:"iterations"`
	Concurrency int     `json:"concurrency" yaml:"concurrency"`
	Failures    int64   `json:"failures" yaml:"failures"`
	Duration    string  `json:"duration" yaml:"duration"`
	OpsPerSec   float64 `json:"ops_per_sec" yaml:"ops_per_sec"`
}

// NewBenchInfo builds a BenchInfo for n operations that took elapsed.
func NewBenchInfo(op string, n, concurrency int, failures int64, elapsed time.Duration) BenchInfo {
	info := BenchInfo{
		Operation:   op,
		Iterations:  n,
		Concurrency: concurrency,
		Failures:    failures,
		Duration:    elapsed.Round(time.Microsecond).String(),
	}
	if elapsed > 0 {
		info.OpsPerSec = float64(n) / elapsed.Seconds()
	}
	return info
}
