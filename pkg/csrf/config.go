package csrf

import (
	"fmt"
	"time"

	"github.com/yndnr/csrftok/pkg/secret"
)

// Default configuration values.
const (
	DefaultSaltLength   = 8
	DefaultSecretLength = secret.DefaultLength
)

// Config holds the settings a Tokenizer is built with. It is copied and
// validated once by New and never changes afterwards.
type Config struct {
	// Algorithm is the digest name, see Algorithms. Empty means DefaultAlgorithm.
	Algorithm string

	// SaltLength is the salt length in characters.
	SaltLength int

	// SecretLength is the byte length of secrets produced by Secret.
	SecretLength int

	// Validity is the maximum token age. Zero disables the timestamp segment.
	// The check has millisecond resolution.
	Validity time.Duration

	// UserInfo requires a user identity on Create and Verify.
	UserInfo bool

	// HMACKey switches every digest to HMAC keyed with it.
	HMACKey []byte
}

// DefaultConfig returns the default tokenizer configuration.
func DefaultConfig() Config {
	return Config{
		Algorithm:    DefaultAlgorithm,
		SaltLength:   DefaultSaltLength,
		SecretLength: DefaultSecretLength,
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if c.Algorithm != "" && !SupportsAlgorithm(c.Algorithm) {
		return ErrInvalidConfig.WithDetails(fmt.Sprintf("option algorithm must be a supported hash-algorithm, got %q", c.Algorithm))
	}
	if c.SaltLength < 1 {
		return ErrInvalidConfig.WithDetails(fmt.Sprintf("option saltLength must be >= 1, got %d", c.SaltLength))
	}
	if c.SecretLength < 1 {
		return ErrInvalidConfig.WithDetails(fmt.Sprintf("option secretLength must be >= 1, got %d", c.SecretLength))
	}
	if c.Validity < 0 {
		return ErrInvalidConfig.WithDetails(fmt.Sprintf("option validity must be >= 0, got %s", c.Validity))
	}
	if c.Validity > 0 && c.Validity < time.Millisecond {
		return ErrInvalidConfig.WithDetails(fmt.Sprintf("option validity must be at least 1ms when enabled, got %s", c.Validity))
	}
	return nil
}

// withDefaults fills an empty algorithm.
func (c Config) withDefaults() Config {
	if c.Algorithm == "" {
		c.Algorithm = DefaultAlgorithm
	}
	return c
}

// Option configures runtime collaborators of a Tokenizer.
type Option func(*Tokenizer)

// WithClock sets the time source used for issue timestamps and expiry.
func WithClock(now func() time.Time) Option {
	return func(t *Tokenizer) {
		if now != nil {
			t.now = now
		}
	}
}

// WithSecretSource sets the random source used by Secret.
func WithSecretSource(src secret.Source) Option {
	return func(t *Tokenizer) {
		if src != nil {
			t.secrets = src
		}
	}
}
