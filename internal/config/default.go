package config

import "github.com/yndnr/csrftok/pkg/csrf"

// Default configuration values.
const (
	DefaultAlgorithm    = csrf.DefaultAlgorithm
	DefaultSaltLength   = csrf.DefaultSaltLength
	DefaultSecretLength = csrf.DefaultSecretLength

	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
)

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Tokenizer: TokenizerSection{
			Algorithm:    DefaultAlgorithm,
			SaltLength:   DefaultSaltLength,
			SecretLength: DefaultSecretLength,
		},
		Log: LogSection{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}

// ToTokenizerConfig converts the tokenizer section into a csrf.Config.
func (c *Config) ToTokenizerConfig() csrf.Config {
	t := c.Tokenizer
	cfg := csrf.Config{
		Algorithm:    t.Algorithm,
		SaltLength:   t.SaltLength,
		SecretLength: t.SecretLength,
		Validity:     t.Validity,
		UserInfo:     t.UserBinding,
	}
	if t.HMACKey != "" {
		cfg.HMACKey = []byte(t.HMACKey)
	}
	return cfg
}
