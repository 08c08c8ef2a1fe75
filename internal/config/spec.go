package config

import "time"

// Config is the root configuration for csrftok.
type Config struct {
	Tokenizer TokenizerSection `koanf:"tokenizer" json:"tokenizer" yaml:"tokenizer"`
	Log       LogSection       `koanf:"log" json:"log" yaml:"log"`
}

// TokenizerSection configures token creation and verification.
type TokenizerSection struct {
	// Algorithm is the digest name, e.g. sha256, sha1, blake2b-256.
	Algorithm string `koanf:"algorithm" json:"algorithm" yaml:"algorithm" validate:"required,csrf_algorithm"`

	// SaltLength is the salt length in characters.
	SaltLength int `koanf:"salt_length" json:"salt_length" yaml:"salt_length" validate:"gte=1,lte=1024"`

	// SecretLength is the byte length of generated secrets.
	SecretLength int `koanf:"secret_length" json:"secret_length" yaml:"secret_length" validate:"gte=1,lte=4096"`

	// Validity is the maximum token age. Zero disables expiry.
	Validity time.Duration `koanf:"validity" json:"validity" yaml:"validity" validate:"gte=0"`

	// UserBinding requires a user identity on create and verify.
	UserBinding bool `koanf:"user_binding" json:"user_binding" yaml:"user_binding"`

	// HMACKey switches digests to HMAC when set.
	HMACKey string `koanf:"hmac_key" json:"hmac_key" yaml:"hmac_key"`
}

// LogSection configures logging.
type LogSection struct {
	Level  string `koanf:"level" json:"level" yaml:"level" validate:"oneof=debug info warn warning error"`
	Format string `koanf:"format" json:"format" yaml:"format" validate:"oneof=json text console"`

	// RedactKeys lists extra attribute keys whose values are never logged.
	RedactKeys []string `koanf:"redact_keys" json:"redact_keys,omitempty" yaml:"redact_keys,omitempty" validate:"dive,required"`
}
