package config

import "strings"

// Sanitize returns a copy of the config with the HMAC key masked, for
// display and logging.
func Sanitize(cfg *Config) *Config {
	sanitized := *cfg

	if sanitized.Tokenizer.HMACKey != "" {
		sanitized.Tokenizer.HMACKey = maskSecret(sanitized.Tokenizer.HMACKey)
	}

	return &sanitized
}

func maskSecret(s string) string {
	if len(s) <= 8 {
		return "****"
	}
	return s[:2] + strings.Repeat("*", len(s)-4) + s[len(s)-2:]
}
