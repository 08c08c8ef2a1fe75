package logger

import (
	"log/slog"
	"strings"
)

// Keys whose values are dropped entirely.
var secretKeyPatterns = []string{
	"secret",
	"hmac",
	"password",
	"credential",
	"key",
}

// Keys whose values are shortened to a prefix and suffix.
var maskedKeyPatterns = []string{
	"token",
	"user_info",
}

const redactedValue = "***REDACTED***"

// maskKeep is how many characters survive at each end of a masked value.
const maskKeep = 4

// redactor rewrites string attributes whose key marks them as a secret
// or a token.
type redactor struct {
	secret []string
	masked []string
}

// newRedactor extends the built-in secret patterns with extra keys.
func newRedactor(extra []string) *redactor {
	secret := append([]string(nil), secretKeyPatterns...)
	for _, k := range extra {
		if k = strings.ToLower(strings.TrimSpace(k)); k != "" {
			secret = append(secret, k)
		}
	}
	return &redactor{secret: secret, masked: maskedKeyPatterns}
}

func (r *redactor) redact(a slog.Attr) slog.Attr {
	if a.Value.Kind() == slog.KindGroup {
		attrs := a.Value.Group()
		out := make([]slog.Attr, len(attrs))
		for i, attr := range attrs {
			out[i] = r.redact(attr)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(out...)}
	}

	if a.Value.Kind() != slog.KindString {
		return a
	}
	val := a.Value.String()
	if val == "" {
		return a
	}

	switch {
	case matchesAny(a.Key, r.secret):
		return slog.String(a.Key, redactedValue)
	case matchesAny(a.Key, r.masked):
		return slog.String(a.Key, maskValue(val))
	}
	return a
}

// sensitive reports whether values logged under key are altered.
func (r *redactor) sensitive(key string) bool {
	return matchesAny(key, r.secret) || matchesAny(key, r.masked)
}

// maskValue keeps the first and last few characters of value.
// Short values are replaced entirely.
func maskValue(value string) string {
	if len(value) <= 3*maskKeep {
		return "***"
	}
	return value[:maskKeep] + "..." + value[len(value)-maskKeep:]
}

func matchesAny(key string, patterns []string) bool {
	k := strings.ToLower(key)
	for _, p := range patterns {
		if strings.Contains(k, p) {
			return true
		}
	}
	return false
}
