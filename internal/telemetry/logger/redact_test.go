package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"
)

func logEntry(t *testing.T, args ...any) map[string]any {
	t.Helper()
	var buf bytes.Buffer
	l, err := New(Config{Level: "info", Format: "json", Output: &buf})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	l.Info("event", args...)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Failed to parse JSON log: %v", err)
	}
	return entry
}

func TestRedact_SecretsAreDropped(t *testing.T) {
	for _, key := range []string{"secret", "session_secret", "hmac_key", "HMACKey", "password"} {
		t.Run(key, func(t *testing.T) {
			entry := logEntry(t, key, "EA3SsAG5xtf42T6JJ7AbG7dj")
			if entry[key] != redactedValue {
				t.Errorf("%s = %v, want %q", key, entry[key], redactedValue)
			}
		})
	}
}

func TestRedact_TokensAreMasked(t *testing.T) {
	token := "loyw3v28-Sp5S2HvW-VV0ZStW3LNhD9ELehQVwzTBK7Is"
	entry := logEntry(t, "token", token)

	if entry["token"] != "loyw...K7Is" {
		t.Errorf("token = %v, want %q", entry["token"], "loyw...K7Is")
	}
}

func TestRedact_ShortValuesFullyMasked(t *testing.T) {
	entry := logEntry(t, "user_info", "alice")
	if entry["user_info"] != "***" {
		t.Errorf("user_info = %v, want %q", entry["user_info"], "***")
	}
}

func TestRedact_EmptyAndNonStringUntouched(t *testing.T) {
	entry := logEntry(t, "secret", "", "token_count", 3, "algorithm", "sha256")

	if entry["secret"] != "" {
		t.Errorf("empty secret = %v, want empty", entry["secret"])
	}
	if entry["token_count"] != float64(3) {
		t.Errorf("token_count = %v, want 3", entry["token_count"])
	}
	if entry["algorithm"] != "sha256" {
		t.Errorf("algorithm = %v, want sha256", entry["algorithm"])
	}
}

func TestRedact_Groups(t *testing.T) {
	entry := logEntry(t, slog.Group("request", slog.String("secret", "abc"), slog.String("path", "/form")))

	group, ok := entry["request"].(map[string]any)
	if !ok {
		t.Fatalf("request group missing: %v", entry)
	}
	if group["secret"] != redactedValue {
		t.Errorf("request.secret = %v, want %q", group["secret"], redactedValue)
	}
	if group["path"] != "/form" {
		t.Errorf("request.path = %v, want /form", group["path"])
	}
}

func TestMaskValue(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", "***"},
		{"short", "***"},
		{"exactly12chr", "***"},
		{"thirteen-char", "thir...char"},
	}
	for _, tt := range tests {
		if got := maskValue(tt.in); got != tt.want {
			t.Errorf("maskValue(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRedactor_Sensitive(t *testing.T) {
	r := newRedactor([]string{" Email "})
	tests := []struct {
		key  string
		want bool
	}{
		{"secret", true},
		{"hmac_key", true},
		{"csrf_token", true},
		{"user_info", true},
		{"user_email", true},
		{"algorithm", false},
		{"valid", false},
	}
	for _, tt := range tests {
		if got := r.sensitive(tt.key); got != tt.want {
			t.Errorf("sensitive(%q) = %v, want %v", tt.key, got, tt.want)
		}
	}
}

func TestRedact_ExtraKeys(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(Config{Level: "info", Format: "json", Output: &buf, RedactKeys: []string{"user"}})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	l.Info("token created", "user", "alice@example.com", "algorithm", "sha256")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Failed to parse JSON log: %v", err)
	}
	if entry["user"] != redactedValue {
		t.Errorf("user = %v, want %q", entry["user"], redactedValue)
	}
	if entry["algorithm"] != "sha256" {
		t.Errorf("algorithm = %v, want sha256", entry["algorithm"])
	}
}
