// Package secret produces the long-lived per-session secrets that CSRF
// tokens are signed with.
//
// Secret Format:
//
//   - Body: Base64 RawURL encoding of N random bytes (alphabet [A-Za-z0-9_-])
//   - No padding, so the value never contains '+', '/' or '='
//   - 18 bytes (the default) encode to 24 characters
//
// Security:
//
//   - Bytes are drawn from crypto/rand unless another io.Reader is supplied
//   - A failing reader is reported, never papered over with a weaker value
package secret
