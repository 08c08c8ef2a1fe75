package csrf

import (
	"bytes"
	"crypto/hmac"
	"hash"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/yndnr/csrftok/pkg/secret"
)

// Tokenizer creates and verifies CSRF tokens. It holds no mutable state
// and is safe for concurrent use.
type Tokenizer struct {
	cfg        Config
	newHash    func() hash.Hash
	validityMs int64
	now        func() time.Time
	secrets    secret.Source
}

// New validates cfg and returns a Tokenizer for it.
func New(cfg Config, opts ...Option) (*Tokenizer, error) {
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	newHash, _ := lookupAlgorithm(cfg.Algorithm)
	cfg.Algorithm = strings.ToLower(strings.TrimSpace(cfg.Algorithm))
	cfg.HMACKey = bytes.Clone(cfg.HMACKey)

	t := &Tokenizer{
		cfg:        cfg,
		newHash:    newHash,
		validityMs: cfg.Validity.Milliseconds(),
		now:        time.Now,
		secrets:    secret.Default(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t, nil
}

// Config returns a copy of the tokenizer configuration.
func (t *Tokenizer) Config() Config {
	cfg := t.cfg
	cfg.HMACKey = bytes.Clone(t.cfg.HMACKey)
	return cfg
}

// Create returns a new token for secret. userInfo is required when the
// tokenizer was configured with UserInfo and ignored otherwise.
func (t *Tokenizer) Create(secret, userInfo string) (string, error) {
	if secret == "" {
		return "", ErrInvalidArgument.WithDetails("argument secret is required")
	}
	if t.cfg.UserInfo && userInfo == "" {
		return "", ErrInvalidArgument.WithDetails("argument userInfo is required to be a non-empty string")
	}

	var issued int64
	if t.validityMs > 0 {
		issued = t.now().UnixMilli()
	}
	return t.tokenize(secret, newSalt(t.cfg.SaltLength), issued, userInfo), nil
}

// Verify reports whether token was created by Create with the same secret
// (and userInfo, when required) and, if a validity window is configured,
// is not older than it. Any malformed input yields false.
func (t *Tokenizer) Verify(secret, token, userInfo string) bool {
	return t.Check(secret, token, userInfo) == ResultValid
}

// Check is Verify with the reason for rejection.
func (t *Tokenizer) Check(secret, token, userInfo string) Result {
	if secret == "" || token == "" {
		return ResultMissingInput
	}
	if t.cfg.UserInfo && userInfo == "" {
		return ResultMissingInput
	}

	p, err := t.Parse(token)
	if err != nil {
		return ResultMalformed
	}

	if t.validityMs > 0 && t.now().UnixMilli()-p.issuedMs > t.validityMs {
		return ResultExpired
	}

	// The embedded user digest is not trusted: the caller's userInfo is
	// hashed again and must reproduce the whole token.
	expected := t.tokenize(secret, p.Salt, p.issuedMs, userInfo)
	if !EqualString(token, expected) {
		return ResultMismatch
	}
	return ResultValid
}

// tokenize builds the full token from its inputs.
func (t *Tokenizer) tokenize(secret, salt string, issued int64, userInfo string) string {
	var b strings.Builder

	if t.validityMs > 0 {
		b.WriteString(strconv.FormatInt(issued, 36))
		b.WriteString(separator)
	}
	if t.cfg.UserInfo {
		b.WriteString(encodeSegment(t.digest(userInfo)))
		b.WriteString(separator)
	}
	b.WriteString(salt)

	payload := b.String()
	return payload + separator + encodeSignature(t.digest(payload, separator, secret))
}

// digest hashes the concatenation of parts with the configured algorithm,
// keyed when an HMAC key is set.
func (t *Tokenizer) digest(parts ...string) []byte {
	var h hash.Hash
	if len(t.cfg.HMACKey) > 0 {
		h = hmac.New(t.newHash, t.cfg.HMACKey)
	} else {
		h = t.newHash()
	}
	for _, p := range parts {
		io.WriteString(h, p)
	}
	return h.Sum(nil)
}
