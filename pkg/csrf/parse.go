package csrf

import (
	"strconv"
	"strings"
	"time"
)

// Parts are the segments of a token. Nothing in Parts is authenticated;
// only Verify establishes that a token is genuine.
type Parts struct {
	Raw        string
	IssuedAt   time.Time // zero unless a validity window is configured
	ExpiresAt  time.Time // zero unless a validity window is configured
	UserDigest string    // empty unless user binding is configured
	Salt       string
	Signature  string

	issuedMs int64
}

// HasTimestamp reports whether the token carried an issue timestamp.
func (p *Parts) HasTimestamp() bool {
	return !p.IssuedAt.IsZero()
}

// Parse splits token into its segments following the tokenizer's
// configuration, without checking the signature.
func (t *Tokenizer) Parse(token string) (*Parts, error) {
	if token == "" {
		return nil, ErrTokenMalformed.WithDetails("empty token")
	}

	p := &Parts{Raw: token}
	rest := token

	if t.validityMs > 0 {
		seg, tail, ok := strings.Cut(rest, separator)
		if !ok || seg == "" {
			return nil, ErrTokenMalformed.WithDetails("missing timestamp segment")
		}
		ms, err := strconv.ParseInt(seg, 36, 64)
		if err != nil {
			return nil, ErrTokenMalformed.WithDetails("timestamp is not base36").WithCause(err)
		}
		p.issuedMs = ms
		p.IssuedAt = time.UnixMilli(ms)
		p.ExpiresAt = p.IssuedAt.Add(time.Duration(t.validityMs) * time.Millisecond)
		rest = tail
	}

	if t.cfg.UserInfo {
		seg, tail, ok := strings.Cut(rest, separator)
		if !ok || seg == "" {
			return nil, ErrTokenMalformed.WithDetails("missing user segment")
		}
		p.UserDigest = seg
		rest = tail
	}

	salt, sig, ok := strings.Cut(rest, separator)
	if !ok || salt == "" {
		return nil, ErrTokenMalformed.WithDetails("missing salt segment")
	}
	if sig == "" {
		return nil, ErrTokenMalformed.WithDetails("missing signature")
	}
	p.Salt = salt
	p.Signature = sig

	return p, nil
}
