package secret

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
)

// DefaultLength is the default secret length in bytes.
const DefaultLength = 18

// Source supplies encoded random secrets.
type Source interface {
	// Generate returns the encoding of length random bytes.
	Generate(length int) (string, error)
}

// ReaderSource is a Source backed by an io.Reader.
type ReaderSource struct {
	r io.Reader
}

// NewReaderSource returns a Source reading from r.
// A nil reader falls back to crypto/rand.Reader.
func NewReaderSource(r io.Reader) *ReaderSource {
	if r == nil {
		r = rand.Reader
	}
	return &ReaderSource{r: r}
}

// Default returns the crypto/rand backed Source.
func Default() Source {
	return NewReaderSource(rand.Reader)
}

// Generate implements Source.
func (s *ReaderSource) Generate(length int) (string, error) {
	b, err := s.Bytes(length)
	if err != nil {
		return "", err
	}
	return Encode(b), nil
}

// Bytes reads exactly length bytes from the underlying reader.
func (s *ReaderSource) Bytes(length int) ([]byte, error) {
	if length < 1 {
		return nil, fmt.Errorf("secret length must be positive, got %d", length)
	}
	b := make([]byte, length)
	if _, err := io.ReadFull(s.r, b); err != nil {
		return nil, fmt.Errorf("read random bytes: %w", err)
	}
	return b, nil
}

// Encode returns the URL-safe, unpadded base64 form of b.
func Encode(b []byte) string {
	return base64.RawURLEncoding.EncodeToString(b)
}

// EncodedLen reports how many characters a secret of n bytes encodes to.
func EncodedLen(n int) int {
	return base64.RawURLEncoding.EncodedLen(n)
}
