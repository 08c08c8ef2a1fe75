package csrf

import (
	"encoding/base64"
	"strings"
)

// b64 is the only encoding used for digests: URL-safe alphabet, no padding.
var b64 = base64.RawURLEncoding

const saltAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

const separator = "-"

// encodeSegment encodes a digest for use inside the payload, where '-'
// is the segment delimiter.
func encodeSegment(sum []byte) string {
	return strings.ReplaceAll(b64.EncodeToString(sum), "-", "_")
}

// encodeSignature encodes the trailing signature; it is last, so '-' is safe.
func encodeSignature(sum []byte) string {
	return b64.EncodeToString(sum)
}
