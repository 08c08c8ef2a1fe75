package csrf

import "crypto/subtle"

// Equal reports whether actual and expected hold the same bytes.
//
// The byte comparison always runs over len(actual) bytes: when the lengths
// differ actual is compared with itself. The length check is computed
// separately and both results are combined at the end.
func Equal(actual, expected []byte) bool {
	ref := expected
	if len(ref) != len(actual) {
		ref = actual
	}
	same := subtle.ConstantTimeCompare(ref, actual)
	return same&lengthsEqual(len(actual), len(expected)) == 1
}

// EqualString is Equal for strings.
func EqualString(actual, expected string) bool {
	return Equal([]byte(actual), []byte(expected))
}

func lengthsEqual(a, b int) int {
	d := uint64(a) ^ uint64(b)
	return subtle.ConstantTimeEq(int32(uint32(d)|uint32(d>>32)), 0)
}
