package csrf

import "math/rand/v2"

// newSalt returns n characters drawn from saltAlphabet.
func newSalt(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = saltAlphabet[rand.IntN(len(saltAlphabet))]
	}
	return string(b)
}
