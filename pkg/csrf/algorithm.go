package csrf

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"hash"
	"sort"
	"strings"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/blake2s"
	"golang.org/x/crypto/sha3"
)

// DefaultAlgorithm is the digest used when Config.Algorithm is empty.
const DefaultAlgorithm = "sha256"

var algorithms = map[string]func() hash.Hash{
	"md5":        md5.New,
	"sha1":       sha1.New,
	"sha224":     sha256.New224,
	"sha256":     sha256.New,
	"sha384":     sha512.New384,
	"sha512":     sha512.New,
	"sha512-224": sha512.New512_224,
	"sha512-256": sha512.New512_256,
	"sha3-224":   sha3.New224,
	"sha3-256":   sha3.New256,
	"sha3-384":   sha3.New384,
	"sha3-512":   sha3.New512,
	"blake2b-256": func() hash.Hash {
		h, _ := blake2b.New256(nil)
		return h
	},
	"blake2b-384": func() hash.Hash {
		h, _ := blake2b.New384(nil)
		return h
	},
	"blake2b-512": func() hash.Hash {
		h, _ := blake2b.New512(nil)
		return h
	},
	"blake2s-256": func() hash.Hash {
		h, _ := blake2s.New256(nil)
		return h
	},
}

// lookupAlgorithm resolves a digest name, case-insensitively.
func lookupAlgorithm(name string) (func() hash.Hash, bool) {
	fn, ok := algorithms[strings.ToLower(strings.TrimSpace(name))]
	return fn, ok
}

// SupportsAlgorithm reports whether name is a registered digest.
func SupportsAlgorithm(name string) bool {
	_, ok := lookupAlgorithm(name)
	return ok
}

// Algorithms returns the registered digest names in sorted order.
func Algorithms() []string {
	names := make([]string, 0, len(algorithms))
	for name := range algorithms {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
