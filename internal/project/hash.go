package project

import (
	"crypto/sha256"
)

// Digest is a fixed 256-bit hash, layout-compatible with source.File.Hash.
type Digest [32]byte

// Combine builds an aggregate hash H(content || d1 || d2 ...). Callers must
// pass deps in a deterministic order.
func Combine(content Digest, deps ...Digest) Digest {
	h := sha256.New()
	_, _ = h.Write(content[:])
	for _, d := range deps {
		_, _ = h.Write(d[:])
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}
