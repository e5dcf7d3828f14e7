// Package digest computes and validates the content digests used to
// address blobs in the store. Sum yields the bare hex form used as a
// descriptor id; FullDigest yields the "<algorithm>:<hex>" form used
// throughout the OCI and container-registry ecosystem.
package digest

import (
	"fmt"

	godigest "github.com/opencontainers/go-digest"
)

// Algorithm identifies a supported hashing algorithm.
type Algorithm string

const (
	// SHA1 is the default algorithm. It is chosen for compactness, not
	// for adversarial resistance: the store is a content-addressed
	// cache, not a security boundary.
	SHA1 Algorithm = "sha1"

	// SHA256 trades compactness for collision resistance.
	SHA256 Algorithm = "sha256"
)

// DefaultAlgorithm is used by Open when the caller does not specify one.
const DefaultAlgorithm = SHA1

var toGoDigest = map[Algorithm]godigest.Algorithm{
	SHA1:   godigest.SHA1,
	SHA256: godigest.SHA256,
}

// ErrUnsupportedAlgorithm is returned by Validate and NewHasher when asked for
// an algorithm the store does not know how to compute.
type ErrUnsupportedAlgorithm struct {
	Algorithm Algorithm
}

func (e ErrUnsupportedAlgorithm) Error() string {
	return fmt.Sprintf("digest: unsupported algorithm %q", e.Algorithm)
}

// Validate reports whether alg is a supported algorithm.
func Validate(alg Algorithm) error {
	if _, ok := toGoDigest[alg]; !ok {
		return ErrUnsupportedAlgorithm{Algorithm: alg}
	}
	return nil
}

// Hasher is a digest service bound to a single algorithm: a pure
// function from bytes to hex digest, configured once at store-open
// time and persisted in the manifest for reload.
type Hasher struct {
	alg godigest.Algorithm
	raw Algorithm
}

// NewHasher returns a Hasher for alg, or an error if alg is unsupported.
func NewHasher(alg Algorithm) (Hasher, error) {
	gd, ok := toGoDigest[alg]
	if !ok {
		return Hasher{}, ErrUnsupportedAlgorithm{Algorithm: alg}
	}
	return Hasher{alg: gd, raw: alg}, nil
}

// MustHasher is like NewHasher but panics on an unsupported algorithm. It
// is intended for package-level defaults, not for user-supplied input.
func MustHasher(alg Algorithm) Hasher {
	h, err := NewHasher(alg)
	if err != nil {
		panic(err)
	}
	return h
}

// Algorithm returns the algorithm this hasher was constructed with.
func (h Hasher) Algorithm() Algorithm {
	return h.raw
}

// Sum returns the hex-encoded digest of p, without the "<algorithm>:"
// prefix -- this is the form used as a Descriptor.uuid.
func (h Hasher) Sum(p []byte) string {
	return h.alg.FromBytes(p).Encoded()
}

// FullDigest returns the canonical "<algorithm>:<hex>" form of Sum(p),
// suitable for the wire / link-file representation used by the blob
// backend.
func (h Hasher) FullDigest(p []byte) string {
	return h.alg.FromBytes(p).String()
}
