package scanner

import (
	"crypto/sha256"
	"fmt"
	"hash"
	"io"
	"os"

	"github.com/cespare/xxhash/v2"
)

// Digest is the raw digest of a file's full contents, usable as a map key.
type Digest string

type Hasher interface {
	Sum(path string) (Digest, error)
}

const (
	HashSHA256 = "sha256"
	HashXXHash = "xxhash"
)

// fileHasher streams a file through a fresh hash.Hash per call.
type fileHasher struct {
	newHash func() hash.Hash
}

func (h fileHasher) Sum(path string) (Digest, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	d := h.newHash()
	if _, err := io.Copy(d, f); err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return Digest(d.Sum(nil)), nil
}

// NewHasher returns the content hasher for the named algorithm.
func NewHasher(name string) (Hasher, error) {
	switch name {
	case "", HashSHA256:
		return fileHasher{newHash: sha256.New}, nil
	case HashXXHash:
		return fileHasher{newHash: func() hash.Hash { return xxhash.New() }}, nil
	default:
		return nil, fmt.Errorf("unknown hash algorithm %q (want %s or %s)", name, HashSHA256, HashXXHash)
	}
}
