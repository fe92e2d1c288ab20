package domain

import (
	"fmt"
	"io"
)

// Key is the symmetric key that seals every secret for the lifetime of the
// process. It is generated once at startup and handed to the cipher through
// its constructor. Key material is never persisted or logged.
type Key struct {
	material []byte
}

// GenerateKey reads KeySize bytes from the given cryptographically secure
// source (normally crypto/rand.Reader).
//
// Returns ErrKeyGeneration if the source fails or is exhausted.
func GenerateKey(source io.Reader) (*Key, error) {
	material := make([]byte, KeySize)
	if _, err := io.ReadFull(source, material); err != nil {
		Zero(material)
		return nil, fmt.Errorf("%w: %v", ErrKeyGeneration, err)
	}
	return &Key{material: material}, nil
}

// Bytes returns the raw key material. The returned slice must not be modified.
func (k *Key) Bytes() []byte {
	return k.material
}

// String redacts the key so it cannot leak through fmt or slog.
func (k *Key) String() string {
	return "[REDACTED]"
}

// Close zeroes the key material.
func (k *Key) Close() {
	Zero(k.material)
}
