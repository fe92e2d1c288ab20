package domain

import (
	"github.com/allisson/graphql-secrets/internal/errors"
)

// Cryptographic operation error definitions.
//
// These domain-specific errors wrap standard errors from internal/errors
// to provide context for cryptographic failures.
var (
	// ErrInvalidKeySize indicates the key material is not exactly KeySize bytes.
	ErrInvalidKeySize = errors.Wrap(errors.ErrInvalidInput, "invalid key size")

	// ErrKeyGeneration indicates the secure random source could not produce key
	// material. The process cannot serve secrets without a key, so callers treat
	// this as fatal at startup.
	ErrKeyGeneration = errors.Wrap(errors.ErrUnavailable, "key generation failed")

	// ErrMalformedBlob indicates a sealed blob whose IV or authentication tag
	// has the wrong length. It is reported as an integrity failure because the
	// blob can no longer be authenticated.
	ErrMalformedBlob = errors.Wrap(errors.ErrIntegrity, "malformed sealed blob")

	// ErrDecryptionFailed indicates the authentication tag did not verify.
	//
	// This can occur due to:
	//   - Ciphertext or tag has been tampered with
	//   - The blob was sealed under a different key (e.g. a previous process)
	//
	// The specific cause is not disclosed.
	ErrDecryptionFailed = errors.Wrap(errors.ErrIntegrity, "decryption failed")
)
