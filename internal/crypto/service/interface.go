// Package service provides the authenticated encryption used to keep secret
// content sealed in memory. Implements AES-128-GCM over a process-lifetime key.
package service

import (
	cryptoDomain "github.com/allisson/graphql-secrets/internal/crypto/domain"
)

// Sealer defines authenticated encryption of short text values.
type Sealer interface {
	// Encrypt seals plaintext under a freshly drawn IV.
	Encrypt(plaintext string) (cryptoDomain.SealedBlob, error)

	// Decrypt verifies and opens a blob produced by Encrypt.
	Decrypt(blob cryptoDomain.SealedBlob) (string, error)
}
