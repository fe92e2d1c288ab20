package service

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"
	"io"

	cryptoDomain "github.com/allisson/graphql-secrets/internal/crypto/domain"
)

// AESGCMCipher implements Sealer using AES-128-GCM.
//
// Security properties:
//   - 128-bit key, generated once per process
//   - 16-byte IV, randomly generated per encryption
//   - 16-byte authentication tag, kept apart from the ciphertext in the blob
//
// Thread safety:
//
//	The cipher holds no mutable state after construction and is safe for
//	concurrent use. Each Encrypt call draws its own IV.
type AESGCMCipher struct {
	aead   cipher.AEAD
	random io.Reader
}

var _ Sealer = (*AESGCMCipher)(nil)

// NewAESGCM creates an AES-128-GCM cipher bound to key.
//
// The GCM instance is configured with a 16-byte nonce instead of the standard
// 12 bytes so that blobs carry a 16-byte IV.
func NewAESGCM(key *cryptoDomain.Key) (*AESGCMCipher, error) {
	if key == nil || len(key.Bytes()) != cryptoDomain.KeySize {
		return nil, cryptoDomain.ErrInvalidKeySize
	}

	block, err := aes.NewCipher(key.Bytes())
	if err != nil {
		return nil, fmt.Errorf("failed to create AES cipher: %w", err)
	}

	aead, err := cipher.NewGCMWithNonceSize(block, cryptoDomain.IVSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	return &AESGCMCipher{aead: aead, random: rand.Reader}, nil
}

// Encrypt seals the UTF-8 bytes of plaintext.
//
// The only failure mode is the random source failing to produce an IV.
func (a *AESGCMCipher) Encrypt(plaintext string) (cryptoDomain.SealedBlob, error) {
	iv := make([]byte, cryptoDomain.IVSize)
	if _, err := io.ReadFull(a.random, iv); err != nil {
		return cryptoDomain.SealedBlob{}, fmt.Errorf("failed to generate iv: %w", err)
	}

	sealed := a.aead.Seal(nil, iv, []byte(plaintext), nil)
	split := len(sealed) - a.aead.Overhead()

	return cryptoDomain.SealedBlob{
		IV:         iv,
		Ciphertext: sealed[:split:split],
		AuthTag:    sealed[split:],
	}, nil
}

// Decrypt authenticates blob and returns its plaintext.
//
// Returns ErrMalformedBlob if the IV or tag has the wrong size and
// ErrDecryptionFailed if the tag does not verify. Both wrap ErrIntegrity.
// No plaintext is returned on failure.
func (a *AESGCMCipher) Decrypt(blob cryptoDomain.SealedBlob) (string, error) {
	if !blob.WellFormed() {
		return "", cryptoDomain.ErrMalformedBlob
	}

	sealed := make([]byte, 0, len(blob.Ciphertext)+len(blob.AuthTag))
	sealed = append(sealed, blob.Ciphertext...)
	sealed = append(sealed, blob.AuthTag...)

	plaintext, err := a.aead.Open(nil, blob.IV, sealed, nil)
	if err != nil {
		return "", cryptoDomain.ErrDecryptionFailed
	}
	defer cryptoDomain.Zero(plaintext)

	return string(plaintext), nil
}
