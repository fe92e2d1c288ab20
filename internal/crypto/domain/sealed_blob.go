// Package domain defines the core types for sealing secret content: the process
// key, the sealed blob produced by authenticated encryption, and the errors
// raised when a blob fails to authenticate.
package domain

// SealedBlob is the output of one authenticated encryption. The three parts are
// positionally bound: decryption needs all of them from the same Encrypt call.
// A blob is never mutated after it has been produced.
type SealedBlob struct {
	// IV is the IVSize-byte random nonce drawn for this encryption.
	IV []byte
	// Ciphertext is the encrypted content, the same length as the plaintext.
	Ciphertext []byte
	// AuthTag is the AuthTagSize-byte GCM authentication tag.
	AuthTag []byte
}

// WellFormed reports whether the IV and tag have the expected sizes.
func (b SealedBlob) WellFormed() bool {
	return len(b.IV) == IVSize && len(b.AuthTag) == AuthTagSize
}
