package domain

const (
	// KeySize is the size in bytes of the process key (AES-128).
	KeySize = 16

	// IVSize is the size in bytes of the random IV drawn for every encryption.
	IVSize = 16

	// AuthTagSize is the size in bytes of the GCM authentication tag.
	AuthTagSize = 16
)
