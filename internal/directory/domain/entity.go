// Package domain defines the entities served by the directory: clients,
// secrets whose content is held sealed, and groups that reference both by
// name.
package domain

import (
	cryptoDomain "github.com/allisson/graphql-secrets/internal/crypto/domain"
)

// Client is a consumer of secrets, identified by its unique name.
type Client struct {
	Name string
}

// Secret is a named secret value. Content is always sealed; plaintext exists
// only transiently while a Sealer encrypts or decrypts it.
type Secret struct {
	Name    string
	Content cryptoDomain.SealedBlob
}

// Group links clients and secrets by name. The references are weak: a name
// with no matching entity simply resolves to nothing.
type Group struct {
	Name        string
	ClientNames NameSet
	SecretNames NameSet
}
