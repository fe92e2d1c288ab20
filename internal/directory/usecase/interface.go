// Package usecase implements the directory lookups behind the GraphQL
// resolvers: name lookups over the in-memory repositories and on-demand
// decryption of secret content.
package usecase

import (
	"context"

	cryptoDomain "github.com/allisson/graphql-secrets/internal/crypto/domain"
	directoryDomain "github.com/allisson/graphql-secrets/internal/directory/domain"
)

// ClientRepository defines read access to clients.
type ClientRepository interface {
	FindByName(ctx context.Context, name string) (*directoryDomain.Client, bool)
	SelectByNames(ctx context.Context, names directoryDomain.NameSet) []*directoryDomain.Client
	List(ctx context.Context) []*directoryDomain.Client
}

// SecretRepository defines read access to secrets. Content stays sealed.
type SecretRepository interface {
	FindByName(ctx context.Context, name string) (*directoryDomain.Secret, bool)
	SelectByNames(ctx context.Context, names directoryDomain.NameSet) []*directoryDomain.Secret
	List(ctx context.Context) []*directoryDomain.Secret
}

// GroupRepository defines read access to groups.
type GroupRepository interface {
	FindByName(ctx context.Context, name string) (*directoryDomain.Group, bool)
	List(ctx context.Context) []*directoryDomain.Group
}

// Decrypter opens sealed secret content.
type Decrypter interface {
	Decrypt(blob cryptoDomain.SealedBlob) (string, error)
}

// DirectoryUseCase defines the resolution operations exposed to the transport layer.
type DirectoryUseCase interface {
	// GetClient returns ErrClientNotFound when no client has this name.
	GetClient(ctx context.Context, name string) (*directoryDomain.Client, error)
	// GetSecret returns the secret with its content still sealed, or ErrSecretNotFound.
	GetSecret(ctx context.Context, name string) (*directoryDomain.Secret, error)
	// GetGroup returns ErrGroupNotFound when no group has this name.
	GetGroup(ctx context.Context, name string) (*directoryDomain.Group, error)
	// GroupClients returns the group's clients that exist, in collection order.
	GroupClients(ctx context.Context, group *directoryDomain.Group) ([]*directoryDomain.Client, error)
	// GroupSecrets returns the group's secrets that exist, in collection order.
	GroupSecrets(ctx context.Context, group *directoryDomain.Group) ([]*directoryDomain.Secret, error)
	// SecretContent decrypts the secret's content. Integrity failures are returned, never masked.
	SecretContent(ctx context.Context, secret *directoryDomain.Secret) (string, error)
	// ListClients returns every client in collection order.
	ListClients(ctx context.Context) ([]*directoryDomain.Client, error)
	// ListSecrets returns every secret in collection order.
	ListSecrets(ctx context.Context) ([]*directoryDomain.Secret, error)
	// ListGroups returns every group in collection order.
	ListGroups(ctx context.Context) ([]*directoryDomain.Group, error)
}
