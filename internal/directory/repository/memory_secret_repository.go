package repository

import (
	"context"

	directoryDomain "github.com/allisson/graphql-secrets/internal/directory/domain"
)

// MemorySecretRepository serves secrets from a fixed in-memory collection.
type MemorySecretRepository struct {
	secrets collection[directoryDomain.Secret]
}

// NewMemorySecretRepository creates a repository over secrets, preserving their order.
func NewMemorySecretRepository(secrets []*directoryDomain.Secret) *MemorySecretRepository {
	return &MemorySecretRepository{
		secrets: newCollection(secrets, func(e *directoryDomain.Secret) string { return e.Name }),
	}
}

// FindByName returns the secret with exactly this name, or false if none exists.
func (r *MemorySecretRepository) FindByName(_ context.Context, name string) (*directoryDomain.Secret, bool) {
	return r.secrets.findByName(name)
}

// SelectByNames returns the secrets whose names are in names, in collection order.
// Unknown names are skipped.
func (r *MemorySecretRepository) SelectByNames(
	_ context.Context,
	names directoryDomain.NameSet,
) []*directoryDomain.Secret {
	return r.secrets.selectByNames(names)
}

// List returns every secret in collection order.
func (r *MemorySecretRepository) List(_ context.Context) []*directoryDomain.Secret {
	return r.secrets.list()
}
