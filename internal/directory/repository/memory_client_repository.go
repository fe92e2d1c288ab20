package repository

import (
	"context"

	directoryDomain "github.com/allisson/graphql-secrets/internal/directory/domain"
)

// MemoryClientRepository serves clients from a fixed in-memory collection.
type MemoryClientRepository struct {
	clients collection[directoryDomain.Client]
}

// NewMemoryClientRepository creates a repository over clients, preserving their order.
func NewMemoryClientRepository(clients []*directoryDomain.Client) *MemoryClientRepository {
	return &MemoryClientRepository{
		clients: newCollection(clients, func(e *directoryDomain.Client) string { return e.Name }),
	}
}

// FindByName returns the client with exactly this name, or false if none exists.
func (r *MemoryClientRepository) FindByName(_ context.Context, name string) (*directoryDomain.Client, bool) {
	return r.clients.findByName(name)
}

// SelectByNames returns the clients whose names are in names, in collection order.
// Unknown names are skipped.
func (r *MemoryClientRepository) SelectByNames(
	_ context.Context,
	names directoryDomain.NameSet,
) []*directoryDomain.Client {
	return r.clients.selectByNames(names)
}

// List returns every client in collection order.
func (r *MemoryClientRepository) List(_ context.Context) []*directoryDomain.Client {
	return r.clients.list()
}
