package repository

import (
	"context"

	directoryDomain "github.com/allisson/graphql-secrets/internal/directory/domain"
)

// MemoryGroupRepository serves groups from a fixed in-memory collection.
type MemoryGroupRepository struct {
	groups collection[directoryDomain.Group]
}

// NewMemoryGroupRepository creates a repository over groups, preserving their order.
func NewMemoryGroupRepository(groups []*directoryDomain.Group) *MemoryGroupRepository {
	return &MemoryGroupRepository{
		groups: newCollection(groups, func(e *directoryDomain.Group) string { return e.Name }),
	}
}

// FindByName returns the group with exactly this name, or false if none exists.
func (r *MemoryGroupRepository) FindByName(_ context.Context, name string) (*directoryDomain.Group, bool) {
	return r.groups.findByName(name)
}

// List returns every group in collection order.
func (r *MemoryGroupRepository) List(_ context.Context) []*directoryDomain.Group {
	return r.groups.list()
}
