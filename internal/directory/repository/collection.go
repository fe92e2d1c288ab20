// Package repository provides the in-memory repositories backing the directory.
// Each repository holds an ordered, read-only collection built at startup, so
// lookups need no locking.
package repository

import (
	directoryDomain "github.com/allisson/graphql-secrets/internal/directory/domain"
)

// collection is an ordered slice of entities with typed name lookups.
type collection[T any] struct {
	items  []*T
	nameOf func(*T) string
}

func newCollection[T any](items []*T, nameOf func(*T) string) collection[T] {
	return collection[T]{items: append([]*T(nil), items...), nameOf: nameOf}
}

// findByName scans in order and returns the first exact match.
func (c collection[T]) findByName(name string) (*T, bool) {
	for _, item := range c.items {
		if c.nameOf(item) == name {
			return item, true
		}
	}
	return nil, false
}

// selectByNames keeps collection order, not the order of names. The result
// is never nil.
func (c collection[T]) selectByNames(names directoryDomain.NameSet) []*T {
	selected := make([]*T, 0, names.Len())
	for _, item := range c.items {
		if names.Contains(c.nameOf(item)) {
			selected = append(selected, item)
		}
	}
	return selected
}

func (c collection[T]) list() []*T {
	return append(make([]*T, 0, len(c.items)), c.items...)
}
