package domain

import (
	"github.com/allisson/graphql-secrets/internal/errors"
)

// Directory lookup errors. Resolvers turn these into null results.
var (
	// ErrClientNotFound indicates no client has the requested name.
	ErrClientNotFound = errors.Wrap(errors.ErrNotFound, "client not found")

	// ErrSecretNotFound indicates no secret has the requested name.
	ErrSecretNotFound = errors.Wrap(errors.ErrNotFound, "secret not found")

	// ErrGroupNotFound indicates no group has the requested name.
	ErrGroupNotFound = errors.Wrap(errors.ErrNotFound, "group not found")
)
