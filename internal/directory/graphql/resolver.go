package graphql

import (
	"context"

	directoryDomain "github.com/allisson/graphql-secrets/internal/directory/domain"
	"github.com/allisson/graphql-secrets/internal/directory/usecase"
	apperrors "github.com/allisson/graphql-secrets/internal/errors"
)

type nameArgs struct {
	Name string
}

// RootResolver resolves the Query type. An unknown name resolves to null;
// any other use case error becomes a field error.
type RootResolver struct {
	useCase usecase.DirectoryUseCase
}

// NewRootResolver creates a RootResolver.
func NewRootResolver(useCase usecase.DirectoryUseCase) *RootResolver {
	return &RootResolver{useCase: useCase}
}

func (r *RootResolver) Group(ctx context.Context, args nameArgs) (*GroupResolver, error) {
	group, err := r.useCase.GetGroup(ctx, args.Name)
	if err != nil {
		return nil, absorbNotFound(err)
	}
	return &GroupResolver{group: group, useCase: r.useCase}, nil
}

func (r *RootResolver) Secret(ctx context.Context, args nameArgs) (*SecretResolver, error) {
	secret, err := r.useCase.GetSecret(ctx, args.Name)
	if err != nil {
		return nil, absorbNotFound(err)
	}
	return &SecretResolver{secret: secret, useCase: r.useCase}, nil
}

func (r *RootResolver) Client(ctx context.Context, args nameArgs) (*ClientResolver, error) {
	client, err := r.useCase.GetClient(ctx, args.Name)
	if err != nil {
		return nil, absorbNotFound(err)
	}
	return &ClientResolver{client: client}, nil
}

// GroupResolver resolves the Group type.
type GroupResolver struct {
	group   *directoryDomain.Group
	useCase usecase.DirectoryUseCase
}

func (r *GroupResolver) Name() string {
	return r.group.Name
}

// Clients returns the referenced clients that exist, in collection order.
func (r *GroupResolver) Clients(ctx context.Context) ([]*ClientResolver, error) {
	clients, err := r.useCase.GroupClients(ctx, r.group)
	if err != nil {
		return nil, err
	}

	resolvers := make([]*ClientResolver, 0, len(clients))
	for _, client := range clients {
		resolvers = append(resolvers, &ClientResolver{client: client})
	}
	return resolvers, nil
}

// Secrets returns the referenced secrets that exist, in collection order.
func (r *GroupResolver) Secrets(ctx context.Context) ([]*SecretResolver, error) {
	secrets, err := r.useCase.GroupSecrets(ctx, r.group)
	if err != nil {
		return nil, err
	}

	resolvers := make([]*SecretResolver, 0, len(secrets))
	for _, secret := range secrets {
		resolvers = append(resolvers, &SecretResolver{secret: secret, useCase: r.useCase})
	}
	return resolvers, nil
}

// SecretResolver resolves the Secret type. Content is decrypted only when
// the field is selected.
type SecretResolver struct {
	secret  *directoryDomain.Secret
	useCase usecase.DirectoryUseCase
}

func (r *SecretResolver) Name() string {
	return r.secret.Name
}

func (r *SecretResolver) Content(ctx context.Context) (string, error) {
	return r.useCase.SecretContent(ctx, r.secret)
}

// ClientResolver resolves the Client type.
type ClientResolver struct {
	client *directoryDomain.Client
}

func (r *ClientResolver) Name() string {
	return r.client.Name
}

func absorbNotFound(err error) error {
	if apperrors.Is(err, apperrors.ErrNotFound) {
		return nil
	}
	return err
}
