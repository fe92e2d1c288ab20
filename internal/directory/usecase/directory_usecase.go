package usecase

import (
	"context"
	"fmt"

	directoryDomain "github.com/allisson/graphql-secrets/internal/directory/domain"
)

// directoryUseCase implements DirectoryUseCase. It holds no state of its own;
// results depend only on the repositories and the decrypter's key.
type directoryUseCase struct {
	clientRepo ClientRepository
	secretRepo SecretRepository
	groupRepo  GroupRepository
	decrypter  Decrypter
}

// NewDirectoryUseCase creates a DirectoryUseCase.
func NewDirectoryUseCase(
	clientRepo ClientRepository,
	secretRepo SecretRepository,
	groupRepo GroupRepository,
	decrypter Decrypter,
) DirectoryUseCase {
	return &directoryUseCase{
		clientRepo: clientRepo,
		secretRepo: secretRepo,
		groupRepo:  groupRepo,
		decrypter:  decrypter,
	}
}

func (d *directoryUseCase) GetClient(ctx context.Context, name string) (*directoryDomain.Client, error) {
	client, ok := d.clientRepo.FindByName(ctx, name)
	if !ok {
		return nil, directoryDomain.ErrClientNotFound
	}
	return client, nil
}

func (d *directoryUseCase) GetSecret(ctx context.Context, name string) (*directoryDomain.Secret, error) {
	secret, ok := d.secretRepo.FindByName(ctx, name)
	if !ok {
		return nil, directoryDomain.ErrSecretNotFound
	}
	return secret, nil
}

func (d *directoryUseCase) GetGroup(ctx context.Context, name string) (*directoryDomain.Group, error) {
	group, ok := d.groupRepo.FindByName(ctx, name)
	if !ok {
		return nil, directoryDomain.ErrGroupNotFound
	}
	return group, nil
}

func (d *directoryUseCase) GroupClients(
	ctx context.Context,
	group *directoryDomain.Group,
) ([]*directoryDomain.Client, error) {
	return d.clientRepo.SelectByNames(ctx, group.ClientNames), nil
}

func (d *directoryUseCase) GroupSecrets(
	ctx context.Context,
	group *directoryDomain.Group,
) ([]*directoryDomain.Secret, error) {
	return d.secretRepo.SelectByNames(ctx, group.SecretNames), nil
}

func (d *directoryUseCase) SecretContent(ctx context.Context, secret *directoryDomain.Secret) (string, error) {
	plaintext, err := d.decrypter.Decrypt(secret.Content)
	if err != nil {
		return "", fmt.Errorf("secret %q: %w", secret.Name, err)
	}
	return plaintext, nil
}

func (d *directoryUseCase) ListClients(ctx context.Context) ([]*directoryDomain.Client, error) {
	return d.clientRepo.List(ctx), nil
}

func (d *directoryUseCase) ListSecrets(ctx context.Context) ([]*directoryDomain.Secret, error) {
	return d.secretRepo.List(ctx), nil
}

func (d *directoryUseCase) ListGroups(ctx context.Context) ([]*directoryDomain.Group, error) {
	return d.groupRepo.List(ctx), nil
}
