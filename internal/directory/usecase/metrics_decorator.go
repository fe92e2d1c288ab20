package usecase

import (
	"context"
	"time"

	directoryDomain "github.com/allisson/graphql-secrets/internal/directory/domain"
	apperrors "github.com/allisson/graphql-secrets/internal/errors"
	"github.com/allisson/graphql-secrets/internal/metrics"
)

const metricsDomain = "directory"

// directoryUseCaseWithMetrics decorates DirectoryUseCase with metrics instrumentation.
type directoryUseCaseWithMetrics struct {
	next    DirectoryUseCase
	metrics metrics.BusinessMetrics
}

// NewDirectoryUseCaseWithMetrics wraps a DirectoryUseCase with metrics recording.
func NewDirectoryUseCaseWithMetrics(useCase DirectoryUseCase, m metrics.BusinessMetrics) DirectoryUseCase {
	return &directoryUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// record reports one operation. Lookups that miss are counted as not_found,
// separately from failures.
func (d *directoryUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := metrics.StatusSuccess
	switch {
	case apperrors.Is(err, apperrors.ErrNotFound):
		status = metrics.StatusNotFound
	case err != nil:
		status = metrics.StatusError
	}

	d.metrics.RecordOperation(ctx, metricsDomain, operation, status)
	d.metrics.RecordDuration(ctx, metricsDomain, operation, time.Since(start), status)
}

// GetClient records metrics for client lookups.
func (d *directoryUseCaseWithMetrics) GetClient(ctx context.Context, name string) (*directoryDomain.Client, error) {
	start := time.Now()
	client, err := d.next.GetClient(ctx, name)
	d.record(ctx, "client_get", start, err)
	return client, err
}

// GetSecret records metrics for secret lookups.
func (d *directoryUseCaseWithMetrics) GetSecret(ctx context.Context, name string) (*directoryDomain.Secret, error) {
	start := time.Now()
	secret, err := d.next.GetSecret(ctx, name)
	d.record(ctx, "secret_get", start, err)
	return secret, err
}

// GetGroup records metrics for group lookups.
func (d *directoryUseCaseWithMetrics) GetGroup(ctx context.Context, name string) (*directoryDomain.Group, error) {
	start := time.Now()
	group, err := d.next.GetGroup(ctx, name)
	d.record(ctx, "group_get", start, err)
	return group, err
}

// GroupClients records metrics for group client selection.
func (d *directoryUseCaseWithMetrics) GroupClients(
	ctx context.Context,
	group *directoryDomain.Group,
) ([]*directoryDomain.Client, error) {
	start := time.Now()
	clients, err := d.next.GroupClients(ctx, group)
	d.record(ctx, "group_clients", start, err)
	return clients, err
}

// GroupSecrets records metrics for group secret selection.
func (d *directoryUseCaseWithMetrics) GroupSecrets(
	ctx context.Context,
	group *directoryDomain.Group,
) ([]*directoryDomain.Secret, error) {
	start := time.Now()
	secrets, err := d.next.GroupSecrets(ctx, group)
	d.record(ctx, "group_secrets", start, err)
	return secrets, err
}

// SecretContent records metrics for secret decryption.
func (d *directoryUseCaseWithMetrics) SecretContent(
	ctx context.Context,
	secret *directoryDomain.Secret,
) (string, error) {
	start := time.Now()
	content, err := d.next.SecretContent(ctx, secret)
	d.record(ctx, "secret_decrypt", start, err)
	return content, err
}

// ListClients records metrics for client listing.
func (d *directoryUseCaseWithMetrics) ListClients(ctx context.Context) ([]*directoryDomain.Client, error) {
	start := time.Now()
	clients, err := d.next.ListClients(ctx)
	d.record(ctx, "client_list", start, err)
	return clients, err
}

// ListSecrets records metrics for secret listing.
func (d *directoryUseCaseWithMetrics) ListSecrets(ctx context.Context) ([]*directoryDomain.Secret, error) {
	start := time.Now()
	secrets, err := d.next.ListSecrets(ctx)
	d.record(ctx, "secret_list", start, err)
	return secrets, err
}

// ListGroups records metrics for group listing.
func (d *directoryUseCaseWithMetrics) ListGroups(ctx context.Context) ([]*directoryDomain.Group, error) {
	start := time.Now()
	groups, err := d.next.ListGroups(ctx)
	d.record(ctx, "group_list", start, err)
	return groups, err
}
