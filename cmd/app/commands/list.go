package commands

import (
	"context"
	"fmt"
	"io"

	directoryUseCase "github.com/allisson/graphql-secrets/internal/directory/usecase"
)

// RunList prints the names of one entity kind in collection order. Secret
// content is never printed.
func RunList(
	ctx context.Context,
	useCase directoryUseCase.DirectoryUseCase,
	w io.Writer,
	kind, format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	names, err := listNames(ctx, useCase, kind)
	if err != nil {
		return err
	}

	if format == "json" {
		return writeJSON(w, map[string]any{
			"kind":  kind,
			"names": names,
		})
	}

	for _, name := range names {
		fmt.Fprintln(w, name)
	}
	return nil
}

func listNames(ctx context.Context, useCase directoryUseCase.DirectoryUseCase, kind string) ([]string, error) {
	names := []string{}

	switch kind {
	case "clients":
		clients, err := useCase.ListClients(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list clients: %w", err)
		}
		for _, c := range clients {
			names = append(names, c.Name)
		}
	case "secrets":
		secrets, err := useCase.ListSecrets(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list secrets: %w", err)
		}
		for _, s := range secrets {
			names = append(names, s.Name)
		}
	case "groups":
		groups, err := useCase.ListGroups(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list groups: %w", err)
		}
		for _, g := range groups {
			names = append(names, g.Name)
		}
	default:
		return nil, fmt.Errorf("invalid kind: %s (valid options: clients, secrets, groups)", kind)
	}

	return names, nil
}
