package main

import (
	"context"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/allisson/graphql-secrets/cmd/app/commands"
	"github.com/allisson/graphql-secrets/internal/app"
	"github.com/allisson/graphql-secrets/internal/config"
)

func getDirectoryCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "query",
			Usage: "Execute one GraphQL query against a freshly keyed dataset",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "query",
					Aliases:  []string{"q"},
					Required: true,
					Usage:    `GraphQL document, e.g. '{ secret(name: "secret1") { content } }'`,
				},
				&cli.StringFlag{
					Name:    "variables",
					Aliases: []string{"v"},
					Usage:   "JSON object of query variables",
				},
				&cli.StringFlag{
					Name:  "operation-name",
					Usage: "Operation to run when the document holds several",
				},
				formatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				container, err := newCLIContainer()
				if err != nil {
					return err
				}
				defer func() { _ = container.Shutdown(ctx) }()

				executor, err := container.Executor()
				if err != nil {
					return err
				}

				return commands.RunQuery(
					ctx,
					executor,
					os.Stdout,
					cmd.String("query"),
					cmd.String("operation-name"),
					cmd.String("variables"),
					cmd.String("format"),
				)
			},
		},
		{
			Name:  "list",
			Usage: "List the names of clients, secrets or groups",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "kind",
					Aliases:  []string{"k"},
					Required: true,
					Usage:    "Entity kind: 'clients', 'secrets' or 'groups'",
				},
				formatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				container, err := newCLIContainer()
				if err != nil {
					return err
				}
				defer func() { _ = container.Shutdown(ctx) }()

				useCase, err := container.DirectoryUseCase()
				if err != nil {
					return err
				}

				return commands.RunList(
					ctx,
					useCase,
					os.Stdout,
					cmd.String("kind"),
					cmd.String("format"),
				)
			},
		},
	}
}

func formatFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Value:   "text",
		Usage:   "Output format: 'text' or 'json'",
	}
}

// newCLIContainer builds a container whose logs go to stderr so stdout only
// carries command output. Metrics are not collected for one-shot commands.
func newCLIContainer() (*app.Container, error) {
	cfg := config.Load()
	cfg.MetricsEnabled = false
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return app.NewContainer(cfg, app.WithLogOutput(os.Stderr)), nil
}
