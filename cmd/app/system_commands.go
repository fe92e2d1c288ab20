package main

import (
	"context"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/allisson/graphql-secrets/cmd/app/commands"
)

func getSystemCommands(version string) []*cli.Command {
	return []*cli.Command{
		{
			Name:  "server",
			Usage: "Start the GraphQL HTTP server and the metrics server",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return commands.RunServer(ctx, version)
			},
		},
		{
			Name:  "schema",
			Usage: "Print the GraphQL schema",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return commands.RunSchema(os.Stdout)
			},
		},
	}
}
