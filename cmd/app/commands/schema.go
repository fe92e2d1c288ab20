package commands

import (
	"fmt"
	"io"

	directoryGraphQL "github.com/allisson/graphql-secrets/internal/directory/graphql"
)

// RunSchema prints the GraphQL SDL served by the server.
func RunSchema(w io.Writer) error {
	_, err := fmt.Fprint(w, directoryGraphQL.SDL)
	return err
}
