package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	directoryGraphQL "github.com/allisson/graphql-secrets/internal/directory/graphql"
	"github.com/allisson/graphql-secrets/internal/directory/http/dto"
	customValidation "github.com/allisson/graphql-secrets/internal/validation"
)

// RunQuery executes one GraphQL operation in-process and prints the result.
// The dataset is sealed under a key that exists only for this invocation.
//
// Query errors are part of the printed result, not a command failure, so the
// output matches what /query would answer.
func RunQuery(
	ctx context.Context,
	executor *directoryGraphQL.Executor,
	w io.Writer,
	query, operationName, variables, format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	req, err := dto.NewQueryRequestFromParams(query, operationName, variables)
	if err != nil {
		return err
	}
	if err := req.Validate(); err != nil {
		return customValidation.WrapValidationError(err)
	}

	response := executor.Execute(ctx, req.Query, req.OperationName, req.Variables)

	if format == "json" {
		return writeJSON(w, response)
	}

	if len(response.Data) > 0 {
		var data bytes.Buffer
		if err := json.Indent(&data, response.Data, "", "  "); err != nil {
			return fmt.Errorf("failed to format data: %w", err)
		}
		fmt.Fprintln(w, data.String())
	}
	for _, qe := range response.Errors {
		fmt.Fprintf(w, "error: %s\n", qe.Message)
	}
	return nil
}
