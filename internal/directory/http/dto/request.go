// Package dto provides the GraphQL-over-HTTP request body and its validation.
package dto

import (
	"encoding/json"
	"fmt"

	validation "github.com/jellydator/validation"

	customValidation "github.com/allisson/graphql-secrets/internal/validation"
)

// QueryRequest is one GraphQL operation, sent as a JSON body on POST or as
// query parameters on GET.
type QueryRequest struct {
	Query         string         `json:"query"`
	OperationName string         `json:"operationName"`
	Variables     map[string]any `json:"variables"`
}

// NewQueryRequestFromParams builds a QueryRequest from GET parameters.
// variables, when present, must be a JSON object.
func NewQueryRequestFromParams(query, operationName, variables string) (QueryRequest, error) {
	req := QueryRequest{Query: query, OperationName: operationName}
	if variables == "" {
		return req, nil
	}

	if err := json.Unmarshal([]byte(variables), &req.Variables); err != nil {
		return QueryRequest{}, fmt.Errorf("invalid variables: %w", err)
	}
	return req, nil
}

// Validate checks that a query document was supplied.
func (r *QueryRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Query,
			validation.Required,
			customValidation.NotBlank,
		),
	)
}
