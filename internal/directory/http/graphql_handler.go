// Package http provides the HTTP handler that serves GraphQL queries over the
// directory.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	directoryGraphQL "github.com/allisson/graphql-secrets/internal/directory/graphql"
	"github.com/allisson/graphql-secrets/internal/directory/http/dto"
	apperrors "github.com/allisson/graphql-secrets/internal/errors"
	"github.com/allisson/graphql-secrets/internal/httputil"
	customValidation "github.com/allisson/graphql-secrets/internal/validation"
)

// GraphQLHandler serves /query. Executed operations always answer 200 with
// a {data, errors} body; only requests that never reach the engine get an
// error status. A request whose context is already done gets 503.
type GraphQLHandler struct {
	executor        *directoryGraphQL.Executor
	graphiQLEnabled bool
	logger          *slog.Logger
}

// NewGraphQLHandler creates a GraphQLHandler.
func NewGraphQLHandler(
	executor *directoryGraphQL.Executor,
	graphiQLEnabled bool,
	logger *slog.Logger,
) *GraphQLHandler {
	return &GraphQLHandler{
		executor:        executor,
		graphiQLEnabled: graphiQLEnabled,
		logger:          logger,
	}
}

// PostHandler executes the operation in the JSON body.
// POST /query
func (h *GraphQLHandler) PostHandler(c *gin.Context) {
	var req dto.QueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	h.execute(c, req)
}

// GetHandler executes the operation in the query string. Without a query
// parameter it serves GraphiQL when that is enabled.
// GET /query?query=...&operationName=...&variables=...
func (h *GraphQLHandler) GetHandler(c *gin.Context) {
	query := c.Query("query")
	if query == "" && h.graphiQLEnabled {
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(graphiQLPage))
		return
	}

	req, err := dto.NewQueryRequestFromParams(query, c.Query("operationName"), c.Query("variables"))
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	h.execute(c, req)
}

func (h *GraphQLHandler) execute(c *gin.Context, req dto.QueryRequest) {
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	ctx := c.Request.Context()
	if err := ctx.Err(); err != nil {
		httputil.HandleErrorGin(c, apperrors.Wrap(apperrors.ErrUnavailable, err.Error()), h.logger)
		return
	}

	response := h.executor.Execute(ctx, req.Query, req.OperationName, req.Variables)
	if len(response.Errors) > 0 {
		h.logger.Debug("graphql query returned errors",
			slog.Int("error_count", len(response.Errors)),
			slog.String("operation_name", req.OperationName))
	}

	c.JSON(http.StatusOK, response)
}
