// Package graphql binds the directory use case to the GraphQL schema. Each
// schema type has a resolver struct whose methods the engine checks against
// the SDL when the schema is parsed.
package graphql

import (
	"context"
	_ "embed"
	"log/slog"
	"runtime/debug"
	"time"

	graphqlgo "github.com/graph-gophers/graphql-go"

	"github.com/allisson/graphql-secrets/internal/directory/usecase"
	"github.com/allisson/graphql-secrets/internal/metrics"
)

// SDL is the schema served at /query.
//
//go:embed schema.graphql
var SDL string

// Options tunes the execution engine.
type Options struct {
	// MaxDepth rejects queries nested deeper than this. Zero disables the check.
	MaxDepth int
	// MaxParallelism bounds concurrently running resolvers per query.
	MaxParallelism int
	Logger         *slog.Logger
}

// NewSchema parses SDL against a RootResolver backed by useCase.
func NewSchema(useCase usecase.DirectoryUseCase, opts Options) (*graphqlgo.Schema, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	schemaOpts := []graphqlgo.SchemaOpt{graphqlgo.Logger(&panicLogger{logger: logger})}
	if opts.MaxDepth > 0 {
		schemaOpts = append(schemaOpts, graphqlgo.MaxDepth(opts.MaxDepth))
	}
	if opts.MaxParallelism > 0 {
		schemaOpts = append(schemaOpts, graphqlgo.MaxParallelism(opts.MaxParallelism))
	}

	return graphqlgo.ParseSchema(SDL, NewRootResolver(useCase), schemaOpts...)
}

// Executor runs GraphQL operations and records one "graphql/query" metric
// per execution.
type Executor struct {
	schema          *graphqlgo.Schema
	businessMetrics metrics.BusinessMetrics
}

// NewExecutor creates an Executor. A nil businessMetrics records nothing.
func NewExecutor(schema *graphqlgo.Schema, businessMetrics metrics.BusinessMetrics) *Executor {
	if businessMetrics == nil {
		businessMetrics = metrics.NewNoOpBusinessMetrics()
	}
	return &Executor{schema: schema, businessMetrics: businessMetrics}
}

// Execute runs one operation. Field errors and validation errors are carried
// in the response; Execute itself never fails.
func (e *Executor) Execute(
	ctx context.Context,
	query, operationName string,
	variables map[string]any,
) *graphqlgo.Response {
	start := time.Now()
	response := e.schema.Exec(ctx, query, operationName, variables)

	status := metrics.StatusSuccess
	if len(response.Errors) > 0 {
		status = metrics.StatusError
	}
	e.businessMetrics.RecordOperation(ctx, "graphql", "query", status)
	e.businessMetrics.RecordDuration(ctx, "graphql", "query", time.Since(start), status)

	return response
}

// panicLogger routes resolver panics to slog.
type panicLogger struct {
	logger *slog.Logger
}

func (l *panicLogger) LogPanic(ctx context.Context, value interface{}) {
	l.logger.ErrorContext(ctx, "graphql resolver panic",
		slog.Any("panic", value),
		slog.String("stack", string(debug.Stack())))
}
