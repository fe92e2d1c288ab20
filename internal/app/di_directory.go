package app

import (
	"fmt"
	"log/slog"

	graphqlgo "github.com/graph-gophers/graphql-go"

	cryptoDomain "github.com/allisson/graphql-secrets/internal/crypto/domain"
	cryptoService "github.com/allisson/graphql-secrets/internal/crypto/service"
	"github.com/allisson/graphql-secrets/internal/directory/fixtures"
	directoryGraphQL "github.com/allisson/graphql-secrets/internal/directory/graphql"
	directoryHTTP "github.com/allisson/graphql-secrets/internal/directory/http"
	"github.com/allisson/graphql-secrets/internal/directory/repository"
	directoryUseCase "github.com/allisson/graphql-secrets/internal/directory/usecase"
)

// Key returns the process key, generated on first access. It is never
// persisted; a new process gets a new key.
func (c *Container) Key() (*cryptoDomain.Key, error) {
	c.keyInit.Do(func() {
		key, err := cryptoDomain.GenerateKey(c.random)
		if err != nil {
			c.initErrors["key"] = err
			return
		}
		c.key = key
	})
	if storedErr, exists := c.initErrors["key"]; exists {
		return nil, storedErr
	}
	return c.key, nil
}

// Sealer returns the AES-GCM cipher bound to the process key.
func (c *Container) Sealer() (cryptoService.Sealer, error) {
	c.sealerInit.Do(func() {
		sealer, err := c.initSealer()
		if err != nil {
			c.initErrors["sealer"] = err
			return
		}
		c.sealer = sealer
	})
	if storedErr, exists := c.initErrors["sealer"]; exists {
		return nil, storedErr
	}
	return c.sealer, nil
}

// Dataset returns the directory entities loaded from the fixtures document,
// with every secret sealed under the process key.
func (c *Container) Dataset() (*fixtures.Dataset, error) {
	c.datasetInit.Do(func() {
		dataset, err := c.initDataset()
		if err != nil {
			c.initErrors["dataset"] = err
			return
		}
		c.dataset = dataset
	})
	if storedErr, exists := c.initErrors["dataset"]; exists {
		return nil, storedErr
	}
	return c.dataset, nil
}

// ClientRepository returns the in-memory client repository.
func (c *Container) ClientRepository() (directoryUseCase.ClientRepository, error) {
	if err := c.initRepositories(); err != nil {
		return nil, err
	}
	return c.clientRepository, nil
}

// SecretRepository returns the in-memory secret repository.
func (c *Container) SecretRepository() (directoryUseCase.SecretRepository, error) {
	if err := c.initRepositories(); err != nil {
		return nil, err
	}
	return c.secretRepository, nil
}

// GroupRepository returns the in-memory group repository.
func (c *Container) GroupRepository() (directoryUseCase.GroupRepository, error) {
	if err := c.initRepositories(); err != nil {
		return nil, err
	}
	return c.groupRepository, nil
}

// DirectoryUseCase returns the directory use case, decorated with business
// metrics when metrics are enabled.
func (c *Container) DirectoryUseCase() (directoryUseCase.DirectoryUseCase, error) {
	c.directoryUseCaseInit.Do(func() {
		useCase, err := c.initDirectoryUseCase()
		if err != nil {
			c.initErrors["directoryUseCase"] = err
			return
		}
		c.directoryUseCase = useCase
	})
	if storedErr, exists := c.initErrors["directoryUseCase"]; exists {
		return nil, storedErr
	}
	return c.directoryUseCase, nil
}

// Schema returns the parsed GraphQL schema bound to the directory use case.
func (c *Container) Schema() (*graphqlgo.Schema, error) {
	c.schemaInit.Do(func() {
		schema, err := c.initSchema()
		if err != nil {
			c.initErrors["schema"] = err
			return
		}
		c.schema = schema
	})
	if storedErr, exists := c.initErrors["schema"]; exists {
		return nil, storedErr
	}
	return c.schema, nil
}

// Executor returns the GraphQL executor used by the HTTP handler and the
// query command.
func (c *Container) Executor() (*directoryGraphQL.Executor, error) {
	c.executorInit.Do(func() {
		executor, err := c.initExecutor()
		if err != nil {
			c.initErrors["executor"] = err
			return
		}
		c.executor = executor
	})
	if storedErr, exists := c.initErrors["executor"]; exists {
		return nil, storedErr
	}
	return c.executor, nil
}

// GraphQLHandler returns the /query HTTP handler.
func (c *Container) GraphQLHandler() (*directoryHTTP.GraphQLHandler, error) {
	c.graphqlHandlerInit.Do(func() {
		executor, err := c.Executor()
		if err != nil {
			c.initErrors["graphqlHandler"] = err
			return
		}
		c.graphqlHandler = directoryHTTP.NewGraphQLHandler(executor, c.config.GraphiQLEnabled, c.Logger())
	})
	if storedErr, exists := c.initErrors["graphqlHandler"]; exists {
		return nil, storedErr
	}
	return c.graphqlHandler, nil
}

func (c *Container) initSealer() (cryptoService.Sealer, error) {
	key, err := c.Key()
	if err != nil {
		return nil, fmt.Errorf("failed to generate process key: %w", err)
	}
	sealer, err := cryptoService.NewAESGCM(key)
	if err != nil {
		return nil, err
	}
	return sealer, nil
}

// initDataset loads the fixtures and seals them. Dangling group references
// are legal and only logged.
func (c *Container) initDataset() (*fixtures.Dataset, error) {
	sealer, err := c.Sealer()
	if err != nil {
		return nil, err
	}

	doc, err := fixtures.ReadFile(c.config.FixturesFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixtures: %w", err)
	}

	dataset, err := fixtures.Build(doc, sealer)
	if err != nil {
		return nil, fmt.Errorf("failed to build dataset: %w", err)
	}

	logger := c.Logger()
	for _, ref := range dataset.DanglingReferences() {
		logger.Warn("dangling group reference",
			slog.String("group", ref.Group),
			slog.String("kind", ref.Kind),
			slog.String("name", ref.Name))
	}
	logger.Info("dataset loaded",
		slog.Int("clients", len(dataset.Clients)),
		slog.Int("secrets", len(dataset.Secrets)),
		slog.Int("groups", len(dataset.Groups)))

	return dataset, nil
}

func (c *Container) initRepositories() error {
	c.repositoriesInit.Do(func() {
		dataset, err := c.Dataset()
		if err != nil {
			c.initErrors["repositories"] = err
			return
		}
		c.clientRepository = repository.NewMemoryClientRepository(dataset.Clients)
		c.secretRepository = repository.NewMemorySecretRepository(dataset.Secrets)
		c.groupRepository = repository.NewMemoryGroupRepository(dataset.Groups)
	})
	return c.initErrors["repositories"]
}

func (c *Container) initDirectoryUseCase() (directoryUseCase.DirectoryUseCase, error) {
	if err := c.initRepositories(); err != nil {
		return nil, err
	}

	sealer, err := c.Sealer()
	if err != nil {
		return nil, err
	}

	useCase := directoryUseCase.NewDirectoryUseCase(
		c.clientRepository,
		c.secretRepository,
		c.groupRepository,
		sealer,
	)

	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, err
		}
		useCase = directoryUseCase.NewDirectoryUseCaseWithMetrics(useCase, businessMetrics)
	}

	return useCase, nil
}

func (c *Container) initSchema() (*graphqlgo.Schema, error) {
	useCase, err := c.DirectoryUseCase()
	if err != nil {
		return nil, err
	}

	schema, err := directoryGraphQL.NewSchema(useCase, directoryGraphQL.Options{
		MaxDepth:       c.config.GraphQLMaxDepth,
		MaxParallelism: c.config.GraphQLMaxParallelism,
		Logger:         c.Logger(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse graphql schema: %w", err)
	}
	return schema, nil
}

func (c *Container) initExecutor() (*directoryGraphQL.Executor, error) {
	schema, err := c.Schema()
	if err != nil {
		return nil, err
	}

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, err
	}

	return directoryGraphQL.NewExecutor(schema, businessMetrics), nil
}
