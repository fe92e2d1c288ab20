package app

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/graphql-secrets/internal/config"
	cryptoDomain "github.com/allisson/graphql-secrets/internal/crypto/domain"
	apperrors "github.com/allisson/graphql-secrets/internal/errors"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func testConfig() *config.Config {
	return &config.Config{
		ServerHost:            "localhost",
		ServerPort:            0,
		LogLevel:              "info",
		GraphiQLEnabled:       true,
		GraphQLMaxDepth:       10,
		GraphQLMaxParallelism: 10,
		MetricsEnabled:        true,
		MetricsNamespace:      "test_app",
		MetricsPort:           0,
	}
}

func newTestContainer(t *testing.T, cfg *config.Config) (*Container, *bytes.Buffer) {
	t.Helper()

	var logs bytes.Buffer
	c := NewContainer(cfg, WithLogOutput(&logs))
	t.Cleanup(func() {
		assert.NoError(t, c.Shutdown(context.Background()))
	})
	return c, &logs
}

func TestNewContainer(t *testing.T) {
	cfg := testConfig()
	c, _ := newTestContainer(t, cfg)

	assert.Same(t, cfg, c.Config())
	assert.Same(t, c.Logger(), c.Logger())
}

func TestContainer_Directory(t *testing.T) {
	c, logs := newTestContainer(t, testConfig())

	useCase, err := c.DirectoryUseCase()
	require.NoError(t, err)

	secret, err := useCase.GetSecret(context.Background(), "secret1")
	require.NoError(t, err)
	content, err := useCase.SecretContent(context.Background(), secret)
	require.NoError(t, err)
	assert.Equal(t, "secret1", content)

	again, err := c.DirectoryUseCase()
	require.NoError(t, err)
	assert.Same(t, useCase, again)

	assert.Contains(t, logs.String(), "dataset loaded")
	assert.NotContains(t, logs.String(), "dangling group reference")
}

func TestContainer_KeyNeverLogged(t *testing.T) {
	c, logs := newTestContainer(t, testConfig())

	key, err := c.Key()
	require.NoError(t, err)
	_, err = c.Dataset()
	require.NoError(t, err)

	assert.Equal(t, "[REDACTED]", key.String())
	assert.NotContains(t, logs.String(), string(key.Bytes()))
}

func TestContainer_KeyGenerationFailure(t *testing.T) {
	c, _ := newTestContainer(t, testConfig())
	c.random = iotest.ErrReader(errors.New("entropy exhausted"))

	_, err := c.Executor()
	require.Error(t, err)
	assert.ErrorIs(t, err, cryptoDomain.ErrKeyGeneration)

	_, err = c.HTTPServer()
	assert.ErrorIs(t, err, cryptoDomain.ErrKeyGeneration)
}

func TestContainer_FixturesFile(t *testing.T) {
	t.Run("dangling references are logged", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "fixtures.yaml")
		require.NoError(t, os.WriteFile(path, []byte(strings.TrimSpace(`
clients:
  - name: alpha
secrets:
  - name: token
    content: s3cr3t
groups:
  - name: ops
    clients: [alpha, ghost]
    secrets: [token]
`)), 0o600))

		cfg := testConfig()
		cfg.FixturesFile = path
		c, logs := newTestContainer(t, cfg)

		dataset, err := c.Dataset()
		require.NoError(t, err)
		assert.Len(t, dataset.Groups, 1)
		assert.Contains(t, logs.String(), "dangling group reference")
		assert.Contains(t, logs.String(), `"name":"ghost"`)
		assert.NotContains(t, logs.String(), "s3cr3t")
	})

	t.Run("duplicate names abort startup", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "fixtures.yaml")
		require.NoError(t, os.WriteFile(path, []byte("clients:\n  - name: a\n  - name: a\n"), 0o600))

		cfg := testConfig()
		cfg.FixturesFile = path
		c, _ := newTestContainer(t, cfg)

		_, err := c.ClientRepository()
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	})

	t.Run("missing file", func(t *testing.T) {
		cfg := testConfig()
		cfg.FixturesFile = filepath.Join(t.TempDir(), "absent.yaml")
		c, _ := newTestContainer(t, cfg)

		_, err := c.GroupRepository()
		assert.Error(t, err)
	})
}

func TestContainer_HTTPServer(t *testing.T) {
	c, _ := newTestContainer(t, testConfig())

	server, err := c.HTTPServer()
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/query",
		strings.NewReader(`{"query":"{ group(name: \"group1\") { secrets { content } } }"}`))
	server.GetHandler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t,
		`{"data":{"group":{"secrets":[{"content":"secret1"},{"content":"secret2"}]}}}`,
		w.Body.String())

	metricsServer, err := c.MetricsServer()
	require.NoError(t, err)
	require.NotNil(t, metricsServer)

	w = httptest.NewRecorder()
	metricsServer.GetHandler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `test_app_operations_total`)
	assert.Contains(t, body, `operation="secret_decrypt"`)
	assert.Contains(t, body, `domain="graphql"`)
	assert.Contains(t, body, `test_app_http_requests_total`)
}

func TestContainer_MetricsDisabled(t *testing.T) {
	cfg := testConfig()
	cfg.MetricsEnabled = false
	c, _ := newTestContainer(t, cfg)

	provider, err := c.MetricsProvider()
	require.NoError(t, err)
	assert.Nil(t, provider)

	metricsServer, err := c.MetricsServer()
	require.NoError(t, err)
	assert.Nil(t, metricsServer)

	businessMetrics, err := c.BusinessMetrics()
	require.NoError(t, err)
	assert.NotNil(t, businessMetrics)

	_, err = c.HTTPServer()
	assert.NoError(t, err)
}

func TestContainer_ShutdownZeroesKey(t *testing.T) {
	c := NewContainer(testConfig(), WithLogOutput(&bytes.Buffer{}))

	key, err := c.Key()
	require.NoError(t, err)
	require.NoError(t, c.Shutdown(context.Background()))

	assert.Equal(t, make([]byte, cryptoDomain.KeySize), key.Bytes())
}

func TestContainer_ShutdownIsIdempotent(t *testing.T) {
	c := NewContainer(testConfig(), WithLogOutput(&bytes.Buffer{}))

	_, err := c.HTTPServer()
	require.NoError(t, err)
	_, err = c.MetricsServer()
	require.NoError(t, err)

	require.NoError(t, c.Shutdown(context.Background()))
	assert.NoError(t, c.Shutdown(context.Background()))
}
