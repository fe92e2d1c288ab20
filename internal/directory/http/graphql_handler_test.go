package http

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cryptoDomain "github.com/allisson/graphql-secrets/internal/crypto/domain"
	cryptoService "github.com/allisson/graphql-secrets/internal/crypto/service"
	"github.com/allisson/graphql-secrets/internal/directory/fixtures"
	directoryGraphQL "github.com/allisson/graphql-secrets/internal/directory/graphql"
	"github.com/allisson/graphql-secrets/internal/directory/repository"
	"github.com/allisson/graphql-secrets/internal/directory/usecase"
)

// setupTestRouter serves /query from a handler over the default dataset.
func setupTestRouter(t *testing.T, graphiQLEnabled bool) *gin.Engine {
	t.Helper()

	gin.SetMode(gin.TestMode)

	key, err := cryptoDomain.GenerateKey(rand.Reader)
	require.NoError(t, err)
	sealer, err := cryptoService.NewAESGCM(key)
	require.NoError(t, err)

	doc, err := fixtures.ReadFile("")
	require.NoError(t, err)
	ds, err := fixtures.Build(doc, sealer)
	require.NoError(t, err)

	useCase := usecase.NewDirectoryUseCase(
		repository.NewMemoryClientRepository(ds.Clients),
		repository.NewMemorySecretRepository(ds.Secrets),
		repository.NewMemoryGroupRepository(ds.Groups),
		sealer,
	)
	schema, err := directoryGraphQL.NewSchema(useCase, directoryGraphQL.Options{MaxDepth: 10})
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := NewGraphQLHandler(directoryGraphQL.NewExecutor(schema, nil), graphiQLEnabled, logger)

	router := gin.New()
	router.GET("/query", handler.GetHandler)
	router.POST("/query", handler.PostHandler)
	return router
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestGraphQLHandler_PostHandler(t *testing.T) {
	router := setupTestRouter(t, true)

	t.Run("Success_SecretContent", func(t *testing.T) {
		payload, err := json.Marshal(map[string]any{
			"query": `{ secret(name: "secret1") { name content } }`,
		})
		require.NoError(t, err)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/query", bytes.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"data":{"secret":{"name":"secret1","content":"secret1"}}}`, w.Body.String())
	})

	t.Run("Success_VariablesAndOperationName", func(t *testing.T) {
		payload, err := json.Marshal(map[string]any{
			"query":         `query A { client(name: "client1") { name } } query B($n: String!) { group(name: $n) { name } }`,
			"operationName": "B",
			"variables":     map[string]any{"n": "group1"},
		})
		require.NoError(t, err)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/query", bytes.NewReader(payload))
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"data":{"group":{"name":"group1"}}}`, w.Body.String())
	})

	t.Run("Success_QueryErrorsAreInBody", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/query", bytes.NewBufferString(`{"query":"{ nope }"}`))
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		assert.NotEmpty(t, body["errors"])
	})

	t.Run("Error_CancelledRequest", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/query",
			bytes.NewBufferString(`{"query":"{ secret(name: \"secret1\") { content } }"}`)).WithContext(ctx)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, "unavailable", body["error"])
		assert.NotContains(t, w.Body.String(), "secret1")
	})

	t.Run("Error_MalformedJSON", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/query", bytes.NewBufferString(`{"query":`))
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "bad_request", decodeBody(t, w)["error"])
	})

	t.Run("Error_EmptyQuery", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/query", bytes.NewBufferString(`{"query":"  "}`))
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Equal(t, "validation_error", decodeBody(t, w)["error"])
	})
}

func TestGraphQLHandler_GetHandler(t *testing.T) {
	t.Run("Success_QueryParams", func(t *testing.T) {
		router := setupTestRouter(t, true)

		params := url.Values{}
		params.Set("query", `query Q($name: String!) { client(name: $name) { name } }`)
		params.Set("variables", `{"name":"client2"}`)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/query?"+params.Encode(), nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"data":{"client":{"name":"client2"}}}`, w.Body.String())
	})

	t.Run("Success_GraphiQLPage", func(t *testing.T) {
		router := setupTestRouter(t, true)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/query", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
		assert.Contains(t, w.Body.String(), "GraphiQL")
	})

	t.Run("Error_EmptyQueryWithGraphiQLDisabled", func(t *testing.T) {
		router := setupTestRouter(t, false)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/query", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("Error_MalformedVariables", func(t *testing.T) {
		router := setupTestRouter(t, true)

		params := url.Values{}
		params.Set("query", `{ client(name: "client1") { name } }`)
		params.Set("variables", `{`)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/query?"+params.Encode(), nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
