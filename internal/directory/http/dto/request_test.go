package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewQueryRequestFromParams(t *testing.T) {
	t.Run("without variables", func(t *testing.T) {
		req, err := NewQueryRequestFromParams(`{ client(name: "client1") { name } }`, "", "")

		require.NoError(t, err)
		assert.Equal(t, `{ client(name: "client1") { name } }`, req.Query)
		assert.Nil(t, req.Variables)
	})

	t.Run("with variables", func(t *testing.T) {
		req, err := NewQueryRequestFromParams(
			`query Q($name: String!) { client(name: $name) { name } }`, "Q", `{"name":"client1"}`)

		require.NoError(t, err)
		assert.Equal(t, "Q", req.OperationName)
		assert.Equal(t, map[string]any{"name": "client1"}, req.Variables)
	})

	t.Run("variables must be an object", func(t *testing.T) {
		_, err := NewQueryRequestFromParams("{ x }", "", `["client1"]`)
		assert.Error(t, err)
	})

	t.Run("malformed variables", func(t *testing.T) {
		_, err := NewQueryRequestFromParams("{ x }", "", `{"name":`)
		assert.ErrorContains(t, err, "invalid variables")
	})
}

func TestQueryRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		wantErr bool
	}{
		{name: "query present", query: "{ client(name: \"a\") { name } }"},
		{name: "empty query", query: "", wantErr: true},
		{name: "blank query", query: "  \n\t", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := QueryRequest{Query: tt.query}
			err := req.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}
