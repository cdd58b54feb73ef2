package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexaid/counsel/embedder"
	"github.com/lexaid/counsel/fault"
)

func TestEmbed(t *testing.T) {
	var gotModel string
	var gotInput []string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/embeddings", r.URL.Path)

		var req struct {
			Input []string `json:"input"`
			Model string   `json:"model"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		gotModel = req.Model
		gotInput = req.Input

		json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{
				{"embedding": []float32{0.1, 0.2, 0.3}},
			},
		})
	}))
	defer srv.Close()

	e := NewEmbedder(
		embedder.WithApiKey("test-key"),
		embedder.WithModel("text-embedding-3-large"),
		embedder.WithLocation(srv.URL),
	)

	vec, err := e.Embed(context.Background(), "what is the penalty for illegal parking?")
	require.NoError(t, err)
	assert.Equal(t, []float32{0.1, 0.2, 0.3}, vec)
	assert.Equal(t, "text-embedding-3-large", gotModel)
	assert.Equal(t, []string{"what is the penalty for illegal parking?"}, gotInput)
}

func TestEmbedEmptyInput(t *testing.T) {
	e := NewEmbedder(embedder.WithApiKey("test-key"))

	_, err := e.Embed(context.Background(), "   ")
	assert.ErrorIs(t, err, fault.ErrValidation)
}

func TestEmbedUpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	e := NewEmbedder(
		embedder.WithApiKey("test-key"),
		embedder.WithLocation(srv.URL),
	)

	_, err := e.Embed(context.Background(), "question")
	assert.ErrorIs(t, err, fault.ErrUpstream)
}
