package embedding

import (
	"context"
	"fmt"

	"github.com/ollama/ollama/api"
)

const (
	// DefaultOllamaModel produces 384-dimensional vectors.
	DefaultOllamaModel = "all-minilm:l6-v2"

	// DefaultOllamaDimension is the dimension for all-minilm:l6-v2.
	// This MUST match the HNSW index dimension in the memory store schema.
	DefaultOllamaDimension = 384
)

// OllamaClient implements Embedder using a local Ollama server.
type OllamaClient struct {
	client    *api.Client
	model     string
	dimension int
}

// Compile-time check that OllamaClient implements Embedder.
var _ Embedder = (*OllamaClient)(nil)

// NewOllamaClient creates a new Ollama embedding client.
// Empty model / zero dimension fall back to the defaults. The server URL
// comes from the OLLAMA_HOST environment variable.
func NewOllamaClient(model string, expectedDimension int) (*OllamaClient, error) {
	if model == "" {
		model = DefaultOllamaModel
	}
	if expectedDimension == 0 {
		expectedDimension = DefaultOllamaDimension
	}

	client, err := api.ClientFromEnvironment()
	if err != nil {
		return nil, fmt.Errorf("create ollama client: %w", err)
	}

	return &OllamaClient{
		client:    client,
		model:     model,
		dimension: expectedDimension,
	}, nil
}

// Model returns the configured embedding model name.
func (c *OllamaClient) Model() string {
	return c.model
}

// Dimension returns the expected embedding dimension.
func (c *OllamaClient) Dimension() int {
	return c.dimension
}

// Embed generates an embedding vector for the given text.
// Errors if the model returns a vector of the wrong dimension.
func (c *OllamaClient) Embed(ctx context.Context, text string) ([]float32, error) {
	resp, err := c.client.Embed(ctx, &api.EmbedRequest{
		Model: c.model,
		Input: text,
	})
	if err != nil {
		return nil, fmt.Errorf("embed: %w", err)
	}

	if len(resp.Embeddings) == 0 {
		return nil, fmt.Errorf("no embeddings returned")
	}

	embedding := resp.Embeddings[0]
	if len(embedding) != c.dimension {
		return nil, fmt.Errorf("dimension mismatch: got %d, want %d (model: %s)",
			len(embedding), c.dimension, c.model)
	}

	return embedding, nil
}
