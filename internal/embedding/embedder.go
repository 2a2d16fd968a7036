// Package embedding provides text embedding generation for memory records.
package embedding

import (
	"context"
	"fmt"
)

// Embedder defines the interface for embedding providers.
// Implementations include Ollama (local) and Voyage AI (hosted).
type Embedder interface {
	// Embed generates an embedding vector for a single text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// Model returns the name of the embedding model being used.
	Model() string

	// Dimension returns the embedding vector dimension.
	// Must match the HNSW index dimension in the memory store schema.
	Dimension() int
}

// ProviderType identifies the embedding provider.
type ProviderType string

const (
	// ProviderOllama uses a local Ollama server.
	ProviderOllama ProviderType = "ollama"

	// ProviderVoyage uses the hosted Voyage AI API.
	ProviderVoyage ProviderType = "voyage"
)

// Config holds configuration for creating an Embedder.
type Config struct {
	// Provider selects the backend; empty defaults to Ollama.
	Provider ProviderType

	// Model is the provider-specific embedding model name.
	Model string

	// ExpectedDimension is the required output dimension; 0 uses the
	// provider default.
	ExpectedDimension int

	// VoyageAPIKey is required for the Voyage provider.
	VoyageAPIKey string
}

// New creates an Embedder based on the provided configuration.
func New(cfg Config) (Embedder, error) {
	switch cfg.Provider {
	case ProviderOllama, "":
		return NewOllamaClient(cfg.Model, cfg.ExpectedDimension)

	case ProviderVoyage:
		return NewVoyageClient(cfg.VoyageAPIKey, cfg.Model, cfg.ExpectedDimension)

	default:
		return nil, fmt.Errorf("unknown embedding provider: %s", cfg.Provider)
	}
}
