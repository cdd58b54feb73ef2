package embedder

import "context"

// Embedder turns text into a fixed-length vector via a hosted embedding
// model. Every call is a fresh network round trip; there is no caching and
// no retry.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}
