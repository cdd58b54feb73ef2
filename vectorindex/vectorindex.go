package vectorindex

import "context"

// Entry is one vector written to the hosted index. Id is derived from the
// persisted chunk record so matches can be traced back to the store.
type Entry struct {
	Id       string
	Values   []float32
	Metadata map[string]any
}

// Match is an ephemeral per-query result, ordered by descending score as
// returned by the remote.
type Match struct {
	Id       string
	Score    float32
	Metadata map[string]any
}

// Index wraps a hosted vector database. Failures are returned to the caller
// rather than swallowed; the caller decides whether to degrade.
type Index interface {
	Upsert(ctx context.Context, entries []Entry) error
	Query(ctx context.Context, vector []float32, topK int) ([]Match, error)
}
