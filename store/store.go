package store

import (
	"context"
	"time"
)

// Record is a persisted chunk with its embedding. Created on successful
// embedding; IndexedAt is set once the batched vector upsert succeeds and is
// the only field ever updated.
type Record struct {
	Id        int64
	Title     string
	Content   string
	Embedding []float32
	Source    string
	IndexedAt *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Store interface {
	Save(ctx context.Context, rec Record) (int64, error)
	MarkIndexed(ctx context.Context, ids []int64) error
	// ListUnindexed returns records persisted but never upserted to the
	// vector index, oldest first.
	ListUnindexed(ctx context.Context, limit int) ([]Record, error)
}
