package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/lexaid/counsel/store"
)

type memoryStore struct {
	options store.Options
	records map[int64]store.Record
	nextId  int64
	mtx     sync.RWMutex
}

func (s *memoryStore) Save(ctx context.Context, rec store.Record) (int64, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	s.nextId++

	now := time.Now().UTC()

	cpy := make([]float32, len(rec.Embedding))
	copy(cpy, rec.Embedding)

	rec.Id = s.nextId
	rec.Embedding = cpy
	rec.IndexedAt = nil
	rec.CreatedAt = now
	rec.UpdatedAt = now

	s.records[rec.Id] = rec

	return rec.Id, nil
}

func (s *memoryStore) MarkIndexed(ctx context.Context, ids []int64) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	now := time.Now().UTC()

	for _, id := range ids {
		rec, exists := s.records[id]
		if !exists {
			continue
		}
		rec.IndexedAt = &now
		rec.UpdatedAt = now
		s.records[id] = rec
	}

	return nil
}

func (s *memoryStore) ListUnindexed(ctx context.Context, limit int) ([]store.Record, error) {
	if limit < 1 {
		return nil, nil
	}

	s.mtx.RLock()
	defer s.mtx.RUnlock()

	var records []store.Record
	for _, rec := range s.records {
		if rec.IndexedAt == nil {
			records = append(records, rec)
		}
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].Id < records[j].Id
	})

	if len(records) > limit {
		records = records[:limit]
	}

	return records, nil
}

func NewStore(opts ...store.Option) store.Store {
	options := store.NewOptions(opts...)

	return &memoryStore{
		options: options,
		records: map[int64]store.Record{},
		mtx:     sync.RWMutex{},
	}
}
