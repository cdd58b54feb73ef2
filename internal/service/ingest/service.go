package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/time/rate"

	"github.com/lexaid/counsel/chunker"
	"github.com/lexaid/counsel/embedder"
	"github.com/lexaid/counsel/store"
	"github.com/lexaid/counsel/vectorindex"
)

// metadata content is truncated before upsert; the full text lives in the store
const metadataContentLimit = 500

// Result reports what one ingestion run accomplished. Skipped chunks are
// counted, not surfaced as errors.
type Result struct {
	Source  string
	Chunks  int
	Skipped int
	Indexed bool
}

// Service runs the ingestion pipeline for one document: chunk, then per chunk
// embed and persist, then one batched vector upsert. Chunks are processed
// strictly in order; the pacing limiter depends on that.
type Service struct {
	chunker  chunker.Chunker
	embedder embedder.Embedder
	store    store.Store
	index    vectorindex.Index
	limiter  *rate.Limiter
	options  Options
}

func (s *Service) Ingest(ctx context.Context, text string, source string) (Result, error) {
	result := Result{Source: source}

	chunks := s.chunker.Chunk(text, source)
	if len(chunks) == 0 {
		slog.WarnContext(ctx, "no chunks produced", "source", source)
		return result, nil
	}

	var entries []vectorindex.Entry
	var ids []int64

	for _, c := range chunks {
		if result.Chunks >= s.options.MaxChunks {
			break
		}

		if len(strings.TrimSpace(c.Content)) < s.options.MinChunkLength {
			result.Skipped++
			continue
		}

		if err := s.limiter.Wait(ctx); err != nil {
			return result, err
		}

		vec, err := s.embedder.Embed(ctx, c.Content)
		if err != nil {
			slog.WarnContext(ctx, "embedding failed for chunk", "source", source, "chunk", c.Index, "error", err)
			result.Skipped++
			continue
		}

		title := c.Title
		if len(title) == 0 {
			title = source
		}

		id, err := s.store.Save(ctx, store.Record{
			Title:     title,
			Content:   c.Content,
			Embedding: vec,
			Source:    source,
		})
		if err != nil {
			slog.ErrorContext(ctx, "failed to persist chunk", "source", source, "chunk", c.Index, "error", err)
			result.Skipped++
			continue
		}

		entries = append(entries, entry(id, title, c.Content, source, vec))
		ids = append(ids, id)
		result.Chunks++
	}

	if len(entries) == 0 {
		slog.WarnContext(ctx, "no vectors to upsert", "source", source)
		return result, nil
	}

	if err := s.index.Upsert(ctx, entries); err != nil {
		// rows stay unindexed; Reconcile picks them up later
		slog.ErrorContext(ctx, "vector upsert failed", "source", source, "count", len(entries), "error", err)
		return result, nil
	}

	if err := s.store.MarkIndexed(ctx, ids); err != nil {
		slog.ErrorContext(ctx, "failed to mark chunks indexed", "source", source, "error", err)
		return result, nil
	}

	result.Indexed = true

	slog.InfoContext(ctx, "batch upserted to vector index", "source", source, "count", len(entries))

	return result, nil
}

// Reconcile re-upserts rows that were persisted but never reached the vector
// index, then marks them indexed.
func (s *Service) Reconcile(ctx context.Context) (int, error) {
	records, err := s.store.ListUnindexed(ctx, s.options.MaxChunks)
	if err != nil {
		return 0, err
	}

	if len(records) == 0 {
		return 0, nil
	}

	entries := make([]vectorindex.Entry, 0, len(records))
	ids := make([]int64, 0, len(records))

	for _, rec := range records {
		entries = append(entries, entry(rec.Id, rec.Title, rec.Content, rec.Source, rec.Embedding))
		ids = append(ids, rec.Id)
	}

	if err := s.index.Upsert(ctx, entries); err != nil {
		return 0, err
	}

	if err := s.store.MarkIndexed(ctx, ids); err != nil {
		return 0, err
	}

	slog.InfoContext(ctx, "reconciled unindexed chunks", "count", len(entries))

	return len(entries), nil
}

func entry(id int64, title string, content string, source string, vec []float32) vectorindex.Entry {
	return vectorindex.Entry{
		Id:     fmt.Sprintf("chunk-%d", id),
		Values: vec,
		Metadata: map[string]any{
			"title":   title,
			"content": truncate(content, metadataContentLimit),
			"source":  source,
		},
	}
}

func truncate(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit])
}

func New(c chunker.Chunker, e embedder.Embedder, st store.Store, idx vectorindex.Index, opts ...Option) *Service {
	options := NewOptions(opts...)

	return &Service{
		chunker:  c,
		embedder: e,
		store:    st,
		index:    idx,
		limiter:  rate.NewLimiter(rate.Every(options.EmbedInterval), 1),
		options:  options,
	}
}
