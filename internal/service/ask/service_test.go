package ask

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexaid/counsel/fault"
	"github.com/lexaid/counsel/vectorindex"
)

type fakeEmbedder struct {
	err error
}

func (f *fakeEmbedder) Embed(_ context.Context, _ string) ([]float32, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []float32{0.1, 0.2}, nil
}

type fakeIndex struct {
	matches []vectorindex.Match
	err     error
}

func (f *fakeIndex) Upsert(_ context.Context, _ []vectorindex.Entry) error {
	return nil
}

func (f *fakeIndex) Query(_ context.Context, _ []float32, _ int) ([]vectorindex.Match, error) {
	return f.matches, f.err
}

type fakeGenerator struct {
	prompt string
	answer string
	err    error
}

func (f *fakeGenerator) Generate(_ context.Context, prompt string) (string, error) {
	f.prompt = prompt
	if f.err != nil {
		return "", f.err
	}
	return f.answer, nil
}

func TestAskEndToEnd(t *testing.T) {
	idx := &fakeIndex{
		matches: []vectorindex.Match{
			{
				Score: 0.91,
				Metadata: map[string]any{
					"title":   "Section 41",
					"content": "Parking and waiting in prohibited areas. Penalty: 400.00 pesos under the ordinance.",
					"source":  "ordinance.txt",
				},
			},
		},
	}
	gen := &fakeGenerator{answer: "The penalty for illegal parking is 400 pesos."}

	svc := New(&fakeEmbedder{}, idx, gen, 3)

	answer, err := svc.Ask(context.Background(), "What is the penalty for illegal parking?")
	require.NoError(t, err)
	assert.NotEmpty(t, answer)
	assert.Contains(t, gen.prompt, "Section 41")
	assert.Contains(t, gen.prompt, "Question: What is the penalty for illegal parking?")
}

func TestAskEmptyQuestion(t *testing.T) {
	svc := New(&fakeEmbedder{}, &fakeIndex{}, &fakeGenerator{}, 3)

	_, err := svc.Ask(context.Background(), "  ")
	assert.ErrorIs(t, err, fault.ErrValidation)
}

func TestAskZeroMatchesReturnsRefusal(t *testing.T) {
	svc := New(&fakeEmbedder{}, &fakeIndex{}, &fakeGenerator{}, 3)

	answer, err := svc.Ask(context.Background(), "What is the penalty for illegal parking?")
	require.NoError(t, err)
	assert.Equal(t, RefusalNoMatches, answer)
}

func TestAskQueryFailureDegradesToRefusal(t *testing.T) {
	idx := &fakeIndex{err: fmt.Errorf("%w: index down", fault.ErrUpstream)}
	svc := New(&fakeEmbedder{}, idx, &fakeGenerator{}, 3)

	answer, err := svc.Ask(context.Background(), "question about ordinances?")
	require.NoError(t, err)
	assert.Equal(t, RefusalNoMatches, answer)
}

func TestAskThinContextReturnsRefusal(t *testing.T) {
	idx := &fakeIndex{
		matches: []vectorindex.Match{
			{Score: 0.9, Metadata: map[string]any{"content": strings.Repeat("a", 20)}},
		},
	}
	svc := New(&fakeEmbedder{}, idx, &fakeGenerator{}, 3)

	answer, err := svc.Ask(context.Background(), "anything relevant?")
	require.NoError(t, err)
	assert.Equal(t, RefusalNoSections, answer)
}

func TestAskEmbeddingFailureSurfaced(t *testing.T) {
	emb := &fakeEmbedder{err: fmt.Errorf("%w: embeddings down", fault.ErrUpstream)}
	svc := New(emb, &fakeIndex{}, &fakeGenerator{}, 3)

	_, err := svc.Ask(context.Background(), "question?")
	assert.ErrorIs(t, err, fault.ErrUpstream)
}

func TestAskGenerationFailureSurfaced(t *testing.T) {
	idx := &fakeIndex{
		matches: []vectorindex.Match{
			{Score: 0.9, Metadata: map[string]any{"content": strings.Repeat("law text ", 20)}},
		},
	}
	gen := &fakeGenerator{err: fmt.Errorf("%w: model overloaded", fault.ErrGeneration)}
	svc := New(&fakeEmbedder{}, idx, gen, 3)

	_, err := svc.Ask(context.Background(), "question?")
	assert.ErrorIs(t, err, fault.ErrGeneration)
}

func TestAskUnexpectedQueryError(t *testing.T) {
	idx := &fakeIndex{err: errors.New("plain failure")}
	svc := New(&fakeEmbedder{}, idx, &fakeGenerator{}, 3)

	answer, err := svc.Ask(context.Background(), "question?")
	require.NoError(t, err)
	assert.Equal(t, RefusalNoMatches, answer)
}
