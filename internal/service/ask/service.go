package ask

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/lexaid/counsel/embedder"
	"github.com/lexaid/counsel/fault"
	"github.com/lexaid/counsel/generator"
	"github.com/lexaid/counsel/vectorindex"
)

const (
	// Refusal answers are returned as valid responses, never as errors.
	RefusalNoMatches   = "I don't know. I could not find anything relevant in the indexed legal documents."
	RefusalNoSections  = "I don't know. No relevant sections were found."
	defaultTopK        = 3
	promptInstructions = `Answer using the following text sections from the indexed legal documents.
If the answer is not found, say so or provide your best legal guess, but make clear when you do so.
Do not give information that is not in the context.
Do not say "THE PROVIDED TEXT/CONTEXT" or "THE TEXT FOCUSES", just say that your knowledge is limited for now.
Instead, infer as much as reasonably possible from the given input.
If something is not stated, either make a plausible assumption based on context or omit mentioning it altogether.
Do not speculate or ask for more information unless explicitly told to. Respond confidently and concisely,
staying within the bounds of the source content.
If the answer is found, arrange the answer in a way that is easy to understand and follow.`
)

// Service answers a question by embedding it, querying the vector index,
// assembling a context block, and prompting the generator.
type Service struct {
	embedder  embedder.Embedder
	index     vectorindex.Index
	generator generator.Generator
	topK      int
}

func (s *Service) Ask(ctx context.Context, question string) (string, error) {
	if len(strings.TrimSpace(question)) == 0 {
		return "", fmt.Errorf("%w: question is required", fault.ErrValidation)
	}

	vec, err := s.embedder.Embed(ctx, question)
	if err != nil {
		return "", err
	}

	matches, err := s.index.Query(ctx, vec, s.topK)
	if err != nil {
		// a broken index degrades to "nothing found", not a request failure
		slog.WarnContext(ctx, "vector query failed", "error", err)
		matches = nil
	}

	if len(matches) == 0 {
		return RefusalNoMatches, nil
	}

	matches = Boost(question, matches)

	contextBlock, ok := BuildContext(matches)
	if !ok {
		return RefusalNoSections, nil
	}

	slog.InfoContext(ctx, "built context", "matches", len(matches), "length", len(contextBlock))

	answer, err := s.generator.Generate(ctx, prompt(contextBlock, question))
	if err != nil {
		return "", err
	}

	return answer, nil
}

func prompt(contextBlock string, question string) string {
	return fmt.Sprintf("%s\n\nRelevant sections:\n%s\n\nQuestion: %s", promptInstructions, contextBlock, question)
}

func New(e embedder.Embedder, idx vectorindex.Index, g generator.Generator, topK int) *Service {
	if topK < 1 {
		topK = defaultTopK
	}

	return &Service{
		embedder:  e,
		index:     idx,
		generator: g,
		topK:      topK,
	}
}
