package generator

import "context"

// Generator produces an answer from a composed prompt via a hosted
// chat-completion model.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
