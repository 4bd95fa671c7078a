package ports

import "context"

// Generator produces a completion for a single prompt via a hosted model.
type Generator interface {
	// Generate returns the model's reply text verbatim, without trimming.
	// Implementations make exactly one attempt; callers own failure
	// handling.
	Generate(ctx context.Context, prompt string) (string, error)
}
