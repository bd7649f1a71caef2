package usecase

import "context"

// Completion is the raw model output handed back by a CompletionClient.
// Citations carry grounding sources when the provider returns them.
type Completion struct {
	Text      string
	Citations []CompletionCitation
}

type CompletionCitation struct {
	URI   string
	Title string
}

// CompletionClient generates free-form text from a prompt. grounding asks the
// provider to attach web search context when it supports that.
type CompletionClient interface {
	Generate(ctx context.Context, prompt string, grounding bool) (Completion, error)
}

// Probe reports whether the process currently has a usable network path to
// the completion provider. Implementations should answer fast and may cache.
type Probe interface {
	Online(ctx context.Context) bool
}
