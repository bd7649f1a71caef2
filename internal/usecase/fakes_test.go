package usecase

import (
	"context"
	"sync/atomic"

	"github.com/machekepfukudzai-ui/SOCCER-ORACLE/internal/platform/cache"
	"github.com/machekepfukudzai-ui/SOCCER-ORACLE/internal/platform/logging"
)

type fakeClient struct {
	calls    atomic.Int32
	generate func(ctx context.Context, prompt string, grounding bool) (Completion, error)
}

func (f *fakeClient) Generate(ctx context.Context, prompt string, grounding bool) (Completion, error) {
	f.calls.Add(1)
	if f.generate == nil {
		return Completion{Text: "## Summary\nok"}, nil
	}
	return f.generate(ctx, prompt, grounding)
}

type fakeProbe struct{ online bool }

func (f fakeProbe) Online(context.Context) bool { return f.online }

func newTestCache() (*cache.Store, *cache.MemoryStore) {
	blobs := cache.NewMemoryStore()
	return cache.NewStore(blobs, logging.NewNop()), blobs
}

func staticCompletion(text string) func(context.Context, string, bool) (Completion, error) {
	return func(context.Context, string, bool) (Completion, error) {
		return Completion{Text: text}, nil
	}
}

const analysisCompletionText = "## Score Prediction\n2-1\n\n## Summary\nTight match expected.\n\n```json\n{\"winProbability\": {\"home\": 55, \"draw\": 25, \"away\": 20}}\n```"

const oddsCompletionText = "Latest market prices below.\n```json\n{\"odds\": {\"home\": 1.85, \"draw\": 3.4, \"away\": 4.1}}\n```"

const comparisonCompletionText = "```json\n{\"comparison\": {\"home\": {\"value\": \"€850m\", \"position\": \"2nd\", \"rating\": 8.4}, \"away\": {\"value\": \"€310m\", \"position\": \"9th\", \"rating\": 6.9}}}\n```"
