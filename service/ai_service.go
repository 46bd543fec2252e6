package service

import (
	"context"
)

// StreamHandler receives completion deltas as they arrive.
type StreamHandler func(delta string)

// AIService is the hosted text-generation-with-search capability. Complete
// is a single paid call and is never retried by callers.
type AIService interface {
	Complete(ctx context.Context, prompt string) (string, error)
	CompleteStream(ctx context.Context, prompt string, handler StreamHandler) (string, error)
}

// EmbeddingProvider turns text into fixed-dimension vectors. The ingestion
// and query pipelines must share one implementation or the index diverges.
type EmbeddingProvider interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}
