package service

import (
	"context"
	"fmt"

	"github.com/sashabaranov/go-openai"
	"github.com/votann/ask-search-be/types"
)

const embeddingBatchSize = 64

// EmbeddingService requests vectors from the OpenAI embeddings endpoint.
// One instance serves both ingestion and querying so the whole index is
// built with a single model version.
type EmbeddingService struct {
	client *openai.Client
	model  openai.EmbeddingModel
}

func NewEmbeddingService(baseURL, apiKey, model string) *EmbeddingService {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	return &EmbeddingService{
		client: openai.NewClientWithConfig(config),
		model:  openai.EmbeddingModel(model),
	}
}

func (s *EmbeddingService) Embed(ctx context.Context, text string) ([]float32, error) {
	vectors, err := s.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

// EmbedBatch embeds texts in fixed-size request batches, preserving order.
func (s *EmbeddingService) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, 0, len(texts))
	for i := 0; i < len(texts); i += embeddingBatchSize {
		end := i + embeddingBatchSize
		if end > len(texts) {
			end = len(texts)
		}

		resp, err := s.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
			Input: texts[i:end],
			Model: s.model,
		})
		if err != nil {
			return vectors, fmt.Errorf("%w: %v", types.ErrEmbeddingService, err)
		}
		if len(resp.Data) != end-i {
			return vectors, fmt.Errorf("%w: got %d embeddings for %d inputs", types.ErrEmbeddingService, len(resp.Data), end-i)
		}
		for _, data := range resp.Data {
			vectors = append(vectors, data.Embedding)
		}
	}
	return vectors, nil
}
