package service

import (
	"fmt"
	"strings"

	"github.com/pkoukk/tiktoken-go"
	"github.com/votann/ask-search-be/types"
)

// Encoding must match the tokenizer of the embedding model
// (text-embedding-3-small uses cl100k_base). A mismatch silently degrades
// embedding quality, so this is a correctness constant, not a preference.
const chunkEncoding = "cl100k_base"

// ChunkService splits text into overlapping token-bounded windows.
type ChunkService struct {
	tke *tiktoken.Tiktoken
}

func NewChunkService() (*ChunkService, error) {
	tke, err := tiktoken.GetEncoding(chunkEncoding)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s encoding: %w", chunkEncoding, err)
	}
	return &ChunkService{tke: tke}, nil
}

// Chunk tokenizes text and emits windows [i, i+maxTokens) advancing by
// maxTokens-overlap, so consecutive chunks share exactly overlap tokens.
// The final chunk may be shorter. Empty text yields no chunks. Chunking is
// a pure function of its inputs; calling it twice yields identical output.
func (s *ChunkService) Chunk(text string, maxTokens, overlap int) ([]types.Chunk, error) {
	if maxTokens <= 0 || overlap < 0 || overlap >= maxTokens {
		return nil, fmt.Errorf("%w: max_tokens=%d overlap=%d", types.ErrInvalidConfiguration, maxTokens, overlap)
	}
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	tokens := s.tke.Encode(text, nil, nil)
	if len(tokens) == 0 {
		return nil, nil
	}

	step := maxTokens - overlap
	var chunks []types.Chunk
	for i := 0; i < len(tokens); i += step {
		end := i + maxTokens
		if end > len(tokens) {
			end = len(tokens)
		}
		window := tokens[i:end]
		chunks = append(chunks, types.Chunk{
			Text:       s.tke.Decode(window),
			Index:      len(chunks),
			TokenCount: len(window),
		})
		if end == len(tokens) {
			break
		}
	}
	return chunks, nil
}

// CountTokens reports the token length of text under the chunk encoding.
func (s *ChunkService) CountTokens(text string) int {
	return len(s.tke.Encode(text, nil, nil))
}
