package service

import (
	"context"
	"log"
	"path/filepath"
	"time"

	"github.com/votann/ask-search-be/database"
	"github.com/votann/ask-search-be/types"
	"github.com/votann/ask-search-be/utils"
)

// ingestBatchSize chunks are embedded and written per round so a failure
// part way through still leaves an accurate written count behind.
const ingestBatchSize = 100

// TextExtractor pulls plain text out of a source document.
type TextExtractor interface {
	ExtractText(filePath string) (string, error)
}

// Chunker splits text into token-bounded windows.
type Chunker interface {
	Chunk(text string, maxTokens, overlap int) ([]types.Chunk, error)
}

// IngestService orchestrates one bulk document load: extract, chunk, embed,
// batch-upsert. Ingestion is an offline single-writer operation; nothing is
// retried automatically, the caller re-runs and the deterministic chunk ids
// turn the re-run into an overwrite.
type IngestService struct {
	extractor TextExtractor
	chunker   Chunker
	embedder  EmbeddingProvider
	vectorDB  database.VectorStore
}

func NewIngestService(
	extractor TextExtractor,
	chunker Chunker,
	embedder EmbeddingProvider,
	vectorDB database.VectorStore,
) *IngestService {
	return &IngestService{
		extractor: extractor,
		chunker:   chunker,
		embedder:  embedder,
		vectorDB:  vectorDB,
	}
}

// Ingest loads one document into the target collection. On failure the
// returned result still carries how many chunks made it into the store
// before the error; partial progress is reported, never hidden.
func (s *IngestService) Ingest(ctx context.Context, req types.IngestRequest) (*types.IngestResult, error) {
	result := &types.IngestResult{}

	text, err := s.extractor.ExtractText(req.FilePath)
	if err != nil {
		return result, err
	}

	chunks, err := s.chunker.Chunk(text, req.MaxTokens, req.Overlap)
	if err != nil {
		return result, err
	}
	result.ChunksExtracted = len(chunks)
	if len(chunks) == 0 {
		return result, nil
	}

	if err := s.vectorDB.EnsureCollection(ctx, req.Collection); err != nil {
		return result, err
	}

	basename := utils.FileBasename(req.FilePath)
	source := filepath.Base(req.FilePath)
	ts := time.Now().UTC().Format(time.RFC3339)

	for start := 0; start < len(chunks); start += ingestBatchSize {
		end := start + ingestBatchSize
		if end > len(chunks) {
			end = len(chunks)
		}
		batch := chunks[start:end]

		texts := make([]string, len(batch))
		for i, chunk := range batch {
			texts[i] = chunk.Text
		}
		vectors, err := s.embedder.EmbedBatch(ctx, texts)
		if err != nil {
			return result, err
		}

		records := make([]types.VectorRecord, len(batch))
		for i, chunk := range batch {
			records[i] = types.VectorRecord{
				ID:     utils.ChunkID(basename, chunk.Index),
				Text:   chunk.Text,
				Vector: vectors[i],
				Metadata: map[string]string{
					"source": source,
					"ts":     ts,
				},
			}
		}

		written, err := s.vectorDB.BatchUpsertObjects(ctx, req.Collection, records)
		result.ChunksWritten += written
		if err != nil {
			return result, err
		}
		log.Printf("Ingested %d/%d chunks from %s", result.ChunksWritten, len(chunks), source)
	}

	return result, nil
}
