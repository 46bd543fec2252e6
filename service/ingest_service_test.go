package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/votann/ask-search-be/types"
)

func ingestRequest() types.IngestRequest {
	return types.IngestRequest{
		FilePath:   "/data/freire_pedagogy.pdf",
		Collection: "Document",
		MaxTokens:  400,
		Overlap:    50,
	}
}

func TestIngest_AssignsDeterministicChunkIDs(t *testing.T) {
	store := newFakeVectorStore()
	svc := NewIngestService(
		&fakeExtractor{text: "extracted document text"},
		&fakeChunker{chunks: makeChunks(3)},
		&fakeEmbedder{},
		store,
	)

	result, err := svc.Ingest(context.Background(), ingestRequest())
	require.NoError(t, err)
	assert.Equal(t, 3, result.ChunksExtracted)
	assert.Equal(t, 3, result.ChunksWritten)

	require.Len(t, store.records, 3)
	assert.Equal(t, "freire_pedagogy_chunk_0", store.records[0].ID)
	assert.Equal(t, "freire_pedagogy_chunk_1", store.records[1].ID)
	assert.Equal(t, "freire_pedagogy_chunk_2", store.records[2].ID)
	for _, record := range store.records {
		assert.Equal(t, "freire_pedagogy.pdf", record.Metadata["source"])
		assert.NotEmpty(t, record.Metadata["ts"])
		assert.NotEmpty(t, record.Vector)
	}
	assert.Equal(t, []string{"Document"}, store.collections)
}

func TestIngest_ReingestProducesIdenticalIDs(t *testing.T) {
	run := func() []string {
		store := newFakeVectorStore()
		svc := NewIngestService(
			&fakeExtractor{text: "extracted document text"},
			&fakeChunker{chunks: makeChunks(3)},
			&fakeEmbedder{},
			store,
		)
		_, err := svc.Ingest(context.Background(), ingestRequest())
		require.NoError(t, err)
		ids := make([]string, len(store.records))
		for i, record := range store.records {
			ids[i] = record.ID
		}
		return ids
	}

	assert.Equal(t, run(), run())
}

func TestIngest_ExtractionFailureWritesNothing(t *testing.T) {
	store := newFakeVectorStore()
	svc := NewIngestService(
		&fakeExtractor{err: types.ErrExtraction},
		&fakeChunker{chunks: makeChunks(3)},
		&fakeEmbedder{},
		store,
	)

	result, err := svc.Ingest(context.Background(), ingestRequest())
	assert.ErrorIs(t, err, types.ErrExtraction)
	assert.Equal(t, 0, result.ChunksWritten)
	assert.Empty(t, store.records)
}

func TestIngest_InvalidChunkConfigWritesNothing(t *testing.T) {
	store := newFakeVectorStore()
	svc := NewIngestService(
		&fakeExtractor{text: "extracted document text"},
		&fakeChunker{err: types.ErrInvalidConfiguration},
		&fakeEmbedder{},
		store,
	)

	result, err := svc.Ingest(context.Background(), ingestRequest())
	assert.ErrorIs(t, err, types.ErrInvalidConfiguration)
	assert.Equal(t, 0, result.ChunksWritten)
	assert.Empty(t, store.records)
}

func TestIngest_EmptyDocumentIsNotAnError(t *testing.T) {
	store := newFakeVectorStore()
	svc := NewIngestService(
		&fakeExtractor{text: "short"},
		&fakeChunker{},
		&fakeEmbedder{},
		store,
	)

	result, err := svc.Ingest(context.Background(), ingestRequest())
	require.NoError(t, err)
	assert.Equal(t, 0, result.ChunksExtracted)
	assert.Equal(t, 0, result.ChunksWritten)
	assert.Empty(t, store.collections, "no collection is touched for an empty document")
}

func TestIngest_EmbeddingFailureReportsPartialProgress(t *testing.T) {
	// 150 chunks span two ingest batches; the embedder dies on the second
	// call, so exactly the first batch lands in the store.
	store := newFakeVectorStore()
	embedder := &fakeEmbedder{failAt: 2}
	svc := NewIngestService(
		&fakeExtractor{text: "extracted document text"},
		&fakeChunker{chunks: makeChunks(150)},
		embedder,
		store,
	)

	result, err := svc.Ingest(context.Background(), ingestRequest())
	assert.ErrorIs(t, err, types.ErrEmbeddingService)
	assert.Equal(t, 150, result.ChunksExtracted)
	assert.Equal(t, 100, result.ChunksWritten)
	assert.Len(t, store.records, 100)
}

func TestIngest_UpsertFailureReportsPartialProgress(t *testing.T) {
	store := newFakeVectorStore()
	store.failAfter = 120
	svc := NewIngestService(
		&fakeExtractor{text: "extracted document text"},
		&fakeChunker{chunks: makeChunks(150)},
		&fakeEmbedder{},
		store,
	)

	result, err := svc.Ingest(context.Background(), ingestRequest())
	assert.ErrorIs(t, err, types.ErrVectorStore)
	assert.Equal(t, 120, result.ChunksWritten)
}
