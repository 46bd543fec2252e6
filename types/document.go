package types

// Chunk is a contiguous token window of a document's text, the unit of
// embedding and indexing. Created transiently during ingestion.
type Chunk struct {
	Text       string // decoded text of the token window
	Index      int    // sequence index within the document
	TokenCount int    // number of tokens in the window
}

// VectorRecord is the persisted unit in the vector store.
type VectorRecord struct {
	ID       string
	Text     string
	Vector   []float32
	Metadata map[string]string
}

// ChunkConfig contains the chunking parameters of one ingestion run.
type ChunkConfig struct {
	MaxTokens int
	Overlap   int
}

// IngestRequest describes one bulk document load.
type IngestRequest struct {
	FilePath   string
	Collection string
	MaxTokens  int
	Overlap    int
}

// IngestResult reports how far an ingestion run got. ChunksWritten is
// meaningful even when the run failed part way through.
type IngestResult struct {
	ChunksExtracted int
	ChunksWritten   int
}
