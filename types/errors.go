package types

import "errors"

var (
	// ErrInvalidConfiguration is returned when chunking parameters are
	// rejected before any work starts.
	ErrInvalidConfiguration = errors.New("invalid chunking configuration")

	// ErrExtraction is returned when no text can be extracted from a
	// document. Ingestion aborts before any writes.
	ErrExtraction = errors.New("failed to extract document text")

	// ErrEmptyPrompt is returned for a whitespace-only prompt. No external
	// call is made.
	ErrEmptyPrompt = errors.New("empty prompt")

	// ErrCompletionService wraps failures of the hosted completion model.
	// The call is never retried.
	ErrCompletionService = errors.New("completion service error")

	// ErrEmbeddingService wraps failures of the hosted embedding model.
	ErrEmbeddingService = errors.New("embedding service error")

	// ErrVectorStore wraps Weaviate write/read failures.
	ErrVectorStore = errors.New("vector store error")

	// ErrRelationalStore wraps MongoDB failures.
	ErrRelationalStore = errors.New("relational store error")

	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrEmailTaken         = errors.New("email already in use")
)
