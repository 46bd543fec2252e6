package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/votann/ask-search-be/repository"
	"github.com/votann/ask-search-be/types"
)

var errNotFound = repository.ErrNotFound

// Test doubles for the external capabilities the coordinators depend on.

type fakeExtractor struct {
	text string
	err  error
}

func (f *fakeExtractor) ExtractText(_ string) (string, error) {
	return f.text, f.err
}

// fakeChunker cuts text into fixed-size rune windows; good enough to drive
// the coordinators without a live tokenizer.
type fakeChunker struct {
	chunks []types.Chunk
	err    error
}

func (f *fakeChunker) Chunk(_ string, _, _ int) ([]types.Chunk, error) {
	return f.chunks, f.err
}

func makeChunks(n int) []types.Chunk {
	chunks := make([]types.Chunk, n)
	for i := range chunks {
		chunks[i] = types.Chunk{
			Text:       fmt.Sprintf("chunk text %d", i),
			Index:      i,
			TokenCount: 3,
		}
	}
	return chunks
}

type fakeEmbedder struct {
	calls   int
	failAt  int // fail the call with this 1-based ordinal, 0 = never
	lastErr error
}

func (f *fakeEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	vectors, err := f.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

func (f *fakeEmbedder) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	f.calls++
	if f.failAt != 0 && f.calls >= f.failAt {
		f.lastErr = fmt.Errorf("%w: quota exceeded", types.ErrEmbeddingService)
		return nil, f.lastErr
	}
	vectors := make([][]float32, len(texts))
	for i := range vectors {
		vectors[i] = []float32{0.1, 0.2, 0.3}
	}
	return vectors, nil
}

type fakeVectorStore struct {
	records     []types.VectorRecord
	collections []string
	failAfter   int // error once this many records are stored, -1 = never
	upsertErr   error
}

func newFakeVectorStore() *fakeVectorStore {
	return &fakeVectorStore{failAfter: -1}
}

func (f *fakeVectorStore) EnsureCollection(_ context.Context, collection string) error {
	f.collections = append(f.collections, collection)
	return nil
}

func (f *fakeVectorStore) UpsertObject(_ context.Context, _ string, record types.VectorRecord) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.records = append(f.records, record)
	return nil
}

func (f *fakeVectorStore) BatchUpsertObjects(_ context.Context, _ string, records []types.VectorRecord) (int, error) {
	written := 0
	for _, record := range records {
		if f.failAfter >= 0 && len(f.records) >= f.failAfter {
			return written, fmt.Errorf("%w: connection reset", types.ErrVectorStore)
		}
		f.records = append(f.records, record)
		written++
	}
	return written, nil
}

func (f *fakeVectorStore) Count(_ context.Context, _ string) (int, error) {
	return len(f.records), nil
}

type fakeAI struct {
	answer string
	err    error
	calls  int
}

func (f *fakeAI) Complete(_ context.Context, _ string) (string, error) {
	f.calls++
	return f.answer, f.err
}

func (f *fakeAI) CompleteStream(_ context.Context, _ string, handler StreamHandler) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	handler(f.answer)
	return f.answer, nil
}

type fakeLogRepo struct {
	logs []types.QueryLog
	err  error
}

func (f *fakeLogRepo) InsertLog(_ context.Context, log *types.QueryLog) error {
	if f.err != nil {
		return f.err
	}
	f.logs = append(f.logs, *log)
	return nil
}

func (f *fakeLogRepo) ListRecent(_ context.Context, limit int64) ([]types.QueryLog, error) {
	if f.err != nil {
		return nil, f.err
	}
	if int64(len(f.logs)) < limit {
		limit = int64(len(f.logs))
	}
	// newest first
	out := make([]types.QueryLog, 0, limit)
	for i := len(f.logs) - 1; i >= 0 && int64(len(out)) < limit; i-- {
		out = append(out, f.logs[i])
	}
	return out, nil
}

type fakeUserRepo struct {
	users map[string]*types.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*types.User)}
}

func (f *fakeUserRepo) CreateUser(_ context.Context, user *types.User) error {
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) GetUser(_ context.Context, id string) (*types.User, error) {
	if user, ok := f.users[id]; ok {
		return user, nil
	}
	return nil, errors.New("user not found")
}

func (f *fakeUserRepo) GetUserByUsername(_ context.Context, username string) (*types.User, error) {
	for _, user := range f.users {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, errNotFound
}

func (f *fakeUserRepo) GetUserByEmail(_ context.Context, email string) (*types.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, errNotFound
}
