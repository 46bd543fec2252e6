package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/votann/ask-search-be/types"
)

func newTestChunkService(t *testing.T) *ChunkService {
	t.Helper()
	s, err := NewChunkService()
	require.NoError(t, err)
	return s
}

func TestChunk_InvalidConfiguration(t *testing.T) {
	s := newTestChunkService(t)

	cases := []struct {
		name      string
		maxTokens int
		overlap   int
	}{
		{"zero max tokens", 0, 0},
		{"negative max tokens", -1, 0},
		{"negative overlap", 10, -1},
		{"overlap equals max", 10, 10},
		{"overlap exceeds max", 10, 11},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			chunks, err := s.Chunk("some text", tc.maxTokens, tc.overlap)
			assert.ErrorIs(t, err, types.ErrInvalidConfiguration)
			assert.Nil(t, chunks)
		})
	}
}

func TestChunk_EmptyText(t *testing.T) {
	s := newTestChunkService(t)

	chunks, err := s.Chunk("", 100, 10)
	require.NoError(t, err)
	assert.Empty(t, chunks)

	chunks, err = s.Chunk("   \n\t ", 100, 10)
	require.NoError(t, err)
	assert.Empty(t, chunks)
}

func TestChunk_ShortTextSingleChunk(t *testing.T) {
	s := newTestChunkService(t)
	text := "the quick brown fox jumps over the lazy dog"

	chunks, err := s.Chunk(text, 100, 10)
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.Equal(t, text, chunks[0].Text)
	assert.Equal(t, 0, chunks[0].Index)
	assert.Equal(t, s.CountTokens(text), chunks[0].TokenCount)
}

func TestChunk_WindowArithmetic(t *testing.T) {
	s := newTestChunkService(t)
	text := strings.TrimSpace(strings.Repeat("alpha bravo charlie delta echo foxtrot ", 120))

	maxTokens := 100
	overlap := 20
	total := s.CountTokens(text)
	require.Greater(t, total, maxTokens, "test text must span several windows")

	chunks, err := s.Chunk(text, maxTokens, overlap)
	require.NoError(t, err)

	// Expected boundaries follow directly from the sliding window:
	// starts at 0, 80, 160, ... until the text is exhausted.
	step := maxTokens - overlap
	expected := 0
	for i := 0; ; i += step {
		expected++
		if i+maxTokens >= total {
			break
		}
	}
	require.Len(t, chunks, expected)

	sum := 0
	for i, chunk := range chunks {
		assert.Equal(t, i, chunk.Index)
		if i < len(chunks)-1 {
			assert.Equal(t, maxTokens, chunk.TokenCount)
		} else {
			assert.LessOrEqual(t, chunk.TokenCount, maxTokens)
		}
		sum += chunk.TokenCount
	}
	// Every token is covered once plus overlap tokens shared between each
	// consecutive pair.
	assert.Equal(t, total+(len(chunks)-1)*overlap, sum)
}

func TestChunk_Deterministic(t *testing.T) {
	s := newTestChunkService(t)
	text := strings.Repeat("one two three four five six seven eight nine ten ", 50)

	first, err := s.Chunk(text, 64, 16)
	require.NoError(t, err)
	second, err := s.Chunk(text, 64, 16)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
