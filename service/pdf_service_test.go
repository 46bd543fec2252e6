package service

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/votann/ask-search-be/types"
)

func TestExtractText_MissingFile(t *testing.T) {
	svc := NewPDFService()

	_, err := svc.ExtractText(filepath.Join(t.TempDir(), "does-not-exist.pdf"))
	assert.ErrorIs(t, err, types.ErrExtraction)
}

func TestNormalizeWhitespace(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"already clean", "one two three", "one two three"},
		{"runs of spaces", "one   two \t three", "one two three"},
		{"newlines and page breaks", "one\ntwo\n\n\fthree", "one two three"},
		{"leading and trailing", "  one two  ", "one two"},
		{"only whitespace", " \n\t ", ""},
		{"empty", "", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, normalizeWhitespace(tc.in))
		})
	}
}
