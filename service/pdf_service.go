package service

import (
	"bytes"
	"fmt"
	"log"
	"os/exec"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/votann/ask-search-be/types"
)

// PDFService extracts plain text from PDF files for ingestion.
type PDFService struct{}

func NewPDFService() *PDFService {
	return &PDFService{}
}

// ExtractText reads the whole document and returns whitespace-normalized
// plain text. It tries the pdf library first and falls back to the
// pdftotext utility for files the library cannot parse.
func (s *PDFService) ExtractText(filePath string) (string, error) {
	text, err := s.extractWithLibrary(filePath)
	if err != nil || text == "" {
		log.Printf("pdf library extraction failed for %s, trying pdftotext: %v", filePath, err)
		text, err = s.extractWithPdftotext(filePath)
		if err != nil {
			return "", fmt.Errorf("%w: %s: %v", types.ErrExtraction, filePath, err)
		}
	}
	normalized := normalizeWhitespace(text)
	if normalized == "" {
		return "", fmt.Errorf("%w: %s: no text content", types.ErrExtraction, filePath)
	}
	return normalized, nil
}

func (s *PDFService) extractWithLibrary(filePath string) (string, error) {
	f, reader, err := pdf.Open(filePath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	var sb strings.Builder
	for pageNum := 1; pageNum <= reader.NumPage(); pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			log.Printf("Warning: failed to extract text from page %d: %v", pageNum, err)
			continue
		}
		sb.WriteString(pageText)
		sb.WriteString(" ")
	}
	return sb.String(), nil
}

func (s *PDFService) extractWithPdftotext(filePath string) (string, error) {
	cmd := exec.Command("pdftotext", "-enc", "UTF-8", "-nopgbrk", filePath, "-")
	var out bytes.Buffer
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("pdftotext failed: %v", err)
	}
	if trimmed := strings.TrimSpace(out.String()); len(trimmed) > 0 {
		return trimmed, nil
	}
	return "", fmt.Errorf("pdftotext produced no text")
}

func normalizeWhitespace(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
