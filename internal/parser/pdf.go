package parser

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/dgallion1/specgest/internal/doctree"
	pdflib "github.com/ledongthuc/pdf"
)

var errNoText = errors.New("no extractable text")

// PDFParser handles PDF files. It tries the Go library first,
// then falls back to pdftotext if enabled.
type PDFParser struct {
	FallbackPdftotext bool
}

func (p *PDFParser) Parse(r io.Reader, filename string) ([]doctree.Page, error) {
	// ledongthuc/pdf requires a ReadSeeker+size, so we write to a temp file.
	tmp, err := os.CreateTemp("", "specgest-pdf-*.pdf")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	tmp.Close()

	pages, err := extractPDFPages(tmpPath)
	switch {
	case err != nil && p.FallbackPdftotext:
		pages, err = extractPdftotext(tmpPath)
	case err == nil && p.FallbackPdftotext && hasRunOnPage(pages):
		// The reader only breaks lines on BT and T*, so Td-positioned lines
		// of a page can arrive joined. Keep its text if pdftotext fails.
		if alt, altErr := extractPdftotext(tmpPath); altErr == nil {
			pages = alt
		}
	}
	if err != nil {
		return nil, fmt.Errorf("extract pdf text: %w", err)
	}
	return pages, nil
}

func extractPDFPages(path string) (pages []doctree.Page, err error) {
	// The reader panics on some malformed streams.
	defer func() {
		if r := recover(); r != nil {
			pages, err = nil, fmt.Errorf("pdf reader: %v", r)
		}
	}()

	f, reader, err := pdflib.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil || strings.TrimSpace(text) == "" {
			continue
		}
		pages = append(pages, newPage(i, text))
	}
	if len(pages) == 0 {
		return nil, errNoText
	}
	return pages, nil
}

// hasRunOnPage reports whether a page holds text on a single line, which
// means its line breaks were probably lost.
func hasRunOnPage(pages []doctree.Page) bool {
	for _, pg := range pages {
		if !strings.Contains(strings.TrimSpace(pg.Text), "\n") {
			return true
		}
	}
	return false
}

// extractPdftotext runs without -layout so header lines keep column zero.
func extractPdftotext(path string) ([]doctree.Page, error) {
	cmd := exec.Command("pdftotext", "-enc", "UTF-8", path, "-")
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("pdftotext: %w", err)
	}
	pages := splitPages(string(out))
	if len(pages) == 0 {
		return nil, errNoText
	}
	return pages, nil
}
