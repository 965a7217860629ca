// Package parser turns raw document bytes into ordered page text.
package parser

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/dgallion1/specgest/internal/doctree"
	"golang.org/x/text/unicode/norm"
)

// Parser converts raw document bytes into pages in document order.
type Parser interface {
	Parse(r io.Reader, filename string) ([]doctree.Page, error)
}

// SupportedExtensions lists file extensions this service can handle.
var SupportedExtensions = map[string]bool{
	".txt":      true,
	".md":       true,
	".markdown": true,
	".html":     true,
	".htm":      true,
	".pdf":      true,
	".docx":     true,
}

// ForFile returns the appropriate parser for a filename. pdfFallback enables
// pdftotext when the built-in PDF reader fails.
func ForFile(filename string, pdfFallback bool) (Parser, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".txt":
		return &TextParser{}, nil
	case ".md", ".markdown":
		return &MarkdownParser{}, nil
	case ".html", ".htm":
		return &HTMLParser{}, nil
	case ".pdf":
		return &PDFParser{FallbackPdftotext: pdfFallback}, nil
	case ".docx":
		return &DOCXParser{}, nil
	default:
		return nil, fmt.Errorf("unsupported file extension: %s", ext)
	}
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return SupportedExtensions[ext]
}

// newPage builds a page with NFC-normalized text, so the same glyphs from
// different extractors compare equal downstream.
func newPage(number int, text string) doctree.Page {
	return doctree.Page{Number: number, Text: norm.NFC.String(text)}
}

// singlePage wraps lines from a format without physical pages.
func singlePage(lines []string) []doctree.Page {
	if len(lines) == 0 {
		return []doctree.Page{}
	}
	return []doctree.Page{newPage(1, strings.Join(lines, "\n"))}
}

// collapse folds internal whitespace runs to single spaces.
func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
