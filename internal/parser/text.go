package parser

import (
	"fmt"
	"io"
	"strings"

	"github.com/dgallion1/specgest/internal/doctree"
)

// TextParser handles plain text files. Form feeds separate pages.
type TextParser struct{}

func (p *TextParser) Parse(r io.Reader, filename string) ([]doctree.Page, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filename, err)
	}
	return splitPages(string(data)), nil
}

// splitPages splits text on form feeds. Blank pages are dropped but keep
// their number.
func splitPages(text string) []doctree.Page {
	pages := []doctree.Page{}
	for i, raw := range strings.Split(text, "\f") {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		pages = append(pages, newPage(i+1, raw))
	}
	return pages
}
