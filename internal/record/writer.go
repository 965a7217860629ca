package record

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Document is the full output of one run, in exactly one shape.
type Document struct {
	Shape    Shape
	Sections []Section
	Flat     []Flat
}

func NewDocument(shape Shape) *Document {
	if shape == "" {
		shape = Nested
	}
	return &Document{Shape: shape}
}

// Len returns the number of top-level records.
func (d *Document) Len() int {
	if d.Shape == Flattened {
		return len(d.Flat)
	}
	return len(d.Sections)
}

// Records returns the record list that gets serialized.
func (d *Document) Records() any {
	if d.Shape == Flattened {
		if d.Flat == nil {
			return []Flat{}
		}
		return d.Flat
	}
	if d.Sections == nil {
		return []Section{}
	}
	return d.Sections
}

// Write encodes the document as indented UTF-8 JSON. Non-ASCII text and
// HTML characters are written as-is.
func Write(w io.Writer, doc *Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(doc.Records()); err != nil {
		return fmt.Errorf("encode records: %w", err)
	}
	return nil
}

// WriteFile writes the document to path, replacing any existing file.
func WriteFile(path string, doc *Document) error {
	var buf bytes.Buffer
	if err := Write(&buf, doc); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// Decode parses a previously written document.
func Decode(data []byte, shape Shape) (*Document, error) {
	doc := NewDocument(shape)
	var err error
	if doc.Shape == Flattened {
		err = json.Unmarshal(data, &doc.Flat)
	} else {
		err = json.Unmarshal(data, &doc.Sections)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s records: %w", doc.Shape, err)
	}
	return doc, nil
}
