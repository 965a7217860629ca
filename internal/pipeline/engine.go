package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/dgallion1/specgest/internal/doctree"
	"github.com/dgallion1/specgest/internal/extract"
	"github.com/dgallion1/specgest/internal/hierarchy"
	"github.com/dgallion1/specgest/internal/parser"
	"github.com/dgallion1/specgest/internal/record"
	"github.com/dgallion1/specgest/internal/segment"
)

// ErrInputNotFound is returned when the input document does not exist.
var ErrInputNotFound = errors.New("input document not found")

// Result is the outcome of one document run.
type Result struct {
	Document     *record.Document `json:"-"`
	Summary      record.Summary   `json:"summary"`
	Segmentation segment.Stats    `json:"segmentation"`
	Pages        int              `json:"pages"`
}

// Engine runs the section pipeline over one document at a time. It holds no
// per-document state, so one Engine may serve concurrent runs; each run gets
// its own title map.
type Engine struct {
	opts       Options
	anchors    *extract.AnchorMatcher
	keyPhrases *extract.KeyPhrases
	assembler  *record.Assembler
	log        *slog.Logger
}

func NewEngine(opts Options, log *slog.Logger) *Engine {
	e := &Engine{
		opts:      opts,
		anchors:   extract.NewAnchorMatcher(opts.AnchorStrictness),
		assembler: record.NewAssembler(opts.RecordShape, opts.HierarchyNaming),
		log:       log,
	}
	if opts.KeyPhrases {
		e.keyPhrases = extract.NewKeyPhrases()
	}
	return e
}

// Run processes pages in order.
func (e *Engine) Run(ctx context.Context, pages []doctree.Page) (*Result, error) {
	return e.RunFunc(ctx, pages, nil)
}

// RunFunc is Run with a callback invoked after each section is finalized.
func (e *Engine) RunFunc(ctx context.Context, pages []doctree.Page, onSection func(record.Finalized)) (*Result, error) {
	titles := hierarchy.NewTitleMap()
	seg := segment.New(titles, e.opts.HeaderStrictness)
	res := &Result{
		Document: record.NewDocument(e.assembler.Shape()),
		Pages:    len(pages),
	}

	err := seg.Run(ctx, pages, func(sec *doctree.Section) {
		f := e.finalize(titles, sec)
		e.assembler.Append(res.Document, f)
		res.Summary.Add(f)
		e.log.Debug("section finalized",
			"section", sec.ID,
			"page", sec.Page,
			"requirements", len(f.Requirements),
		)
		if onSection != nil {
			onSection(f)
		}
	})
	res.Segmentation = seg.Stats()
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (e *Engine) finalize(titles *hierarchy.TitleMap, sec *doctree.Section) record.Finalized {
	tree := titles.Resolve(sec)
	reqs := extract.Requirements(sec, tree, e.anchors)
	f := record.Finalized{
		Section:      sec,
		Tree:         tree,
		Requirements: reqs,
		Metadata:     record.ComputeMetadata(sec, len(reqs), e.anchors),
	}
	if e.keyPhrases != nil {
		f.KeyPhrases = e.keyPhrases.Extract(sec.Content())
	}
	return f
}

// Parse extracts pages from r with the parser for filename, then runs them.
func (e *Engine) Parse(ctx context.Context, r io.Reader, filename string) (*Result, error) {
	p, err := parser.ForFile(filename, e.opts.PDFFallback)
	if err != nil {
		return nil, err
	}
	pages, err := p.Parse(r, filename)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filename, err)
	}
	return e.Run(ctx, pages)
}

// ParseFile runs the document at path.
func (e *Engine) ParseFile(ctx context.Context, path string) (*Result, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrInputNotFound, path)
		}
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	log := e.log.With("document", filepath.Base(path))
	res, err := e.Parse(ctx, f, filepath.Base(path))
	if err != nil {
		return nil, err
	}
	log.Info("document processed",
		"pages", res.Pages,
		"sections", res.Summary.TotalSections,
		"requirements", res.Summary.TotalRequirements,
	)
	return res, nil
}
