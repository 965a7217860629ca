package pipeline

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dgallion1/specgest/internal/doctree"
	"github.com/dgallion1/specgest/internal/record"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var endToEndPages = []doctree.Page{{Number: 1, Text: strings.Join([]string{
	"3 Power",
	"Overview text.",
	"3.1 Power Budget",
	"The controller shall report power budget. (see Section 3.2)",
	"End text.",
}, "\n")}}

func TestEngine_EndToEndNested(t *testing.T) {
	e := NewEngine(DefaultOptions(), testLogger())
	res, err := e.Run(context.Background(), endToEndPages)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	secs := res.Document.Sections
	if len(secs) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(secs))
	}
	if secs[0].Hierarchy != "3" || secs[1].Hierarchy != "3.1" {
		t.Errorf("expected sections 3 and 3.1, got %s and %s", secs[0].Hierarchy, secs[1].Hierarchy)
	}
	if len(secs[0].Requirements) != 0 || secs[0].Requirements == nil {
		t.Errorf("expected empty requirements list for section 3, got %#v", secs[0].Requirements)
	}

	sub := secs[1]
	if p := sub.HierarchyTree.Parent; p == nil || *p != "3 Power" {
		t.Errorf("expected parent %q, got %v", "3 Power", p)
	}
	if len(sub.Requirements) != 1 {
		t.Fatalf("expected 1 requirement, got %d", len(sub.Requirements))
	}
	r := sub.Requirements[0]
	if !strings.Contains(r.ShallText, "shall report power budget") {
		t.Errorf("unexpected shall text %q", r.ShallText)
	}
	if r.Anchor == nil || *r.Anchor != "(see Section 3.2)" {
		t.Errorf("expected anchor %q, got %v", "(see Section 3.2)", r.Anchor)
	}
	if r.Context.Before != nil {
		t.Errorf("expected no context before, got %q", *r.Context.Before)
	}
	if r.Context.After == nil || *r.Context.After != "End text." {
		t.Errorf("expected context after %q, got %v", "End text.", r.Context.After)
	}
	if r.RequirementID != "section_3_1_req_1" {
		t.Errorf("expected requirement id section_3_1_req_1, got %s", r.RequirementID)
	}

	if res.Summary.TotalSections != 2 || res.Summary.TotalRequirements != 1 {
		t.Errorf("unexpected summary %+v", res.Summary)
	}
	if res.Summary.TotalReferences != 1 {
		t.Errorf("expected 1 reference, got %d", res.Summary.TotalReferences)
	}
	if res.Segmentation.Headers != 2 {
		t.Errorf("expected 2 headers, got %d", res.Segmentation.Headers)
	}
}

func TestEngine_FlattenedZeroRequirementSection(t *testing.T) {
	opts := DefaultOptions()
	opts.RecordShape = record.Flattened
	res, err := NewEngine(opts, testLogger()).Run(context.Background(), endToEndPages)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rows := res.Document.Flat
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].ID != "section_3" || rows[0].RequirementID != nil || rows[0].ShallText != nil {
		t.Errorf("expected null baseline row for section 3, got %+v", rows[0])
	}
	if rows[1].RequirementID == nil || *rows[1].RequirementID != "section_3_1_req_1" {
		t.Errorf("expected requirement row for 3.1, got %+v", rows[1])
	}
}

func TestEngine_NumericNaming(t *testing.T) {
	opts := DefaultOptions()
	opts.HierarchyNaming = record.Numeric
	res, err := NewEngine(opts, testLogger()).Run(context.Background(), endToEndPages)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sub := res.Document.Sections[1]
	if sub.HierarchyTree.Current != "3.1" || *sub.HierarchyTree.Parent != "3" {
		t.Errorf("expected numeric tree, got %+v", sub.HierarchyTree)
	}
	if sub.Requirements[0].SectionHierarchy != "3.1" {
		t.Errorf("expected numeric section hierarchy, got %q", sub.Requirements[0].SectionHierarchy)
	}
}

func TestEngine_KeyPhrases(t *testing.T) {
	opts := DefaultOptions()
	opts.KeyPhrases = true
	res, err := NewEngine(opts, testLogger()).Run(context.Background(), endToEndPages)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Document.Sections[1].KeyPhrases) == 0 {
		t.Error("expected key phrases for section 3.1")
	}
}

func TestEngine_OutOfOrderHeadersLeaveGaps(t *testing.T) {
	pages := []doctree.Page{{Number: 1, Text: "4.1 Fans\ntext\n4 Thermal\n"}}
	res, err := NewEngine(DefaultOptions(), testLogger()).Run(context.Background(), pages)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p := res.Document.Sections[0].HierarchyTree.Parent; p != nil {
		t.Errorf("expected no parent for 4.1 before 4 appears, got %q", *p)
	}
}

func TestEngine_FreshTitleMapPerRun(t *testing.T) {
	e := NewEngine(DefaultOptions(), testLogger())
	if _, err := e.Run(context.Background(), []doctree.Page{{Number: 1, Text: "5 Cooling\n"}}); err != nil {
		t.Fatal(err)
	}
	res, err := e.Run(context.Background(), []doctree.Page{{Number: 1, Text: "5.1 Fans\n"}})
	if err != nil {
		t.Fatal(err)
	}
	if p := res.Document.Sections[0].HierarchyTree.Parent; p != nil {
		t.Errorf("expected title map not to leak between runs, got parent %q", *p)
	}
}

func TestEngine_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewEngine(DefaultOptions(), testLogger()).Run(ctx, endToEndPages)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestEngine_ParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spec.txt")
	if err := os.WriteFile(path, []byte(endToEndPages[0].Text+"\f4 Thermal\nFans shall spin.\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	res, err := NewEngine(DefaultOptions(), testLogger()).ParseFile(context.Background(), path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Pages != 2 {
		t.Errorf("expected 2 pages, got %d", res.Pages)
	}
	last := res.Document.Sections[len(res.Document.Sections)-1]
	if last.Hierarchy != "4" || last.PageNumber != 2 {
		t.Errorf("expected section 4 on page 2, got %s on %d", last.Hierarchy, last.PageNumber)
	}
}

func TestEngine_ParseFileMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.pdf")
	_, err := NewEngine(DefaultOptions(), testLogger()).ParseFile(context.Background(), path)
	if !errors.Is(err, ErrInputNotFound) {
		t.Fatalf("expected ErrInputNotFound, got %v", err)
	}
	if err.Error() != "input document not found: "+path {
		t.Errorf("unexpected message %q", err.Error())
	}
}

func TestEngine_ParseUnsupported(t *testing.T) {
	_, err := NewEngine(DefaultOptions(), testLogger()).Parse(context.Background(), strings.NewReader("x"), "spec.xlsx")
	if err == nil {
		t.Error("expected error for unsupported extension")
	}
}

func TestParseOptions(t *testing.T) {
	opts, err := ParseOptions("strict", "numeric", "flattened", "strict", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opts.AnchorStrictness != "strict" || opts.HierarchyNaming != record.Numeric ||
		opts.RecordShape != record.Flattened || opts.HeaderStrictness != "strict" || !opts.KeyPhrases {
		t.Errorf("unexpected options %+v", opts)
	}

	def, err := ParseOptions("", "", "", "", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if def != DefaultOptions() {
		t.Errorf("expected defaults, got %+v", def)
	}

	for _, bad := range [][4]string{
		{"fuzzy", "", "", ""},
		{"", "titles", "", ""},
		{"", "", "tree", ""},
		{"", "", "", "loose"},
	} {
		if _, err := ParseOptions(bad[0], bad[1], bad[2], bad[3], false); !errors.Is(err, ErrUnknownOption) {
			t.Errorf("ParseOptions(%q): expected ErrUnknownOption, got %v", bad, err)
		}
	}
}
