package doctree

import "strings"

// Page is one physical page of extracted document text.
type Page struct {
	Number int    // 1-based physical page number
	Text   string // Extracted text, lines separated by '\n'
}

// Section is a numbered section of a specification document.
type Section struct {
	ID       string   // Numeric id, e.g. "3.2.1"
	Title    string   // Trailing text of the header line
	FullName string   // "<id> <title>"
	Lines    []string // Content lines after the header, verbatim
	Page     int      // Page the header appeared on
}

// Depth is the number of dot-separated components in the id.
func (s *Section) Depth() int {
	return strings.Count(s.ID, ".") + 1
}

// HasSubsections reports whether the id itself is dotted. It says nothing
// about whether child sections were observed.
func (s *Section) HasSubsections() bool {
	return strings.Contains(s.ID, ".")
}

// Content joins the content lines with newlines.
func (s *Section) Content() string {
	return strings.Join(s.Lines, "\n")
}

// Token returns the stable record id token, e.g. "section_3_2_1".
func (s *Section) Token() string {
	return SectionToken(s.ID)
}

// SectionToken builds the record id token for a numeric section id.
func SectionToken(id string) string {
	return "section_" + strings.ReplaceAll(id, ".", "_")
}

// Ancestor is a named entry in a hierarchy chain.
type Ancestor struct {
	ID   string
	Name string
}

// HierarchyTree is the resolved ancestor chain of a section.
type HierarchyTree struct {
	Current   Ancestor
	Ancestors []Ancestor // Only prefixes already seen, shortest first
}

// Parent returns the nearest known ancestor, or nil.
func (h HierarchyTree) Parent() *Ancestor {
	if len(h.Ancestors) == 0 {
		return nil
	}
	return &h.Ancestors[len(h.Ancestors)-1]
}

// Grandparent returns the second nearest known ancestor, or nil.
func (h HierarchyTree) Grandparent() *Ancestor {
	if len(h.Ancestors) < 2 {
		return nil
	}
	return &h.Ancestors[len(h.Ancestors)-2]
}

// Requirement is a normative "shall" line with its local context.
type Requirement struct {
	Seq         int     // 1-based, scoped to the section
	ID          string  // e.g. "section_3_1_req_1"
	Text        string  // Matched line, verbatim
	Before      *string // Nearest preceding non-blank line in the section
	After       *string // Nearest following non-blank line in the section
	Anchor      *string // First cross-reference on the line, else on After
	SectionID   string
	SectionName string
	ParentName  *string
	Page        int
}

// SectionMetadata holds counts derived from a finalized section.
type SectionMetadata struct {
	ContentLength    int
	WordCount        int
	Depth            int
	HasSubsections   bool
	RequirementCount int
	ReferenceCount   int
}
