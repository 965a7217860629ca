// Package record projects finalized sections into the JSON record layouts
// consumed downstream, and reads them back.
package record

import (
	"fmt"

	"github.com/dgallion1/specgest/internal/doctree"
)

// Shape selects the output record layout.
type Shape string

const (
	Nested    Shape = "nested"
	Flattened Shape = "flattened"
)

// Naming selects how hierarchy entries are displayed.
type Naming string

const (
	Named   Naming = "named"
	Numeric Naming = "numeric"
)

// DefaultOutput returns the output file name used when none is given.
func (s Shape) DefaultOutput() string {
	if s == Flattened {
		return "ocp_flat_shalls.json"
	}
	return "ocp_llm_ready.json"
}

// Tree is the serialized hierarchy tree.
type Tree struct {
	Current     string   `json:"current"`
	Parent      *string  `json:"parent"`
	Grandparent *string  `json:"grandparent"`
	Ancestors   []string `json:"ancestors"`
}

type Context struct {
	Before *string `json:"before"`
	After  *string `json:"after"`
}

type Requirement struct {
	RequirementID    string  `json:"requirementId"`
	ShallText        string  `json:"shallText"`
	Anchor           *string `json:"anchor"`
	Context          Context `json:"context"`
	SectionHierarchy string  `json:"sectionHierarchy"`
	ParentHierarchy  *string `json:"parentHierarchy"`
	PageNumber       int     `json:"pageNumber"`
}

type Metadata struct {
	ContentLength    int  `json:"contentLength"`
	RequirementCount int  `json:"requirementCount"`
	ReferenceCount   int  `json:"referenceCount"`
	HasSubsections   bool `json:"hasSubsections"`
	Depth            int  `json:"depth"`
	WordCount        int  `json:"wordCount"`
}

// Section is one nested record: a section with its requirements as a list.
type Section struct {
	ID            string        `json:"id"`
	Hierarchy     string        `json:"hierarchy"`
	HierarchyTree Tree          `json:"hierarchyTree"`
	Title         string        `json:"title"`
	PageNumber    int           `json:"pageNumber"`
	Requirements  []Requirement `json:"requirements"`
	Metadata      Metadata      `json:"metadata"`
	KeyPhrases    []string      `json:"keyPhrases,omitempty"`
	RawContent    string        `json:"rawContent"`
}

// Flat is one flattened record: a single requirement with its section
// inlined, or a section that has none, with every requirement field null.
type Flat struct {
	ID               string   `json:"id"`
	Hierarchy        string   `json:"hierarchy"`
	HierarchyTree    Tree     `json:"hierarchyTree"`
	Title            string   `json:"title"`
	PageNumber       int      `json:"pageNumber"`
	RequirementID    *string  `json:"requirementId"`
	ShallText        *string  `json:"shallText"`
	Anchor           *string  `json:"anchor"`
	ContextBefore    *string  `json:"contextBefore"`
	ContextAfter     *string  `json:"contextAfter"`
	SectionHierarchy *string  `json:"sectionHierarchy"`
	ParentHierarchy  *string  `json:"parentHierarchy"`
	Metadata         Metadata `json:"metadata"`
	KeyPhrases       []string `json:"keyPhrases,omitempty"`
	RawContent       string   `json:"rawContent"`
}

// Finalized is everything computed for one closed section.
type Finalized struct {
	Section      *doctree.Section
	Tree         doctree.HierarchyTree
	Requirements []doctree.Requirement
	Metadata     doctree.SectionMetadata
	KeyPhrases   []string
}

// ParseShape validates a shape option. Empty means nested.
func ParseShape(s string) (Shape, error) {
	switch Shape(s) {
	case "", Nested:
		return Nested, nil
	case Flattened:
		return Flattened, nil
	}
	return "", fmt.Errorf("record shape %q", s)
}

// ParseNaming validates a naming option. Empty means named.
func ParseNaming(s string) (Naming, error) {
	switch Naming(s) {
	case "", Named:
		return Named, nil
	case Numeric:
		return Numeric, nil
	}
	return "", fmt.Errorf("hierarchy naming %q", s)
}
