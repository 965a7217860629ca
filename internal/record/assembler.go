package record

import (
	"github.com/dgallion1/specgest/internal/doctree"
)

// Assembler maps finalized sections into records. It keeps no state beyond
// its options; the same input always yields the same records.
type Assembler struct {
	shape  Shape
	naming Naming
}

func NewAssembler(shape Shape, naming Naming) *Assembler {
	if shape == "" {
		shape = Nested
	}
	if naming == "" {
		naming = Named
	}
	return &Assembler{shape: shape, naming: naming}
}

func (a *Assembler) Shape() Shape {
	return a.shape
}

// Append adds the records for f to doc.
func (a *Assembler) Append(doc *Document, f Finalized) {
	if a.shape == Flattened {
		doc.Flat = append(doc.Flat, a.Flat(f)...)
		return
	}
	doc.Sections = append(doc.Sections, a.Nested(f))
}

// Nested builds the single nested record for f.
func (a *Assembler) Nested(f Finalized) Section {
	sec := f.Section
	reqs := make([]Requirement, 0, len(f.Requirements))
	for _, r := range f.Requirements {
		reqs = append(reqs, Requirement{
			RequirementID:    r.ID,
			ShallText:        r.Text,
			Anchor:           r.Anchor,
			Context:          Context{Before: r.Before, After: r.After},
			SectionHierarchy: a.display(doctree.Ancestor{ID: r.SectionID, Name: r.SectionName}),
			ParentHierarchy:  a.parentDisplay(f.Tree),
			PageNumber:       r.Page,
		})
	}
	return Section{
		ID:            sec.Token(),
		Hierarchy:     sec.ID,
		HierarchyTree: a.tree(f.Tree),
		Title:         sec.Title,
		PageNumber:    sec.Page,
		Requirements:  reqs,
		Metadata:      metadata(f.Metadata, len(f.Requirements)),
		KeyPhrases:    f.KeyPhrases,
		RawContent:    sec.Content(),
	}
}

// Flat builds one record per requirement, or a single baseline record with
// null requirement fields when the section has none.
func (a *Assembler) Flat(f Finalized) []Flat {
	sec := f.Section
	base := Flat{
		ID:            sec.Token(),
		Hierarchy:     sec.ID,
		HierarchyTree: a.tree(f.Tree),
		Title:         sec.Title,
		PageNumber:    sec.Page,
		KeyPhrases:    f.KeyPhrases,
		RawContent:    sec.Content(),
	}

	if len(f.Requirements) == 0 {
		base.Metadata = metadata(f.Metadata, 1)
		return []Flat{base}
	}

	out := make([]Flat, 0, len(f.Requirements))
	meta := metadata(f.Metadata, len(f.Requirements))
	parent := a.parentDisplay(f.Tree)
	for _, r := range f.Requirements {
		rec := base
		id, text := r.ID, r.Text
		hier := a.display(doctree.Ancestor{ID: r.SectionID, Name: r.SectionName})
		rec.RequirementID = &id
		rec.ShallText = &text
		rec.Anchor = r.Anchor
		rec.ContextBefore = r.Before
		rec.ContextAfter = r.After
		rec.SectionHierarchy = &hier
		rec.ParentHierarchy = parent
		rec.Metadata = meta
		out = append(out, rec)
	}
	return out
}

func (a *Assembler) display(e doctree.Ancestor) string {
	if a.naming == Numeric {
		return e.ID
	}
	return e.Name
}

func (a *Assembler) parentDisplay(t doctree.HierarchyTree) *string {
	p := t.Parent()
	if p == nil {
		return nil
	}
	s := a.display(*p)
	return &s
}

func (a *Assembler) tree(t doctree.HierarchyTree) Tree {
	out := Tree{
		Current:   a.display(t.Current),
		Parent:    a.parentDisplay(t),
		Ancestors: make([]string, 0, len(t.Ancestors)),
	}
	if g := t.Grandparent(); g != nil {
		s := a.display(*g)
		out.Grandparent = &s
	}
	for _, anc := range t.Ancestors {
		out.Ancestors = append(out.Ancestors, a.display(anc))
	}
	return out
}

func metadata(m doctree.SectionMetadata, requirementCount int) Metadata {
	return Metadata{
		ContentLength:    m.ContentLength,
		RequirementCount: requirementCount,
		ReferenceCount:   m.ReferenceCount,
		HasSubsections:   m.HasSubsections,
		Depth:            m.Depth,
		WordCount:        m.WordCount,
	}
}
