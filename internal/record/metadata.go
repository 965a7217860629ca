package record

import (
	"strings"
	"unicode/utf8"

	"github.com/dgallion1/specgest/internal/doctree"
)

// ReferenceCounter counts cross-references in section content.
type ReferenceCounter interface {
	CountReferences(content string) int
}

// ComputeMetadata derives section metadata from finalized content. It is a
// pure function of its inputs. ContentLength counts characters, not bytes.
func ComputeMetadata(sec *doctree.Section, requirementCount int, refs ReferenceCounter) doctree.SectionMetadata {
	content := sec.Content()
	return doctree.SectionMetadata{
		ContentLength:    utf8.RuneCountInString(content),
		WordCount:        len(strings.Fields(content)),
		Depth:            sec.Depth(),
		HasSubsections:   sec.HasSubsections(),
		RequirementCount: requirementCount,
		ReferenceCount:   refs.CountReferences(content),
	}
}
