package record

import "strings"

// Summary aggregates document-level statistics over finalized sections.
type Summary struct {
	TotalSections                 int     `json:"total_sections"`
	TotalRequirements             int     `json:"total_requirements"`
	TotalReferences               int     `json:"total_references"`
	MaxHierarchyDepth             int     `json:"max_hierarchy_depth"`
	SectionsWithRequirements      int     `json:"sections_with_requirements"`
	AverageRequirementsPerSection float64 `json:"average_requirements_per_section"`
	TotalWords                    int     `json:"total_words"`
}

// Add folds one finalized section into the summary.
func (s *Summary) Add(f Finalized) {
	n := len(f.Requirements)
	s.TotalSections++
	s.TotalRequirements += n
	s.TotalReferences += f.Metadata.ReferenceCount
	s.TotalWords += f.Metadata.WordCount
	if f.Metadata.Depth > s.MaxHierarchyDepth {
		s.MaxHierarchyDepth = f.Metadata.Depth
	}
	if n > 0 {
		s.SectionsWithRequirements++
	}
	s.AverageRequirementsPerSection = float64(s.TotalRequirements) / float64(s.TotalSections)
}

// Summarize rebuilds a summary from a decoded document.
func Summarize(doc *Document) Summary {
	var s Summary
	if doc.Shape == Flattened {
		// A section's rows are contiguous and start with either a baseline
		// row or its first requirement.
		for _, r := range doc.Flat {
			if r.RequirementID == nil {
				s.addSection(r.Metadata)
				continue
			}
			s.TotalRequirements++
			if strings.HasSuffix(*r.RequirementID, "_req_1") {
				s.addSection(r.Metadata)
				s.SectionsWithRequirements++
			}
		}
	} else {
		for _, sec := range doc.Sections {
			s.TotalRequirements += len(sec.Requirements)
			s.addSection(sec.Metadata)
			if len(sec.Requirements) > 0 {
				s.SectionsWithRequirements++
			}
		}
	}
	if s.TotalSections > 0 {
		s.AverageRequirementsPerSection = float64(s.TotalRequirements) / float64(s.TotalSections)
	}
	return s
}

func (s *Summary) addSection(m Metadata) {
	s.TotalSections++
	s.TotalReferences += m.ReferenceCount
	s.TotalWords += m.WordCount
	if m.Depth > s.MaxHierarchyDepth {
		s.MaxHierarchyDepth = m.Depth
	}
}
