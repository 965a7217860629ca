package extract

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/dgallion1/specgest/internal/doctree"
)

var shallPattern = regexp.MustCompile(`(?i)\bshall\b`)

// IsShall reports whether line contains the whole word "shall".
func IsShall(line string) bool {
	return shallPattern.MatchString(line)
}

// Requirements scans the section's content lines for shall-sentences. The
// parent name comes from tree; anchors come from matcher, shall-line first,
// then the following context line.
func Requirements(sec *doctree.Section, tree doctree.HierarchyTree, matcher *AnchorMatcher) []doctree.Requirement {
	var parent *string
	if p := tree.Parent(); p != nil {
		name := p.Name
		parent = &name
	}

	var out []doctree.Requirement
	for i, line := range sec.Lines {
		if !IsShall(line) {
			continue
		}
		seq := len(out) + 1
		req := doctree.Requirement{
			Seq:         seq,
			ID:          fmt.Sprintf("%s_req_%d", sec.Token(), seq),
			Text:        line,
			Before:      nearestBefore(sec.Lines, i),
			After:       nearestAfter(sec.Lines, i),
			SectionID:   sec.ID,
			SectionName: sec.FullName,
			ParentName:  parent,
			Page:        sec.Page,
		}
		if a, ok := matcher.Find(line); ok {
			req.Anchor = &a
		} else if req.After != nil {
			if a, ok := matcher.Find(*req.After); ok {
				req.Anchor = &a
			}
		}
		out = append(out, req)
	}
	return out
}

func nearestBefore(lines []string, i int) *string {
	for j := i - 1; j >= 0; j-- {
		if strings.TrimSpace(lines[j]) != "" {
			l := lines[j]
			return &l
		}
	}
	return nil
}

func nearestAfter(lines []string, i int) *string {
	for j := i + 1; j < len(lines); j++ {
		if strings.TrimSpace(lines[j]) != "" {
			l := lines[j]
			return &l
		}
	}
	return nil
}
