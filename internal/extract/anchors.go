// Package extract pulls normative requirements, cross-reference anchors and
// key phrases out of finalized section content.
package extract

import (
	"regexp"
	"strings"
)

// AnchorStrictness selects which cross-reference forms count as anchors.
type AnchorStrictness string

const (
	AnchorLoose  AnchorStrictness = "loose"
	AnchorStrict AnchorStrictness = "strict"
)

var (
	looseAnchor = regexp.MustCompile(
		`(?i)\((?:see|refer\s+to|defined\s+in)\b[^)]*\)|` +
			`\b(?:see|refer\s+to|defined\s+in)\s+(?:(?:section|table|figure)\s+)?\d+(?:\.\d+)*`,
	)
	strictAnchor = regexp.MustCompile(`(?i)\(see\b[^)]*\)`)
)

// AnchorMatcher finds cross-references in text. It holds only a compiled
// pattern and is safe for concurrent use.
type AnchorMatcher struct {
	strictness AnchorStrictness
	pattern    *regexp.Regexp
}

// NewAnchorMatcher returns a matcher for strictness. Unknown values fall back
// to loose; callers validate option strings before this point.
func NewAnchorMatcher(strictness AnchorStrictness) *AnchorMatcher {
	if strictness == AnchorStrict {
		return &AnchorMatcher{strictness: AnchorStrict, pattern: strictAnchor}
	}
	return &AnchorMatcher{strictness: AnchorLoose, pattern: looseAnchor}
}

func (m *AnchorMatcher) Strictness() AnchorStrictness {
	return m.strictness
}

// Find returns the leftmost anchor in text.
func (m *AnchorMatcher) Find(text string) (string, bool) {
	loc := m.pattern.FindStringIndex(text)
	if loc == nil {
		return "", false
	}
	return text[loc[0]:loc[1]], true
}

// CountReferences counts every anchor match across content. This can exceed
// the number of anchors attached to requirements.
func (m *AnchorMatcher) CountReferences(content string) int {
	if strings.TrimSpace(content) == "" {
		return 0
	}
	return len(m.pattern.FindAllStringIndex(content, -1))
}
