package extract

import (
	"strings"
	"testing"

	"github.com/dgallion1/specgest/internal/doctree"
)

func section(id, title string, lines ...string) *doctree.Section {
	return &doctree.Section{ID: id, Title: title, FullName: id + " " + title, Lines: lines, Page: 7}
}

func deref(s *string) string {
	if s == nil {
		return "<nil>"
	}
	return *s
}

func TestIsShall(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{"The PSU shall supply power.", true},
		{"The PSU SHALL supply power.", true},
		{"Shall be rated for 12 V.", true},
		{"Marshall connectors are used.", false},
		{"A shallow tray.", false},
		{"The PSU should supply power.", false},
	}
	for _, tt := range tests {
		if got := IsShall(tt.line); got != tt.want {
			t.Errorf("IsShall(%q): expected %v, got %v", tt.line, tt.want, got)
		}
	}
}

func TestRequirements_ContextSkipsBlankLines(t *testing.T) {
	sec := section("2.4", "Fans", "A.", "", "X shall be.", "   ", "B.")
	reqs := Requirements(sec, doctree.HierarchyTree{}, NewAnchorMatcher(AnchorLoose))

	if len(reqs) != 1 {
		t.Fatalf("expected 1 requirement, got %d", len(reqs))
	}
	r := reqs[0]
	if deref(r.Before) != "A." {
		t.Errorf("expected before %q, got %q", "A.", deref(r.Before))
	}
	if deref(r.After) != "B." {
		t.Errorf("expected after %q, got %q", "B.", deref(r.After))
	}
	if r.Text != "X shall be." {
		t.Errorf("expected text %q, got %q", "X shall be.", r.Text)
	}
	if r.ID != "section_2_4_req_1" {
		t.Errorf("expected id section_2_4_req_1, got %s", r.ID)
	}
	if r.ParentName != nil {
		t.Errorf("expected nil parent, got %q", *r.ParentName)
	}
	if r.Page != 7 {
		t.Errorf("expected page 7, got %d", r.Page)
	}
}

func TestRequirements_NoContextAtSectionEdges(t *testing.T) {
	sec := section("1", "Scope", "The system shall boot.")
	reqs := Requirements(sec, doctree.HierarchyTree{}, NewAnchorMatcher(AnchorLoose))
	if len(reqs) != 1 {
		t.Fatalf("expected 1 requirement, got %d", len(reqs))
	}
	if reqs[0].Before != nil || reqs[0].After != nil {
		t.Errorf("expected no context, got before=%q after=%q", deref(reqs[0].Before), deref(reqs[0].After))
	}
	if reqs[0].Anchor != nil {
		t.Errorf("expected no anchor, got %q", *reqs[0].Anchor)
	}
}

func TestRequirements_SequenceAndParent(t *testing.T) {
	sec := section("3.1", "Budget",
		"Intro.",
		"The PSU shall supply 12 V (see Section 3.2).",
		"Notes.",
		"The PSU shall report faults.",
	)
	tree := doctree.HierarchyTree{
		Current:   doctree.Ancestor{ID: "3.1", Name: "3.1 Budget"},
		Ancestors: []doctree.Ancestor{{ID: "3", Name: "3 Power"}},
	}
	reqs := Requirements(sec, tree, NewAnchorMatcher(AnchorLoose))
	if len(reqs) != 2 {
		t.Fatalf("expected 2 requirements, got %d", len(reqs))
	}
	for i, r := range reqs {
		if r.Seq != i+1 {
			t.Errorf("req %d: expected seq %d, got %d", i, i+1, r.Seq)
		}
		if deref(r.ParentName) != "3 Power" {
			t.Errorf("req %d: expected parent %q, got %q", i, "3 Power", deref(r.ParentName))
		}
		if r.SectionName != "3.1 Budget" {
			t.Errorf("req %d: expected section %q, got %q", i, "3.1 Budget", r.SectionName)
		}
	}
	if deref(reqs[0].Anchor) != "(see Section 3.2)" {
		t.Errorf("expected anchor %q, got %q", "(see Section 3.2)", deref(reqs[0].Anchor))
	}
	if reqs[1].ID != "section_3_1_req_2" {
		t.Errorf("expected id section_3_1_req_2, got %s", reqs[1].ID)
	}
	if deref(reqs[1].Before) != "Notes." {
		t.Errorf("expected before %q, got %q", "Notes.", deref(reqs[1].Before))
	}
}

func TestRequirements_AnchorFallsBackToAfterLine(t *testing.T) {
	sec := section("4", "Thermal", "The fan shall spin.", "Refer to Section 4.1 for limits.")

	loose := Requirements(sec, doctree.HierarchyTree{}, NewAnchorMatcher(AnchorLoose))
	if deref(loose[0].Anchor) != "Refer to Section 4.1" {
		t.Errorf("expected loose anchor %q, got %q", "Refer to Section 4.1", deref(loose[0].Anchor))
	}

	strict := Requirements(sec, doctree.HierarchyTree{}, NewAnchorMatcher(AnchorStrict))
	if strict[0].Anchor != nil {
		t.Errorf("expected no strict anchor, got %q", *strict[0].Anchor)
	}
}

func TestRequirements_ShallLineAnchorWins(t *testing.T) {
	sec := section("5", "Mgmt", "It shall log (see 6.2).", "(see 9.9)")
	reqs := Requirements(sec, doctree.HierarchyTree{}, NewAnchorMatcher(AnchorStrict))
	if deref(reqs[0].Anchor) != "(see 6.2)" {
		t.Errorf("expected anchor %q, got %q", "(see 6.2)", deref(reqs[0].Anchor))
	}
}

func TestAnchorMatcher_Find(t *testing.T) {
	tests := []struct {
		name       string
		strictness AnchorStrictness
		text       string
		want       string
	}{
		{"loose parenthetical", AnchorLoose, "X shall do (see A) and (see B).", "(see A)"},
		{"strict parenthetical", AnchorStrict, "X shall do (see A) and (see B).", "(see A)"},
		{"loose bare section", AnchorLoose, "Details: see Section 3.2.1 below.", "see Section 3.2.1"},
		{"loose bare number", AnchorLoose, "see 5.3", "see 5.3"},
		{"loose table", AnchorLoose, "as defined in Table 4", "defined in Table 4"},
		{"loose refer to", AnchorLoose, "REFER TO FIGURE 2", "REFER TO FIGURE 2"},
		{"loose parenthetical defined", AnchorLoose, "(defined in Annex B)", "(defined in Annex B)"},
		{"strict rejects bare", AnchorStrict, "see Section 3.2", ""},
		{"no number", AnchorLoose, "see the figure", ""},
		{"seen is not see", AnchorStrict, "(seen below)", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NewAnchorMatcher(tt.strictness).Find(tt.text)
			if ok != (tt.want != "") {
				t.Fatalf("Find(%q): expected ok=%v, got %v", tt.text, tt.want != "", ok)
			}
			if got != tt.want {
				t.Errorf("Find(%q): expected %q, got %q", tt.text, tt.want, got)
			}
		})
	}
}

func TestAnchorMatcher_CountReferences(t *testing.T) {
	content := "X shall do (see A) and (see B).\nAlso see Section 4.\n"
	if got := NewAnchorMatcher(AnchorLoose).CountReferences(content); got != 3 {
		t.Errorf("expected 3 loose references, got %d", got)
	}
	if got := NewAnchorMatcher(AnchorStrict).CountReferences(content); got != 2 {
		t.Errorf("expected 2 strict references, got %d", got)
	}
	if got := NewAnchorMatcher(AnchorLoose).CountReferences(""); got != 0 {
		t.Errorf("expected 0 references, got %d", got)
	}
}

func TestNewAnchorMatcher_DefaultsToLoose(t *testing.T) {
	if got := NewAnchorMatcher("").Strictness(); got != AnchorLoose {
		t.Errorf("expected %q, got %q", AnchorLoose, got)
	}
}

func TestKeyPhrases_RankedByFrequency(t *testing.T) {
	got := NewKeyPhrases().Extract("Cooling fan. Cooling fan. 12 V")
	want := []string{"Cooling", "12 V"}
	if len(got) != len(want) {
		t.Fatalf("expected %q, got %q", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("phrase %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestKeyPhrases_TiesAlphabetical(t *testing.T) {
	got := NewKeyPhrases().Extract("Zeta. Alpha.")
	if len(got) != 2 || got[0] != "Alpha" || got[1] != "Zeta" {
		t.Errorf("expected [Alpha Zeta], got %q", got)
	}
}

func TestKeyPhrases_Limit(t *testing.T) {
	var words []string
	for _, w := range []string{"Alpha", "Bravo", "Charlie", "Delta", "Echo", "Foxtrot", "Golf",
		"Hotel", "India", "Juliet", "Kilo", "Lima", "Mike", "November", "Oscar", "Papa", "Quebec"} {
		words = append(words, w+".")
	}
	got := NewKeyPhrases().Extract(strings.Join(words, " "))
	if len(got) != 15 {
		t.Errorf("expected 15 phrases, got %d", len(got))
	}
}

func TestKeyPhrases_Measurements(t *testing.T) {
	got := NewKeyPhrases().Extract("rated 3.3V at 25 °C")
	found := map[string]bool{}
	for _, p := range got {
		found[p] = true
	}
	for _, want := range []string{"3.3V", "25 °C"} {
		if !found[want] {
			t.Errorf("expected %q in %q", want, got)
		}
	}
}

func TestKeyPhrases_LengthCountsCharacters(t *testing.T) {
	got := NewKeyPhrases().Extract("hold 5°C or 25°C")
	found := map[string]bool{}
	for _, p := range got {
		found[p] = true
	}
	if found["5°C"] {
		t.Errorf("expected 3-character %q to be rejected, got %q", "5°C", got)
	}
	if !found["25°C"] {
		t.Errorf("expected %q in %q", "25°C", got)
	}
}

func TestKeyPhrases_Empty(t *testing.T) {
	got := NewKeyPhrases().Extract("")
	if got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", got)
	}
}
