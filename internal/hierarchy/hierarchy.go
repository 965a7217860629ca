// Package hierarchy maps numeric section ids to their full names and
// resolves ancestor chains from what has been seen so far.
package hierarchy

import (
	"strings"

	"github.com/dgallion1/specgest/internal/doctree"
)

// TitleMap is an append-only, insertion-ordered map from section id to full
// name. It has a single owner and is not safe for concurrent use.
type TitleMap struct {
	names map[string]string
	order []string
}

func NewTitleMap() *TitleMap {
	return &TitleMap{names: make(map[string]string)}
}

// Register records the full name for id. The first registration wins; a
// repeated id leaves the map unchanged and returns false.
func (m *TitleMap) Register(id, fullName string) bool {
	if _, ok := m.names[id]; ok {
		return false
	}
	m.names[id] = fullName
	m.order = append(m.order, id)
	return true
}

// Lookup returns the full name registered for id.
func (m *TitleMap) Lookup(id string) (string, bool) {
	name, ok := m.names[id]
	return name, ok
}

// Len returns the number of registered ids.
func (m *TitleMap) Len() int {
	return len(m.order)
}

// IDs returns the registered ids in insertion order.
func (m *TitleMap) IDs() []string {
	out := make([]string, len(m.order))
	copy(out, m.order)
	return out
}

// Ancestors returns every strict numeric prefix of id that is present in the
// map, shortest first. Missing prefixes are omitted.
func (m *TitleMap) Ancestors(id string) []doctree.Ancestor {
	parts := strings.Split(id, ".")
	var out []doctree.Ancestor
	for i := 1; i < len(parts); i++ {
		prefix := strings.Join(parts[:i], ".")
		if name, ok := m.names[prefix]; ok {
			out = append(out, doctree.Ancestor{ID: prefix, Name: name})
		}
	}
	return out
}

// Resolve builds the hierarchy tree for a section from the map's current
// contents. It never looks ahead or fills gaps.
func (m *TitleMap) Resolve(sec *doctree.Section) doctree.HierarchyTree {
	return doctree.HierarchyTree{
		Current:   doctree.Ancestor{ID: sec.ID, Name: sec.FullName},
		Ancestors: m.Ancestors(sec.ID),
	}
}
