// Package segment groups a page-ordered line stream into numbered sections.
package segment

import (
	"context"
	"regexp"
	"strings"
	"unicode"

	"github.com/dgallion1/specgest/internal/doctree"
	"github.com/dgallion1/specgest/internal/hierarchy"
)

// Strictness controls how eagerly a line is taken as a section header.
type Strictness string

const (
	Lenient Strictness = "lenient"
	Strict  Strictness = "strict"
)

var (
	lenientHeader = regexp.MustCompile(`^(\d+(?:\.\d+)*)\.?\s+(\S.*)$`)
	strictHeader  = regexp.MustCompile(`^(\d{1,3}(?:\.\d{1,3})*)\.?\s+(\p{Lu}.*)$`)
)

// Leading tokens that make a numeric line read as a measurement, not a title.
var unitTokens = map[string]bool{
	"V": true, "mV": true, "kV": true, "A": true, "mA": true, "W": true, "mW": true, "kW": true,
	"Hz": true, "kHz": true, "MHz": true, "GHz": true, "Gbps": true, "Mbps": true, "GT": true,
	"MB": true, "GB": true, "TB": true, "KB": true, "mm": true, "cm": true, "m": true,
	"kg": true, "lbs": true, "dB": true, "C": true, "F": true, "ms": true, "us": true, "ns": true,
	"RPM": true, "CFM": true, "U": true, "OU": true,
}

// Stats counts what a run saw.
type Stats struct {
	Lines      int `json:"lines"`
	Preamble   int `json:"preamble_lines"`
	Headers    int `json:"headers"`
	Duplicates int `json:"duplicate_ids"`
}

// Sink receives each section once it is closed.
type Sink func(sec *doctree.Section)

// Segmenter is a two-state machine: no active section, or accumulating
// lines into the current one. Use one Segmenter per document.
type Segmenter struct {
	strictness Strictness
	titles     *hierarchy.TitleMap
	current    *doctree.Section
	stats      Stats
}

// New returns a Segmenter that registers headers in titles.
func New(titles *hierarchy.TitleMap, strictness Strictness) *Segmenter {
	if strictness == "" {
		strictness = Lenient
	}
	return &Segmenter{strictness: strictness, titles: titles}
}

// Run feeds every line of pages through the state machine in order. The
// context is checked only at section boundaries, so a cancelled run never
// hands a half-filled section to sink.
func (s *Segmenter) Run(ctx context.Context, pages []doctree.Page, sink Sink) error {
	for _, page := range pages {
		for _, line := range SplitLines(page.Text) {
			s.stats.Lines++

			id, title, ok := s.MatchHeader(line)
			if !ok {
				if s.current != nil {
					s.current.Lines = append(s.current.Lines, line)
				} else {
					s.stats.Preamble++
				}
				continue
			}

			if err := ctx.Err(); err != nil {
				return err
			}
			s.finalize(sink)
			s.open(id, title, page.Number)
		}
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	s.finalize(sink)
	return nil
}

// Stats returns the counters gathered so far.
func (s *Segmenter) Stats() Stats {
	return s.stats
}

// MatchHeader reports whether line is a section header and returns its id
// and title.
func (s *Segmenter) MatchHeader(line string) (id, title string, ok bool) {
	pattern := lenientHeader
	if s.strictness == Strict {
		pattern = strictHeader
	}
	m := pattern.FindStringSubmatch(line)
	if m == nil {
		return "", "", false
	}
	title = strings.TrimRightFunc(m[2], unicode.IsSpace)
	if title == "" {
		return "", "", false
	}
	if s.strictness == Strict && looksLikeMeasurement(title) {
		return "", "", false
	}
	return m[1], title, true
}

func (s *Segmenter) open(id, title string, page int) {
	fullName := id + " " + title
	if !s.titles.Register(id, fullName) {
		s.stats.Duplicates++
	}
	s.stats.Headers++
	s.current = &doctree.Section{
		ID:       id,
		Title:    title,
		FullName: fullName,
		Page:     page,
	}
}

func (s *Segmenter) finalize(sink Sink) {
	if s.current == nil {
		return
	}
	sec := s.current
	s.current = nil
	sink(sec)
}

func looksLikeMeasurement(title string) bool {
	fields := strings.Fields(title)
	if len(fields) == 0 {
		return true
	}
	first := strings.TrimRight(fields[0], ",;:)")
	return unitTokens[first]
}

// SplitLines splits page text on '\n', dropping '\r' and the empty element
// after a trailing newline.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	text = strings.TrimSuffix(text, "\n")
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}
