package extract

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"
)

const (
	maxKeyPhrases   = 15
	minPhraseLength = 4
	maxPhraseLength = 49
)

var keyPhrasePatterns = []*regexp.Regexp{
	// Capitalized terms, up to four words on one line.
	regexp.MustCompile(`\b[A-Z][A-Za-z]*(?:[ \t]+[A-Z][A-Za-z]*){0,3}\b`),
	regexp.MustCompile(`(?i)\b(?:power|thermal|cooling|rack|server|module|interface|protocol|` +
		`connector|voltage|current|temperature|efficiency|airflow|` +
		`management|controller|sensor|fan|supply)\b`),
	// Measurements.
	regexp.MustCompile(`\b\d+(?:\.\d+)?\s*(?:°C|°F|%|(?:V|A|W|mm|cm|m|GB|TB|MHz|GHz|Gbps|kg|lbs|dB)\b)`),
}

// KeyPhrases mines technical terms from section content. The result is
// advisory and ranked by how often each phrase occurs, case-insensitively.
type KeyPhrases struct {
	Limit int
}

func NewKeyPhrases() *KeyPhrases {
	return &KeyPhrases{Limit: maxKeyPhrases}
}

// Extract returns at most Limit phrases, most frequent first, ties in
// lexical order. Empty content yields an empty, non-nil slice.
func (k *KeyPhrases) Extract(content string) []string {
	seen := make(map[string]bool)
	for _, p := range keyPhrasePatterns {
		for _, m := range p.FindAllString(content, -1) {
			m = strings.TrimSpace(m)
			if n := utf8.RuneCountInString(m); n < minPhraseLength || n > maxPhraseLength {
				continue
			}
			seen[m] = true
		}
	}

	lower := strings.ToLower(content)
	type ranked struct {
		phrase string
		count  int
	}
	all := make([]ranked, 0, len(seen))
	for p := range seen {
		all = append(all, ranked{phrase: p, count: strings.Count(lower, strings.ToLower(p))})
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].count != all[j].count {
			return all[i].count > all[j].count
		}
		return all[i].phrase < all[j].phrase
	})

	limit := k.Limit
	if limit <= 0 {
		limit = maxKeyPhrases
	}
	if len(all) > limit {
		all = all[:limit]
	}
	out := make([]string, 0, len(all))
	for _, r := range all {
		out = append(out, r.phrase)
	}
	return out
}
