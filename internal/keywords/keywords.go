// Package keywords matches skill phrases against free text on word boundaries.
package keywords

import (
	"strings"
	"unicode"
)

// Normalize lowercases s and collapses it into space separated tokens.
// Letters, digits and the characters + # . are word characters so that
// "c++", "c#" and "node.js" survive; trailing dots are dropped.
func Normalize(s string) string {
	var (
		out  strings.Builder
		word strings.Builder
	)
	flush := func() {
		w := strings.TrimRight(word.String(), ".")
		word.Reset()
		if w == "" {
			return
		}
		if out.Len() > 0 {
			out.WriteByte(' ')
		}
		out.WriteString(w)
	}
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '+' || r == '#' || r == '.' {
			word.WriteRune(r)
		} else {
			flush()
		}
	}
	flush()
	return out.String()
}

// Matcher holds normalized text for repeated phrase lookups.
type Matcher struct {
	padded string
}

func NewMatcher(text string) Matcher {
	return Matcher{padded: " " + Normalize(text) + " "}
}

// Has reports whether phrase occurs in the text as whole tokens.
func (m Matcher) Has(phrase string) bool {
	p := Normalize(phrase)
	if p == "" {
		return false
	}
	return strings.Contains(m.padded, " "+p+" ")
}

// Find returns the phrases present in the text, in the order given and
// without duplicates.
func (m Matcher) Find(phrases []string) []string {
	found := []string{}
	seen := make(map[string]bool, len(phrases))
	for _, p := range phrases {
		if seen[p] || !m.Has(p) {
			continue
		}
		seen[p] = true
		found = append(found, p)
	}
	return found
}
