package industry

import (
	"regexp"
	"unicode"
	"unicode/utf8"
)

// Matcher finds case-insensitive, whole-word occurrences of a single catalog term.
// Terms are matched literally; regex metacharacters ("C++", "Vue.js") carry no meaning.
type Matcher struct {
	Term string

	re         *regexp.Regexp
	boundStart bool
	boundEnd   bool
}

// NewMatcher compiles a matcher for term. Word boundaries are only enforced on
// an edge of the term that is itself a word character, so "C++" still matches
// before a space or at the end of the text.
func NewMatcher(term string) Matcher {
	m := Matcher{
		Term: term,
		re:   regexp.MustCompile(`(?i)` + regexp.QuoteMeta(term)),
	}
	if first, _ := utf8.DecodeRuneInString(term); first != utf8.RuneError {
		m.boundStart = isWordRune(first)
	}
	if last, _ := utf8.DecodeLastRuneInString(term); last != utf8.RuneError {
		m.boundEnd = isWordRune(last)
	}
	return m
}

// Count returns the number of non-overlapping whole-word occurrences in text.
func (m Matcher) Count(text string) int {
	if m.re == nil || m.Term == "" || text == "" {
		return 0
	}
	count := 0
	for _, loc := range m.re.FindAllStringIndex(text, -1) {
		if m.atBoundary(text, loc[0], loc[1]) {
			count++
		}
	}
	return count
}

// Match reports whether text contains at least one whole-word occurrence.
func (m Matcher) Match(text string) bool {
	if m.re == nil || m.Term == "" || text == "" {
		return false
	}
	for _, loc := range m.re.FindAllStringIndex(text, -1) {
		if m.atBoundary(text, loc[0], loc[1]) {
			return true
		}
	}
	return false
}

func (m Matcher) atBoundary(text string, start, end int) bool {
	if m.boundStart && start > 0 {
		prev, _ := utf8.DecodeLastRuneInString(text[:start])
		if isWordRune(prev) {
			return false
		}
	}
	if m.boundEnd && end < len(text) {
		next, _ := utf8.DecodeRuneInString(text[end:])
		if isWordRune(next) {
			return false
		}
	}
	return true
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// CompileAll builds matchers for terms in order.
func CompileAll(terms []string) []Matcher {
	out := make([]Matcher, 0, len(terms))
	for _, term := range terms {
		out = append(out, NewMatcher(term))
	}
	return out
}
