package report

import (
	"strings"
	"unicode/utf8"

	"docassist/internal/industry"
)

const (
	maxTechnologyKeywords = 8
	maxBusinessKeywords   = 8
	maxComplianceKeywords = 6
)

// CategorizeKeywords lists the profile's technologies, keywords and
// regulations that occur in text, in profile order.
func CategorizeKeywords(text string, p industry.Profile) KeywordCategories {
	return categorize(text, industry.CompileProfile(p))
}

func categorize(text string, m industry.ProfileMatchers) KeywordCategories {
	return KeywordCategories{
		Technology: matchedTerms(text, m.Technologies, maxTechnologyKeywords),
		Business:   matchedTerms(text, m.Keywords, maxBusinessKeywords),
		Compliance: matchedTerms(text, m.Regulations, maxComplianceKeywords),
	}
}

func matchedTerms(text string, matchers []industry.Matcher, limit int) []string {
	out := make([]string, 0, limit)
	seen := make(map[string]bool, len(matchers))
	for _, m := range matchers {
		if len(out) == limit {
			break
		}
		key := strings.ToLower(m.Term)
		if seen[key] || !m.Match(text) {
			continue
		}
		seen[key] = true
		out = append(out, m.Term)
	}
	return out
}

// containsAny reports whether lower contains any of the substrings.
func containsAny(lower string, subs ...string) bool {
	for _, s := range subs {
		if strings.Contains(lower, s) {
			return true
		}
	}
	return false
}

// textLength counts runes, not bytes.
func textLength(text string) int {
	return utf8.RuneCountInString(text)
}
