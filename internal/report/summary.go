package report

import (
	"fmt"
	"strings"

	"docassist/internal/industry"
)

const (
	summaryLines = 3
	excerptRunes = 200
)

// Summarize wraps an excerpt of the first non-empty lines of text in a
// template naming the industry and its focus areas.
func Summarize(text string, p industry.Profile) string {
	lines := make([]string, 0, summaryLines)
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lines = append(lines, line)
		if len(lines) == summaryLines {
			break
		}
	}
	excerpt := strings.Join(lines, " ")
	if r := []rune(excerpt); len(r) > excerptRunes {
		excerpt = string(r[:excerptRunes])
	}
	return fmt.Sprintf("%s project: %s... [Analyzed with industry-specific rules for %s]",
		p.Name, excerpt, strings.Join(p.FocusAreas, ", "))
}
