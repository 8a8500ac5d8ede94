// Package textstats computes lightweight writing statistics for text that is
// still being edited. It runs without the classifier so it can back
// keystroke-rate requests.
package textstats

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	topKeywordLimit  = 5
	minKeywordRunes  = 4
	longSentence     = 25
	minParagraphs    = 3
	paragraphWords   = 200
	minTechTerms     = 3
	technicalWords   = 100
	maxReadability   = 100
	readabilityBase  = 206.835
	readabilitySlope = 1.015
)

const (
	LanguageEnglish = "en"
	LanguageGerman  = "de"
	LanguageUnknown = "unknown"
)

var (
	sentenceSplit  = regexp.MustCompile(`[.!?]+`)
	paragraphSplit = regexp.MustCompile(`\r?\n\s*\r?\n`)

	technicalTerms = wordSet("api", "rest", "json", "sql", "nosql", "docker", "kubernetes",
		"java", "python", "javascript", "react", "angular", "spring")

	englishStopwords = wordSet("the", "and", "for", "with", "that", "this", "are", "our", "will",
		"from", "have", "should", "must", "into", "which", "their", "be", "is", "of", "to")
	germanStopwords = wordSet("der", "die", "das", "und", "mit", "für", "ist", "ein", "eine", "wir",
		"soll", "sollen", "werden", "auf", "von", "zu", "den", "dem", "nicht", "auch")
)

// Stats summarizes a piece of text.
type Stats struct {
	WordCount        int      `json:"wordCount"`
	CharCount        int      `json:"charCount"`
	SentenceCount    int      `json:"sentenceCount"`
	ParagraphCount   int      `json:"paragraphCount"`
	Language         string   `json:"language"`
	TopKeywords      []string `json:"topKeywords"`
	TechnicalTerms   int      `json:"technicalTerms"`
	ReadabilityScore float64  `json:"readabilityScore"`
	Suggestions      []string `json:"suggestions"`
}

// Analyze computes Stats for text. Blank text scores full readability and
// yields no suggestions.
func Analyze(text string) Stats {
	words := strings.Fields(text)
	s := Stats{
		WordCount:        len(words),
		CharCount:        utf8.RuneCountInString(text),
		SentenceCount:    countPieces(sentenceSplit.Split(text, -1)),
		ParagraphCount:   countPieces(paragraphSplit.Split(text, -1)),
		Language:         detectLanguage(words),
		TopKeywords:      topKeywords(words, topKeywordLimit),
		ReadabilityScore: maxReadability,
		Suggestions:      []string{},
	}
	for _, w := range words {
		if _, ok := technicalTerms[normalize(w)]; ok {
			s.TechnicalTerms++
		}
	}
	if s.WordCount == 0 || s.SentenceCount == 0 {
		return s
	}

	avg := float64(s.WordCount) / float64(s.SentenceCount)
	s.ReadabilityScore = clamp(readabilityBase-readabilitySlope*avg, 0, maxReadability)

	if avg > longSentence {
		s.Suggestions = append(s.Suggestions, "Use shorter sentences to improve readability.")
	}
	if s.ParagraphCount < minParagraphs && s.WordCount > paragraphWords {
		s.Suggestions = append(s.Suggestions, "Split the text into more paragraphs.")
	}
	if s.TechnicalTerms < minTechTerms && s.WordCount > technicalWords {
		s.Suggestions = append(s.Suggestions, "Add specific technical details.")
	}
	return s
}

func countPieces(pieces []string) int {
	n := 0
	for _, p := range pieces {
		if strings.TrimSpace(p) != "" {
			n++
		}
	}
	return n
}

// detectLanguage votes between English and German on common function words.
func detectLanguage(words []string) string {
	var en, de int
	for _, w := range words {
		w = normalize(w)
		if _, ok := englishStopwords[w]; ok {
			en++
		}
		if _, ok := germanStopwords[w]; ok {
			de++
		}
	}
	switch {
	case de > en:
		return LanguageGerman
	case en > 0:
		return LanguageEnglish
	default:
		return LanguageUnknown
	}
}

// topKeywords ranks non-stopwords by frequency, breaking ties by first use.
func topKeywords(words []string, limit int) []string {
	counts := map[string]int{}
	order := []string{}
	for _, w := range words {
		w = normalize(w)
		if utf8.RuneCountInString(w) < minKeywordRunes {
			continue
		}
		if _, ok := englishStopwords[w]; ok {
			continue
		}
		if _, ok := germanStopwords[w]; ok {
			continue
		}
		if counts[w] == 0 {
			order = append(order, w)
		}
		counts[w]++
	}
	sort.SliceStable(order, func(i, j int) bool { return counts[order[i]] > counts[order[j]] })
	if len(order) > limit {
		order = order[:limit]
	}
	return order
}

func normalize(word string) string {
	return strings.ToLower(strings.TrimFunc(word, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}))
}

func wordSet(words ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
