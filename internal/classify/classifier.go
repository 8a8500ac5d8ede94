package classify

import (
	"errors"
	"math"
	"strings"

	"docassist/internal/industry"
)

const (
	// Auto is the selection token that asks for automatic detection.
	Auto = "auto"

	MinConfidence    = 10
	MaxConfidence    = 95
	PinnedConfidence = MaxConfidence

	technologyWeight = 0.5
)

// ErrUnknownIndustry is returned when a pinned industry id is not in the catalog.
var ErrUnknownIndustry = errors.New("unknown industry")

// Result is the outcome of a classification.
type Result struct {
	Industry   industry.Profile `json:"industry"`
	Confidence int              `json:"confidence"`
	Pinned     bool             `json:"pinned"`
}

// Score is the per-profile breakdown of a classification.
type Score struct {
	IndustryID     string  `json:"industryId"`
	KeywordHits    int     `json:"keywordHits"`
	TechnologyHits int     `json:"technologyHits"`
	Total          float64 `json:"total"`
}

// Classifier scores text against a catalog. It holds no mutable state.
type Classifier struct {
	catalog *industry.Catalog
}

// New constructs a Classifier over catalog.
func New(catalog *industry.Catalog) *Classifier {
	return &Classifier{catalog: catalog}
}

// Catalog returns the catalog the classifier scores against.
func (c *Classifier) Catalog() *industry.Catalog {
	return c.catalog
}

// Scores returns the score of every profile in catalog order.
func (c *Classifier) Scores(text string) []Score {
	profiles := c.catalog.All()
	out := make([]Score, 0, len(profiles))
	for _, p := range profiles {
		m, _ := c.catalog.Matchers(p.ID)
		s := Score{IndustryID: p.ID}
		for _, km := range m.Keywords {
			s.KeywordHits += km.Count(text)
		}
		for _, tm := range m.Technologies {
			s.TechnologyHits += tm.Count(text)
		}
		s.Total = float64(s.KeywordHits) + technologyWeight*float64(s.TechnologyHits)
		out = append(out, s)
	}
	return out
}

// Classify picks the best-scoring profile. Ties go to the earlier profile.
func (c *Classifier) Classify(text string) Result {
	scores := c.Scores(text)
	best := 0
	for i := 1; i < len(scores); i++ {
		if scores[i].Total > scores[best].Total {
			best = i
		}
	}
	p, _ := c.catalog.ByID(scores[best].IndustryID)
	return Result{
		Industry:   p,
		Confidence: Confidence(scores[best].Total, WordCount(text)),
	}
}

// Resolve classifies text unless selected names a catalog profile, in which
// case that profile is returned with PinnedConfidence.
func (c *Classifier) Resolve(text, selected string) (Result, error) {
	if IsAuto(selected) {
		return c.Classify(text), nil
	}
	p, ok := c.catalog.ByID(selected)
	if !ok {
		return Result{}, ErrUnknownIndustry
	}
	return Result{Industry: p, Confidence: PinnedConfidence, Pinned: true}, nil
}

// IsAuto reports whether selected requests automatic detection.
func IsAuto(selected string) bool {
	selected = strings.TrimSpace(selected)
	return selected == "" || selected == Auto
}

// Confidence maps a raw score to a percentage in [MinConfidence, MaxConfidence].
// It is a heuristic, not a calibrated probability.
func Confidence(score float64, words int) int {
	if words < 1 {
		words = 1
	}
	v := int(math.Round(score / float64(words) * 1000))
	if v > MaxConfidence {
		return MaxConfidence
	}
	if v < MinConfidence {
		return MinConfidence
	}
	return v
}

// WordCount counts whitespace-separated tokens; empty text counts as one word.
func WordCount(text string) int {
	n := len(strings.Fields(text))
	if n == 0 {
		return 1
	}
	return n
}
