package report

import (
	"errors"
	"unicode/utf8"

	"docassist/internal/classify"
	"docassist/internal/industry"
)

// ErrInvalidInput is returned for text that is not valid UTF-8.
var ErrInvalidInput = errors.New("invalid input")

// Synthesizer derives reports using the precompiled matchers of a catalog.
type Synthesizer struct {
	catalog *industry.Catalog
}

func NewSynthesizer(catalog *industry.Catalog) *Synthesizer {
	return &Synthesizer{catalog: catalog}
}

// Synthesize builds the full report for text and a classification result.
func (s *Synthesizer) Synthesize(text string, r classify.Result) Report {
	p := r.Industry
	return Report{
		DetectedIndustry: DetectedIndustry{
			Industry:   p.Clone(),
			Confidence: r.Confidence,
			Pinned:     r.Pinned,
		},
		Summary:           Summarize(text, p),
		KeywordCategories: categorize(text, s.catalog.MatchersFor(p)),
		Recommendations:   GenerateRecommendations(text, p.ID),
		EstimatedBudget:   EstimateBudget(text, p),
		Timeline:          EstimateTimeline(text, p),
		RecommendedStack:  RecommendStack(p.ID),
		SuccessMetrics:    DefineSuccessMetrics(p.ID),
		ComplianceResults: AssessCompliance(text, p),
		RiskAssessment:    AssessRisk(text, p),
	}
}

// Engine couples industry detection with report synthesis.
type Engine struct {
	detector    classify.Detector
	synthesizer *Synthesizer
}

func NewEngine(detector classify.Detector, synthesizer *Synthesizer) *Engine {
	return &Engine{detector: detector, synthesizer: synthesizer}
}

// ClassifyAndSynthesize resolves the industry for text (auto-detected unless
// selected names a profile) and returns the synthesized report.
func (e *Engine) ClassifyAndSynthesize(text, selected string) (Report, error) {
	if !utf8.ValidString(text) {
		return Report{}, ErrInvalidInput
	}
	r, err := e.detector.Resolve(text, selected)
	if err != nil {
		return Report{}, err
	}
	return e.synthesizer.Synthesize(text, r), nil
}

// Detect exposes the underlying classification without synthesis.
func (e *Engine) Detect(text string) (classify.Result, []classify.Score, error) {
	if !utf8.ValidString(text) {
		return classify.Result{}, nil, ErrInvalidInput
	}
	return e.detector.Classify(text), e.detector.Scores(text), nil
}
