package report

import "docassist/internal/industry"

// Priority names one recommendation bucket.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Report is the complete analysis of one text. It is built once and never mutated.
type Report struct {
	DetectedIndustry  DetectedIndustry   `json:"detectedIndustry"`
	Summary           string             `json:"summary"`
	KeywordCategories KeywordCategories  `json:"keywordCategories"`
	Recommendations   Recommendations    `json:"recommendations"`
	EstimatedBudget   Budget             `json:"estimatedBudget"`
	Timeline          Timeline           `json:"timeline"`
	RecommendedStack  Stack              `json:"recommendedStack"`
	SuccessMetrics    []Metric           `json:"successMetrics"`
	ComplianceResults []ComplianceResult `json:"complianceResults"`
	RiskAssessment    RiskAssessment     `json:"riskAssessment"`
}

// DetectedIndustry is the classified (or pinned) profile with its confidence.
type DetectedIndustry struct {
	Industry   industry.Profile `json:"industry"`
	Confidence int              `json:"confidence"`
	Pinned     bool             `json:"pinned,omitempty"`
}

type KeywordCategories struct {
	Technology []string `json:"technology"`
	Business   []string `json:"business"`
	Compliance []string `json:"compliance"`
}

type Recommendations struct {
	High   []string `json:"high"`
	Medium []string `json:"medium"`
	Low    []string `json:"low"`
}

// All returns every recommendation ordered high, medium, low.
func (r Recommendations) All() []string {
	out := make([]string, 0, len(r.High)+len(r.Medium)+len(r.Low))
	out = append(out, r.High...)
	out = append(out, r.Medium...)
	return append(out, r.Low...)
}

type Budget struct {
	Min        int      `json:"min"`
	Max        int      `json:"max"`
	Confidence string   `json:"confidence"`
	Factors    []string `json:"factors"`
}

type Phase struct {
	Name         string   `json:"name"`
	Duration     int      `json:"duration"`
	Dependencies []string `json:"dependencies"`
	Deliverables []string `json:"deliverables"`
}

// Timeline holds the estimated duration in months, the phase plan and the critical path.
type Timeline struct {
	Estimated    int      `json:"estimated"`
	Phases       []Phase  `json:"phases"`
	CriticalPath []string `json:"criticalPath"`
}

type Stack struct {
	Frontend       []string `json:"frontend"`
	Backend        []string `json:"backend"`
	Database       []string `json:"database"`
	Infrastructure []string `json:"infrastructure"`
}

type Metric struct {
	Name        string `json:"name"`
	Current     string `json:"current"`
	Target      string `json:"target"`
	Improvement string `json:"improvement"`
}

// ComplianceResult is the assessment of one regulation of the profile.
type ComplianceResult struct {
	Regulation    string   `json:"regulation"`
	Relevance     string   `json:"relevance"`
	FoundKeywords []string `json:"foundKeywords"`
	Requirements  []string `json:"requirements"`
	RiskLevel     string   `json:"riskLevel"`
}

// RiskAssessment scores are integers in [1, 10]; Overall is the maximum of the three.
type RiskAssessment struct {
	Overall         int      `json:"overall"`
	Security        int      `json:"security"`
	Compliance      int      `json:"compliance"`
	Technical       int      `json:"technical"`
	Recommendations []string `json:"recommendations"`
}

// FillEmpty replaces nil slices with empty ones so a decoded report
// serializes the same way as a synthesized one.
func (r *Report) FillEmpty() {
	fill := func(s *[]string) {
		if *s == nil {
			*s = []string{}
		}
	}
	p := &r.DetectedIndustry.Industry
	for _, s := range []*[]string{&p.Keywords, &p.Technologies, &p.Regulations, &p.KPIs, &p.FocusAreas} {
		fill(s)
	}
	for _, s := range []*[]string{
		&r.KeywordCategories.Technology, &r.KeywordCategories.Business, &r.KeywordCategories.Compliance,
		&r.Recommendations.High, &r.Recommendations.Medium, &r.Recommendations.Low,
		&r.EstimatedBudget.Factors, &r.Timeline.CriticalPath,
		&r.RecommendedStack.Frontend, &r.RecommendedStack.Backend, &r.RecommendedStack.Database, &r.RecommendedStack.Infrastructure,
		&r.RiskAssessment.Recommendations,
	} {
		fill(s)
	}
	if r.Timeline.Phases == nil {
		r.Timeline.Phases = []Phase{}
	}
	for i := range r.Timeline.Phases {
		fill(&r.Timeline.Phases[i].Dependencies)
		fill(&r.Timeline.Phases[i].Deliverables)
	}
	if r.SuccessMetrics == nil {
		r.SuccessMetrics = []Metric{}
	}
	if r.ComplianceResults == nil {
		r.ComplianceResults = []ComplianceResult{}
	}
	for i := range r.ComplianceResults {
		fill(&r.ComplianceResults[i].FoundKeywords)
		fill(&r.ComplianceResults[i].Requirements)
	}
}
