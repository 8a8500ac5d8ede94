package report

import (
	"fmt"
	"math"
	"slices"

	"docassist/internal/industry"
)

const (
	baseBudget          = 100000
	budgetComplexityCap = 3.0
	budgetTextUnit      = 10000.0
	budgetMinFactor     = 0.8
	budgetMaxFactor     = 1.3

	defaultBaseMonths     = 6
	timelineComplexityCap = 2.0
	timelineTextUnit      = 15000.0
)

var budgetMultipliers = map[string]float64{
	"ecommerce":     1.0,
	"it":            1.2,
	"manufacturing": 1.5,
	"healthcare":    1.8,
	"fintech":       2.0,
	"automotive":    2.0,
}

var baseMonths = map[string]int{
	"ecommerce":     6,
	"manufacturing": 9,
	"healthcare":    12,
	"fintech":       15,
	"automotive":    18,
}

// EstimateBudget scales the base budget by text complexity and industry.
func EstimateBudget(text string, p industry.Profile) Budget {
	multiplier, ok := budgetMultipliers[p.ID]
	if !ok {
		multiplier = 1.0
	}
	complexity := math.Min(budgetComplexityCap, 1+float64(textLength(text))/budgetTextUnit)
	estimate := baseBudget * complexity * multiplier

	return Budget{
		Min:        int(math.Round(estimate * budgetMinFactor)),
		Max:        int(math.Round(estimate * budgetMaxFactor)),
		Confidence: levelMedium,
		Factors: []string{
			fmt.Sprintf("Industry: %s (%vx)", p.Name, multiplier),
			fmt.Sprintf("Complexity: %.1fx", complexity),
			"Compliance requirements considered",
			"Security standards included",
		},
	}
}

// EstimateTimeline returns the duration in months with its phase plan and critical path.
func EstimateTimeline(text string, p industry.Profile) Timeline {
	months, ok := baseMonths[p.ID]
	if !ok {
		months = defaultBaseMonths
	}
	complexity := math.Min(timelineComplexityCap, 1+float64(textLength(text))/timelineTextUnit)

	return Timeline{
		Estimated:    int(math.Round(float64(months) * complexity)),
		Phases:       projectPhases(p.ID),
		CriticalPath: criticalPath(p.ID),
	}
}

func projectPhases(id string) []Phase {
	phases := []Phase{
		{Name: "Discovery & Planning", Duration: 1, Dependencies: []string{}, Deliverables: []string{"Requirements", "Architecture"}},
		{Name: "Core Development", Duration: 3, Dependencies: []string{"Discovery & Planning"}, Deliverables: []string{"MVP", "Core Features"}},
		{Name: "Integration & Testing", Duration: 2, Dependencies: []string{"Core Development"}, Deliverables: []string{"Integrations", "Test Results"}},
		{Name: "Launch & Support", Duration: 1, Dependencies: []string{"Integration & Testing"}, Deliverables: []string{"Go-Live", "Documentation"}},
	}

	switch id {
	case "healthcare":
		phases = slices.Insert(phases, 2, Phase{
			Name:         "Compliance Validation",
			Duration:     1,
			Dependencies: []string{"Core Development"},
			Deliverables: []string{"HIPAA Audit", "Security Certification"},
		})
	case "automotive":
		phases = slices.Insert(phases, 2, Phase{
			Name:         "Safety Certification",
			Duration:     2,
			Dependencies: []string{"Core Development"},
			Deliverables: []string{"ISO 26262 Safety Case", "Homologation Documents"},
		})
	}
	return phases
}

func criticalPath(id string) []string {
	path := []string{"Requirements Analysis", "Architecture Design", "Core Development"}
	switch id {
	case "healthcare":
		path = append(path, "Security Implementation", "HIPAA Compliance")
	case "fintech":
		path = append(path, "Security Implementation", "Payment Integration", "Fraud Detection")
	case "ecommerce":
		path = append(path, "Payment Integration", "Mobile Optimization")
	case "automotive":
		path = append(path, "Functional Safety Analysis", "Safety Certification")
	}
	return append(path, "Testing", "Go-Live")
}
