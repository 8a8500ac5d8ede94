package report

import (
	"strings"

	"docassist/internal/industry"
)

const (
	minRisk = 1
	maxRisk = 10

	// mitigationThreshold is the sub-score above which mitigations are attached.
	mitigationThreshold = 6

	longTextRunes = 10000
)

var (
	sensitiveIndustries = map[string]bool{"healthcare": true, "fintech": true}
	modernTech          = []string{"kubernetes", "docker", "microservices", "cloud"}
)

// AssessRisk scores security, compliance and technical risk on a 1..10 scale.
func AssessRisk(text string, p industry.Profile) RiskAssessment {
	lower := strings.ToLower(text)

	security := 3
	if sensitiveIndustries[p.ID] {
		security += 2
	}
	if containsAny(lower, "encryption", "security") {
		security--
	}

	compliance := 4
	if len(p.Regulations) > 2 {
		compliance += 2
	}
	if containsAny(lower, "compliance", "audit") {
		compliance--
	}

	technical := 3
	if textLength(text) > longTextRunes {
		technical++
	}
	if containsAny(lower, modernTech...) {
		technical--
	}

	security = clampRisk(security)
	compliance = clampRisk(compliance)
	technical = clampRisk(technical)

	return RiskAssessment{
		Overall:         max(security, compliance, technical),
		Security:        security,
		Compliance:      compliance,
		Technical:       technical,
		Recommendations: riskMitigations(security, compliance, technical),
	}
}

func riskMitigations(security, compliance, technical int) []string {
	out := []string{}
	if security > mitigationThreshold {
		out = append(out,
			"Security audit by an external firm",
			"Penetration testing before go-live",
		)
	}
	if compliance > mitigationThreshold {
		out = append(out,
			"Compliance advice from legal experts",
			"Schedule regular compliance audits",
		)
	}
	if technical > mitigationThreshold {
		out = append(out,
			"Proof of concept for critical components",
			"Experienced architects for system design",
		)
	}
	return out
}

func clampRisk(v int) int {
	return min(maxRisk, max(minRisk, v))
}
