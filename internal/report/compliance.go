package report

import (
	"strings"

	"docassist/internal/industry"
)

const (
	levelHigh   = "high"
	levelMedium = "medium"
	levelLow    = "low"
)

var regulationKeywords = map[string][]string{
	"GDPR":      {"privacy", "cookie", "consent", "data protection", "gdpr", "dsgvo", "datenschutz"},
	"HIPAA":     {"patient", "medical", "health", "phi"},
	"PCI-DSS":   {"payment", "card", "transaction", "credit"},
	"ISO 9001":  {"quality", "process", "documentation"},
	"PSD2":      {"payment", "banking", "authentication"},
	"ISO 27001": {"information security", "isms", "access control"},
	"ISO 26262": {"functional safety", "asil", "hazard"},
}

var regulationRequirements = map[string][]string{
	"GDPR":      {"Cookie Consent Management", "Data Anonymization", "Right to be Forgotten"},
	"HIPAA":     {"Administrative Safeguards", "Physical Safeguards", "Technical Safeguards"},
	"PCI-DSS":   {"Secure Network", "Cardholder Data Protection", "Vulnerability Management"},
	"ISO 9001":  {"Quality Management System", "Process Documentation", "Continuous Improvement"},
	"PSD2":      {"Strong Customer Authentication", "Secure Communication", "Transaction Monitoring"},
	"ISO 27001": {"Information Security Management System", "Risk Treatment Plan", "Access Control Policy"},
	"ISO 26262": {"Hazard Analysis and Risk Assessment", "Safety Case", "ASIL Decomposition"},
}

var regulationMatchers = compileRegulationKeywords()

func compileRegulationKeywords() map[string][]industry.Matcher {
	out := make(map[string][]industry.Matcher, len(regulationKeywords))
	for reg, words := range regulationKeywords {
		out[reg] = industry.CompileAll(words)
	}
	return out
}

// AssessCompliance evaluates every regulation of p against text.
func AssessCompliance(text string, p industry.Profile) []ComplianceResult {
	lower := strings.ToLower(text)
	out := make([]ComplianceResult, 0, len(p.Regulations))
	for _, reg := range p.Regulations {
		found := []string{}
		for _, m := range regulationMatchers[reg] {
			if m.Match(text) {
				found = append(found, m.Term)
			}
		}
		named := strings.Contains(lower, strings.ToLower(reg))

		relevance := levelLow
		switch {
		case len(found) > 0:
			relevance = levelHigh
		case named:
			relevance = levelMedium
		}
		// Regulations the text never names are the riskier ones.
		risk := levelHigh
		if named {
			risk = levelMedium
		}

		requirements := append([]string{}, regulationRequirements[reg]...)
		out = append(out, ComplianceResult{
			Regulation:    reg,
			Relevance:     relevance,
			FoundKeywords: found,
			Requirements:  requirements,
			RiskLevel:     risk,
		})
	}
	return out
}
