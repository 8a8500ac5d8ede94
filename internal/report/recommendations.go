package report

import "strings"

type recommendationRule struct {
	priority Priority
	text     string
	// triggers gate the rule on any of these lower-case substrings; empty means always.
	triggers []string
}

var (
	mobileTriggers      = []string{"mobile", "conversion"}
	paymentTriggers     = []string{"payment", "checkout"}
	performanceTriggers = []string{"performance", "speed"}
)

var recommendationRules = map[string][]recommendationRule{
	"ecommerce": {
		{PriorityHigh, "Progressive Web App (PWA) for a better mobile experience", mobileTriggers},
		{PriorityHigh, "Mobile-first design with touch-optimized navigation", mobileTriggers},
		{PriorityHigh, "Integrated payment solutions (Stripe, PayPal, Klarna)", paymentTriggers},
		{PriorityMedium, "One-click checkout for returning customers", paymentTriggers},
		{PriorityHigh, "CDN implementation for global performance", performanceTriggers},
		{PriorityMedium, "Image optimization with WebP/AVIF formats", performanceTriggers},
		{PriorityLow, "A/B testing framework for conversion optimization", nil},
		{PriorityLow, "Personalized product recommendations with machine learning", nil},
	},
	"healthcare": {
		{PriorityHigh, "End-to-end encryption for patient data", nil},
		{PriorityHigh, "HIPAA-compliant data storage and processing", nil},
		{PriorityHigh, "Audit logging for all critical operations", nil},
		{PriorityMedium, "FHIR standard for data interoperability", nil},
		{PriorityMedium, "Multi-factor authentication for all users", nil},
		{PriorityLow, "Telemedicine integration for remote consultations", nil},
	},
	"fintech": {
		{PriorityHigh, "PCI-DSS Level 1 compliance for payment processing", nil},
		{PriorityHigh, "Real-time fraud detection with machine learning", nil},
		{PriorityHigh, "Strong Customer Authentication (SCA) under PSD2", nil},
		{PriorityMedium, "Tokenization of sensitive financial data", nil},
		{PriorityMedium, "API rate limiting and DDoS protection", nil},
		{PriorityLow, "Blockchain integration for transparency", nil},
	},
	"manufacturing": {
		{PriorityHigh, "MQTT protocol for IoT sensor communication", nil},
		{PriorityHigh, "Edge computing for latency-critical workloads", nil},
		{PriorityMedium, "Predictive maintenance with machine learning", nil},
		{PriorityMedium, "InfluxDB for sensor time-series data", nil},
		{PriorityLow, "Digital twin implementation for simulation", nil},
		{PriorityLow, "Automated quality control with computer vision", nil},
	},
	"automotive": {
		{PriorityHigh, "ISO 26262 functional safety process for safety-relevant components", nil},
		{PriorityHigh, "Secure over-the-air update pipeline (UNECE R156)", nil},
		{PriorityHigh, "Cybersecurity management system per ISO 21434 and UNECE R155", []string{"connected", "telematics", "ota"}},
		{PriorityMedium, "Hardware-in-the-loop test automation", nil},
		{PriorityMedium, "AUTOSAR-compliant software architecture", nil},
		{PriorityLow, "Digital twin for virtual vehicle validation", nil},
	},
	"it": {
		{PriorityHigh, "CI/CD pipeline with automated testing", nil},
		{PriorityHigh, "Security by design with centralized identity management (OAuth2/OIDC)", nil},
		{PriorityHigh, "API-first design with versioned OpenAPI contracts", []string{"api", "integration"}},
		{PriorityMedium, "Container orchestration with Kubernetes for scalable deployments", nil},
		{PriorityMedium, "Observability with centralized logging, metrics and tracing", nil},
		{PriorityLow, "AI integration for document processing", nil},
	},
}

// GenerateRecommendations applies the rule table of profileID to text.
// Unknown ids yield empty buckets.
func GenerateRecommendations(text, profileID string) Recommendations {
	out := Recommendations{High: []string{}, Medium: []string{}, Low: []string{}}
	lower := strings.ToLower(text)
	for _, rule := range recommendationRules[profileID] {
		if len(rule.triggers) > 0 && !containsAny(lower, rule.triggers...) {
			continue
		}
		switch rule.priority {
		case PriorityHigh:
			out.High = append(out.High, rule.text)
		case PriorityMedium:
			out.Medium = append(out.Medium, rule.text)
		default:
			out.Low = append(out.Low, rule.text)
		}
	}
	return out
}
