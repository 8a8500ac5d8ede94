package report

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docassist/internal/classify"
	"docassist/internal/industry"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	catalog := industry.Default()
	return NewEngine(classify.New(catalog), NewSynthesizer(catalog))
}

func profile(t *testing.T, id string) industry.Profile {
	t.Helper()
	p, ok := industry.Default().ByID(id)
	require.True(t, ok, "profile %s", id)
	return p
}

var sampleTexts = []string{
	"",
	"Kubernetes Docker microservices cloud",
	"We need a mobile webshop with checkout, payment via Stripe and PayPal.\nPerformance matters.\nGDPR and PCI-DSS apply.",
	"Hospital patient record system with FHIR, HL7 and DICOM.\nHIPAA audit and encryption required.",
	"Trading platform with fraud detection, SEPA bank transfer and PSD2 authentication on Kafka.",
	"Smart factory: predictive maintenance from sensor data over MQTT into InfluxDB.",
	"Connected car telematics with OTA updates on AUTOSAR and QNX, ISO 26262 ASIL-B.",
	strings.Repeat("Scalable SaaS platform with an API, DevOps and test automation. ", 400),
}

func TestClassifyAndSynthesizeEmptyText(t *testing.T) {
	e := newTestEngine(t)

	r, err := e.ClassifyAndSynthesize("", classify.Auto)
	require.NoError(t, err)

	assert.Equal(t, "ecommerce", r.DetectedIndustry.Industry.ID)
	assert.Equal(t, classify.MinConfidence, r.DetectedIndustry.Confidence)
	assert.Empty(t, r.KeywordCategories.Technology)
	assert.Empty(t, r.KeywordCategories.Business)
	assert.Empty(t, r.KeywordCategories.Compliance)
	assert.NotEmpty(t, r.Recommendations.All())
	assert.Len(t, r.SuccessMetrics, 4)
	assert.Equal(t, Budget{
		Min:        80000,
		Max:        130000,
		Confidence: "medium",
		Factors: []string{
			"Industry: E-Commerce & Retail (1x)",
			"Complexity: 1.0x",
			"Compliance requirements considered",
			"Security standards included",
		},
	}, r.EstimatedBudget)
	assert.Equal(t, 6, r.Timeline.Estimated)
	assert.Len(t, r.ComplianceResults, 4)
}

func TestClassifyAndSynthesizePinned(t *testing.T) {
	e := newTestEngine(t)

	r, err := e.ClassifyAndSynthesize("an online shop with checkout", "fintech")
	require.NoError(t, err)
	assert.Equal(t, "fintech", r.DetectedIndustry.Industry.ID)
	assert.Equal(t, classify.PinnedConfidence, r.DetectedIndustry.Confidence)
	assert.True(t, r.DetectedIndustry.Pinned)

	_, err = e.ClassifyAndSynthesize("text", "aerospace")
	assert.ErrorIs(t, err, classify.ErrUnknownIndustry)

	_, err = e.ClassifyAndSynthesize("bad \xff bytes", classify.Auto)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestReportInvariants(t *testing.T) {
	e := newTestEngine(t)

	for _, text := range sampleTexts {
		for _, selected := range []string{classify.Auto, "ecommerce", "healthcare", "fintech", "manufacturing", "automotive", "it"} {
			r, err := e.ClassifyAndSynthesize(text, selected)
			require.NoError(t, err)

			kc := r.KeywordCategories
			assert.LessOrEqual(t, len(kc.Technology), maxTechnologyKeywords)
			assert.LessOrEqual(t, len(kc.Business), maxBusinessKeywords)
			assert.LessOrEqual(t, len(kc.Compliance), maxComplianceKeywords)
			for _, list := range [][]string{kc.Technology, kc.Business, kc.Compliance} {
				seen := map[string]bool{}
				for _, k := range list {
					assert.False(t, seen[strings.ToLower(k)], "duplicate keyword %q", k)
					seen[strings.ToLower(k)] = true
				}
			}

			assert.GreaterOrEqual(t, r.EstimatedBudget.Min, 0)
			assert.LessOrEqual(t, r.EstimatedBudget.Min, r.EstimatedBudget.Max)

			ra := r.RiskAssessment
			for _, v := range []int{ra.Security, ra.Compliance, ra.Technical} {
				assert.GreaterOrEqual(t, v, minRisk)
				assert.LessOrEqual(t, v, maxRisk)
			}
			assert.Equal(t, max(ra.Security, ra.Compliance, ra.Technical), ra.Overall)

			c := r.DetectedIndustry.Confidence
			assert.GreaterOrEqual(t, c, classify.MinConfidence)
			assert.LessOrEqual(t, c, classify.MaxConfidence)
		}
	}
}

func TestReportJSONRoundTrip(t *testing.T) {
	e := newTestEngine(t)

	for _, text := range sampleTexts {
		r, err := e.ClassifyAndSynthesize(text, classify.Auto)
		require.NoError(t, err)

		data, err := json.Marshal(r)
		require.NoError(t, err)

		var got Report
		require.NoError(t, json.Unmarshal(data, &got))
		assert.Equal(t, r, got)
	}
}

func TestCategorizeKeywords(t *testing.T) {
	text := "React and react, TypeScript, payment via Stripe; GDPR and PCI-DSS."
	got := CategorizeKeywords(text, profile(t, "ecommerce"))

	assert.Equal(t, []string{"React", "TypeScript", "Stripe"}, got.Technology)
	assert.Equal(t, []string{"payment"}, got.Business)
	assert.Equal(t, []string{"GDPR", "PCI-DSS"}, got.Compliance)
}

func TestCategorizeKeywordsCapsAndDedup(t *testing.T) {
	hc := profile(t, "healthcare")
	got := CategorizeKeywords(strings.Join(hc.Technologies, " "), hc)
	assert.Equal(t, hc.Technologies[:maxTechnologyKeywords], got.Technology)

	custom := industry.Profile{
		ID:          "custom",
		Keywords:    []string{"api", "API", "sdk"},
		Regulations: []string{"R1", "R2", "R3", "R4", "R5", "R6", "R7"},
	}
	got = CategorizeKeywords("api sdk R1 R2 R3 R4 R5 R6 R7", custom)
	assert.Equal(t, []string{"api", "sdk"}, got.Business)
	assert.Len(t, got.Compliance, maxComplianceKeywords)
}

func TestGenerateRecommendations(t *testing.T) {
	got := GenerateRecommendations("Mobile checkout with high PERFORMANCE", "ecommerce")
	assert.Len(t, got.High, 4)
	assert.Len(t, got.Medium, 2)
	assert.Len(t, got.Low, 2)

	got = GenerateRecommendations("a plain catalogue", "ecommerce")
	assert.Empty(t, got.High)
	assert.Empty(t, got.Medium)
	assert.Len(t, got.Low, 2)

	for _, id := range []string{"healthcare", "fintech", "manufacturing"} {
		got = GenerateRecommendations("", id)
		assert.NotEmpty(t, got.High, id)
		assert.Len(t, got.Medium, 2, id)
		assert.NotEmpty(t, got.Low, id)
	}

	got = GenerateRecommendations("payment", "unknown")
	assert.Equal(t, Recommendations{High: []string{}, Medium: []string{}, Low: []string{}}, got)
	assert.Empty(t, got.All())
}

func TestAssessComplianceGDPRInHealthcare(t *testing.T) {
	results := AssessCompliance("Patient portal must be GDPR ready.", profile(t, "healthcare"))
	require.Len(t, results, 6)

	byReg := map[string]ComplianceResult{}
	for _, r := range results {
		byReg[r.Regulation] = r
	}

	gdpr := byReg["GDPR"]
	assert.Equal(t, "high", gdpr.Relevance)
	assert.Equal(t, []string{"gdpr"}, gdpr.FoundKeywords)
	assert.Equal(t, "medium", gdpr.RiskLevel)
	assert.NotEmpty(t, gdpr.Requirements)

	hipaa := byReg["HIPAA"]
	assert.Equal(t, "high", hipaa.Relevance)
	assert.Equal(t, []string{"patient"}, hipaa.FoundKeywords)
	assert.Equal(t, "high", hipaa.RiskLevel)

	mdr := byReg["MDR"]
	assert.Equal(t, "low", mdr.Relevance)
	assert.Empty(t, mdr.FoundKeywords)
	assert.Empty(t, mdr.Requirements)
	assert.Equal(t, "high", mdr.RiskLevel)
}

func TestAssessComplianceNamedWithoutKeywords(t *testing.T) {
	results := AssessCompliance("We follow MDR guidance.", profile(t, "healthcare"))
	for _, r := range results {
		if r.Regulation == "MDR" {
			assert.Equal(t, "medium", r.Relevance)
			assert.Equal(t, "medium", r.RiskLevel)
		}
	}
}

func TestAssessRisk(t *testing.T) {
	it := profile(t, "it")

	plain := AssessRisk("A text about nothing in particular", it)
	modern := AssessRisk("Kubernetes Docker microservices cloud", it)
	assert.Equal(t, plain.Technical-1, modern.Technical)

	hc := AssessRisk("", profile(t, "healthcare"))
	assert.Equal(t, 5, hc.Security)
	assert.Equal(t, 6, hc.Compliance)
	assert.Equal(t, 3, hc.Technical)
	assert.Equal(t, 6, hc.Overall)
	assert.Empty(t, hc.Recommendations)

	mitigated := AssessRisk("Encryption and an annual compliance audit.", profile(t, "fintech"))
	assert.Equal(t, 4, mitigated.Security)
	assert.Equal(t, 5, mitigated.Compliance)

	long := AssessRisk(strings.Repeat("x", longTextRunes+1), it)
	assert.Equal(t, 4, long.Technical)

	small := industry.Profile{ID: "small", Regulations: []string{"A"}}
	low := AssessRisk("security compliance docker", small)
	assert.Equal(t, RiskAssessment{Overall: 3, Security: 2, Compliance: 3, Technical: 2, Recommendations: []string{}}, low)
}

func TestRiskMitigations(t *testing.T) {
	assert.Empty(t, riskMitigations(6, 6, 6))
	assert.Len(t, riskMitigations(7, 1, 1), 2)
	assert.Len(t, riskMitigations(7, 7, 7), 6)
	assert.Equal(t, 1, clampRisk(-3))
	assert.Equal(t, 10, clampRisk(12))
}

func TestEstimateBudget(t *testing.T) {
	got := EstimateBudget(strings.Repeat("a", 5000), profile(t, "fintech"))
	assert.Equal(t, 240000, got.Min)
	assert.Equal(t, 390000, got.Max)
	assert.Equal(t, "Industry: Fintech & Banking (2x)", got.Factors[0])
	assert.Equal(t, "Complexity: 1.5x", got.Factors[1])

	capped := EstimateBudget(strings.Repeat("a", 30000), profile(t, "ecommerce"))
	assert.Equal(t, 240000, capped.Min)
	assert.Equal(t, 390000, capped.Max)

	unknown := EstimateBudget("", industry.Profile{ID: "other", Name: "Other"})
	assert.Equal(t, 80000, unknown.Min)

	// Multi-byte runes count once.
	runes := EstimateBudget(strings.Repeat("ü", 5000), profile(t, "ecommerce"))
	assert.Equal(t, 120000, runes.Min)
}

func TestEstimateTimeline(t *testing.T) {
	hc := EstimateTimeline(strings.Repeat("a", 7500), profile(t, "healthcare"))
	assert.Equal(t, 18, hc.Estimated)
	require.Len(t, hc.Phases, 5)
	assert.Equal(t, "Compliance Validation", hc.Phases[2].Name)
	assert.Equal(t, []string{"Core Development"}, hc.Phases[2].Dependencies)
	assert.Equal(t, []string{
		"Requirements Analysis", "Architecture Design", "Core Development",
		"Security Implementation", "HIPAA Compliance", "Testing", "Go-Live",
	}, hc.CriticalPath)

	auto := EstimateTimeline("", profile(t, "automotive"))
	assert.Equal(t, 18, auto.Estimated)
	assert.Equal(t, "Safety Certification", auto.Phases[2].Name)

	fin := EstimateTimeline(strings.Repeat("a", 60000), profile(t, "fintech"))
	assert.Equal(t, 30, fin.Estimated)
	assert.Equal(t, []string{
		"Requirements Analysis", "Architecture Design", "Core Development",
		"Security Implementation", "Payment Integration", "Fraud Detection", "Testing", "Go-Live",
	}, fin.CriticalPath)

	other := EstimateTimeline("", industry.Profile{ID: "other"})
	assert.Equal(t, 6, other.Estimated)
	assert.Len(t, other.Phases, 4)
	assert.Len(t, other.CriticalPath, 5)
}

func TestRecommendStack(t *testing.T) {
	base := RecommendStack("unknown")
	assert.Equal(t, []string{"React 18+", "TypeScript", "Tailwind CSS"}, base.Frontend)
	assert.Equal(t, []string{"PostgreSQL", "Redis"}, base.Database)

	fin := RecommendStack("fintech")
	assert.Equal(t, []string{"Node.js", "Express.js", "PostgreSQL", "Spring Security", "Kafka"}, fin.Backend)
	assert.Contains(t, fin.Database, "Apache Cassandra")

	// Supplements never leak into the next call.
	assert.Equal(t, base, RecommendStack("unknown"))
}

func TestDefineSuccessMetrics(t *testing.T) {
	assert.Len(t, DefineSuccessMetrics("unknown"), 2)

	got := DefineSuccessMetrics("ecommerce")
	require.Len(t, got, 4)
	assert.Equal(t, "Performance", got[0].Name)
	assert.Equal(t, Metric{Name: "Conversion Rate", Current: "2.1%", Target: "4.5%", Improvement: "+114%"}, got[2])
}

func TestSummarize(t *testing.T) {
	ec := profile(t, "ecommerce")

	got := Summarize("\n  First line \n\nSecond\nThird\nFourth", ec)
	assert.Equal(t, "E-Commerce & Retail project: First line Second Third... "+
		"[Analyzed with industry-specific rules for Mobile Experience, Payment Integration, Performance, SEO]", got)

	long := Summarize(strings.Repeat("ä", 300), ec)
	assert.Contains(t, long, ": "+strings.Repeat("ä", 200)+"...")
	assert.NotContains(t, long, strings.Repeat("ä", 201))

	empty := Summarize("", ec)
	assert.True(t, strings.HasPrefix(empty, "E-Commerce & Retail project: ... ["))
}

func TestDetect(t *testing.T) {
	e := newTestEngine(t)

	r, scores, err := e.Detect("FHIR and HL7 feeds")
	require.NoError(t, err)
	assert.Equal(t, "healthcare", r.Industry.ID)
	assert.Len(t, scores, industry.Default().Len())

	_, _, err = e.Detect("\xff")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestFillEmpty(t *testing.T) {
	var r Report
	r.Timeline.Phases = []Phase{{Name: "Discovery"}}
	r.ComplianceResults = []ComplianceResult{{Regulation: "GDPR"}}
	r.FillEmpty()

	assert.NotNil(t, r.DetectedIndustry.Industry.Keywords)
	assert.NotNil(t, r.KeywordCategories.Compliance)
	assert.NotNil(t, r.Recommendations.Low)
	assert.NotNil(t, r.Timeline.Phases[0].Deliverables)
	assert.NotNil(t, r.ComplianceResults[0].FoundKeywords)
	assert.NotNil(t, r.SuccessMetrics)
	assert.NotNil(t, r.RiskAssessment.Recommendations)
}

func TestAssessComplianceGermanPrivacyTerm(t *testing.T) {
	results := AssessCompliance("Der Shop braucht ein Datenschutz-Konzept.", profile(t, "ecommerce"))

	for _, r := range results {
		if r.Regulation != "GDPR" {
			continue
		}
		assert.Equal(t, "high", r.Relevance)
		assert.Equal(t, []string{"datenschutz"}, r.FoundKeywords)
		return
	}
	t.Fatal("GDPR result missing")
}
