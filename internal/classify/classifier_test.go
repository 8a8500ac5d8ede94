package classify

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docassist/internal/industry"
)

func newTestClassifier(t *testing.T) *Classifier {
	t.Helper()
	return New(industry.Default())
}

func TestClassifyEmptyTextFallsBackToFirstProfile(t *testing.T) {
	c := newTestClassifier(t)

	for _, text := range []string{"", "   \n\t "} {
		r := c.Classify(text)
		assert.Equal(t, "ecommerce", r.Industry.ID)
		assert.Equal(t, MinConfidence, r.Confidence)
		assert.False(t, r.Pinned)
	}
}

func TestClassifyTieGoesToEarlierProfile(t *testing.T) {
	c := newTestClassifier(t)

	// "payment" is a keyword of both ecommerce and fintech.
	text := "payment"
	first := c.Classify(text)
	second := c.Classify(text)

	assert.Equal(t, "ecommerce", first.Industry.ID)
	assert.Equal(t, first, second)

	scores := c.Scores(text)
	require.Len(t, scores, industry.Default().Len())
	assert.Equal(t, 1.0, scores[0].Total)
	assert.Equal(t, 1.0, scores[2].Total)
}

func TestClassifyTechnologyHalfWeight(t *testing.T) {
	c := newTestClassifier(t)

	scores := c.Scores("FHIR and HL7 feeds")
	var healthcare Score
	for _, s := range scores {
		if s.IndustryID == "healthcare" {
			healthcare = s
		}
	}
	assert.Equal(t, 0, healthcare.KeywordHits)
	assert.Equal(t, 2, healthcare.TechnologyHits)
	assert.Equal(t, 1.0, healthcare.Total)
	assert.Equal(t, "healthcare", c.Classify("FHIR and HL7 feeds").Industry.ID)
}

func TestClassifyConfidenceNormalizedByWordCount(t *testing.T) {
	c := newTestClassifier(t)

	text := "patient diagnosis clinic " + strings.Repeat("lorem ", 97)
	r := c.Classify(text)
	assert.Equal(t, "healthcare", r.Industry.ID)
	assert.Equal(t, 30, r.Confidence)
}

func TestClassifyDeterministicAndBounded(t *testing.T) {
	c := newTestClassifier(t)

	texts := []string{
		"",
		"Kubernetes Docker microservices cloud",
		"We run an online shop with checkout, payment and shipping for mobile commerce.",
		"Predictive maintenance on the smart factory floor using MQTT sensor data.",
		strings.Repeat("unrelated words only ", 500),
	}
	for _, text := range texts {
		a := c.Scores(text)
		b := c.Scores(text)
		assert.Equal(t, a, b)
		for _, s := range a {
			assert.GreaterOrEqual(t, s.Total, 0.0)
		}
		r := c.Classify(text)
		assert.GreaterOrEqual(t, r.Confidence, MinConfidence)
		assert.LessOrEqual(t, r.Confidence, MaxConfidence)
	}
}

func TestResolve(t *testing.T) {
	c := newTestClassifier(t)

	r, err := c.Resolve("an online shop with checkout", "it")
	require.NoError(t, err)
	assert.Equal(t, "it", r.Industry.ID)
	assert.Equal(t, PinnedConfidence, r.Confidence)
	assert.True(t, r.Pinned)

	r, err = c.Resolve("an online shop with checkout", Auto)
	require.NoError(t, err)
	assert.Equal(t, "ecommerce", r.Industry.ID)

	r, err = c.Resolve("", "")
	require.NoError(t, err)
	assert.Equal(t, MinConfidence, r.Confidence)

	_, err = c.Resolve("text", "aerospace")
	assert.ErrorIs(t, err, ErrUnknownIndustry)
}

func TestConfidence(t *testing.T) {
	tests := []struct {
		score float64
		words int
		want  int
	}{
		{score: 0, words: 1, want: MinConfidence},
		{score: 1, words: 200, want: MinConfidence},
		{score: 3, words: 100, want: 30},
		{score: 0.5, words: 40, want: 13},
		{score: 50, words: 10, want: MaxConfidence},
		{score: 1, words: 0, want: MaxConfidence},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Confidence(tt.score, tt.words), "score=%v words=%d", tt.score, tt.words)
	}
}

func TestCachedClassifier(t *testing.T) {
	cached, err := NewCached(newTestClassifier(t), 2)
	require.NoError(t, err)

	text := "Fraud detection for banking and trading"
	first := cached.Classify(text)
	second := cached.Classify(text)
	assert.Equal(t, first, second)
	assert.Equal(t, "fintech", first.Industry.ID)
	assert.Equal(t, 1, cached.Len())

	_, err = cached.Resolve(text, "healthcare")
	require.NoError(t, err)
	assert.Equal(t, 1, cached.Len(), "pinned selections are not cached")

	first.Industry.Keywords[0] = "mutated"
	third := cached.Classify(text)
	assert.Equal(t, "payment", third.Industry.Keywords[0])

	cached.Classify("a")
	cached.Classify("b")
	assert.Equal(t, 2, cached.Len())

	cached.Purge()
	assert.Equal(t, 0, cached.Len())
}

func TestClassifyGermanTerms(t *testing.T) {
	c := newTestClassifier(t)

	cases := map[string]string{
		"Digitale Patientenakte für das Krankenhaus und die Klinik": "healthcare",
		"Warenkorb, Bestellung und Versand im neuen Webshop":         "ecommerce",
		"Überweisung per Kreditkarte":                                 "fintech",
		"Produktion und Fertigung mit Robotik":                        "manufacturing",
	}
	for text, want := range cases {
		assert.Equal(t, want, c.Classify(text).Industry.ID, text)
	}
}
