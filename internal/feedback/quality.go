package feedback

import (
	"math"
	"time"
)

const (
	weeklyWindow = 7 * 24 * time.Hour
	// Aspects averaging below this rating produce an improvement suggestion.
	suggestionThreshold = 3.5
	minHelpfulRate      = 0.5
)

var aspectSuggestions = map[string]string{
	AspectSummary:         "Summaries are rated low: include more project specifics from the first lines of the document",
	AspectKeywords:        "Keyword extraction is rated low: review the industry keyword and technology lists",
	AspectRecommendations: "Recommendations are rated low: extend the industry recommendation rules",
}

type average struct {
	sum   int
	count int
}

func (a *average) add(rating int) {
	if rating < minRating || rating > maxRating {
		return
	}
	a.sum += rating
	a.count++
}

func (a average) value() float64 {
	if a.count == 0 {
		return 0
	}
	return round2(float64(a.sum) / float64(a.count))
}

type rate struct {
	yes   int
	total int
}

func (r *rate) add(v *bool) {
	if v == nil {
		return
	}
	r.total++
	if *v {
		r.yes++
	}
}

// BuildQualityReport aggregates items as of now.
func BuildQualityReport(items []Feedback, now time.Time) QualityReport {
	var overall, weekly average
	aspects := map[string]*average{
		AspectSummary:         {},
		AspectKeywords:        {},
		AspectRecommendations: {},
	}
	helpful := map[string]*rate{
		AspectSummary:         {},
		AspectKeywords:        {},
		AspectRecommendations: {},
	}

	for _, f := range items {
		overall.add(f.OverallRating)
		if now.Sub(f.CreatedAt) <= weeklyWindow {
			weekly.add(f.OverallRating)
		}
		aspects[AspectSummary].add(f.SummaryRating)
		aspects[AspectKeywords].add(f.KeywordsRating)
		aspects[AspectRecommendations].add(f.RecommendationsRating)
		helpful[AspectSummary].add(f.SummaryHelpful)
		helpful[AspectKeywords].add(f.KeywordsHelpful)
		helpful[AspectRecommendations].add(f.RecommendationsHelpful)
	}

	rates := make(map[string]float64, len(helpful))
	suggestions := []string{}
	for _, aspect := range []string{AspectSummary, AspectKeywords, AspectRecommendations} {
		r := helpful[aspect]
		helpfulRate := -1.0
		if r.total > 0 {
			helpfulRate = round2(float64(r.yes) / float64(r.total))
			rates[aspect] = helpfulRate
		}
		avg := aspects[aspect]
		lowRating := avg.count > 0 && avg.value() < suggestionThreshold
		lowHelpful := helpfulRate >= 0 && helpfulRate < minHelpfulRate
		if lowRating || lowHelpful {
			suggestions = append(suggestions, aspectSuggestions[aspect])
		}
	}

	return QualityReport{
		TotalFeedbackCount:     len(items),
		AverageOverall:         overall.value(),
		AverageSummary:         aspects[AspectSummary].value(),
		AverageKeywords:        aspects[AspectKeywords].value(),
		AverageRecommendations: aspects[AspectRecommendations].value(),
		WeeklyAverageRating:    weekly.value(),
		HelpfulRates:           rates,
		Suggestions:            suggestions,
		SuggestionsCount:       len(suggestions),
		GeneratedAt:            now,
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
