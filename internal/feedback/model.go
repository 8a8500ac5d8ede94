package feedback

import (
	"errors"
	"time"
)

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrAnalysisNotFound = errors.New("analysis not found")
)

const (
	AspectSummary         = "summary"
	AspectKeywords        = "keywords"
	AspectRecommendations = "recommendations"

	minRating = 1
	maxRating = 5

	// Quick feedback maps helpful/not helpful onto these ratings.
	helpfulRating   = 4
	unhelpfulRating = 2
)

// Feedback is one user rating of an analysis. Zero ratings mean "not rated".
type Feedback struct {
	ID                     string    `json:"feedbackId"`
	AnalysisID             string    `json:"analysisId"`
	OverallRating          int       `json:"overallRating,omitempty"`
	SummaryRating          int       `json:"summaryRating,omitempty"`
	KeywordsRating         int       `json:"keywordsRating,omitempty"`
	RecommendationsRating  int       `json:"recommendationsRating,omitempty"`
	SummaryHelpful         *bool     `json:"summaryHelpful,omitempty"`
	KeywordsHelpful        *bool     `json:"keywordsHelpful,omitempty"`
	RecommendationsHelpful *bool     `json:"recommendationsHelpful,omitempty"`
	Comment                string    `json:"comment,omitempty"`
	Quick                  bool      `json:"quick"`
	ClientIP               string    `json:"-"`
	UserAgent              string    `json:"-"`
	CreatedAt              time.Time `json:"createdAt"`
}

// QualityReport aggregates all feedback.
type QualityReport struct {
	TotalFeedbackCount     int                `json:"totalFeedbackCount"`
	AverageOverall         float64            `json:"averageOverallRating"`
	AverageSummary         float64            `json:"averageSummaryRating"`
	AverageKeywords        float64            `json:"averageKeywordsRating"`
	AverageRecommendations float64            `json:"averageRecommendationsRating"`
	WeeklyAverageRating    float64            `json:"weeklyAverageRating"`
	HelpfulRates           map[string]float64 `json:"helpfulRates"`
	Suggestions            []string           `json:"suggestions"`
	SuggestionsCount       int                `json:"suggestionsCount"`
	GeneratedAt            time.Time          `json:"generatedAt"`
}
