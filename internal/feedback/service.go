package feedback

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"docassist/internal/shared/metrics"
	"docassist/internal/shared/telemetry"
)

const maxCommentRunes = 2000

// AnalysisChecker confirms that feedback targets a stored analysis.
type AnalysisChecker interface {
	Exists(ctx context.Context, analysisID string) (bool, error)
}

// Service validates and records feedback.
type Service struct {
	Repo     Repo
	Analyses AnalysisChecker
	Now      func() time.Time
}

// NewService constructs a Service. analyses may be nil to skip the existence check.
func NewService(repo Repo, analyses AnalysisChecker) *Service {
	return &Service{Repo: repo, Analyses: analyses, Now: time.Now}
}

// SubmitInput is a full rating form.
type SubmitInput struct {
	AnalysisID            string
	OverallRating         int
	SummaryRating         int
	KeywordsRating        int
	RecommendationsRating int
	Comment               string
	ClientIP              string
	UserAgent             string
}

// QuickInput is a single helpful/not helpful vote on one aspect.
type QuickInput struct {
	AnalysisID string
	Aspect     string
	Helpful    bool
	ClientIP   string
	UserAgent  string
}

// Submit records a full rating. The overall rating is required; aspect ratings are optional.
func (s *Service) Submit(ctx context.Context, in SubmitInput) (Feedback, error) {
	if in.OverallRating < minRating || in.OverallRating > maxRating {
		return Feedback{}, fmt.Errorf("%w: overallRating must be between %d and %d", ErrInvalidInput, minRating, maxRating)
	}
	for _, r := range []struct {
		name  string
		value int
	}{
		{"summaryRating", in.SummaryRating},
		{"keywordsRating", in.KeywordsRating},
		{"recommendationsRating", in.RecommendationsRating},
	} {
		if r.value != 0 && (r.value < minRating || r.value > maxRating) {
			return Feedback{}, fmt.Errorf("%w: %s must be between %d and %d", ErrInvalidInput, r.name, minRating, maxRating)
		}
	}
	comment := strings.TrimSpace(in.Comment)
	if utf8.RuneCountInString(comment) > maxCommentRunes {
		return Feedback{}, fmt.Errorf("%w: comment exceeds %d characters", ErrInvalidInput, maxCommentRunes)
	}

	f := Feedback{
		AnalysisID:            strings.TrimSpace(in.AnalysisID),
		OverallRating:         in.OverallRating,
		SummaryRating:         in.SummaryRating,
		KeywordsRating:        in.KeywordsRating,
		RecommendationsRating: in.RecommendationsRating,
		Comment:               comment,
		ClientIP:              in.ClientIP,
		UserAgent:             in.UserAgent,
	}
	return s.store(ctx, f)
}

// SubmitQuick records a helpful/not helpful vote as a 4 or 2 rating of the aspect.
func (s *Service) SubmitQuick(ctx context.Context, in QuickInput) (Feedback, error) {
	f := Feedback{
		AnalysisID: strings.TrimSpace(in.AnalysisID),
		Quick:      true,
		ClientIP:   in.ClientIP,
		UserAgent:  in.UserAgent,
	}
	rating := unhelpfulRating
	if in.Helpful {
		rating = helpfulRating
	}
	helpful := in.Helpful

	switch strings.ToLower(strings.TrimSpace(in.Aspect)) {
	case AspectSummary:
		f.SummaryRating, f.SummaryHelpful = rating, &helpful
	case AspectKeywords:
		f.KeywordsRating, f.KeywordsHelpful = rating, &helpful
	case AspectRecommendations, "components":
		f.RecommendationsRating, f.RecommendationsHelpful = rating, &helpful
	default:
		return Feedback{}, fmt.Errorf("%w: type must be summary, keywords or recommendations", ErrInvalidInput)
	}
	return s.store(ctx, f)
}

// ForAnalysis lists the feedback of one analysis.
func (s *Service) ForAnalysis(ctx context.Context, analysisID string) ([]Feedback, error) {
	analysisID = strings.TrimSpace(analysisID)
	if analysisID == "" {
		return nil, fmt.Errorf("%w: analysis id is required", ErrInvalidInput)
	}
	return s.Repo.ListByAnalysis(ctx, analysisID)
}

// QualityReport aggregates all recorded feedback.
func (s *Service) QualityReport(ctx context.Context) (QualityReport, error) {
	items, err := s.Repo.ListAll(ctx)
	if err != nil {
		return QualityReport{}, err
	}
	return BuildQualityReport(items, s.now()), nil
}

func (s *Service) store(ctx context.Context, f Feedback) (Feedback, error) {
	if f.AnalysisID == "" {
		return Feedback{}, fmt.Errorf("%w: analysisId is required", ErrInvalidInput)
	}
	if s.Analyses != nil {
		ok, err := s.Analyses.Exists(ctx, f.AnalysisID)
		if err != nil {
			return Feedback{}, fmt.Errorf("check analysis: %w", err)
		}
		if !ok {
			return Feedback{}, ErrAnalysisNotFound
		}
	}

	f.ID = uuid.NewString()
	f.CreatedAt = s.now()
	if err := s.Repo.Create(ctx, f); err != nil {
		return Feedback{}, fmt.Errorf("save feedback: %w", err)
	}
	metrics.IncFeedbackSubmitted()
	telemetry.Info("feedback.submitted", map[string]any{
		"analysisId":    f.AnalysisID,
		"quick":         f.Quick,
		"overallRating": f.OverallRating,
	})
	return f, nil
}

func (s *Service) now() time.Time {
	if s.Now == nil {
		return time.Now().UTC()
	}
	return s.Now().UTC()
}
