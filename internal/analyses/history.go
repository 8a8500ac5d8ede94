package analyses

import (
	"context"
	"math"

	"docassist/internal/documents"
	"docassist/internal/feedback"
)

// FeedbackSource lists the feedback recorded against an analysis.
type FeedbackSource interface {
	ForAnalysis(ctx context.Context, analysisID string) ([]feedback.Feedback, error)
}

// DocumentHistory collects everything recorded about one document.
type DocumentHistory struct {
	Analyses        []Summary           `json:"analyses"`
	FeedbackHistory []feedback.Feedback `json:"feedbackHistory"`
	FeedbackCount   int                 `json:"feedbackCount"`
	AverageRating   float64             `json:"averageRating"`
}

// History returns the stored analyses of a document, newest first, together with
// their feedback. AverageRating covers feedback that carries an overall rating.
func (s *Service) History(ctx context.Context, documentID string) (DocumentHistory, error) {
	items, err := s.Repo.ListByDocument(ctx, documentID)
	if err != nil {
		return DocumentHistory{}, err
	}

	h := DocumentHistory{Analyses: make([]Summary, 0, len(items)), FeedbackHistory: []feedback.Feedback{}}
	for _, a := range items {
		h.Analyses = append(h.Analyses, toSummary(a))
		if s.Feedback == nil {
			continue
		}
		fb, err := s.Feedback.ForAnalysis(ctx, a.ID)
		if err != nil {
			return DocumentHistory{}, err
		}
		h.FeedbackHistory = append(h.FeedbackHistory, fb...)
	}
	h.FeedbackCount = len(h.FeedbackHistory)

	var sum, rated int
	for _, f := range h.FeedbackHistory {
		if f.OverallRating > 0 {
			sum += f.OverallRating
			rated++
		}
	}
	if rated > 0 {
		h.AverageRating = math.Round(float64(sum)/float64(rated)*100) / 100
	}
	return h, nil
}

// DocumentHistory adapts History to documents.HistoryFunc.
func (s *Service) DocumentHistory(ctx context.Context, doc documents.Document) (any, error) {
	return s.History(ctx, doc.ID)
}

// DocumentKeywords returns the keywords of the latest stored analysis of doc, or
// of a fresh unsaved analysis when none exists. It matches documents.KeywordsFunc.
func (s *Service) DocumentKeywords(ctx context.Context, doc documents.Document, text string) ([]string, error) {
	items, err := s.Repo.ListByDocument(ctx, doc.ID)
	if err != nil {
		return nil, err
	}
	if len(items) > 0 {
		return allKeywords(items[0].Report), nil
	}
	analysis, err := s.Analyze(ctx, AnalyzeInput{Text: text, Title: doc.FileName, DocumentID: doc.ID})
	if err != nil {
		return nil, err
	}
	return allKeywords(analysis.Report), nil
}
