package analyses

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docassist/internal/documents"
	"docassist/internal/feedback"
)

type fakeFeedback map[string][]feedback.Feedback

func (f fakeFeedback) ForAnalysis(_ context.Context, analysisID string) ([]feedback.Feedback, error) {
	return f[analysisID], nil
}

func TestServiceHistoryAveragesRatedFeedback(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, nil)
	doc := documents.Document{ID: "doc-1", FileName: "clinic.txt"}

	first, _, err := svc.AnalyzeDocument(ctx, doc, "Patient portal for a clinic", "")
	require.NoError(t, err)
	second, _, err := svc.AnalyzeDocument(ctx, doc, "Patient portal for a clinic", "fintech")
	require.NoError(t, err)
	_, _, err = svc.AnalyzeDocument(ctx, documents.Document{ID: "doc-2"}, "Online shop", "")
	require.NoError(t, err)

	svc.Feedback = fakeFeedback{
		first:  {{ID: "f1", AnalysisID: first, OverallRating: 4}, {ID: "f2", AnalysisID: first, Quick: true}},
		second: {{ID: "f3", AnalysisID: second, OverallRating: 5}},
	}

	h, err := svc.History(ctx, doc.ID)
	require.NoError(t, err)
	assert.Len(t, h.Analyses, 2)
	assert.Equal(t, 3, h.FeedbackCount)
	assert.Len(t, h.FeedbackHistory, 3)
	assert.Equal(t, 4.5, h.AverageRating)
}

func TestServiceHistoryWithoutFeedback(t *testing.T) {
	svc := newTestService(t, nil)

	h, err := svc.History(context.Background(), "missing")
	require.NoError(t, err)
	assert.Empty(t, h.Analyses)
	assert.NotNil(t, h.FeedbackHistory)
	assert.Equal(t, 0, h.FeedbackCount)
	assert.Equal(t, 0.0, h.AverageRating)

	payload, err := svc.DocumentHistory(context.Background(), documents.Document{ID: "missing"})
	require.NoError(t, err)
	assert.IsType(t, DocumentHistory{}, payload)
}

func TestServiceDocumentKeywords(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, nil)
	doc := documents.Document{ID: "doc-1", FileName: "shop.txt"}

	fresh, err := svc.DocumentKeywords(ctx, doc, "Online shop with checkout and Stripe")
	require.NoError(t, err)
	assert.Contains(t, fresh, "Stripe")
	stored, err := svc.List(ctx, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, stored)

	id, _, err := svc.AnalyzeDocument(ctx, doc, "Patient portal with HL7 and FHIR", "")
	require.NoError(t, err)
	saved, err := svc.Get(ctx, id)
	require.NoError(t, err)

	got, err := svc.DocumentKeywords(ctx, doc, "Online shop with checkout and Stripe")
	require.NoError(t, err)
	assert.Equal(t, allKeywords(saved.Report), got)
}
