package analyses

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"docassist/internal/documents"
	"docassist/internal/remote"
	"docassist/internal/report"
	"docassist/internal/shared/metrics"
	"docassist/internal/shared/telemetry"
)

// MaxTextBytes bounds the text accepted for a single analysis.
const MaxTextBytes = 1 << 20

// Engine produces reports from text.
type Engine interface {
	ClassifyAndSynthesize(text, selected string) (report.Report, error)
}

// RemoteAnalyzer is the optional backend used for comparisons.
type RemoteAnalyzer interface {
	Configured() bool
	Analyze(ctx context.Context, text, title string) (remote.Result, error)
}

// Service runs analyses and records them.
type Service struct {
	Engine   Engine
	Repo     Repo
	Remote   RemoteAnalyzer
	Feedback FeedbackSource
	Now      func() time.Time
}

// NewService constructs a Service. remote may be nil.
func NewService(engine Engine, repo Repo, remote RemoteAnalyzer) *Service {
	return &Service{Engine: engine, Repo: repo, Remote: remote, Now: time.Now}
}

// AnalyzeInput describes one analysis request.
type AnalyzeInput struct {
	Text       string
	Industry   string
	Title      string
	DocumentID string
	Save       bool
}

// Analyze synthesizes a report for the input text and persists it when requested.
func (s *Service) Analyze(ctx context.Context, in AnalyzeInput) (Analysis, error) {
	if len(in.Text) > MaxTextBytes {
		return Analysis{}, fmt.Errorf("%w: text exceeds %d bytes", ErrInvalidInput, MaxTextBytes)
	}

	start := time.Now()
	rep, err := s.Engine.ClassifyAndSynthesize(in.Text, strings.TrimSpace(in.Industry))
	if err != nil {
		metrics.IncAnalysisFailed()
		return Analysis{}, err
	}
	duration := metrics.Since(start)

	source := SourceText
	if in.DocumentID != "" {
		source = SourceDocument
	}
	analysis := Analysis{
		ID:         uuid.NewString(),
		DocumentID: in.DocumentID,
		Title:      strings.TrimSpace(in.Title),
		Source:     source,
		IndustryID: rep.DetectedIndustry.Industry.ID,
		Confidence: rep.DetectedIndustry.Confidence,
		Pinned:     rep.DetectedIndustry.Pinned,
		TextLength: utf8.RuneCountInString(in.Text),
		DurationMs: duration,
		Report:     rep,
		CreatedAt:  s.now(),
	}

	if in.Save {
		if err := s.Repo.Create(ctx, analysis); err != nil {
			metrics.IncAnalysisFailed()
			return Analysis{}, fmt.Errorf("save analysis: %w", err)
		}
		analysis.Saved = true
	}

	metrics.IncAnalysisCompleted()
	metrics.IncClassification(analysis.IndustryID)
	metrics.ObserveAnalysisDurationMs(duration)
	telemetry.Info("analysis.completed", map[string]any{
		"analysisId": analysis.ID,
		"documentId": analysis.DocumentID,
		"industry":   analysis.IndustryID,
		"confidence": analysis.Confidence,
		"pinned":     analysis.Pinned,
		"saved":      analysis.Saved,
		"durationMs": duration,
	})
	return analysis, nil
}

// Get returns a stored analysis.
func (s *Service) Get(ctx context.Context, analysisID string) (Analysis, error) {
	if strings.TrimSpace(analysisID) == "" {
		return Analysis{}, fmt.Errorf("%w: analysis id is required", ErrInvalidInput)
	}
	return s.Repo.GetByID(ctx, analysisID)
}

// List returns stored analyses newest first.
func (s *Service) List(ctx context.Context, limit, offset int) ([]Analysis, error) {
	return s.Repo.List(ctx, limit, offset)
}

// Exists reports whether an analysis has been stored under analysisID.
func (s *Service) Exists(ctx context.Context, analysisID string) (bool, error) {
	_, err := s.Repo.GetByID(ctx, analysisID)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, ErrNotFound):
		return false, nil
	default:
		return false, err
	}
}

// Compare runs the local engine and, when configured, the remote backend on the same text.
// Remote failures are reported in the result rather than failing the comparison.
func (s *Service) Compare(ctx context.Context, text, industry, title string) (Comparison, error) {
	local, err := s.Analyze(ctx, AnalyzeInput{Text: text, Industry: industry, Title: title})
	if err != nil {
		return Comparison{}, err
	}
	cmp := Comparison{Local: local.Report}
	if s.Remote == nil || !s.Remote.Configured() {
		cmp.RemoteError = remote.ErrNotConfigured.Error()
		return cmp, nil
	}

	res, err := s.Remote.Analyze(ctx, text, title)
	if err != nil {
		telemetry.Warn("analysis.compare.remote_failed", map[string]any{"error": err})
		cmp.RemoteError = err.Error()
		return cmp, nil
	}
	cmp.Remote = &res.Report
	cmp.Partial = res.Partial
	cmp.Diff = diffReports(local.Report, res.Report)
	return cmp, nil
}

func (s *Service) now() time.Time {
	if s.Now == nil {
		return time.Now().UTC()
	}
	return s.Now().UTC()
}

func diffReports(local, remote report.Report) *Diff {
	localKeys := keywordSet(local)
	remoteKeys := keywordSet(remote)

	shared := []string{}
	for _, k := range allKeywords(local) {
		if _, ok := remoteKeys[strings.ToLower(k)]; ok {
			shared = append(shared, k)
		}
	}
	return &Diff{
		SameIndustry:    local.DetectedIndustry.Industry.ID == remote.DetectedIndustry.Industry.ID,
		LocalIndustry:   local.DetectedIndustry.Industry.ID,
		RemoteIndustry:  remote.DetectedIndustry.Industry.ID,
		ConfidenceDelta: remote.DetectedIndustry.Confidence - local.DetectedIndustry.Confidence,
		SharedKeywords:  shared,
		LocalOnlyCount:  len(localKeys) - len(shared),
		RemoteOnlyCount: len(remoteKeys) - len(shared),
	}
}

func allKeywords(r report.Report) []string {
	k := r.KeywordCategories
	out := make([]string, 0, len(k.Technology)+len(k.Business)+len(k.Compliance))
	seen := map[string]struct{}{}
	for _, list := range [][]string{k.Technology, k.Business, k.Compliance} {
		for _, w := range list {
			key := strings.ToLower(w)
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, w)
		}
	}
	return out
}

func keywordSet(r report.Report) map[string]struct{} {
	set := map[string]struct{}{}
	for _, w := range allKeywords(r) {
		set[strings.ToLower(w)] = struct{}{}
	}
	return set
}

// AnalyzeDocument analyzes the extracted text of an uploaded document and stores the result.
// Its signature matches documents.AnalyzeFunc.
func (s *Service) AnalyzeDocument(ctx context.Context, doc documents.Document, text, industry string) (string, any, error) {
	analysis, err := s.Analyze(ctx, AnalyzeInput{
		Text:       text,
		Industry:   industry,
		Title:      doc.FileName,
		DocumentID: doc.ID,
		Save:       true,
	})
	if err != nil {
		return "", nil, err
	}
	return analysis.ID, analysis, nil
}
