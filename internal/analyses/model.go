package analyses

import (
	"time"

	"docassist/internal/report"
)

const (
	SourceText     = "text"
	SourceDocument = "document"
)

// Analysis is a persisted report together with where its text came from.
type Analysis struct {
	ID         string        `json:"analysisId"`
	DocumentID string        `json:"documentId,omitempty"`
	Title      string        `json:"title,omitempty"`
	Source     string        `json:"source"`
	IndustryID string        `json:"industryId"`
	Confidence int           `json:"confidence"`
	Pinned     bool          `json:"pinned"`
	TextLength int           `json:"textLength"`
	DurationMs float64       `json:"durationMs"`
	Saved      bool          `json:"saved"`
	Report     report.Report `json:"report"`
	CreatedAt  time.Time     `json:"createdAt"`
}

// Summary is the list view of an analysis without its report.
type Summary struct {
	ID         string    `json:"analysisId"`
	DocumentID string    `json:"documentId,omitempty"`
	Title      string    `json:"title,omitempty"`
	Source     string    `json:"source"`
	IndustryID string    `json:"industryId"`
	Confidence int       `json:"confidence"`
	CreatedAt  time.Time `json:"createdAt"`
}

func toSummary(a Analysis) Summary {
	return Summary{
		ID:         a.ID,
		DocumentID: a.DocumentID,
		Title:      a.Title,
		Source:     a.Source,
		IndustryID: a.IndustryID,
		Confidence: a.Confidence,
		CreatedAt:  a.CreatedAt,
	}
}

// Comparison pairs the local report with the remote backend's answer.
type Comparison struct {
	Local       report.Report  `json:"local"`
	Remote      *report.Report `json:"remote,omitempty"`
	RemoteError string         `json:"remoteError,omitempty"`
	Partial     bool           `json:"partial,omitempty"`
	Diff        *Diff          `json:"diff,omitempty"`
}

// Diff highlights where the two reports disagree.
type Diff struct {
	SameIndustry    bool     `json:"sameIndustry"`
	LocalIndustry   string   `json:"localIndustry"`
	RemoteIndustry  string   `json:"remoteIndustry"`
	ConfidenceDelta int      `json:"confidenceDelta"`
	SharedKeywords  []string `json:"sharedKeywords"`
	LocalOnlyCount  int      `json:"localOnlyKeywords"`
	RemoteOnlyCount int      `json:"remoteOnlyKeywords"`
}
