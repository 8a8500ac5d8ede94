package documents

import "time"

// Document is an uploaded file together with its extracted text location.
type Document struct {
	ID               string
	FileName         string
	ContentType      string
	SizeBytes        int64
	StorageProvider  string
	StorageKey       string
	Checksum         string
	ExtractedTextKey string
	ExtractedAt      *time.Time
	CreatedAt        time.Time
}

// Extracted reports whether text has been derived from the document.
func (d Document) Extracted() bool {
	return d.ExtractedTextKey != ""
}

// DocumentResponse is the outward-facing representation of a document.
type DocumentResponse struct {
	DocumentID      string         `json:"documentId"`
	FileName        string         `json:"fileName"`
	ContentType     string         `json:"contentType"`
	SizeBytes       int64          `json:"sizeBytes"`
	Checksum        string         `json:"checksum"`
	StorageProvider string         `json:"storageProvider"`
	Extracted       bool           `json:"extracted"`
	ExtractedAt     *time.Time     `json:"extractedAt,omitempty"`
	UploadedAt      time.Time      `json:"uploadedAt"`
	Analysis        any            `json:"analysis,omitempty"`
	AnalysisError   *AnalysisError `json:"analysisError,omitempty"`
	History         any            `json:"history,omitempty"`
}

// AnalysisError explains why the analysis requested with an upload did not run.
// The document itself is stored regardless.
type AnalysisError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// BatchResponse reports the outcome of a multi-file upload.
type BatchResponse struct {
	Documents    []DocumentResponse `json:"documents"`
	Errors       []string           `json:"errors"`
	SuccessCount int                `json:"successCount"`
	TotalCount   int                `json:"totalCount"`
	Message      string             `json:"message"`
}

// Comparison contrasts the keywords of two documents.
type Comparison struct {
	DocumentID1     string   `json:"documentId1"`
	DocumentID2     string   `json:"documentId2"`
	CommonKeywords  []string `json:"commonKeywords"`
	UniqueToDoc1    []string `json:"uniqueToDoc1"`
	UniqueToDoc2    []string `json:"uniqueToDoc2"`
	SimilarityScore float64  `json:"similarityScore"`
}

func toResponse(doc Document) DocumentResponse {
	return DocumentResponse{
		DocumentID:      doc.ID,
		FileName:        doc.FileName,
		ContentType:     doc.ContentType,
		SizeBytes:       doc.SizeBytes,
		Checksum:        doc.Checksum,
		StorageProvider: doc.StorageProvider,
		Extracted:       doc.Extracted(),
		ExtractedAt:     doc.ExtractedAt,
		UploadedAt:      doc.CreatedAt,
	}
}
