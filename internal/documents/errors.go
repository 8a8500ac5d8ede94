package documents

import "errors"

var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrTooLarge     = errors.New("file too large")
	// ErrNotExtracted is returned when a document has no extracted text to analyze.
	ErrNotExtracted = errors.New("document text not extracted")
)
