package documents

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"docassist/internal/extract"
	"docassist/internal/shared/metrics"
	"docassist/internal/shared/storage/object"
	"docassist/internal/shared/telemetry"
	"docassist/internal/shared/util"
)

const (
	// MaxUploadSize bounds an uploaded file.
	MaxUploadSize = 10 << 20

	storageNamespace = "documents"
)

// Service contains business logic for documents.
type Service struct {
	Store object.ObjectStore
	Repo  DocumentsRepo
	Now   func() time.Time
}

// NewService constructs a Service.
func NewService(store object.ObjectStore, repo DocumentsRepo) *Service {
	return &Service{Store: store, Repo: repo, Now: time.Now}
}

func (s *Service) now() time.Time {
	if s.Now == nil {
		return time.Now().UTC()
	}
	return s.Now().UTC()
}

// Upload saves the file to object storage, records the document and extracts its text.
func (s *Service) Upload(ctx context.Context, fileName string, r io.Reader) (Document, error) {
	fileName = strings.TrimSpace(fileName)
	if fileName == "" {
		return Document{}, fmt.Errorf("%w: file name is required", ErrInvalidInput)
	}

	data, err := io.ReadAll(io.LimitReader(r, MaxUploadSize+1))
	if err != nil {
		return Document{}, fmt.Errorf("read upload: %w", err)
	}
	if len(data) > MaxUploadSize {
		return Document{}, ErrTooLarge
	}
	if len(data) == 0 {
		return Document{}, fmt.Errorf("%w: file is empty", ErrInvalidInput)
	}

	if contentType := util.DetectContentType(data[:min(len(data), 512)], fileName); !extract.Supported(contentType, fileName) {
		return Document{}, fmt.Errorf("%w: %s", extract.ErrUnsupportedType, contentType)
	}

	obj, err := s.Store.Save(ctx, storageNamespace, fileName, bytes.NewReader(data))
	if err != nil {
		return Document{}, fmt.Errorf("store document: %w", err)
	}

	doc := Document{
		ID:              uuid.NewString(),
		FileName:        fileName,
		ContentType:     obj.ContentType,
		SizeBytes:       obj.SizeBytes,
		StorageProvider: s.Store.Provider(),
		StorageKey:      obj.Key,
		Checksum:        util.Checksum(data),
		CreatedAt:       s.now(),
	}
	if err := s.Repo.Create(ctx, doc); err != nil {
		return Document{}, fmt.Errorf("create document: %w", err)
	}
	metrics.IncDocumentsUploaded()

	_, extractedKey, err := extract.ExtractText(ctx, s.Store, doc.StorageKey, doc.ContentType, doc.FileName)
	if err != nil {
		telemetry.Warn("documents.extract.failed", map[string]any{
			"documentId": doc.ID,
			"error":      err,
		})
		return doc, nil
	}
	extractedAt := s.now()
	if err := s.Repo.UpdateExtraction(ctx, doc.ID, extractedKey, extractedAt); err != nil {
		return Document{}, fmt.Errorf("update extraction: %w", err)
	}
	doc.ExtractedTextKey = extractedKey
	doc.ExtractedAt = &extractedAt

	telemetry.Info("documents.uploaded", map[string]any{
		"documentId":  doc.ID,
		"contentType": doc.ContentType,
		"sizeBytes":   doc.SizeBytes,
	})
	return doc, nil
}

// Get returns a document by id.
func (s *Service) Get(ctx context.Context, documentID string) (Document, error) {
	documentID = strings.TrimSpace(documentID)
	if documentID == "" {
		return Document{}, fmt.Errorf("%w: document id is required", ErrInvalidInput)
	}
	return s.Repo.GetByID(ctx, documentID)
}

// List returns documents newest first.
func (s *Service) List(ctx context.Context, limit, offset int) ([]Document, error) {
	return s.Repo.List(ctx, limit, offset)
}

// Text loads the extracted text of a document.
func (s *Service) Text(ctx context.Context, doc Document) (string, error) {
	if !doc.Extracted() {
		return "", ErrNotExtracted
	}
	rc, err := s.Store.Open(ctx, doc.ExtractedTextKey)
	if err != nil {
		if errors.Is(err, object.ErrInvalidKey) {
			return "", ErrNotExtracted
		}
		return "", fmt.Errorf("open extracted text: %w", err)
	}
	defer rc.Close()
	raw, err := io.ReadAll(rc)
	if err != nil {
		return "", fmt.Errorf("read extracted text: %w", err)
	}
	return string(raw), nil
}
