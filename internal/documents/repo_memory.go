package documents

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepo is an in-memory implementation of DocumentsRepo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string]Document
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		data: make(map[string]Document),
	}
}

func (r *MemoryRepo) Create(ctx context.Context, doc Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[doc.ID] = doc
	return nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, documentID string) (Document, error) {
	if err := ctx.Err(); err != nil {
		return Document{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	doc, ok := r.data[documentID]
	if !ok {
		return Document{}, ErrNotFound
	}
	return doc, nil
}

// UpdateExtraction records the extracted text key once; later calls are no-ops.
func (r *MemoryRepo) UpdateExtraction(ctx context.Context, documentID, extractedKey string, extractedAt time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	doc, ok := r.data[documentID]
	if !ok {
		return ErrNotFound
	}
	if doc.ExtractedTextKey == "" {
		doc.ExtractedTextKey = extractedKey
		doc.ExtractedAt = &extractedAt
		r.data[documentID] = doc
	}
	return nil
}

// List returns documents newest first, honoring limit/offset.
func (r *MemoryRepo) List(ctx context.Context, limit, offset int) ([]Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if offset < 0 {
		offset = 0
	}
	if limit < 0 {
		limit = 0
	}

	r.mu.RLock()
	docs := make([]Document, 0, len(r.data))
	for _, doc := range r.data {
		docs = append(docs, doc)
	}
	r.mu.RUnlock()

	if offset >= len(docs) {
		return []Document{}, nil
	}
	sort.Slice(docs, func(i, j int) bool {
		if docs[i].CreatedAt.Equal(docs[j].CreatedAt) {
			return docs[i].ID < docs[j].ID
		}
		return docs[i].CreatedAt.After(docs[j].CreatedAt)
	})

	end := len(docs)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return docs[offset:end], nil
}

var _ DocumentsRepo = (*MemoryRepo)(nil)
