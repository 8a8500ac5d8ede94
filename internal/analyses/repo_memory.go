package analyses

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo stores analyses in memory and is safe for concurrent use.
type MemoryRepo struct {
	mu   sync.RWMutex
	byID map[string]Analysis
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		byID: make(map[string]Analysis),
	}
}

// Create stores the analysis.
func (r *MemoryRepo) Create(ctx context.Context, analysis Analysis) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[analysis.ID] = analysis
	return nil
}

// GetByID returns an analysis by its ID.
func (r *MemoryRepo) GetByID(ctx context.Context, analysisID string) (Analysis, error) {
	if err := ctx.Err(); err != nil {
		return Analysis{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	analysis, ok := r.byID[analysisID]
	if !ok {
		return Analysis{}, ErrNotFound
	}
	return analysis, nil
}

// List returns analyses newest first.
func (r *MemoryRepo) List(ctx context.Context, limit, offset int) ([]Analysis, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if offset < 0 {
		offset = 0
	}
	all := r.sorted(func(Analysis) bool { return true })
	if offset >= len(all) {
		return []Analysis{}, nil
	}
	end := len(all)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return all[offset:end], nil
}

// ListByDocument returns the analyses of one document newest first.
func (r *MemoryRepo) ListByDocument(ctx context.Context, documentID string) ([]Analysis, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return r.sorted(func(a Analysis) bool { return a.DocumentID == documentID }), nil
}

func (r *MemoryRepo) sorted(keep func(Analysis) bool) []Analysis {
	r.mu.RLock()
	out := make([]Analysis, 0, len(r.byID))
	for _, a := range r.byID {
		if keep(a) {
			out = append(out, a)
		}
	}
	r.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

var _ Repo = (*MemoryRepo)(nil)
