package feedback

import (
	"context"
	"sort"
	"sync"
)

// Repo defines persistence operations for feedback.
type Repo interface {
	Create(ctx context.Context, f Feedback) error
	ListByAnalysis(ctx context.Context, analysisID string) ([]Feedback, error)
	ListAll(ctx context.Context) ([]Feedback, error)
}

// MemoryRepo stores feedback in memory.
type MemoryRepo struct {
	mu    sync.RWMutex
	items []Feedback
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{}
}

func (r *MemoryRepo) Create(ctx context.Context, f Feedback) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, f)
	return nil
}

// ListByAnalysis returns the feedback of one analysis oldest first.
func (r *MemoryRepo) ListByAnalysis(ctx context.Context, analysisID string) ([]Feedback, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []Feedback{}
	for _, f := range r.items {
		if f.AnalysisID == analysisID {
			out = append(out, f)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *MemoryRepo) ListAll(ctx context.Context) ([]Feedback, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]Feedback{}, r.items...), nil
}

var _ Repo = (*MemoryRepo)(nil)
