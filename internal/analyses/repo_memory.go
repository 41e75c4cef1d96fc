package analyses

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is an in-memory Repo for tests and db-less runs.
type MemoryRepo struct {
	mu      sync.RWMutex
	records map[string]Record
	history []HistorySnapshot

	// SaveErr, when set, makes Save fail without writing anything.
	SaveErr error
}

// NewMemoryRepo constructs an empty MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{records: make(map[string]Record)}
}

func (r *MemoryRepo) Save(ctx context.Context, rec Record, snap HistorySnapshot) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.SaveErr != nil {
		return r.SaveErr
	}
	r.records[rec.ID] = rec
	r.history = append(r.history, snap)
	return nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, userID, analysisID string) (Record, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.records[analysisID]
	if !ok || rec.UserID != userID {
		return Record{}, ErrNotFound
	}
	return rec, nil
}

func (r *MemoryRepo) ListHistory(ctx context.Context, userID string, limit, offset int) ([]HistorySnapshot, error) {
	_ = ctx
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []HistorySnapshot
	for _, snap := range r.history {
		if snap.UserID == userID {
			out = append(out, snap)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

var _ Repo = (*MemoryRepo)(nil)
