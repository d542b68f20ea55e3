package history

import (
	"context"
	"sort"
	"sync"
)

// MemoryStore is an in-process Store used by solver tests and by the
// CLI when no database is configured.
type MemoryStore struct {
	mu   sync.Mutex
	runs []Run
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) RecordRun(ctx context.Context, run Run) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.runs = append(m.runs, run)
	return nil
}

func (m *MemoryStore) BestRuns(ctx context.Context, limit int) ([]Run, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if limit <= 0 {
		limit = 10
	}

	feasible := make([]Run, 0, len(m.runs))
	for _, r := range m.runs {
		if r.Feasible {
			feasible = append(feasible, r)
		}
	}
	sort.Slice(feasible, func(i, j int) bool {
		if feasible[i].Score != feasible[j].Score {
			return feasible[i].Score > feasible[j].Score
		}
		return feasible[i].RecordedAt.Before(feasible[j].RecordedAt)
	})
	if len(feasible) > limit {
		feasible = feasible[:limit]
	}
	return feasible, nil
}
