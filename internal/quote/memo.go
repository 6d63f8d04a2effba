package quote

import (
	"context"
	"sync"

	"github.com/tbecker/insurate/internal/domain"
)

// Memo caches comparison results keyed by (planID, profile, frequency). The
// underlying calculation is a pure function, so entries never need manual
// invalidation; a new catalog snapshot gets a new Memo.
type Memo struct {
	engine *Engine

	mu    sync.RWMutex
	cache map[string]*domain.QuoteComparison
}

// NewMemo wraps an engine with a memoizing layer
func NewMemo(engine *Engine) *Memo {
	return &Memo{
		engine: engine,
		cache:  make(map[string]*domain.QuoteComparison),
	}
}

// Compare returns the cached comparison for identical inputs, computing it on
// first use
func (m *Memo) Compare(ctx context.Context, plan *domain.Plan, profile domain.RatingProfile) (*domain.QuoteComparison, error) {
	key := plan.ID + "|" + profile.Key()

	m.mu.RLock()
	cached, ok := m.cache[key]
	m.mu.RUnlock()
	if ok {
		return cached, nil
	}

	comparison, err := m.engine.Compare(ctx, plan, profile)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.cache[key] = comparison
	m.mu.Unlock()

	return comparison, nil
}

// Len reports the number of cached entries
func (m *Memo) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.cache)
}
