package credits

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore is an in-memory credit store for tests and db-less runs.
// The mutex stands in for the database transaction: check-and-decrement
// happens under one critical section.
type MemoryStore struct {
	mu       sync.Mutex
	balances map[string]int
	ledger   []Transaction
}

// NewMemoryStore constructs an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{balances: make(map[string]int)}
}

func (s *MemoryStore) Balance(ctx context.Context, userID string) (int, error) {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.balances[userID], nil
}

func (s *MemoryStore) Deduct(ctx context.Context, userID string, amount int, analysisID, description string) error {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.balances[userID] < amount {
		return ErrInsufficientCredits
	}
	s.balances[userID] -= amount
	s.ledger = append(s.ledger, Transaction{
		ID:          uuid.NewString(),
		UserID:      userID,
		Amount:      -amount,
		AnalysisID:  analysisID,
		Description: description,
		CreatedAt:   time.Now().UTC(),
	})
	return nil
}

func (s *MemoryStore) Grant(ctx context.Context, userID string, amount int, description string) error {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()

	s.balances[userID] += amount
	s.ledger = append(s.ledger, Transaction{
		ID:          uuid.NewString(),
		UserID:      userID,
		Amount:      amount,
		Description: description,
		CreatedAt:   time.Now().UTC(),
	})
	return nil
}

func (s *MemoryStore) ListTransactions(ctx context.Context, userID string, limit int) ([]Transaction, error) {
	_ = ctx
	if limit <= 0 {
		limit = 20
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []Transaction
	for i := len(s.ledger) - 1; i >= 0 && len(out) < limit; i-- {
		if s.ledger[i].UserID == userID {
			out = append(out, s.ledger[i])
		}
	}
	return out, nil
}

var _ store = (*MemoryStore)(nil)
