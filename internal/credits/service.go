package credits

import (
	"context"

	"fitscan-backend/internal/shared/metrics"
)

// Service is the sole owner of credit balances and the transaction ledger.
// All mutation goes through the underlying store's transactions.
type Service struct {
	store store
}

// NewService constructs a Service with an in-memory store.
func NewService() *Service {
	return &Service{store: NewMemoryStore()}
}

// NewPostgresService constructs a Service backed by Postgres.
func NewPostgresService(pgStore *PGStore) *Service {
	return &Service{store: pgStore}
}

// Balance returns the user's current credit balance. Users without a
// balance row read as zero.
func (s *Service) Balance(ctx context.Context, userID string) (int, error) {
	return s.store.Balance(ctx, userID)
}

// Estimate returns the credit cost of an analysis before running it.
func (s *Service) Estimate(tier string, contentLength int) (int, error) {
	return Cost(tier, contentLength)
}

// Deduct atomically removes amount credits and appends a ledger entry
// referencing the analysis. Fails with ErrInsufficientCredits if the
// balance cannot cover the amount; concurrent deductions for one user
// serialize through the store's transaction.
func (s *Service) Deduct(ctx context.Context, userID string, amount int, analysisID, description string) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	if err := s.store.Deduct(ctx, userID, amount, analysisID, description); err != nil {
		return err
	}
	metrics.AddCreditsDeducted(amount)
	return nil
}

// Grant atomically adds amount credits and appends a ledger entry.
func (s *Service) Grant(ctx context.Context, userID string, amount int, description string) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	if err := s.store.Grant(ctx, userID, amount, description); err != nil {
		return err
	}
	metrics.AddCreditsGranted(amount)
	return nil
}

// ListTransactions returns the user's most recent ledger entries, newest first.
func (s *Service) ListTransactions(ctx context.Context, userID string, limit int) ([]Transaction, error) {
	return s.store.ListTransactions(ctx, userID, limit)
}
