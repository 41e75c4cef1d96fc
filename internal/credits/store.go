package credits

import "context"

type store interface {
	Balance(ctx context.Context, userID string) (int, error)
	Deduct(ctx context.Context, userID string, amount int, analysisID, description string) error
	Grant(ctx context.Context, userID string, amount int, description string) error
	ListTransactions(ctx context.Context, userID string, limit int) ([]Transaction, error)
}
