package analyses

import "context"

// Repo defines persistence for analysis records and their history entries.
type Repo interface {
	// Save writes the record and its history snapshot in one transaction.
	// Either both rows exist afterwards or neither does.
	Save(ctx context.Context, rec Record, snap HistorySnapshot) error
	GetByID(ctx context.Context, userID, analysisID string) (Record, error)
	ListHistory(ctx context.Context, userID string, limit, offset int) ([]HistorySnapshot, error)
}
