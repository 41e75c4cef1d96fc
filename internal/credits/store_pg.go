package credits

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
)

// PGStore implements the credit store on Postgres. Balance mutation and the
// matching ledger insert happen inside one transaction; the balance row is
// locked FOR UPDATE so concurrent deductions for a user serialize.
type PGStore struct {
	DB *sql.DB
}

// NewPGStore constructs a Postgres-backed credit store.
func NewPGStore(database *sql.DB) *PGStore {
	return &PGStore{DB: database}
}

func (s *PGStore) Balance(ctx context.Context, userID string) (int, error) {
	var balance int
	err := s.DB.QueryRowContext(ctx, `
SELECT balance FROM credit_balances WHERE user_id = $1`, userID).Scan(&balance)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil
		}
		return 0, err
	}
	return balance, nil
}

func (s *PGStore) Deduct(ctx context.Context, userID string, amount int, analysisID, description string) error {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var balance int
	err = tx.QueryRowContext(ctx, `
SELECT balance FROM credit_balances WHERE user_id = $1 FOR UPDATE`, userID).Scan(&balance)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrInsufficientCredits
		}
		return err
	}
	if balance < amount {
		return ErrInsufficientCredits
	}

	if _, err = tx.ExecContext(ctx, `
UPDATE credit_balances SET balance = balance - $1, updated_at = now() WHERE user_id = $2`, amount, userID); err != nil {
		return err
	}

	ref := sql.NullString{String: analysisID, Valid: analysisID != ""}
	if _, err = tx.ExecContext(ctx, `
INSERT INTO credit_transactions (id, user_id, amount, analysis_id, description, created_at)
VALUES ($1, $2, $3, $4, $5, $6)`,
		uuid.NewString(), userID, -amount, ref, description, time.Now().UTC()); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *PGStore) Grant(ctx context.Context, userID string, amount int, description string) error {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err = tx.ExecContext(ctx, `
INSERT INTO credit_balances (user_id, balance, updated_at)
VALUES ($1, $2, now())
ON CONFLICT (user_id) DO UPDATE SET balance = credit_balances.balance + EXCLUDED.balance, updated_at = now()`,
		userID, amount); err != nil {
		return err
	}

	if _, err = tx.ExecContext(ctx, `
INSERT INTO credit_transactions (id, user_id, amount, analysis_id, description, created_at)
VALUES ($1, $2, $3, NULL, $4, $5)`,
		uuid.NewString(), userID, amount, description, time.Now().UTC()); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *PGStore) ListTransactions(ctx context.Context, userID string, limit int) ([]Transaction, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	rows, err := s.DB.QueryContext(ctx, `
SELECT id, user_id, amount, analysis_id, description, created_at
FROM credit_transactions
WHERE user_id = $1
ORDER BY created_at DESC
LIMIT $2`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Transaction
	for rows.Next() {
		var t Transaction
		var analysisID sql.NullString
		if err := rows.Scan(&t.ID, &t.UserID, &t.Amount, &analysisID, &t.Description, &t.CreatedAt); err != nil {
			return nil, err
		}
		if analysisID.Valid {
			t.AnalysisID = analysisID.String
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

var _ store = (*PGStore)(nil)
