package credits

import "time"

// Transaction is an append-only ledger entry. Negative amounts are
// deductions, positive amounts are grants.
type Transaction struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Amount      int       `json:"amount"`
	AnalysisID  string    `json:"analysisId,omitempty"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}
