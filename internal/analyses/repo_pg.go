package analyses

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// PGRepo implements Repo using Postgres. The typed sub-documents of a
// record are stored as jsonb columns.
type PGRepo struct {
	DB *sql.DB
}

// Save inserts the analysis record and its history snapshot atomically.
func (r *PGRepo) Save(ctx context.Context, rec Record, snap HistorySnapshot) error {
	meta, err := json.Marshal(rec.Meta)
	if err != nil {
		return fmt.Errorf("marshal meta: %w", err)
	}
	scores, err := json.Marshal(rec.Scores)
	if err != nil {
		return fmt.Errorf("marshal scores: %w", err)
	}
	gaps, err := json.Marshal(rec.GapAnalysis)
	if err != nil {
		return fmt.Errorf("marshal gap analysis: %w", err)
	}
	recs, err := json.Marshal(rec.Recommendations)
	if err != nil {
		return fmt.Errorf("marshal recommendations: %w", err)
	}
	verification, err := json.Marshal(rec.Verification)
	if err != nil {
		return fmt.Errorf("marshal verification: %w", err)
	}

	var deepDive, readability any
	if rec.DeepDive != nil {
		data, err := json.Marshal(rec.DeepDive)
		if err != nil {
			return fmt.Errorf("marshal deep dive: %w", err)
		}
		deepDive = data
	}
	if rec.Readability != nil {
		data, err := json.Marshal(rec.Readability)
		if err != nil {
			return fmt.Errorf("marshal readability: %w", err)
		}
		readability = data
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	const insertRecord = `
INSERT INTO analyses (id, user_id, resume_id, tier, job_title, company_name, cost_credits,
                      meta, scores, gap_analysis, recommendations, verification, deep_dive, readability, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	if _, err := tx.ExecContext(ctx, insertRecord,
		rec.ID, rec.UserID, rec.ResumeID, string(rec.Tier), rec.JobTitle, rec.CompanyName, rec.CostCredits,
		meta, scores, gaps, recs, verification, deepDive, readability, rec.CreatedAt,
	); err != nil {
		return fmt.Errorf("insert analysis: %w", err)
	}

	const insertSnapshot = `
INSERT INTO analysis_history (analysis_id, user_id, resume_id, tier, job_title, company_name, ats_score, cost_credits, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	if _, err := tx.ExecContext(ctx, insertSnapshot,
		snap.AnalysisID, snap.UserID, snap.ResumeID, string(snap.Tier),
		snap.JobTitle, snap.CompanyName, snap.ATSScore, snap.CostCredits, snap.CreatedAt,
	); err != nil {
		return fmt.Errorf("insert history snapshot: %w", err)
	}

	return tx.Commit()
}

// GetByID returns the full analysis record for the owning user.
func (r *PGRepo) GetByID(ctx context.Context, userID, analysisID string) (Record, error) {
	const query = `
SELECT id, user_id, resume_id, tier, job_title, company_name, cost_credits,
       meta, scores, gap_analysis, recommendations, verification, deep_dive, readability, created_at
FROM analyses
WHERE id = $1 AND user_id = $2
LIMIT 1`

	var (
		rec                                 Record
		tier                                string
		meta, scores, gaps, recommendations []byte
		verification, deepDive, readability []byte
	)
	err := r.DB.QueryRowContext(ctx, query, analysisID, userID).Scan(
		&rec.ID, &rec.UserID, &rec.ResumeID, &tier, &rec.JobTitle, &rec.CompanyName, &rec.CostCredits,
		&meta, &scores, &gaps, &recommendations, &verification, &deepDive, &readability, &rec.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Record{}, ErrNotFound
		}
		return Record{}, err
	}
	rec.Tier = Tier(tier)

	if err := json.Unmarshal(meta, &rec.Meta); err != nil {
		return Record{}, fmt.Errorf("unmarshal meta: %w", err)
	}
	if err := json.Unmarshal(scores, &rec.Scores); err != nil {
		return Record{}, fmt.Errorf("unmarshal scores: %w", err)
	}
	if err := json.Unmarshal(gaps, &rec.GapAnalysis); err != nil {
		return Record{}, fmt.Errorf("unmarshal gap analysis: %w", err)
	}
	if err := json.Unmarshal(recommendations, &rec.Recommendations); err != nil {
		return Record{}, fmt.Errorf("unmarshal recommendations: %w", err)
	}
	if err := json.Unmarshal(verification, &rec.Verification); err != nil {
		return Record{}, fmt.Errorf("unmarshal verification: %w", err)
	}
	if len(deepDive) > 0 {
		rec.DeepDive = &DeepDive{}
		if err := json.Unmarshal(deepDive, rec.DeepDive); err != nil {
			return Record{}, fmt.Errorf("unmarshal deep dive: %w", err)
		}
	}
	if len(readability) > 0 {
		rec.Readability = &Readability{}
		if err := json.Unmarshal(readability, rec.Readability); err != nil {
			return Record{}, fmt.Errorf("unmarshal readability: %w", err)
		}
	}
	return rec, nil
}

// ListHistory returns the user's history snapshots, newest first.
func (r *PGRepo) ListHistory(ctx context.Context, userID string, limit, offset int) ([]HistorySnapshot, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	const query = `
SELECT analysis_id, user_id, resume_id, tier, job_title, company_name, ats_score, cost_credits, created_at
FROM analysis_history
WHERE user_id = $1
ORDER BY created_at DESC
LIMIT $2 OFFSET $3`

	rows, err := r.DB.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []HistorySnapshot
	for rows.Next() {
		var (
			snap HistorySnapshot
			tier string
		)
		if err := rows.Scan(&snap.AnalysisID, &snap.UserID, &snap.ResumeID, &tier,
			&snap.JobTitle, &snap.CompanyName, &snap.ATSScore, &snap.CostCredits, &snap.CreatedAt); err != nil {
			return nil, err
		}
		snap.Tier = Tier(tier)
		out = append(out, snap)
	}
	return out, rows.Err()
}

var _ Repo = (*PGRepo)(nil)
