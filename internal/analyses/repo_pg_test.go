package analyses

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func newMockRepo(t *testing.T) (*PGRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return &PGRepo{DB: db}, mock
}

func TestPGRepoSaveWritesRecordAndSnapshotAtomically(t *testing.T) {
	repo, mock := newMockRepo(t)
	rec := NewRecord("analysis-1", validRequest(TierBasic), 1, sampleBasic(), time.Now().UTC())
	snap := SnapshotOf(rec)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO analyses").
		WithArgs(
			rec.ID, rec.UserID, rec.ResumeID, "basic", rec.JobTitle, rec.CompanyName, rec.CostCredits,
			sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(),
			nil, nil, rec.CreatedAt,
		).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO analysis_history").
		WithArgs(
			snap.AnalysisID, snap.UserID, snap.ResumeID, "basic",
			snap.JobTitle, snap.CompanyName, snap.ATSScore, snap.CostCredits, snap.CreatedAt,
		).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	if err := repo.Save(context.Background(), rec, snap); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoSaveRollsBackOnSnapshotFailure(t *testing.T) {
	repo, mock := newMockRepo(t)
	rec := NewRecord("analysis-1", validRequest(TierBasic), 1, sampleBasic(), time.Now().UTC())
	snap := SnapshotOf(rec)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO analyses").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO analysis_history").
		WillReturnError(errors.New("constraint violation"))
	mock.ExpectRollback()

	if err := repo.Save(context.Background(), rec, snap); err == nil {
		t.Fatal("Save succeeded despite snapshot failure")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoGetByIDRebuildsDeepRecord(t *testing.T) {
	repo, mock := newMockRepo(t)
	rec := NewRecord("analysis-1", validRequest(TierPro), 3, sampleDeep(), time.Now().UTC())

	mustMarshal := func(v any) []byte {
		data, err := json.Marshal(v)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		return data
	}

	rows := sqlmock.NewRows([]string{
		"id", "user_id", "resume_id", "tier", "job_title", "company_name", "cost_credits",
		"meta", "scores", "gap_analysis", "recommendations", "verification", "deep_dive", "readability", "created_at",
	}).AddRow(
		rec.ID, rec.UserID, rec.ResumeID, "pro", rec.JobTitle, rec.CompanyName, rec.CostCredits,
		mustMarshal(rec.Meta), mustMarshal(rec.Scores), mustMarshal(rec.GapAnalysis),
		mustMarshal(rec.Recommendations), mustMarshal(rec.Verification),
		mustMarshal(rec.DeepDive), mustMarshal(rec.Readability), rec.CreatedAt,
	)

	mock.ExpectQuery("SELECT (.+) FROM analyses").
		WithArgs("analysis-1", "user-1").
		WillReturnRows(rows)

	got, err := repo.GetByID(context.Background(), "user-1", "analysis-1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Tier != TierPro || got.DeepDive == nil || got.Readability == nil {
		t.Fatalf("record = %+v", got)
	}
	if got.DeepDive.KeywordAnalysis.DensityScore != 55 {
		t.Fatalf("densityScore = %d, want 55", got.DeepDive.KeywordAnalysis.DensityScore)
	}
}

func TestPGRepoGetByIDNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT (.+) FROM analyses").
		WithArgs("missing", "user-1").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetByID(context.Background(), "user-1", "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestPGRepoListHistory(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now().UTC()

	rows := sqlmock.NewRows([]string{
		"analysis_id", "user_id", "resume_id", "tier", "job_title", "company_name", "ats_score", "cost_credits", "created_at",
	}).
		AddRow("a2", "user-1", "r1", "pro", "SRE", "Globex", 81, 3, now).
		AddRow("a1", "user-1", "r1", "basic", "Backend Engineer", "Acme", 72, 1, now.Add(-time.Hour))

	mock.ExpectQuery("SELECT (.+) FROM analysis_history").
		WithArgs("user-1", 20, 0).
		WillReturnRows(rows)

	out, err := repo.ListHistory(context.Background(), "user-1", 0, 0)
	if err != nil {
		t.Fatalf("ListHistory: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("history = %d entries, want 2", len(out))
	}
	if out[0].AnalysisID != "a2" || out[0].Tier != TierPro {
		t.Fatalf("first entry = %+v", out[0])
	}
}
