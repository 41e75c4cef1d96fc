package analyses

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"fitscan-backend/internal/credits"
	"fitscan-backend/internal/llm"
	"fitscan-backend/internal/shared/metrics"
	"fitscan-backend/internal/shared/telemetry"
)

// ResumeTextSource resolves a resume id to its extracted plain text.
type ResumeTextSource interface {
	GetText(ctx context.Context, userID, resumeID string) (string, error)
}

// Orchestrator runs the analysis pipeline end to end: validate, price,
// prompt, invoke, parse, persist, charge.
type Orchestrator struct {
	Client  llm.Client
	Model   string
	Repo    Repo
	Resumes ResumeTextSource
	Credits *credits.Service
}

// Options tune the retry behavior of the model call.
type Options struct {
	MaxAttempts int
	RetryDelay  time.Duration
}

// NewOrchestrator wires the pipeline. The client is wrapped with the retry
// loop here so callers always get the bounded-retry behavior.
func NewOrchestrator(client llm.Client, model string, repo Repo, resumes ResumeTextSource, creditsSvc *credits.Service, opts Options) *Orchestrator {
	return &Orchestrator{
		Client:  newRetryingClient(client, opts.MaxAttempts, opts.RetryDelay),
		Model:   model,
		Repo:    repo,
		Resumes: resumes,
		Credits: creditsSvc,
	}
}

// Run executes one analysis synchronously and returns the persisted record.
//
// Credits are checked up front and deducted only after the record is
// persisted. Persist and deduct are separate transactions; if the deduction
// fails after persist, the record is kept and the failure is surfaced so the
// ledger discrepancy is visible in logs rather than silently swallowed.
func (o *Orchestrator) Run(ctx context.Context, req Request) (Record, error) {
	start := time.Now()
	metrics.IncAnalysisStarted()

	rec, err := o.run(ctx, req, start)
	if err != nil {
		metrics.IncAnalysisFailed()
		telemetry.Error("analysis.failed", map[string]any{
			"userId":     req.UserID,
			"resumeId":   req.ResumeID,
			"tier":       string(req.Tier),
			"durationMs": time.Since(start).Milliseconds(),
			"error":      err.Error(),
		})
		return Record{}, err
	}

	metrics.IncAnalysisCompleted()
	metrics.ObserveAnalysisDurationMs(float64(time.Since(start).Milliseconds()))
	telemetry.Info("analysis.completed", map[string]any{
		"userId":     req.UserID,
		"resumeId":   req.ResumeID,
		"analysisId": rec.ID,
		"tier":       string(rec.Tier),
		"cost":       rec.CostCredits,
		"durationMs": time.Since(start).Milliseconds(),
	})
	return rec, nil
}

func (o *Orchestrator) run(ctx context.Context, req Request, start time.Time) (Record, error) {
	if req.UserID == "" {
		return Record{}, &ValidationError{Field: "userId", Reason: "is required"}
	}
	if req.ResumeID == "" {
		return Record{}, &ValidationError{Field: "resumeId", Reason: "is required"}
	}

	resumeText, err := o.Resumes.GetText(ctx, req.UserID, req.ResumeID)
	if err != nil {
		return Record{}, err
	}

	cost, err := o.Credits.Estimate(string(req.Tier), len(resumeText)+len(req.JobText))
	if err != nil {
		return Record{}, &ValidationError{Field: "tier", Reason: "must be 'basic' or 'pro'"}
	}

	// Pre-flight balance check. The authoritative check happens inside the
	// deduction transaction; this one rejects obviously unfunded requests
	// before any model spend.
	balance, err := o.Credits.Balance(ctx, req.UserID)
	if err != nil {
		return Record{}, fmt.Errorf("check balance: %w", err)
	}
	if balance < cost {
		return Record{}, credits.ErrInsufficientCredits
	}

	prompt, err := BuildPrompt(req, resumeText)
	if err != nil {
		return Record{}, err
	}

	completion, err := o.Client.Complete(ctx, llm.CompletionRequest{Prompt: prompt, Model: o.Model})
	if err != nil {
		return Record{}, err
	}
	if completion.Usage != nil {
		metrics.AddLLMTokens(completion.Usage.PromptTokens, completion.Usage.CompletionTokens)
	}

	result, err := ParseResult(completion.Text, req.Tier)
	if err != nil {
		return Record{}, err
	}

	rec := NewRecord(uuid.NewString(), req, cost, result, start.UTC())
	if err := o.Repo.Save(ctx, rec, SnapshotOf(rec)); err != nil {
		return Record{}, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	if err := o.Credits.Deduct(ctx, req.UserID, cost, rec.ID, "analysis "+string(rec.Tier)); err != nil {
		if errors.Is(err, credits.ErrInsufficientCredits) {
			// The record exists but the balance was drained between the
			// pre-flight check and the deduction. Keep the record and
			// surface the conflict.
			telemetry.Warn("analysis.unpaid", map[string]any{
				"userId":     req.UserID,
				"analysisId": rec.ID,
				"cost":       cost,
			})
			return Record{}, credits.ErrInsufficientCredits
		}
		return Record{}, fmt.Errorf("deduct credits for analysis %s: %w", rec.ID, err)
	}

	return rec, nil
}

// Get returns a persisted analysis for the owning user.
func (o *Orchestrator) Get(ctx context.Context, userID, analysisID string) (Record, error) {
	return o.Repo.GetByID(ctx, userID, analysisID)
}

// History returns the user's past analyses, newest first.
func (o *Orchestrator) History(ctx context.Context, userID string, limit, offset int) ([]HistorySnapshot, error) {
	return o.Repo.ListHistory(ctx, userID, limit, offset)
}
