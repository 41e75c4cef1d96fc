package credits

import (
	"context"
	"errors"
	"sync"
	"testing"
)

func TestDeductAppendsLedgerEntry(t *testing.T) {
	svc := NewService()
	ctx := context.Background()

	if err := svc.Grant(ctx, "user-1", 5, "signup grant"); err != nil {
		t.Fatalf("Grant: %v", err)
	}
	if err := svc.Deduct(ctx, "user-1", 2, "analysis-1", "analysis pro"); err != nil {
		t.Fatalf("Deduct: %v", err)
	}

	balance, err := svc.Balance(ctx, "user-1")
	if err != nil {
		t.Fatalf("Balance: %v", err)
	}
	if balance != 3 {
		t.Fatalf("balance = %d, want 3", balance)
	}

	txns, err := svc.ListTransactions(ctx, "user-1", 10)
	if err != nil {
		t.Fatalf("ListTransactions: %v", err)
	}
	if len(txns) != 2 {
		t.Fatalf("transactions = %d, want 2", len(txns))
	}
	// Newest first.
	if txns[0].Amount != -2 || txns[0].AnalysisID != "analysis-1" {
		t.Fatalf("deduction entry = %+v", txns[0])
	}
	if txns[1].Amount != 5 {
		t.Fatalf("grant entry = %+v", txns[1])
	}
}

func TestDeductInsufficientBalance(t *testing.T) {
	svc := NewService()
	ctx := context.Background()

	if err := svc.Grant(ctx, "user-1", 1, "signup grant"); err != nil {
		t.Fatalf("Grant: %v", err)
	}
	err := svc.Deduct(ctx, "user-1", 3, "analysis-1", "analysis pro")
	if !errors.Is(err, ErrInsufficientCredits) {
		t.Fatalf("Deduct err = %v, want ErrInsufficientCredits", err)
	}

	balance, err := svc.Balance(ctx, "user-1")
	if err != nil {
		t.Fatalf("Balance: %v", err)
	}
	if balance != 1 {
		t.Fatalf("balance = %d after failed deduct, want 1", balance)
	}
	txns, err := svc.ListTransactions(ctx, "user-1", 10)
	if err != nil {
		t.Fatalf("ListTransactions: %v", err)
	}
	if len(txns) != 1 {
		t.Fatalf("transactions = %d after failed deduct, want 1", len(txns))
	}
}

func TestDeductRejectsNonPositiveAmounts(t *testing.T) {
	svc := NewService()
	ctx := context.Background()

	for _, amount := range []int{0, -1} {
		if err := svc.Deduct(ctx, "user-1", amount, "", "noop"); !errors.Is(err, ErrInvalidAmount) {
			t.Fatalf("Deduct(%d) err = %v, want ErrInvalidAmount", amount, err)
		}
	}
}

func TestConcurrentDeductsAtMostOneSucceeds(t *testing.T) {
	svc := NewService()
	ctx := context.Background()

	if err := svc.Grant(ctx, "user-1", 3, "signup grant"); err != nil {
		t.Fatalf("Grant: %v", err)
	}

	const attempts = 10
	var wg sync.WaitGroup
	results := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = svc.Deduct(ctx, "user-1", 3, "analysis", "race")
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range results {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, ErrInsufficientCredits):
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if succeeded != 1 {
		t.Fatalf("succeeded = %d, want exactly 1", succeeded)
	}

	balance, err := svc.Balance(ctx, "user-1")
	if err != nil {
		t.Fatalf("Balance: %v", err)
	}
	if balance != 0 {
		t.Fatalf("balance = %d, want 0", balance)
	}
}

func TestLedgerSumMatchesBalance(t *testing.T) {
	svc := NewService()
	ctx := context.Background()

	if err := svc.Grant(ctx, "user-1", 10, "signup grant"); err != nil {
		t.Fatalf("Grant: %v", err)
	}
	if err := svc.Deduct(ctx, "user-1", 3, "a1", "analysis pro"); err != nil {
		t.Fatalf("Deduct: %v", err)
	}
	if err := svc.Deduct(ctx, "user-1", 1, "a2", "analysis basic"); err != nil {
		t.Fatalf("Deduct: %v", err)
	}
	if err := svc.Grant(ctx, "user-1", 5, "topup"); err != nil {
		t.Fatalf("Grant: %v", err)
	}

	txns, err := svc.ListTransactions(ctx, "user-1", 100)
	if err != nil {
		t.Fatalf("ListTransactions: %v", err)
	}
	sum := 0
	for _, txn := range txns {
		sum += txn.Amount
	}

	balance, err := svc.Balance(ctx, "user-1")
	if err != nil {
		t.Fatalf("Balance: %v", err)
	}
	if sum != balance {
		t.Fatalf("ledger sum %d != balance %d", sum, balance)
	}
}
