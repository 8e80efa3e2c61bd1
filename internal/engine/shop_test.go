package engine

import (
	"context"
	"errors"
	"testing"
)

func setBalance(t *testing.T, svc *Service, balance int) {
	t.Helper()
	ctx := context.Background()
	p, err := svc.progress.GetOrCreateMain(ctx)
	if err != nil {
		t.Fatalf("get progress: %v", err)
	}
	p.Balance = balance
	if err := svc.progress.Update(ctx, p); err != nil {
		t.Fatalf("update progress: %v", err)
	}
}

func TestPurchase(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	var funds InsufficientFundsError
	if _, err := svc.Purchase(ctx, "theme_crimson"); !errors.As(err, &funds) {
		t.Fatalf("broke purchase: got %v, want InsufficientFundsError", err)
	}

	setBalance(t, svc, 600)
	res, err := svc.Purchase(ctx, "theme_crimson")
	if err != nil {
		t.Fatalf("Purchase: %v", err)
	}
	if res.Balance != 100 {
		t.Fatalf("balance=%d, want 100", res.Balance)
	}

	if _, err := svc.Purchase(ctx, "theme_crimson"); !errors.Is(err, ErrAlreadyOwned) {
		t.Fatalf("repeat purchase: got %v, want ErrAlreadyOwned", err)
	}
	if _, err := svc.Purchase(ctx, "gold_plated_keyboard"); !errors.Is(err, ErrUnknownItem) {
		t.Fatalf("unknown item: got %v, want ErrUnknownItem", err)
	}

	// A failed purchase never touches the balance.
	balance, err := svc.Balance(ctx)
	if err != nil {
		t.Fatalf("Balance: %v", err)
	}
	if balance != 100 {
		t.Fatalf("balance=%d, want 100 untouched", balance)
	}

	items, err := svc.ShopItems(ctx)
	if err != nil {
		t.Fatalf("ShopItems: %v", err)
	}
	for _, it := range items {
		owned := it.ID == "theme_crimson"
		if it.Owned != owned {
			t.Fatalf("item %s owned=%v, want %v", it.ID, it.Owned, owned)
		}
	}
}
