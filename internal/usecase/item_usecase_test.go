package usecase_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/mfcastro/contas/internal/domain"
	"github.com/mfcastro/contas/internal/usecase"
	"github.com/mfcastro/contas/internal/usecase/mocks"
)

func accountTotal(t *testing.T, f *fixture, id string) domain.Money {
	t.Helper()

	account, err := f.accounts.GetAccount(context.Background(), id)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	return account.AccountTotal
}

func TestItemUseCase_AddItem_RecomputesTotal(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	account, err := f.accounts.CreateAccount(ctx, "Maria")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	item, err := f.items.AddItem(ctx, usecase.AddItemInput{
		AccountID: account.ID,
		Name:      "Soap",
		Quantity:  3,
		Price:     money(t, "2.50"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := item.Subtotal().String(); got != "7.50" {
		t.Errorf("expected subtotal 7.50, got %s", got)
	}

	if got := accountTotal(t, f, account.ID).String(); got != "7.50" {
		t.Errorf("expected account_total 7.50, got %s", got)
	}
}

func TestItemUseCase_AddItem_Validation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	account, err := f.accounts.CreateAccount(ctx, "Maria")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		name        string
		input       usecase.AddItemInput
		expectError error
	}{
		{
			name: "zero quantity",
			input: usecase.AddItemInput{
				AccountID: account.ID, Name: "Soap", Quantity: 0, Price: money(t, "2.50"),
			},
			expectError: domain.ErrInvalidQuantity,
		},
		{
			name: "empty name",
			input: usecase.AddItemInput{
				AccountID: account.ID, Name: "", Quantity: 1, Price: money(t, "2.50"),
			},
			expectError: domain.ErrEmptyItemName,
		},
		{
			name: "unknown account",
			input: usecase.AddItemInput{
				AccountID: "missing", Name: "Soap", Quantity: 1, Price: money(t, "2.50"),
			},
			expectError: domain.ErrAccountNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := f.items.AddItem(ctx, tt.input); err != tt.expectError {
				t.Errorf("expected %v, got %v", tt.expectError, err)
			}
		})
	}

	// Rejected items must leave the total untouched.
	if got := accountTotal(t, f, account.ID); !got.IsZero() {
		t.Errorf("expected account_total 0.00 after rejections, got %s", got)
	}
}

func TestItemUseCase_MutationSequencePreservesInvariant(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	account, err := f.accounts.CreateAccount(ctx, "Maria")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	assertInvariant := func() {
		t.Helper()

		current, err := f.accounts.GetAccount(ctx, account.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		sum := domain.Zero
		for _, item := range current.Items {
			sum = sum.Add(item.Subtotal())
		}

		if !current.AccountTotal.Equal(sum) {
			t.Fatalf("account_total %s != sum of subtotals %s", current.AccountTotal, sum)
		}
	}

	first, err := f.items.AddItem(ctx, usecase.AddItemInput{
		AccountID: account.ID, Name: "Rice", Quantity: 2, Price: money(t, "5.25"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertInvariant()

	second, err := f.items.AddItem(ctx, usecase.AddItemInput{
		AccountID: account.ID, Name: "Beans", Quantity: 1, Price: money(t, "8.90"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertInvariant()

	quantity := 5
	if _, err := f.items.UpdateItem(ctx, usecase.UpdateItemInput{
		ItemID: first.ID, Quantity: &quantity,
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertInvariant()

	if err := f.items.DeleteItem(ctx, second.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertInvariant()

	if err := f.items.DeleteItem(ctx, first.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertInvariant()

	if got := accountTotal(t, f, account.ID); !got.IsZero() {
		t.Errorf("expected account_total 0.00 after removing all items, got %s", got)
	}
}

func TestItemUseCase_UpdateItem(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	account, err := f.accounts.CreateAccount(ctx, "Maria")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	item, err := f.items.AddItem(ctx, usecase.AddItemInput{
		AccountID: account.ID, Name: "Soap", Quantity: 1, Price: money(t, "2.50"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	name := "Detergent"
	price := money(t, "4.00")
	notes := "lavender"

	updated, err := f.items.UpdateItem(ctx, usecase.UpdateItemInput{
		ItemID: item.ID, Name: &name, Price: &price, Notes: &notes,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if updated.Name != "Detergent" || updated.Notes != "lavender" {
		t.Errorf("update not applied: %+v", updated)
	}

	if got := accountTotal(t, f, account.ID).String(); got != "4.00" {
		t.Errorf("expected account_total 4.00 after price update, got %s", got)
	}

	empty := ""
	if _, err := f.items.UpdateItem(ctx, usecase.UpdateItemInput{
		ItemID: item.ID, Name: &empty,
	}); err != domain.ErrEmptyItemName {
		t.Errorf("expected ErrEmptyItemName, got %v", err)
	}
}

func TestItemUseCase_UpdateItem_ConcurrentPartialUpdates(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	account, err := f.accounts.CreateAccount(ctx, "Maria")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	item, err := f.items.AddItem(ctx, usecase.AddItemInput{
		AccountID: account.ID, Name: "Soap", Quantity: 1, Price: money(t, "2.50"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	raw := mocks.NewMockItemRepository(f.store)
	fetched := make(chan struct{})
	var once sync.Once
	f.itemRepo.GetByIDFunc = func(ctx context.Context, id string) (*domain.Item, error) {
		once.Do(func() { close(fetched) })
		return raw.GetByID(ctx, id)
	}

	f.locks.Lock(account.ID)

	name := "Detergent"
	done := make(chan struct{})
	var updated *domain.Item
	var updateErr error
	go func() {
		updated, updateErr = f.items.UpdateItem(ctx, usecase.UpdateItemInput{
			ItemID: item.ID, Name: &name,
		})
		close(done)
	}()

	// The name update has resolved its owning account and is waiting on the
	// lock. Commit a quantity change before letting it in.
	<-fetched
	current, err := raw.GetByID(ctx, item.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	current.Quantity = 5
	if err := raw.Update(ctx, nil, current); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := f.accountRepo.RecomputeTotals(ctx, nil, account.ID, time.Now().UTC()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	f.locks.Unlock(account.ID)
	<-done

	if updateErr != nil {
		t.Fatalf("unexpected error: %v", updateErr)
	}

	if updated.Name != "Detergent" || updated.Quantity != 5 {
		t.Errorf("lost a concurrent field update: name=%q quantity=%d", updated.Name, updated.Quantity)
	}

	final, err := raw.GetByID(ctx, item.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if final.Name != "Detergent" || final.Quantity != 5 {
		t.Errorf("stored row lost a field: name=%q quantity=%d", final.Name, final.Quantity)
	}

	if got := accountTotal(t, f, account.ID).String(); got != "12.50" {
		t.Errorf("expected account_total 12.50, got %s", got)
	}
}

func TestItemUseCase_DeleteItem_NotFound(t *testing.T) {
	f := newFixture(t)

	if err := f.items.DeleteItem(context.Background(), "missing"); err != domain.ErrItemNotFound {
		t.Fatalf("expected ErrItemNotFound, got %v", err)
	}
}
