package integration

import (
	"context"
	"sync"
	"testing"

	"github.com/mfcastro/contas/internal/domain"
	"github.com/mfcastro/contas/internal/usecase"
)

func TestConcurrentItemMutations(t *testing.T) {
	stack := newTestStack(t)
	ctx := context.Background()

	account := stack.DB.CreateTestAccount(ctx, "Maria")

	const workers = 10
	price, err := domain.MoneyFromString("1.00")
	if err != nil {
		t.Fatalf("failed to parse price: %v", err)
	}

	var wg sync.WaitGroup
	errs := make(chan error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := stack.Items.AddItem(ctx, usecase.AddItemInput{
				AccountID: account.ID,
				Name:      "Soap",
				Quantity:  1,
				Price:     price,
			})
			errs <- err
		}()
	}

	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			t.Fatalf("concurrent add failed: %v", err)
		}
	}

	fetched, err := stack.Accounts.GetAccount(ctx, account.ID)
	if err != nil {
		t.Fatalf("failed to fetch account: %v", err)
	}
	if fetched.AccountTotal.String() != "10.00" {
		t.Fatalf("expected total 10.00, got %s", fetched.AccountTotal)
	}
	if len(fetched.Items) != workers {
		t.Fatalf("expected %d items, got %d", workers, len(fetched.Items))
	}
}

func TestConcurrentPaymentsSettleOnce(t *testing.T) {
	stack := newTestStack(t)
	ctx := context.Background()

	account := stack.DB.CreateTestAccount(ctx, "Ana")

	price, _ := domain.MoneyFromString("4.00")
	if _, err := stack.Items.AddItem(ctx, usecase.AddItemInput{
		AccountID: account.ID,
		Name:      "Rice",
		Quantity:  5,
		Price:     price,
	}); err != nil {
		t.Fatalf("failed to add item: %v", err)
	}

	amount, _ := domain.MoneyFromString("5.00")

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := stack.Payments.AddPayment(ctx, account.ID, amount); err != nil {
				t.Errorf("payment failed: %v", err)
			}
		}()
	}
	wg.Wait()

	fetched, err := stack.Accounts.GetAccount(ctx, account.ID)
	if err != nil {
		t.Fatalf("failed to fetch account: %v", err)
	}
	if fetched.PaidAmount.String() != "20.00" {
		t.Fatalf("expected paid 20.00, got %s", fetched.PaidAmount)
	}
	if fetched.Status() != domain.StatusSettled {
		t.Fatalf("expected settled account, got %s", fetched.Status())
	}
}
