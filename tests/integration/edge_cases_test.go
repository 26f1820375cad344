package integration

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/mfcastro/contas/internal/domain"
	"github.com/mfcastro/contas/internal/usecase"
)

func TestValidationRejectedOverHTTP(t *testing.T) {
	stack := newTestStack(t)
	base := stack.Server.URL + "/api/v1"

	resp := postJSON(t, base+"/accounts", `{"owner":"  "}`)
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for blank owner, got %d", resp.StatusCode)
	}

	account := stack.DB.CreateTestAccount(context.Background(), "Maria")

	resp = postJSON(t, base+"/accounts/"+account.ID+"/items", `{"name":"Soap","quantity":0,"price":2.50}`)
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for zero quantity, got %d", resp.StatusCode)
	}

	resp = postJSON(t, base+"/accounts/"+account.ID+"/payments", `{"amount":0}`)
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for zero payment, got %d", resp.StatusCode)
	}

	resp = postJSON(t, base+"/accounts/missing/items", `{"name":"Soap","quantity":1,"price":2.50}`)
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown account, got %d", resp.StatusCode)
	}
}

func TestOverpaymentKeepsAccountSettled(t *testing.T) {
	stack := newTestStack(t)
	ctx := context.Background()

	account := stack.DB.CreateTestAccount(ctx, "Ana")

	price, _ := domain.MoneyFromString("2.50")
	item, err := stack.Items.AddItem(ctx, usecase.AddItemInput{
		AccountID: account.ID,
		Name:      "Soap",
		Quantity:  3,
		Price:     price,
	})
	if err != nil {
		t.Fatalf("failed to add item: %v", err)
	}

	amount, _ := domain.MoneyFromString("7.50")
	if _, err := stack.Payments.AddPayment(ctx, account.ID, amount); err != nil {
		t.Fatalf("failed to pay: %v", err)
	}

	// Removing the item leaves the payment in place. Balance goes negative
	// and the account stays settled.
	if err := stack.Items.DeleteItem(ctx, item.ID); err != nil {
		t.Fatalf("failed to delete item: %v", err)
	}

	fetched, err := stack.Accounts.GetAccount(ctx, account.ID)
	if err != nil {
		t.Fatalf("failed to fetch account: %v", err)
	}
	if fetched.AccountTotal.String() != "0.00" {
		t.Fatalf("expected total 0.00, got %s", fetched.AccountTotal)
	}
	if fetched.Balance().String() != "-7.50" {
		t.Fatalf("expected balance -7.50, got %s", fetched.Balance())
	}
	if fetched.Status() != domain.StatusSettled {
		t.Fatalf("expected settled, got %s", fetched.Status())
	}
}

func TestDeleteAccountCascades(t *testing.T) {
	stack := newTestStack(t)
	ctx := context.Background()

	account := stack.DB.CreateTestAccount(ctx, "Jose")

	price, _ := domain.MoneyFromString("1.00")
	if _, err := stack.Items.AddItem(ctx, usecase.AddItemInput{
		AccountID: account.ID,
		Name:      "Bread",
		Quantity:  2,
		Price:     price,
	}); err != nil {
		t.Fatalf("failed to add item: %v", err)
	}

	amount, _ := domain.MoneyFromString("1.00")
	if _, err := stack.Payments.AddPayment(ctx, account.ID, amount); err != nil {
		t.Fatalf("failed to pay: %v", err)
	}

	if err := stack.Accounts.DeleteAccount(ctx, account.ID); err != nil {
		t.Fatalf("failed to delete account: %v", err)
	}

	if _, err := stack.Accounts.GetAccount(ctx, account.ID); !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}

	var items int
	if err := stack.DB.Pool.QueryRow(ctx, "SELECT COUNT(*) FROM items WHERE account_id = $1", account.ID).Scan(&items); err != nil {
		t.Fatalf("failed to count items: %v", err)
	}
	if items != 0 {
		t.Fatalf("expected items to be removed, found %d", items)
	}

	var payments int
	if err := stack.DB.Pool.QueryRow(ctx, "SELECT COUNT(*) FROM payments WHERE account_id = $1", account.ID).Scan(&payments); err != nil {
		t.Fatalf("failed to count payments: %v", err)
	}
	if payments != 0 {
		t.Fatalf("expected payments to be removed, found %d", payments)
	}
}
