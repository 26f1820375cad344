package command

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/mfcastro/contas/internal/infrastructure/metrics"
	"github.com/mfcastro/contas/internal/usecase"
)

// Command names accepted by the dispatcher.
const (
	CmdFindAllAccounts = "find_all_accounts"
	CmdFindAccountByID = "find_account_by_id"
	CmdCreateAccount   = "create_account"
	CmdDeleteAccount   = "delete_account"
	CmdAddItem         = "add_item"
	CmdDeleteItem      = "delete_item"
	CmdUpdateItem      = "update_item"
	CmdAddPayment      = "add_payment"
	CmdDeletePayment   = "delete_payment"
	CmdUpdatePayment   = "update_payment"
	CmdCreateProduct   = "create_product"
	CmdFindAllProducts = "find_all_products"
	CmdUpdateProduct   = "update_product"
	CmdDeleteProduct   = "delete_product"
)

// Dispatcher routes named commands with named arguments to the use cases.
// It is the process-boundary adapter: callers get either a result payload
// or a {kind, message} failure, never a raw error.
type Dispatcher struct {
	accounts *usecase.AccountUseCase
	items    *usecase.ItemUseCase
	payments *usecase.PaymentUseCase
	products *usecase.ProductUseCase
	logger   zerolog.Logger
	metrics  *metrics.Metrics
}

// NewDispatcher creates a new Dispatcher. Metrics may be nil.
func NewDispatcher(
	accounts *usecase.AccountUseCase,
	items *usecase.ItemUseCase,
	payments *usecase.PaymentUseCase,
	products *usecase.ProductUseCase,
	logger zerolog.Logger,
	m *metrics.Metrics,
) *Dispatcher {
	return &Dispatcher{
		accounts: accounts,
		items:    items,
		payments: payments,
		products: products,
		logger:   logger,
		metrics:  m,
	}
}

// Dispatch executes the named command. On failure the result is nil and the
// Failure carries the kind and a caller-safe message.
func (d *Dispatcher) Dispatch(ctx context.Context, name string, args Args) (any, *Failure) {
	start := time.Now()

	result, err := d.dispatch(ctx, name, args)

	kind := "ok"
	if err != nil {
		failure := failureFrom(err)
		kind = failure.Kind

		d.logger.Warn().
			Str("command", name).
			Str("kind", failure.Kind).
			Err(err).
			Msg("command failed")

		d.observe(name, kind, time.Since(start))

		return nil, failure
	}

	d.observe(name, kind, time.Since(start))

	return result, nil
}

func (d *Dispatcher) observe(name, result string, elapsed time.Duration) {
	if d.metrics == nil {
		return
	}

	d.metrics.CommandRequests.WithLabelValues(name, result).Inc()
	d.metrics.CommandDuration.WithLabelValues(name).Observe(elapsed.Seconds())
}

func (d *Dispatcher) dispatch(ctx context.Context, name string, args Args) (any, error) {
	switch name {
	case CmdFindAllAccounts:
		accounts, err := d.accounts.ListAccounts(ctx)
		if err != nil {
			return nil, err
		}
		return accountsToPayload(accounts), nil

	case CmdFindAccountByID:
		id, err := args.requiredString("accountId")
		if err != nil {
			return nil, err
		}
		account, err := d.accounts.GetAccount(ctx, id)
		if err != nil {
			return nil, err
		}
		return accountToPayload(account), nil

	case CmdCreateAccount:
		owner, err := args.requiredString("owner")
		if err != nil {
			return nil, err
		}
		account, err := d.accounts.CreateAccount(ctx, owner)
		if err != nil {
			return nil, err
		}
		if d.metrics != nil {
			d.metrics.AccountsCreated.Inc()
		}
		return accountToPayload(account), nil

	case CmdDeleteAccount:
		id, err := args.requiredString("accountId")
		if err != nil {
			return nil, err
		}
		if err := d.accounts.DeleteAccount(ctx, id); err != nil {
			return nil, err
		}
		if d.metrics != nil {
			d.metrics.AccountsDeleted.Inc()
		}
		return nil, nil

	case CmdAddItem:
		return d.addItem(ctx, args)

	case CmdDeleteItem:
		id, err := args.requiredString("itemId")
		if err != nil {
			return nil, err
		}
		return nil, d.items.DeleteItem(ctx, id)

	case CmdUpdateItem:
		return d.updateItem(ctx, args)

	case CmdAddPayment:
		return d.addPayment(ctx, args)

	case CmdDeletePayment:
		id, err := args.requiredString("paymentId")
		if err != nil {
			return nil, err
		}
		return nil, d.payments.DeletePayment(ctx, id)

	case CmdUpdatePayment:
		return d.updatePayment(ctx, args)

	case CmdCreateProduct:
		return d.createProduct(ctx, args)

	case CmdFindAllProducts:
		products, err := d.products.ListProducts(ctx)
		if err != nil {
			return nil, err
		}
		return productsToPayload(products), nil

	case CmdUpdateProduct:
		return d.updateProduct(ctx, args)

	case CmdDeleteProduct:
		id, err := args.requiredString("productId")
		if err != nil {
			return nil, err
		}
		return nil, d.products.DeleteProduct(ctx, id)

	default:
		return nil, fmt.Errorf("%w: unknown command %q", errMalformed, name)
	}
}

func (d *Dispatcher) addItem(ctx context.Context, args Args) (any, error) {
	accountID, err := args.requiredString("accountId")
	if err != nil {
		return nil, err
	}
	name, err := args.requiredString("name")
	if err != nil {
		return nil, err
	}
	quantity, err := args.requiredInt("quantity")
	if err != nil {
		return nil, err
	}
	price, err := args.requiredMoney("price")
	if err != nil {
		return nil, err
	}
	notes, err := args.optionalString("notes")
	if err != nil {
		return nil, err
	}
	productID, err := args.optionalString("productId")
	if err != nil {
		return nil, err
	}

	input := usecase.AddItemInput{
		AccountID: accountID,
		Name:      name,
		Quantity:  quantity,
		Price:     price,
		ProductID: productID,
	}
	if notes != nil {
		input.Notes = *notes
	}

	item, err := d.items.AddItem(ctx, input)
	if err != nil {
		return nil, err
	}

	return itemToPayload(item), nil
}

func (d *Dispatcher) updateItem(ctx context.Context, args Args) (any, error) {
	itemID, err := args.requiredString("itemId")
	if err != nil {
		return nil, err
	}
	name, err := args.optionalString("name")
	if err != nil {
		return nil, err
	}
	quantity, err := args.optionalInt("quantity")
	if err != nil {
		return nil, err
	}
	price, err := args.optionalMoney("price")
	if err != nil {
		return nil, err
	}
	notes, err := args.optionalString("notes")
	if err != nil {
		return nil, err
	}

	item, err := d.items.UpdateItem(ctx, usecase.UpdateItemInput{
		ItemID:   itemID,
		Name:     name,
		Quantity: quantity,
		Price:    price,
		Notes:    notes,
	})
	if err != nil {
		return nil, err
	}

	return itemToPayload(item), nil
}

func (d *Dispatcher) addPayment(ctx context.Context, args Args) (any, error) {
	accountID, err := args.requiredString("accountId")
	if err != nil {
		return nil, err
	}
	amount, err := args.requiredMoney("amount")
	if err != nil {
		return nil, err
	}

	payment, err := d.payments.AddPayment(ctx, accountID, amount)
	if err != nil {
		return nil, err
	}

	return paymentToPayload(payment), nil
}

func (d *Dispatcher) updatePayment(ctx context.Context, args Args) (any, error) {
	paymentID, err := args.requiredString("paymentId")
	if err != nil {
		return nil, err
	}
	amount, err := args.requiredMoney("amount")
	if err != nil {
		return nil, err
	}

	payment, err := d.payments.UpdatePaymentAmount(ctx, paymentID, amount)
	if err != nil {
		return nil, err
	}

	return paymentToPayload(payment), nil
}

func (d *Dispatcher) createProduct(ctx context.Context, args Args) (any, error) {
	name, err := args.requiredString("name")
	if err != nil {
		return nil, err
	}
	price, err := args.requiredMoney("price")
	if err != nil {
		return nil, err
	}

	product, err := d.products.CreateProduct(ctx, name, price)
	if err != nil {
		return nil, err
	}

	return productToPayload(product), nil
}

func (d *Dispatcher) updateProduct(ctx context.Context, args Args) (any, error) {
	productID, err := args.requiredString("productId")
	if err != nil {
		return nil, err
	}
	name, err := args.optionalString("name")
	if err != nil {
		return nil, err
	}
	price, err := args.optionalMoney("price")
	if err != nil {
		return nil, err
	}

	product, err := d.products.UpdateProduct(ctx, usecase.UpdateProductInput{
		ProductID: productID,
		Name:      name,
		Price:     price,
	})
	if err != nil {
		return nil, err
	}

	return productToPayload(product), nil
}
