package integration

import (
	"context"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/rs/zerolog"

	"github.com/mfcastro/contas/internal/adapter/command"
	adaptershttp "github.com/mfcastro/contas/internal/adapter/http"
	"github.com/mfcastro/contas/internal/adapter/http/handler"
	postgresRepo "github.com/mfcastro/contas/internal/adapter/repository/postgres"
	redisRepo "github.com/mfcastro/contas/internal/adapter/repository/redis"
	infraredis "github.com/mfcastro/contas/internal/infrastructure/redis"
	"github.com/mfcastro/contas/internal/usecase"
	"github.com/mfcastro/contas/tests/testutil"
)

type testStack struct {
	DB       *testutil.TestDB
	Server   *httptest.Server
	Accounts *usecase.AccountUseCase
	Items    *usecase.ItemUseCase
	Payments *usecase.PaymentUseCase
}

func newTestStack(t *testing.T) *testStack {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	testDB := testutil.NewTestDB(t)
	t.Cleanup(testDB.Cleanup)
	testDB.TruncateAll(ctx)

	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379"
	}
	redisClient, err := infraredis.NewClient(ctx, redisURL)
	if err != nil {
		t.Fatalf("failed to connect to redis: %v", err)
	}
	t.Cleanup(func() { redisClient.Close() })

	pool := testDB.Pool
	txManager := postgresRepo.NewTxManager(pool)
	accountRepo := postgresRepo.NewAccountRepository(pool)
	itemRepo := postgresRepo.NewItemRepository(pool)
	paymentRepo := postgresRepo.NewPaymentRepository(pool)
	productRepo := postgresRepo.NewProductRepository(pool)
	cache := redisRepo.NewCache(redisClient)
	retrier := postgresRepo.NewRetrier(zerolog.Nop())
	idGen := postgresRepo.NewULIDGenerator()
	locks := usecase.NewKeyedLocks()

	accountUC := usecase.NewAccountUseCase(txManager, accountRepo, itemRepo, paymentRepo, locks, cache, 0, retrier, idGen)
	itemUC := usecase.NewItemUseCase(txManager, accountRepo, itemRepo, locks, cache, 0, retrier, idGen)
	paymentUC := usecase.NewPaymentUseCase(txManager, accountRepo, paymentRepo, locks, cache, 0, retrier, idGen)
	productUC := usecase.NewProductUseCase(productRepo, idGen)

	dispatcher := command.NewDispatcher(accountUC, itemUC, paymentUC, productUC, zerolog.Nop(), nil)

	router := adaptershttp.NewRouter(adaptershttp.RouterConfig{
		AccountHandler: handler.NewAccountHandler(accountUC),
		ItemHandler:    handler.NewItemHandler(itemUC),
		PaymentHandler: handler.NewPaymentHandler(paymentUC),
		ProductHandler: handler.NewProductHandler(productUC),
		CommandHandler: handler.NewCommandHandler(dispatcher),
		HealthHandler:  handler.NewHealthHandler(pool, redisClient),
		Logger:         zerolog.Nop(),
	})

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return &testStack{
		DB:       testDB,
		Server:   server,
		Accounts: accountUC,
		Items:    itemUC,
		Payments: paymentUC,
	}
}
