package mocks

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/mfcastro/contas/internal/domain"
	"github.com/mfcastro/contas/internal/usecase"
)

// Store is shared in-memory backing state for the repository mocks. A single
// Store is handed to the account, item, and payment mocks so that
// RecomputeTotals can see the live item and payment rows, the way the real
// SQL does.
type Store struct {
	mu           sync.RWMutex
	accounts     map[string]*domain.Account
	accountOrder []string
	items        map[string]*domain.Item
	itemOrder    []string
	payments     map[string]*domain.Payment
	paymentOrder []string
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{
		accounts: make(map[string]*domain.Account),
		items:    make(map[string]*domain.Item),
		payments: make(map[string]*domain.Payment),
	}
}

func (s *Store) accountCopy(id string) (*domain.Account, bool) {
	a, ok := s.accounts[id]
	if !ok {
		return nil, false
	}

	cp := *a
	cp.Items = nil
	cp.Payments = nil

	return &cp, true
}

func (s *Store) recompute(id string, updatedAt time.Time) {
	a, ok := s.accounts[id]
	if !ok {
		return
	}

	total := domain.Zero
	for _, itemID := range s.itemOrder {
		if item := s.items[itemID]; item.AccountID == id {
			total = total.Add(item.Subtotal())
		}
	}

	paid := domain.Zero
	for _, paymentID := range s.paymentOrder {
		if payment := s.payments[paymentID]; payment.AccountID == id {
			paid = paid.Add(payment.Amount)
		}
	}

	a.AccountTotal = total
	a.PaidAmount = paid
	a.UpdatedAt = updatedAt
}

// snapshot deep-copies the store. Snapshot transactions read from the copy,
// so mutations committed to the live store mid-read stay invisible, the way
// a repeatable-read transaction behaves.
func (s *Store) snapshot() *Store {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cp := NewStore()
	for id, a := range s.accounts {
		c := *a
		cp.accounts[id] = &c
	}
	cp.accountOrder = append([]string(nil), s.accountOrder...)
	for id, item := range s.items {
		c := *item
		cp.items[id] = &c
	}
	cp.itemOrder = append([]string(nil), s.itemOrder...)
	for id, payment := range s.payments {
		c := *payment
		cp.payments[id] = &c
	}
	cp.paymentOrder = append([]string(nil), s.paymentOrder...)

	return cp
}

// storeFor resolves reads against the transaction's snapshot when there is
// one, and against the live store otherwise.
func storeFor(tx usecase.Transaction, live *Store) *Store {
	if mt, ok := tx.(*MockTransaction); ok && mt.snapshot != nil {
		return mt.snapshot
	}

	return live
}

func remove(order []string, id string) []string {
	for i, v := range order {
		if v == id {
			return append(order[:i], order[i+1:]...)
		}
	}

	return order
}

// MockTransaction is a no-op usecase.Transaction. Snapshot transactions
// carry a frozen copy of the store that reads resolve against.
type MockTransaction struct {
	Committed  bool
	RolledBack bool

	snapshot *Store
}

func (t *MockTransaction) Commit(ctx context.Context) error {
	t.Committed = true
	return nil
}

func (t *MockTransaction) Rollback(ctx context.Context) error {
	if !t.Committed {
		t.RolledBack = true
	}
	return nil
}

// MockTxManager is a mock implementation of TransactionManager.
type MockTxManager struct {
	store *Store

	BeginFunc         func(ctx context.Context) (usecase.Transaction, error)
	BeginSnapshotFunc func(ctx context.Context) (usecase.Transaction, error)
	Began             int
	Snapshots         int
}

func NewMockTxManager(store *Store) *MockTxManager {
	return &MockTxManager{store: store}
}

func (m *MockTxManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	m.Began++
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	return &MockTransaction{}, nil
}

func (m *MockTxManager) BeginSnapshot(ctx context.Context) (usecase.Transaction, error) {
	m.Snapshots++
	if m.BeginSnapshotFunc != nil {
		return m.BeginSnapshotFunc(ctx)
	}
	return &MockTransaction{snapshot: m.store.snapshot()}, nil
}

// MockIDGenerator is a mock implementation of IDGenerator. By default it
// returns "id-1", "id-2", ...
type MockIDGenerator struct {
	mu           sync.Mutex
	n            int
	GenerateFunc func() string
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.n++
	return "id-" + strconv.Itoa(m.n)
}

// MockCache is a map-backed usecase.Cache.
type MockCache struct {
	mu      sync.Mutex
	values  map[string]string
	Gets    int
	Sets    int
	Deletes int

	GetFunc    func(ctx context.Context, key string) (string, error)
	SetFunc    func(ctx context.Context, key, value string, ttl time.Duration) error
	DeleteFunc func(ctx context.Context, key string) error
}

func NewMockCache() *MockCache {
	return &MockCache{values: make(map[string]string)}
}

func (m *MockCache) Get(ctx context.Context, key string) (string, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, key)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Gets++
	v, ok := m.values[key]
	if !ok {
		return "", usecase.ErrCacheMiss
	}
	return v, nil
}

func (m *MockCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if m.SetFunc != nil {
		return m.SetFunc(ctx, key, value, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Sets++
	m.values[key] = value
	return nil
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, key)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Deletes++
	delete(m.values, key)
	return nil
}

// MockAccountRepository is a Store-backed mock of AccountRepository.
type MockAccountRepository struct {
	store *Store

	CreateFunc           func(ctx context.Context, account *domain.Account) error
	GetByIDFunc          func(ctx context.Context, tx usecase.Transaction, id string) (*domain.Account, error)
	GetByIDForUpdateFunc func(ctx context.Context, tx usecase.Transaction, id string) (*domain.Account, error)
	ListFunc             func(ctx context.Context, tx usecase.Transaction) ([]*domain.Account, error)
	DeleteFunc           func(ctx context.Context, tx usecase.Transaction, id string) error
	RecomputeTotalsFunc  func(ctx context.Context, tx usecase.Transaction, id string, updatedAt time.Time) error

	// AfterGetByID and AfterList run after the corresponding default read
	// returns, outside the store lock. Tests use them to commit a mutation
	// between the account-row read and the item/payment reads.
	AfterGetByID func()
	AfterList    func()
}

func NewMockAccountRepository(store *Store) *MockAccountRepository {
	return &MockAccountRepository{store: store}
}

func (m *MockAccountRepository) Create(ctx context.Context, account *domain.Account) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, account)
	}
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	cp := *account
	m.store.accounts[account.ID] = &cp
	m.store.accountOrder = append(m.store.accountOrder, account.ID)
	return nil
}

func (m *MockAccountRepository) GetByID(ctx context.Context, tx usecase.Transaction, id string) (*domain.Account, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, tx, id)
	}
	s := storeFor(tx, m.store)
	s.mu.RLock()
	a, ok := s.accountCopy(id)
	s.mu.RUnlock()
	if m.AfterGetByID != nil {
		m.AfterGetByID()
	}
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	return a, nil
}

func (m *MockAccountRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Account, error) {
	if m.GetByIDForUpdateFunc != nil {
		return m.GetByIDForUpdateFunc(ctx, tx, id)
	}
	m.store.mu.RLock()
	defer m.store.mu.RUnlock()
	if a, ok := m.store.accountCopy(id); ok {
		return a, nil
	}
	return nil, domain.ErrAccountNotFound
}

func (m *MockAccountRepository) List(ctx context.Context, tx usecase.Transaction) ([]*domain.Account, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, tx)
	}
	s := storeFor(tx, m.store)
	s.mu.RLock()
	accounts := make([]*domain.Account, 0, len(s.accountOrder))
	for _, id := range s.accountOrder {
		a, _ := s.accountCopy(id)
		accounts = append(accounts, a)
	}
	s.mu.RUnlock()
	if m.AfterList != nil {
		m.AfterList()
	}
	return accounts, nil
}

func (m *MockAccountRepository) Delete(ctx context.Context, tx usecase.Transaction, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, tx, id)
	}
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	if _, ok := m.store.accounts[id]; !ok {
		return domain.ErrAccountNotFound
	}
	delete(m.store.accounts, id)
	m.store.accountOrder = remove(m.store.accountOrder, id)
	return nil
}

func (m *MockAccountRepository) RecomputeTotals(ctx context.Context, tx usecase.Transaction, id string, updatedAt time.Time) error {
	if m.RecomputeTotalsFunc != nil {
		return m.RecomputeTotalsFunc(ctx, tx, id, updatedAt)
	}
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	m.store.recompute(id, updatedAt)
	return nil
}

// MockItemRepository is a Store-backed mock of ItemRepository.
type MockItemRepository struct {
	store *Store

	CreateFunc  func(ctx context.Context, tx usecase.Transaction, item *domain.Item) error
	GetByIDFunc func(ctx context.Context, id string) (*domain.Item, error)
	UpdateFunc  func(ctx context.Context, tx usecase.Transaction, item *domain.Item) error
	DeleteFunc  func(ctx context.Context, tx usecase.Transaction, id string) error
}

func NewMockItemRepository(store *Store) *MockItemRepository {
	return &MockItemRepository{store: store}
}

func (m *MockItemRepository) Create(ctx context.Context, tx usecase.Transaction, item *domain.Item) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, item)
	}
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	cp := *item
	m.store.items[item.ID] = &cp
	m.store.itemOrder = append(m.store.itemOrder, item.ID)
	return nil
}

func (m *MockItemRepository) GetByID(ctx context.Context, id string) (*domain.Item, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.store.mu.RLock()
	defer m.store.mu.RUnlock()
	if item, ok := m.store.items[id]; ok {
		cp := *item
		return &cp, nil
	}
	return nil, domain.ErrItemNotFound
}

func (m *MockItemRepository) Update(ctx context.Context, tx usecase.Transaction, item *domain.Item) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, tx, item)
	}
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	if _, ok := m.store.items[item.ID]; !ok {
		return domain.ErrItemNotFound
	}
	cp := *item
	m.store.items[item.ID] = &cp
	return nil
}

func (m *MockItemRepository) Delete(ctx context.Context, tx usecase.Transaction, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, tx, id)
	}
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	if _, ok := m.store.items[id]; !ok {
		return domain.ErrItemNotFound
	}
	delete(m.store.items, id)
	m.store.itemOrder = remove(m.store.itemOrder, id)
	return nil
}

func (m *MockItemRepository) DeleteByAccount(ctx context.Context, tx usecase.Transaction, accountID string) error {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	for _, id := range append([]string(nil), m.store.itemOrder...) {
		if m.store.items[id].AccountID == accountID {
			delete(m.store.items, id)
			m.store.itemOrder = remove(m.store.itemOrder, id)
		}
	}
	return nil
}

func (m *MockItemRepository) ListByAccount(ctx context.Context, tx usecase.Transaction, accountID string) ([]*domain.Item, error) {
	return m.ListByAccountIDs(ctx, tx, []string{accountID})
}

func (m *MockItemRepository) ListByAccountIDs(ctx context.Context, tx usecase.Transaction, accountIDs []string) ([]*domain.Item, error) {
	s := storeFor(tx, m.store)
	s.mu.RLock()
	defer s.mu.RUnlock()
	wanted := make(map[string]bool, len(accountIDs))
	for _, id := range accountIDs {
		wanted[id] = true
	}
	var items []*domain.Item
	for _, id := range s.itemOrder {
		if item := s.items[id]; wanted[item.AccountID] {
			cp := *item
			items = append(items, &cp)
		}
	}
	return items, nil
}

// MockPaymentRepository is a Store-backed mock of PaymentRepository.
type MockPaymentRepository struct {
	store *Store

	CreateFunc       func(ctx context.Context, tx usecase.Transaction, payment *domain.Payment) error
	GetByIDFunc      func(ctx context.Context, id string) (*domain.Payment, error)
	UpdateAmountFunc func(ctx context.Context, tx usecase.Transaction, id string, amount domain.Money) error
	DeleteFunc       func(ctx context.Context, tx usecase.Transaction, id string) error
}

func NewMockPaymentRepository(store *Store) *MockPaymentRepository {
	return &MockPaymentRepository{store: store}
}

func (m *MockPaymentRepository) Create(ctx context.Context, tx usecase.Transaction, payment *domain.Payment) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, payment)
	}
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	cp := *payment
	m.store.payments[payment.ID] = &cp
	m.store.paymentOrder = append(m.store.paymentOrder, payment.ID)
	return nil
}

func (m *MockPaymentRepository) GetByID(ctx context.Context, id string) (*domain.Payment, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.store.mu.RLock()
	defer m.store.mu.RUnlock()
	if payment, ok := m.store.payments[id]; ok {
		cp := *payment
		return &cp, nil
	}
	return nil, domain.ErrPaymentNotFound
}

func (m *MockPaymentRepository) UpdateAmount(ctx context.Context, tx usecase.Transaction, id string, amount domain.Money) error {
	if m.UpdateAmountFunc != nil {
		return m.UpdateAmountFunc(ctx, tx, id, amount)
	}
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	payment, ok := m.store.payments[id]
	if !ok {
		return domain.ErrPaymentNotFound
	}
	payment.Amount = amount
	return nil
}

func (m *MockPaymentRepository) Delete(ctx context.Context, tx usecase.Transaction, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, tx, id)
	}
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	if _, ok := m.store.payments[id]; !ok {
		return domain.ErrPaymentNotFound
	}
	delete(m.store.payments, id)
	m.store.paymentOrder = remove(m.store.paymentOrder, id)
	return nil
}

func (m *MockPaymentRepository) DeleteByAccount(ctx context.Context, tx usecase.Transaction, accountID string) error {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	for _, id := range append([]string(nil), m.store.paymentOrder...) {
		if m.store.payments[id].AccountID == accountID {
			delete(m.store.payments, id)
			m.store.paymentOrder = remove(m.store.paymentOrder, id)
		}
	}
	return nil
}

func (m *MockPaymentRepository) ListByAccount(ctx context.Context, tx usecase.Transaction, accountID string) ([]*domain.Payment, error) {
	return m.ListByAccountIDs(ctx, tx, []string{accountID})
}

func (m *MockPaymentRepository) ListByAccountIDs(ctx context.Context, tx usecase.Transaction, accountIDs []string) ([]*domain.Payment, error) {
	s := storeFor(tx, m.store)
	s.mu.RLock()
	defer s.mu.RUnlock()
	wanted := make(map[string]bool, len(accountIDs))
	for _, id := range accountIDs {
		wanted[id] = true
	}
	var payments []*domain.Payment
	for _, id := range s.paymentOrder {
		if payment := s.payments[id]; wanted[payment.AccountID] {
			cp := *payment
			payments = append(payments, &cp)
		}
	}
	return payments, nil
}
