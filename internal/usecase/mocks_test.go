package usecase

import (
	"context"

	"storefront/internal/domain/model"
	"storefront/internal/payment"
	repo "storefront/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// Mocking repositories

type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Create(ctx context.Context, order model.Order) (int64, error) {
	args := m.Called(ctx, order)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockOrderRepository) FindByID(ctx context.Context, orderID int64) (model.Order, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).(model.Order), args.Error(1)
}
func (m *MockOrderRepository) ListByUserID(ctx context.Context, userID int64, page int, limit int) ([]model.Order, int64, error) {
	args := m.Called(ctx, userID, page, limit)
	return args.Get(0).([]model.Order), args.Get(1).(int64), args.Error(2)
}
func (m *MockOrderRepository) UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error {
	args := m.Called(ctx, orderID, status)
	return args.Error(0)
}
func (m *MockOrderRepository) SetPaymentIntent(ctx context.Context, orderID int64, intentID string) error {
	args := m.Called(ctx, orderID, intentID)
	return args.Error(0)
}
func (m *MockOrderRepository) MarkPaid(ctx context.Context, orderID int64, intentID string) error {
	args := m.Called(ctx, orderID, intentID)
	return args.Error(0)
}
func (m *MockOrderRepository) FindByIdempotencyKey(ctx context.Context, userID int64, key string) (model.Order, bool, error) {
	args := m.Called(ctx, userID, key)
	return args.Get(0).(model.Order), args.Bool(1), args.Error(2)
}

type MockOrderItemRepository struct {
	mock.Mock
}

func (m *MockOrderItemRepository) CreateBulk(ctx context.Context, orderID int64, items []model.OrderItem) error {
	args := m.Called(ctx, orderID, items)
	return args.Error(0)
}
func (m *MockOrderItemRepository) ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).([]model.OrderItem), args.Error(1)
}

type MockCartItemRepository struct {
	mock.Mock
}

func (m *MockCartItemRepository) ListByUserID(ctx context.Context, userID int64) ([]model.CartItem, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]model.CartItem), args.Error(1)
}
func (m *MockCartItemRepository) FindByID(ctx context.Context, cartItemID int64) (model.CartItem, error) {
	args := m.Called(ctx, cartItemID)
	return args.Get(0).(model.CartItem), args.Error(1)
}
func (m *MockCartItemRepository) Upsert(ctx context.Context, userID int64, productID int64, addQty int64) (model.CartItem, error) {
	args := m.Called(ctx, userID, productID, addQty)
	return args.Get(0).(model.CartItem), args.Error(1)
}
func (m *MockCartItemRepository) UpdateQuantity(ctx context.Context, cartItemID int64, qty int64) error {
	args := m.Called(ctx, cartItemID, qty)
	return args.Error(0)
}
func (m *MockCartItemRepository) DeleteByID(ctx context.Context, cartItemID int64) error {
	args := m.Called(ctx, cartItemID)
	return args.Error(0)
}
func (m *MockCartItemRepository) ClearByUserID(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

type MockInventoryRepository struct {
	mock.Mock
}

func (m *MockInventoryRepository) DecreaseStockIfEnough(ctx context.Context, productID int64, qty int64) (bool, error) {
	args := m.Called(ctx, productID, qty)
	return args.Bool(0), args.Error(1)
}
func (m *MockInventoryRepository) SetStock(ctx context.Context, productID int64, newStock int64) error {
	args := m.Called(ctx, productID, newStock)
	return args.Error(0)
}

type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) ListActive(ctx context.Context, q repo.ProductListQuery) ([]model.Product, int64, error) {
	args := m.Called(ctx, q)
	return args.Get(0).([]model.Product), args.Get(1).(int64), args.Error(2)
}
func (m *MockProductRepository) FindByID(ctx context.Context, id int64) (model.Product, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Product), args.Error(1)
}
func (m *MockProductRepository) FindActiveByID(ctx context.Context, id int64) (model.Product, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Product), args.Error(1)
}
func (m *MockProductRepository) ListBySeller(ctx context.Context, sellerID int64) ([]model.Product, error) {
	args := m.Called(ctx, sellerID)
	return args.Get(0).([]model.Product), args.Error(1)
}
func (m *MockProductRepository) Create(ctx context.Context, p model.Product) (model.Product, error) {
	args := m.Called(ctx, p)
	return args.Get(0).(model.Product), args.Error(1)
}
func (m *MockProductRepository) Update(ctx context.Context, p model.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}
func (m *MockProductRepository) SoftDelete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockOrderEventRepository struct {
	mock.Mock
}

func (m *MockOrderEventRepository) Append(ctx context.Context, ev model.OrderEvent) error {
	args := m.Called(ctx, ev)
	return args.Error(0)
}
func (m *MockOrderEventRepository) ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderEvent, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).([]model.OrderEvent), args.Error(1)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user model.User) (model.User, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(model.User), args.Error(1)
}
func (m *MockUserRepository) FindByID(ctx context.Context, id int64) (model.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.User), args.Error(1)
}
func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (model.User, error) {
	args := m.Called(ctx, username)
	return args.Get(0).(model.User), args.Error(1)
}
func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (model.User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(model.User), args.Error(1)
}

// Mocking payment gateway

type MockPaymentGateway struct {
	mock.Mock
}

func (m *MockPaymentGateway) CreateIntent(ctx context.Context, amount decimal.Decimal, orderID int64, userID int64) (payment.Intent, error) {
	args := m.Called(ctx, amount, orderID, userID)
	return args.Get(0).(payment.Intent), args.Error(1)
}
func (m *MockPaymentGateway) ConfirmIntent(ctx context.Context, intentID string) error {
	args := m.Called(ctx, intentID)
	return args.Error(0)
}

// Tx境界を素通しするTransactionManager。
// fnがerrorを返したら書き込みは無かったものとして扱う（mock側で検証する）。
type fakeTxManager struct {
	repos *fakeTxRepos
}

type fakeTxRepos struct {
	orders      *MockOrderRepository
	orderItems  *MockOrderItemRepository
	cartItems   *MockCartItemRepository
	inventory   *MockInventoryRepository
	products    *MockProductRepository
	orderEvents *MockOrderEventRepository
}

func newFakeTxManager() *fakeTxManager {
	return &fakeTxManager{
		repos: &fakeTxRepos{
			orders:      new(MockOrderRepository),
			orderItems:  new(MockOrderItemRepository),
			cartItems:   new(MockCartItemRepository),
			inventory:   new(MockInventoryRepository),
			products:    new(MockProductRepository),
			orderEvents: new(MockOrderEventRepository),
		},
	}
}

func (m *fakeTxManager) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return fn(m.repos)
}

func (r *fakeTxRepos) Orders() repo.OrderRepository           { return r.orders }
func (r *fakeTxRepos) OrderItems() repo.OrderItemRepository   { return r.orderItems }
func (r *fakeTxRepos) CartItems() repo.CartItemRepository     { return r.cartItems }
func (r *fakeTxRepos) Inventory() repo.InventoryRepository    { return r.inventory }
func (r *fakeTxRepos) Products() repo.ProductRepository       { return r.products }
func (r *fakeTxRepos) OrderEvents() repo.OrderEventRepository { return r.orderEvents }
