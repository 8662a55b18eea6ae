package usecase

import (
	"context"
	"testing"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// =====================
// 共有Mock（usecaseテスト全体で使う）
// =====================

type orderRepoMock struct{ mock.Mock }

func (m *orderRepoMock) Create(ctx context.Context, order model.Order) (int64, error) {
	args := m.Called(ctx, order)
	return args.Get(0).(int64), args.Error(1)
}

func (m *orderRepoMock) FindByID(ctx context.Context, orderID int64) (model.Order, error) {
	args := m.Called(ctx, orderID)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *orderRepoMock) FindByPaymentRef(ctx context.Context, ref string) (model.Order, error) {
	args := m.Called(ctx, ref)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *orderRepoMock) ListByCustomer(ctx context.Context, f repo.CustomerOrderListFilter) ([]model.Order, int64, error) {
	args := m.Called(ctx, f)
	items, _ := args.Get(0).([]model.Order)
	return items, args.Get(1).(int64), args.Error(2)
}

func (m *orderRepoMock) ListByRestaurant(ctx context.Context, f repo.RestaurantOrderListFilter) ([]model.Order, int64, error) {
	args := m.Called(ctx, f)
	items, _ := args.Get(0).([]model.Order)
	return items, args.Get(1).(int64), args.Error(2)
}

func (m *orderRepoMock) ListPrepared(ctx context.Context, page int, limit int) ([]model.Order, int64, error) {
	args := m.Called(ctx, page, limit)
	items, _ := args.Get(0).([]model.Order)
	return items, args.Get(1).(int64), args.Error(2)
}

func (m *orderRepoMock) UpdateStatusGuard(ctx context.Context, orderID int64, from model.OrderStatus, to model.OrderStatus) (int64, error) {
	args := m.Called(ctx, orderID, from, to)
	return args.Get(0).(int64), args.Error(1)
}

func (m *orderRepoMock) AssignDriverGuard(ctx context.Context, orderID int64, driverID int64) (int64, error) {
	args := m.Called(ctx, orderID, driverID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *orderRepoMock) SetPaymentRef(ctx context.Context, orderID int64, ref string) error {
	args := m.Called(ctx, orderID, ref)
	return args.Error(0)
}

type orderItemRepoMock struct{ mock.Mock }

func (m *orderItemRepoMock) CreateBulk(ctx context.Context, orderID int64, items []model.OrderItem) error {
	args := m.Called(ctx, orderID, items)
	return args.Error(0)
}

func (m *orderItemRepoMock) ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error) {
	args := m.Called(ctx, orderID)
	items, _ := args.Get(0).([]model.OrderItem)
	return items, args.Error(1)
}

type orderEventRepoMock struct{ mock.Mock }

func (m *orderEventRepoMock) Create(ctx context.Context, ev model.OrderStatusEvent) error {
	args := m.Called(ctx, ev)
	return args.Error(0)
}

func (m *orderEventRepoMock) ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderStatusEvent, error) {
	panic("not used")
}

type cartRepoMock struct{ mock.Mock }

func (m *cartRepoMock) GetOrCreate(ctx context.Context, customerID int64, restaurantID int64) (model.Cart, error) {
	args := m.Called(ctx, customerID, restaurantID)
	c, _ := args.Get(0).(model.Cart)
	return c, args.Error(1)
}

func (m *cartRepoMock) FindByID(ctx context.Context, cartID int64) (model.Cart, error) {
	args := m.Called(ctx, cartID)
	c, _ := args.Get(0).(model.Cart)
	return c, args.Error(1)
}

func (m *cartRepoMock) ListByCustomerID(ctx context.Context, customerID int64) ([]model.Cart, error) {
	args := m.Called(ctx, customerID)
	carts, _ := args.Get(0).([]model.Cart)
	return carts, args.Error(1)
}

func (m *cartRepoMock) Delete(ctx context.Context, cartID int64) error {
	args := m.Called(ctx, cartID)
	return args.Error(0)
}

type cartItemRepoMock struct{ mock.Mock }

func (m *cartItemRepoMock) ListByCartID(ctx context.Context, cartID int64) ([]model.CartItem, error) {
	args := m.Called(ctx, cartID)
	items, _ := args.Get(0).([]model.CartItem)
	return items, args.Error(1)
}

func (m *cartItemRepoMock) UpsertByCartAndProduct(ctx context.Context, cartID int64, productID int64, addQty int64) (model.CartItem, error) {
	args := m.Called(ctx, cartID, productID, addQty)
	ci, _ := args.Get(0).(model.CartItem)
	return ci, args.Error(1)
}

func (m *cartItemRepoMock) UpdateQuantity(ctx context.Context, cartItemID int64, qty int64) error {
	args := m.Called(ctx, cartItemID, qty)
	return args.Error(0)
}

func (m *cartItemRepoMock) DeleteByID(ctx context.Context, cartItemID int64) error {
	args := m.Called(ctx, cartItemID)
	return args.Error(0)
}

func (m *cartItemRepoMock) DeleteByCartID(ctx context.Context, cartID int64) error {
	args := m.Called(ctx, cartID)
	return args.Error(0)
}

func (m *cartItemRepoMock) FindByID(ctx context.Context, cartItemID int64) (model.CartItem, error) {
	args := m.Called(ctx, cartItemID)
	ci, _ := args.Get(0).(model.CartItem)
	return ci, args.Error(1)
}

type productRepoMock struct{ mock.Mock }

func (m *productRepoMock) ListByRestaurant(ctx context.Context, q repo.ProductListQuery) ([]model.Product, int64, error) {
	args := m.Called(ctx, q)
	items, _ := args.Get(0).([]model.Product)
	return items, args.Get(1).(int64), args.Error(2)
}

func (m *productRepoMock) FindByID(ctx context.Context, id int64) (model.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

func (m *productRepoMock) Create(ctx context.Context, p model.Product) (model.Product, error) {
	args := m.Called(ctx, p)
	created, _ := args.Get(0).(model.Product)
	return created, args.Error(1)
}

func (m *productRepoMock) Update(ctx context.Context, p model.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *productRepoMock) SoftDelete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type customerRepoMock struct{ mock.Mock }

func (m *customerRepoMock) Create(ctx context.Context, c model.Customer) (model.Customer, error) {
	args := m.Called(ctx, c)
	created, _ := args.Get(0).(model.Customer)
	return created, args.Error(1)
}

func (m *customerRepoMock) FindByID(ctx context.Context, id int64) (model.Customer, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(model.Customer)
	return c, args.Error(1)
}

func (m *customerRepoMock) FindByUserID(ctx context.Context, userID int64) (model.Customer, error) {
	args := m.Called(ctx, userID)
	c, _ := args.Get(0).(model.Customer)
	return c, args.Error(1)
}

type restaurantRepoMock struct{ mock.Mock }

func (m *restaurantRepoMock) ListPublic(ctx context.Context, q repo.RestaurantListQuery) ([]model.Restaurant, int64, error) {
	args := m.Called(ctx, q)
	items, _ := args.Get(0).([]model.Restaurant)
	return items, args.Get(1).(int64), args.Error(2)
}

func (m *restaurantRepoMock) FindByID(ctx context.Context, id int64) (model.Restaurant, error) {
	args := m.Called(ctx, id)
	r, _ := args.Get(0).(model.Restaurant)
	return r, args.Error(1)
}

func (m *restaurantRepoMock) FindByUserID(ctx context.Context, userID int64) (model.Restaurant, error) {
	args := m.Called(ctx, userID)
	r, _ := args.Get(0).(model.Restaurant)
	return r, args.Error(1)
}

func (m *restaurantRepoMock) Create(ctx context.Context, r model.Restaurant) (model.Restaurant, error) {
	args := m.Called(ctx, r)
	created, _ := args.Get(0).(model.Restaurant)
	return created, args.Error(1)
}

func (m *restaurantRepoMock) Update(ctx context.Context, r model.Restaurant) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *restaurantRepoMock) IsOwnedBy(ctx context.Context, restaurantID int64, userID int64) (bool, error) {
	args := m.Called(ctx, restaurantID, userID)
	return args.Bool(0), args.Error(1)
}

type driverRepoMock struct{ mock.Mock }

func (m *driverRepoMock) Create(ctx context.Context, d model.Driver) (model.Driver, error) {
	args := m.Called(ctx, d)
	created, _ := args.Get(0).(model.Driver)
	return created, args.Error(1)
}

func (m *driverRepoMock) FindByID(ctx context.Context, id int64) (model.Driver, error) {
	args := m.Called(ctx, id)
	d, _ := args.Get(0).(model.Driver)
	return d, args.Error(1)
}

func (m *driverRepoMock) FindByUserID(ctx context.Context, userID int64) (model.Driver, error) {
	args := m.Called(ctx, userID)
	d, _ := args.Get(0).(model.Driver)
	return d, args.Error(1)
}

func (m *driverRepoMock) Update(ctx context.Context, d model.Driver) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

type userRepoMock struct{ mock.Mock }

func (m *userRepoMock) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *userRepoMock) FindByID(ctx context.Context, userID int64) (*model.User, error) {
	args := m.Called(ctx, userID)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *userRepoMock) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *userRepoMock) Update(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// =====================
// Txのスタブ（トランザクションをそのまま実行するだけ）
// =====================

type txReposStub struct {
	orders      *orderRepoMock
	orderItems  *orderItemRepoMock
	orderEvents *orderEventRepoMock
	carts       *cartRepoMock
	cartItems   *cartItemRepoMock
	products    *productRepoMock
}

func newTxReposStub() *txReposStub {
	return &txReposStub{
		orders:      new(orderRepoMock),
		orderItems:  new(orderItemRepoMock),
		orderEvents: new(orderEventRepoMock),
		carts:       new(cartRepoMock),
		cartItems:   new(cartItemRepoMock),
		products:    new(productRepoMock),
	}
}

func (s *txReposStub) Orders() repo.OrderRepository           { return s.orders }
func (s *txReposStub) OrderItems() repo.OrderItemRepository   { return s.orderItems }
func (s *txReposStub) OrderEvents() repo.OrderEventRepository { return s.orderEvents }
func (s *txReposStub) Carts() repo.CartRepository             { return s.carts }
func (s *txReposStub) CartItems() repo.CartItemRepository     { return s.cartItems }
func (s *txReposStub) Products() repo.ProductRepository       { return s.products }

type txManagerStub struct {
	repos *txReposStub
}

func (s *txManagerStub) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return fn(s.repos)
}

// =====================
// 共通assert
// =====================

func assertHTTPStatus(t *testing.T, err error, status int) {
	t.Helper()
	assert.Error(t, err)
	he, ok := AsHTTPError(err)
	if assert.True(t, ok, "expected HTTPError, got %v", err) {
		assert.Equal(t, status, he.Status)
	}
}
