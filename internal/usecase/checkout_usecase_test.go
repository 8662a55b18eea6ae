package usecase

import (
	"context"
	"net/http"
	"testing"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newCheckoutFixture() (*CheckoutUsecase, *txReposStub, *customerRepoMock) {
	tx := newTxReposStub()
	customers := new(customerRepoMock)
	uc := NewCheckoutUsecase(&txManagerStub{repos: tx}, customers, NewFlatFeePolicy())
	return uc, tx, customers
}

// 1000円の商品×2 → amount 2000、手数料100+300、合計2400、PendingPayment。
func TestCheckout_TotalsAndInitialStatus(t *testing.T) {
	uc, tx, customers := newCheckoutFixture()

	customers.On("FindByUserID", mock.Anything, int64(10)).
		Return(model.Customer{ID: 7, UserID: 10, Address: "somewhere"}, nil)

	tx.carts.On("FindByID", mock.Anything, int64(3)).
		Return(model.Cart{ID: 3, CustomerID: 7, RestaurantID: 5}, nil)
	tx.cartItems.On("ListByCartID", mock.Anything, int64(3)).
		Return([]model.CartItem{{ID: 1, CartID: 3, ProductID: 42, Quantity: 2}}, nil)
	tx.products.On("FindByID", mock.Anything, int64(42)).
		Return(model.Product{ID: 42, RestaurantID: 5, Price: 1000}, nil)

	tx.orders.On("Create", mock.Anything, mock.MatchedBy(func(o model.Order) bool {
		return o.CustomerID == 7 &&
			o.RestaurantID == 5 &&
			o.DriverID == nil &&
			o.Amount == 2000 &&
			o.ServiceCharge == 100 &&
			o.DeliveryFee == 300 &&
			o.TotalAmount == 2400 &&
			o.Status == model.OrderStatusPendingPayment
	})).Return(int64(99), nil)

	tx.orderItems.On("CreateBulk", mock.Anything, int64(99), mock.MatchedBy(func(items []model.OrderItem) bool {
		return len(items) == 1 &&
			items[0].ProductID == 42 &&
			items[0].Quantity == 2 &&
			items[0].UnitPriceSnapshot == 1000
	})).Return(nil)

	tx.cartItems.On("DeleteByCartID", mock.Anything, int64(3)).Return(nil)
	tx.carts.On("Delete", mock.Anything, int64(3)).Return(nil)

	out, err := uc.Checkout(context.Background(), 10, 3)

	assert.NoError(t, err)
	assert.Equal(t, int64(99), out.ID)
	assert.Equal(t, int64(2400), out.TotalAmount)
	assert.Equal(t, out.Amount+out.ServiceCharge+out.DeliveryFee, out.TotalAmount)
	assert.Equal(t, string(model.OrderStatusPendingPayment), out.Status)
	assert.Len(t, out.Items, 1)
	assert.Equal(t, int64(1000), out.Items[0].UnitPrice)

	tx.orders.AssertExpectations(t)
	tx.orderItems.AssertExpectations(t)
	tx.carts.AssertExpectations(t)
	tx.cartItems.AssertExpectations(t)
}

func TestCheckout_InvalidCartID(t *testing.T) {
	uc, _, _ := newCheckoutFixture()

	_, err := uc.Checkout(context.Background(), 10, 0)
	assertHTTPStatus(t, err, http.StatusBadRequest)
}

func TestCheckout_MissingCart(t *testing.T) {
	uc, tx, customers := newCheckoutFixture()

	customers.On("FindByUserID", mock.Anything, int64(10)).
		Return(model.Customer{ID: 7, UserID: 10}, nil)
	tx.carts.On("FindByID", mock.Anything, int64(3)).
		Return(model.Cart{}, repo.ErrNotFound)

	_, err := uc.Checkout(context.Background(), 10, 3)
	assertHTTPStatus(t, err, http.StatusNotFound)
	assert.Contains(t, err.Error(), "cart is empty or does not exist")
}

func TestCheckout_EmptyCart(t *testing.T) {
	uc, tx, customers := newCheckoutFixture()

	customers.On("FindByUserID", mock.Anything, int64(10)).
		Return(model.Customer{ID: 7, UserID: 10}, nil)
	tx.carts.On("FindByID", mock.Anything, int64(3)).
		Return(model.Cart{ID: 3, CustomerID: 7, RestaurantID: 5}, nil)
	tx.cartItems.On("ListByCartID", mock.Anything, int64(3)).
		Return([]model.CartItem{}, nil)

	_, err := uc.Checkout(context.Background(), 10, 3)
	assertHTTPStatus(t, err, http.StatusNotFound)

	//注文は作られていない
	tx.orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

// 他人のカートは「存在しない」と同じ扱い。
func TestCheckout_ForeignCartHidden(t *testing.T) {
	uc, tx, customers := newCheckoutFixture()

	customers.On("FindByUserID", mock.Anything, int64(10)).
		Return(model.Customer{ID: 7, UserID: 10}, nil)
	tx.carts.On("FindByID", mock.Anything, int64(3)).
		Return(model.Cart{ID: 3, CustomerID: 8, RestaurantID: 5}, nil)

	_, err := uc.Checkout(context.Background(), 10, 3)
	assertHTTPStatus(t, err, http.StatusNotFound)
	assert.Contains(t, err.Error(), "cart is empty or does not exist")
}

// スナップショット価格はチェックアウト時点の商品価格。
func TestCheckout_SnapshotsCurrentPrice(t *testing.T) {
	uc, tx, customers := newCheckoutFixture()

	customers.On("FindByUserID", mock.Anything, int64(10)).
		Return(model.Customer{ID: 7, UserID: 10}, nil)
	tx.carts.On("FindByID", mock.Anything, int64(3)).
		Return(model.Cart{ID: 3, CustomerID: 7, RestaurantID: 5}, nil)
	tx.cartItems.On("ListByCartID", mock.Anything, int64(3)).
		Return([]model.CartItem{
			{ID: 1, CartID: 3, ProductID: 42, Quantity: 1},
			{ID: 2, CartID: 3, ProductID: 43, Quantity: 3},
		}, nil)
	//42は値上がり後の価格で取り込まれる
	tx.products.On("FindByID", mock.Anything, int64(42)).
		Return(model.Product{ID: 42, RestaurantID: 5, Price: 1500}, nil)
	tx.products.On("FindByID", mock.Anything, int64(43)).
		Return(model.Product{ID: 43, RestaurantID: 5, Price: 200}, nil)

	tx.orders.On("Create", mock.Anything, mock.MatchedBy(func(o model.Order) bool {
		return o.Amount == 1500+3*200
	})).Return(int64(100), nil)
	tx.orderItems.On("CreateBulk", mock.Anything, int64(100), mock.Anything).Return(nil)
	tx.cartItems.On("DeleteByCartID", mock.Anything, int64(3)).Return(nil)
	tx.carts.On("Delete", mock.Anything, int64(3)).Return(nil)

	out, err := uc.Checkout(context.Background(), 10, 3)

	assert.NoError(t, err)
	assert.Equal(t, int64(2100), out.Amount)
	assert.Equal(t, int64(1500), out.Items[0].UnitPrice)
	assert.Equal(t, int64(200), out.Items[1].UnitPrice)
}

// 未決済の注文は決済参照がNULLのまま作られる。
// 空文字で入れると2件目のINSERTが一意制約に当たるため、複数の未払い注文が共存できることを固定する。
func TestCheckout_UnpaidOrdersCarryNoPaymentRef(t *testing.T) {
	uc, tx, customers := newCheckoutFixture()

	customers.On("FindByUserID", mock.Anything, int64(10)).
		Return(model.Customer{ID: 7, UserID: 10}, nil)

	for _, cartID := range []int64{3, 4} {
		tx.carts.On("FindByID", mock.Anything, cartID).
			Return(model.Cart{ID: cartID, CustomerID: 7, RestaurantID: 5}, nil)
		tx.cartItems.On("ListByCartID", mock.Anything, cartID).
			Return([]model.CartItem{{ID: cartID, CartID: cartID, ProductID: 42, Quantity: 1}}, nil)
		tx.cartItems.On("DeleteByCartID", mock.Anything, cartID).Return(nil)
		tx.carts.On("Delete", mock.Anything, cartID).Return(nil)
	}
	tx.products.On("FindByID", mock.Anything, int64(42)).
		Return(model.Product{ID: 42, RestaurantID: 5, Price: 1000}, nil)

	tx.orders.On("Create", mock.Anything, mock.MatchedBy(func(o model.Order) bool {
		return o.PaymentRef == nil
	})).Return(int64(100), nil).Twice()
	tx.orderItems.On("CreateBulk", mock.Anything, int64(100), mock.Anything).Return(nil)

	_, err := uc.Checkout(context.Background(), 10, 3)
	assert.NoError(t, err)
	_, err = uc.Checkout(context.Background(), 10, 4)
	assert.NoError(t, err)

	tx.orders.AssertExpectations(t)
}

func TestFlatFeePolicy(t *testing.T) {
	p := NewFlatFeePolicy()

	sc, df, err := p.ComputeFees(context.Background(), 2000, 5, "anywhere")
	assert.NoError(t, err)
	assert.Equal(t, int64(100), sc)
	assert.Equal(t, int64(300), df)
}
