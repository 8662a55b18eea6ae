package usecase

import (
	"context"
	"net/http"
	"testing"

	"app/internal/domain/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type processorMock struct{ mock.Mock }

func (m *processorMock) InitializeTransaction(ctx context.Context, email string, amount int64, reference string, callbackURL string) (string, error) {
	args := m.Called(ctx, email, amount, reference, callbackURL)
	return args.String(0), args.Error(1)
}

func (m *processorMock) VerifyTransaction(ctx context.Context, reference string) (bool, error) {
	args := m.Called(ctx, reference)
	return args.Bool(0), args.Error(1)
}

type paymentFixture struct {
	uc        *PaymentUsecase
	orders    *orderRepoMock
	items     *orderItemRepoMock
	customers *customerRepoMock
	users     *userRepoMock
	processor *processorMock
	tx        *txReposStub
}

func newPaymentFixture() paymentFixture {
	orders := new(orderRepoMock)
	items := new(orderItemRepoMock)
	customers := new(customerRepoMock)
	users := new(userRepoMock)
	processor := new(processorMock)

	tx := newTxReposStub()
	transitions := NewOrderTransitionUsecase(&txManagerStub{repos: tx}, customers, new(restaurantRepoMock), new(driverRepoMock))

	uc := NewPaymentUsecase(orders, items, customers, users, processor, transitions, "https://app.example/payment/verify")
	return paymentFixture{uc: uc, orders: orders, items: items, customers: customers, users: users, processor: processor, tx: tx}
}

func TestInitializePayment_Success(t *testing.T) {
	f := newPaymentFixture()

	f.customers.On("FindByUserID", mock.Anything, int64(10)).Return(model.Customer{ID: 7, UserID: 10}, nil)
	f.orders.On("FindByID", mock.Anything, int64(1)).
		Return(model.Order{ID: 1, CustomerID: 7, TotalAmount: 2400, Status: model.OrderStatusPendingPayment}, nil)
	f.users.On("FindByID", mock.Anything, int64(10)).
		Return(&model.User{ID: 10, Email: "c@example.com"}, nil)

	var issuedRef string
	f.orders.On("SetPaymentRef", mock.Anything, int64(1), mock.MatchedBy(func(ref string) bool {
		issuedRef = ref
		return ref != ""
	})).Return(nil)

	f.processor.On("InitializeTransaction", mock.Anything, "c@example.com", int64(2400),
		mock.MatchedBy(func(ref string) bool { return ref == issuedRef }),
		"https://app.example/payment/verify").
		Return("https://pay.example/abc", nil)

	out, err := f.uc.InitializePayment(context.Background(), 10, 1)

	assert.NoError(t, err)
	assert.Equal(t, "https://pay.example/abc", out.AuthorizationURL)
	f.orders.AssertExpectations(t)
	f.processor.AssertExpectations(t)
}

func TestInitializePayment_NotAwaitingPayment(t *testing.T) {
	f := newPaymentFixture()

	f.customers.On("FindByUserID", mock.Anything, int64(10)).Return(model.Customer{ID: 7, UserID: 10}, nil)
	f.orders.On("FindByID", mock.Anything, int64(1)).
		Return(model.Order{ID: 1, CustomerID: 7, Status: model.OrderStatusPaymentConfirmed}, nil)

	_, err := f.uc.InitializePayment(context.Background(), 10, 1)

	assertHTTPStatus(t, err, http.StatusConflict)
	f.processor.AssertNotCalled(t, "InitializeTransaction", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// 他人の注文への支払い開始は404。
func TestInitializePayment_ForeignOrderHidden(t *testing.T) {
	f := newPaymentFixture()

	f.customers.On("FindByUserID", mock.Anything, int64(10)).Return(model.Customer{ID: 7, UserID: 10}, nil)
	f.orders.On("FindByID", mock.Anything, int64(1)).
		Return(model.Order{ID: 1, CustomerID: 8, Status: model.OrderStatusPendingPayment}, nil)

	_, err := f.uc.InitializePayment(context.Background(), 10, 1)
	assertHTTPStatus(t, err, http.StatusNotFound)
}

// verify成功でPendingRestaurantConfirmationまで自動で進む。
func TestVerifyPayment_AdvancesToRestaurantConfirmation(t *testing.T) {
	f := newPaymentFixture()

	f.orders.On("FindByPaymentRef", mock.Anything, "ref-1").
		Return(model.Order{ID: 1, Status: model.OrderStatusPendingPayment}, nil)
	f.processor.On("VerifyTransaction", mock.Anything, "ref-1").Return(true, nil)

	confirmed := model.Order{ID: 1, Status: model.OrderStatusPendingRestaurantConfirmation}
	f.tx.orders.On("FindByID", mock.Anything, int64(1)).Return(confirmed, nil)
	f.tx.orders.On("UpdateStatusGuard", mock.Anything, int64(1),
		model.OrderStatusPendingPayment, model.OrderStatusPaymentConfirmed).Return(int64(1), nil)
	f.tx.orders.On("UpdateStatusGuard", mock.Anything, int64(1),
		model.OrderStatusPaymentConfirmed, model.OrderStatusPendingRestaurantConfirmation).Return(int64(1), nil)
	f.tx.orderEvents.On("Create", mock.Anything, mock.Anything).Return(nil).Twice()
	f.tx.orderItems.On("ListByOrderID", mock.Anything, int64(1)).Return([]model.OrderItem{}, nil)

	out, err := f.uc.VerifyPayment(context.Background(), "ref-1")

	assert.NoError(t, err)
	assert.Equal(t, string(model.OrderStatusPendingRestaurantConfirmation), out.Status)
	f.tx.orders.AssertExpectations(t)
}

// コールバック再送は現在の状態を返すだけ。ゲートウェイには再照会しない。
func TestVerifyPayment_ReplayIsIdempotent(t *testing.T) {
	f := newPaymentFixture()

	f.orders.On("FindByPaymentRef", mock.Anything, "ref-1").
		Return(model.Order{ID: 1, Status: model.OrderStatusAcceptedByRestaurant}, nil)
	f.items.On("ListByOrderID", mock.Anything, int64(1)).Return([]model.OrderItem{}, nil)

	out, err := f.uc.VerifyPayment(context.Background(), "ref-1")

	assert.NoError(t, err)
	assert.Equal(t, string(model.OrderStatusAcceptedByRestaurant), out.Status)
	f.processor.AssertNotCalled(t, "VerifyTransaction", mock.Anything, mock.Anything)
	f.tx.orders.AssertNotCalled(t, "UpdateStatusGuard", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestVerifyPayment_GatewayDeclined(t *testing.T) {
	f := newPaymentFixture()

	f.orders.On("FindByPaymentRef", mock.Anything, "ref-1").
		Return(model.Order{ID: 1, Status: model.OrderStatusPendingPayment}, nil)
	f.processor.On("VerifyTransaction", mock.Anything, "ref-1").Return(false, nil)

	_, err := f.uc.VerifyPayment(context.Background(), "ref-1")
	assertHTTPStatus(t, err, http.StatusBadRequest)
}
