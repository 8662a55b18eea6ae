package usecase

import (
	"context"
	"net/http"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/google/uuid"
)

// 決済ゲートウェイに求めるのはこの2つだけ。
type PaymentProcessor interface {
	InitializeTransaction(ctx context.Context, email string, amount int64, reference string, callbackURL string) (authorizationURL string, err error)
	VerifyTransaction(ctx context.Context, reference string) (bool, error)
}

type PaymentUsecase struct {
	orderRepo    repo.OrderRepository
	orderItems   repo.OrderItemRepository
	customerRepo repo.CustomerRepository
	userRepo     repo.UserRepository
	processor    PaymentProcessor
	transitions  *OrderTransitionUsecase
	callbackURL  string
}

func NewPaymentUsecase(
	orderRepo repo.OrderRepository,
	orderItems repo.OrderItemRepository,
	customerRepo repo.CustomerRepository,
	userRepo repo.UserRepository,
	processor PaymentProcessor,
	transitions *OrderTransitionUsecase,
	callbackURL string,
) *PaymentUsecase {
	return &PaymentUsecase{
		orderRepo:    orderRepo,
		orderItems:   orderItems,
		customerRepo: customerRepo,
		userRepo:     userRepo,
		processor:    processor,
		transitions:  transitions,
		callbackURL:  callbackURL,
	}
}

type InitializePaymentOutput struct {
	AuthorizationURL string `json:"authorization_url"`
}

// InitializePayment は自分のPendingPayment注文の支払いを開始する。
func (u *PaymentUsecase) InitializePayment(ctx context.Context, userID int64, orderID int64) (InitializePaymentOutput, error) {
	customer, err := u.customerRepo.FindByUserID(ctx, userID)
	if err == repo.ErrNotFound {
		return InitializePaymentOutput{}, NewHTTPError(http.StatusNotFound, "order not found")
	}
	if err != nil {
		return InitializePaymentOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	order, err := u.orderRepo.FindByID(ctx, orderID)
	if err == repo.ErrNotFound {
		return InitializePaymentOutput{}, NewHTTPError(http.StatusNotFound, "order not found")
	}
	if err != nil {
		return InitializePaymentOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if order.CustomerID != customer.ID {
		return InitializePaymentOutput{}, NewHTTPError(http.StatusNotFound, "order not found")
	}
	if order.Status != model.OrderStatusPendingPayment {
		return InitializePaymentOutput{}, NewHTTPError(http.StatusConflict, "order is not awaiting payment")
	}

	user, err := u.userRepo.FindByID(ctx, userID)
	if err != nil {
		return InitializePaymentOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	//参照番号を採番してから取引開始（verifyはこの番号で照合する）
	ref := uuid.NewString()
	if err := u.orderRepo.SetPaymentRef(ctx, order.ID, ref); err != nil {
		if err == repo.ErrNotFound {
			//先に支払われた等でPendingPaymentでなくなっている
			return InitializePaymentOutput{}, NewHTTPError(http.StatusConflict, "order is not awaiting payment")
		}
		return InitializePaymentOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	authURL, err := u.processor.InitializeTransaction(ctx, user.Email, order.TotalAmount, ref, u.callbackURL)
	if err != nil {
		return InitializePaymentOutput{}, NewHTTPError(http.StatusInternalServerError, "payment gateway error")
	}

	return InitializePaymentOutput{AuthorizationURL: authURL}, nil
}

// VerifyPayment はcallbackで渡ってきたreferenceを検証し、成功なら
// PendingRestaurantConfirmation まで進める。コールバックの再送は現在の注文を返すだけ。
func (u *PaymentUsecase) VerifyPayment(ctx context.Context, reference string) (OrderOutput, error) {
	if reference == "" {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid reference")
	}

	order, err := u.orderRepo.FindByPaymentRef(ctx, reference)
	if err == repo.ErrNotFound {
		return OrderOutput{}, NewHTTPError(http.StatusNotFound, "order not found")
	}
	if err != nil {
		return OrderOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	// 再送（すでに確認済み）なら今の状態をそのまま返す
	if order.Status != model.OrderStatusPendingPayment {
		items, err := u.orderItems.ListByOrderID(ctx, order.ID)
		if err != nil {
			return OrderOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
		return toOrderOutput(order, items), nil
	}

	ok, err := u.processor.VerifyTransaction(ctx, reference)
	if err != nil {
		return OrderOutput{}, NewHTTPError(http.StatusInternalServerError, "payment gateway error")
	}
	if !ok {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "payment not confirmed")
	}

	return u.transitions.ConfirmPayment(ctx, order.ID)
}
