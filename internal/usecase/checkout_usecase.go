package usecase

import (
	"context"
	"net/http"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

// CheckoutUsecase はカート→注文の変換。
// 注文作成とカート削除は1トランザクション。途中で失敗したらどちらも残らない。
type CheckoutUsecase struct {
	tx           repo.TransactionManager
	customerRepo repo.CustomerRepository
	fees         FeePolicy
}

func NewCheckoutUsecase(tx repo.TransactionManager, customerRepo repo.CustomerRepository, fees FeePolicy) *CheckoutUsecase {
	return &CheckoutUsecase{tx: tx, customerRepo: customerRepo, fees: fees}
}

type OrderItemOutput struct {
	ProductID int64 `json:"product_id"`
	Quantity  int64 `json:"quantity"`
	UnitPrice int64 `json:"unit_price"`
}

type OrderOutput struct {
	ID            int64             `json:"id"`
	CustomerID    int64             `json:"customer_id"`
	RestaurantID  int64             `json:"restaurant_id"`
	DriverID      *int64            `json:"driver_id"`
	Amount        int64             `json:"amount"`
	ServiceCharge int64             `json:"service_charge"`
	DeliveryFee   int64             `json:"delivery_fee"`
	TotalAmount   int64             `json:"total_amount"`
	Status        string            `json:"status"`
	CreatedAt     time.Time         `json:"created_at"`
	Items         []OrderItemOutput `json:"items"`
}

// Checkout はカートを注文へ変換する。
// カートが無い・空・他人のもの、はすべて404（再送の二重注文もここで弾ける）。
func (u *CheckoutUsecase) Checkout(ctx context.Context, userID int64, cartID int64) (OrderOutput, error) {
	if cartID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid cart_id")
	}

	customer, err := u.customerRepo.FindByUserID(ctx, userID)
	if err == repo.ErrNotFound {
		return OrderOutput{}, NewHTTPError(http.StatusNotFound, "customer not found")
	}
	if err != nil {
		return OrderOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	var out OrderOutput

	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		cart, err := r.Carts().FindByID(ctx, cartID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "cart is empty or does not exist")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if cart.CustomerID != customer.ID {
			//他人のカートは存在しない扱い
			return NewHTTPError(http.StatusNotFound, "cart is empty or does not exist")
		}

		cartItems, err := r.CartItems().ListByCartID(ctx, cart.ID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if len(cartItems) == 0 {
			return NewHTTPError(http.StatusNotFound, "cart is empty or does not exist")
		}

		// 明細をスナップショット。単価はチェックアウト時点の商品価格で凍結する。
		orderItems := make([]model.OrderItem, 0, len(cartItems))
		var amount int64 = 0

		now := time.Now()
		for _, ci := range cartItems {
			p, err := r.Products().FindByID(ctx, ci.ProductID)
			if err == repo.ErrNotFound {
				return NewHTTPError(http.StatusNotFound, "cart is empty or does not exist")
			}
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}

			orderItems = append(orderItems, model.OrderItem{
				ProductID:         ci.ProductID,
				Quantity:          ci.Quantity,
				UnitPriceSnapshot: p.Price,
				CreatedAt:         now,
			})
			amount += p.Price * ci.Quantity
		}

		serviceCharge, deliveryFee, err := u.fees.ComputeFees(ctx, amount, cart.RestaurantID, customer.Address)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "fee policy error")
		}
		total := amount + serviceCharge + deliveryFee

		orderID, err := r.Orders().Create(ctx, model.Order{
			CustomerID:    customer.ID,
			RestaurantID:  cart.RestaurantID,
			DriverID:      nil,
			Amount:        amount,
			ServiceCharge: serviceCharge,
			DeliveryFee:   deliveryFee,
			TotalAmount:   total,
			Status:        model.OrderStatusPendingPayment,
			CreatedAt:     now,
			UpdatedAt:     now,
		})
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if err := r.OrderItems().CreateBulk(ctx, orderID, orderItems); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		// カートを引退させる（明細→本体の順）。2回目のcheckoutは404になる。
		if err := r.CartItems().DeleteByCartID(ctx, cart.ID); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if err := r.Carts().Delete(ctx, cart.ID); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = OrderOutput{
			ID:            orderID,
			CustomerID:    customer.ID,
			RestaurantID:  cart.RestaurantID,
			Amount:        amount,
			ServiceCharge: serviceCharge,
			DeliveryFee:   deliveryFee,
			TotalAmount:   total,
			Status:        string(model.OrderStatusPendingPayment),
			CreatedAt:     now,
			Items:         toOrderItemOutputs(orderItems),
		}
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

func toOrderItemOutputs(items []model.OrderItem) []OrderItemOutput {
	outs := make([]OrderItemOutput, 0, len(items))
	for _, it := range items {
		outs = append(outs, OrderItemOutput{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPriceSnapshot,
		})
	}
	return outs
}

func toOrderOutput(o model.Order, items []model.OrderItem) OrderOutput {
	return OrderOutput{
		ID:            o.ID,
		CustomerID:    o.CustomerID,
		RestaurantID:  o.RestaurantID,
		DriverID:      o.DriverID,
		Amount:        o.Amount,
		ServiceCharge: o.ServiceCharge,
		DeliveryFee:   o.DeliveryFee,
		TotalAmount:   o.TotalAmount,
		Status:        string(o.Status),
		CreatedAt:     o.CreatedAt,
		Items:         toOrderItemOutputs(items),
	}
}
