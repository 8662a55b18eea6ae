package usecase

import (
	"context"
	"net/http"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

// OrderTransitionUsecase が注文statusの唯一の書き手。
// すべての遷移は (1) ロール/所有チェック (2) 隣接表チェック (3) ガード付きUPDATE、の順で通す。
// ガードが0行なら競合に負けたということなので409を返す。
type OrderTransitionUsecase struct {
	tx             repo.TransactionManager
	customerRepo   repo.CustomerRepository
	restaurantRepo repo.RestaurantRepository
	driverRepo     repo.DriverRepository
}

func NewOrderTransitionUsecase(
	tx repo.TransactionManager,
	customerRepo repo.CustomerRepository,
	restaurantRepo repo.RestaurantRepository,
	driverRepo repo.DriverRepository,
) *OrderTransitionUsecase {
	return &OrderTransitionUsecase{
		tx:             tx,
		customerRepo:   customerRepo,
		restaurantRepo: restaurantRepo,
		driverRepo:     driverRepo,
	}
}

// 店舗が進められる遷移先
var restaurantSettable = map[model.OrderStatus]bool{
	model.OrderStatusAcceptedByRestaurant: true,
	model.OrderStatusDeclinedByRestaurant: true,
	model.OrderStatusOrderPrepared:        true,
}

// 担当ドライバーが進められる遷移先（クレームは別メソッド）
var driverSettable = map[model.OrderStatus]bool{
	model.OrderStatusDriverAtRestaurant: true,
	model.OrderStatusOrderInTransit:     true,
	model.OrderStatusDriverAtAddress:    true,
	model.OrderStatusOrderDelivered:     true,
}

// RestaurantUpdateStatus は店舗オーナーによる遷移（受諾/拒否/調理完了）。
func (u *OrderTransitionUsecase) RestaurantUpdateStatus(ctx context.Context, userID int64, orderID int64, to model.OrderStatus) (OrderOutput, error) {
	if !restaurantSettable[to] {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid status")
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		order, err := r.Orders().FindByID(ctx, orderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "order not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		owned, err := u.restaurantRepo.IsOwnedBy(ctx, order.RestaurantID, userID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if !owned {
			//注文はあるが自分の店のものではない
			return NewHTTPError(http.StatusForbidden, "forbidden")
		}

		return u.applyTransition(ctx, r, order, to, userID, model.RoleRestaurant, &out)
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

// DriverClaim はドライバーのクレーム（早い者勝ち）。
// status=OrderPrepared かつ driver_id IS NULL のときだけ成立する1回のCAS。
func (u *OrderTransitionUsecase) DriverClaim(ctx context.Context, userID int64, orderID int64) (OrderOutput, error) {
	driver, err := u.driverRepo.FindByUserID(ctx, userID)
	if err == repo.ErrNotFound {
		return OrderOutput{}, NewHTTPError(http.StatusForbidden, "driver profile required")
	}
	if err != nil {
		return OrderOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	var out OrderOutput

	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		order, err := r.Orders().FindByID(ctx, orderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "order not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		affected, err := r.Orders().AssignDriverGuard(ctx, order.ID, driver.ID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if affected == 0 {
			//別のドライバーに取られた、またはまだ準備できていない
			return NewHTTPError(http.StatusConflict, "order already taken or not ready")
		}

		if err := r.OrderEvents().Create(ctx, model.OrderStatusEvent{
			OrderID:     order.ID,
			ActorUserID: userID,
			ActorRole:   model.RoleDriver,
			FromStatus:  model.OrderStatusOrderPrepared,
			ToStatus:    model.OrderStatusAssignedToDriver,
			CreatedAt:   time.Now(),
		}); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		return u.loadOrderOutput(ctx, r, order.ID, &out)
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

// DriverUpdateStatus は担当ドライバーによる配達の進行。
func (u *OrderTransitionUsecase) DriverUpdateStatus(ctx context.Context, userID int64, orderID int64, to model.OrderStatus) (OrderOutput, error) {
	if !driverSettable[to] {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid status")
	}

	driver, err := u.driverRepo.FindByUserID(ctx, userID)
	if err == repo.ErrNotFound {
		return OrderOutput{}, NewHTTPError(http.StatusForbidden, "driver profile required")
	}
	if err != nil {
		return OrderOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	var out OrderOutput

	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		order, err := r.Orders().FindByID(ctx, orderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "order not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//担当ドライバー以外は進められない
		if order.DriverID == nil || *order.DriverID != driver.ID {
			return NewHTTPError(http.StatusForbidden, "forbidden")
		}

		return u.applyTransition(ctx, r, order, to, userID, model.RoleDriver, &out)
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

// CustomerCancel は受諾前のみ許すキャンセル。
func (u *OrderTransitionUsecase) CustomerCancel(ctx context.Context, userID int64, orderID int64) (OrderOutput, error) {
	customer, err := u.customerRepo.FindByUserID(ctx, userID)
	if err == repo.ErrNotFound {
		return OrderOutput{}, NewHTTPError(http.StatusNotFound, "order not found")
	}
	if err != nil {
		return OrderOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	var out OrderOutput

	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		order, err := r.Orders().FindByID(ctx, orderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "order not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//他人の注文は存在しない扱い
		if order.CustomerID != customer.ID {
			return NewHTTPError(http.StatusNotFound, "order not found")
		}

		if !model.CanCustomerCancel(order.Status) {
			return NewHTTPError(http.StatusConflict, "order can no longer be cancelled")
		}

		return u.applyTransition(ctx, r, order, model.OrderStatusCancelledByCustomer, userID, model.RoleCustomer, &out)
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

// ConfirmPayment は決済検証成功後の自動遷移。
// PendingPayment→PaymentConfirmed→PendingRestaurantConfirmation を同一Txで進める。
func (u *OrderTransitionUsecase) ConfirmPayment(ctx context.Context, orderID int64) (OrderOutput, error) {
	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		order, err := r.Orders().FindByID(ctx, orderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "order not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if err := u.guardedStep(ctx, r, order.ID, model.OrderStatusPendingPayment, model.OrderStatusPaymentConfirmed, 0, model.RolePayment); err != nil {
			return err
		}
		if err := u.guardedStep(ctx, r, order.ID, model.OrderStatusPaymentConfirmed, model.OrderStatusPendingRestaurantConfirmation, 0, model.RolePayment); err != nil {
			return err
		}

		return u.loadOrderOutput(ctx, r, order.ID, &out)
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

// applyTransition は隣接表→CAS→履歴の共通経路。order.Statusは読み取り時点のfrom。
func (u *OrderTransitionUsecase) applyTransition(ctx context.Context, r repo.TxRepos, order model.Order, to model.OrderStatus, actorUserID int64, actorRole model.Role, out *OrderOutput) error {
	if !model.CanTransition(order.Status, to) {
		return NewHTTPError(http.StatusConflict, "invalid status transition")
	}

	if err := u.guardedStep(ctx, r, order.ID, order.Status, to, actorUserID, actorRole); err != nil {
		return err
	}

	return u.loadOrderOutput(ctx, r, order.ID, out)
}

func (u *OrderTransitionUsecase) guardedStep(ctx context.Context, r repo.TxRepos, orderID int64, from model.OrderStatus, to model.OrderStatus, actorUserID int64, actorRole model.Role) error {
	affected, err := r.Orders().UpdateStatusGuard(ctx, orderID, from, to)
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if affected == 0 {
		//読み取りと書き込みの間に誰かが先に動かした
		return NewHTTPError(http.StatusConflict, "invalid status transition")
	}

	if err := r.OrderEvents().Create(ctx, model.OrderStatusEvent{
		OrderID:     orderID,
		ActorUserID: actorUserID,
		ActorRole:   actorRole,
		FromStatus:  from,
		ToStatus:    to,
		CreatedAt:   time.Now(),
	}); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func (u *OrderTransitionUsecase) loadOrderOutput(ctx context.Context, r repo.TxRepos, orderID int64, out *OrderOutput) error {
	order, err := r.Orders().FindByID(ctx, orderID)
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	items, err := r.OrderItems().ListByOrderID(ctx, orderID)
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	*out = toOrderOutput(order, items)
	return nil
}
