package repository

import (
	"context"

	"app/internal/domain/model"
)

// 顧客向け一覧の絞り込み。IncludeStatuses か ExcludeStatuses のどちらか一方を使う。
type CustomerOrderListFilter struct {
	CustomerID      int64
	IncludeStatuses []model.OrderStatus
	ExcludeStatuses []model.OrderStatus
	Page            int
	Limit           int
}

type RestaurantOrderListFilter struct {
	RestaurantID int64
	Status       model.OrderStatus //空なら全件
	Page         int
	Limit        int
}

type OrderRepository interface {
	Create(ctx context.Context, order model.Order) (int64, error)
	FindByID(ctx context.Context, orderID int64) (model.Order, error)
	FindByPaymentRef(ctx context.Context, ref string) (model.Order, error)

	ListByCustomer(ctx context.Context, f CustomerOrderListFilter) ([]model.Order, int64, error)
	ListByRestaurant(ctx context.Context, f RestaurantOrderListFilter) ([]model.Order, int64, error)
	// ドライバーが受けられる注文（= OrderPrepared）
	ListPrepared(ctx context.Context, page int, limit int) ([]model.Order, int64, error)

	// ガード付きステータス更新（compare-and-set）。
	// 現在statusがfromの行だけを書き換え、書き換えた行数を返す。
	// 0 はロスト（別の遷移が先に入った or 状態が違う）。
	UpdateStatusGuard(ctx context.Context, orderID int64, from model.OrderStatus, to model.OrderStatus) (int64, error)

	// ドライバーのクレーム。status=OrderPrepared かつ driver_id IS NULL の行だけに
	// (AssignedToDriver, driverID) を書く。勝者はちょうど1人。
	AssignDriverGuard(ctx context.Context, orderID int64, driverID int64) (int64, error)

	// 決済参照の採番（PendingPaymentの自分の注文のみ）
	SetPaymentRef(ctx context.Context, orderID int64, ref string) error
}
