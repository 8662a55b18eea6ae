package usecase

import (
	"context"
	"net/http"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

// 読み取り専用のロール別ビュー。statusはここからは一切書かない。
type OrderViewUsecase struct {
	orderRepo      repo.OrderRepository
	orderItemRepo  repo.OrderItemRepository
	productRepo    repo.ProductRepository
	customerRepo   repo.CustomerRepository
	restaurantRepo repo.RestaurantRepository
	driverRepo     repo.DriverRepository
}

func NewOrderViewUsecase(
	orderRepo repo.OrderRepository,
	orderItemRepo repo.OrderItemRepository,
	productRepo repo.ProductRepository,
	customerRepo repo.CustomerRepository,
	restaurantRepo repo.RestaurantRepository,
	driverRepo repo.DriverRepository,
) *OrderViewUsecase {
	return &OrderViewUsecase{
		orderRepo:      orderRepo,
		orderItemRepo:  orderItemRepo,
		productRepo:    productRepo,
		customerRepo:   customerRepo,
		restaurantRepo: restaurantRepo,
		driverRepo:     driverRepo,
	}
}

type RestaurantSummary struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
}

type DriverSummary struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Vehicle string `json:"vehicle"`
}

type CustomerOrderView struct {
	OrderOutput
	Restaurant RestaurantSummary `json:"restaurant"`
	Driver     *DriverSummary    `json:"driver"`
}

type CustomerOrdersQuery struct {
	Status string
	Page   int
	Limit  int
}

// 顧客の注文一覧。statusグループ（Pending/Ongoing/Completed/Cancelled）で絞る。
func (u *OrderViewUsecase) ListCustomerOrders(ctx context.Context, userID int64, q CustomerOrdersQuery) ([]CustomerOrderView, error) {
	group, ok := model.ParseCustomerOrderGroup(q.Status)
	if !ok {
		return nil, NewHTTPError(http.StatusBadRequest, "invalid status. allowed values are Pending, Ongoing, Completed, Cancelled")
	}

	customer, err := u.customerRepo.FindByUserID(ctx, userID)
	if err == repo.ErrNotFound {
		return []CustomerOrderView{}, nil
	}
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	includes, excludes := group.StatusFilter()
	orders, _, err := u.orderRepo.ListByCustomer(ctx, repo.CustomerOrderListFilter{
		CustomerID:      customer.ID,
		IncludeStatuses: includes,
		ExcludeStatuses: excludes,
		Page:            q.Page,
		Limit:           q.Limit,
	})
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	out := make([]CustomerOrderView, 0, len(orders))
	for _, o := range orders {
		view, err := u.buildCustomerView(ctx, o)
		if err != nil {
			return nil, err
		}
		out = append(out, view)
	}
	return out, nil
}

// 顧客の注文詳細。他人の注文は404（存在を隠す）。
func (u *OrderViewUsecase) GetCustomerOrder(ctx context.Context, userID int64, orderID int64) (CustomerOrderView, error) {
	customer, err := u.customerRepo.FindByUserID(ctx, userID)
	if err == repo.ErrNotFound {
		return CustomerOrderView{}, NewHTTPError(http.StatusNotFound, "order not found")
	}
	if err != nil {
		return CustomerOrderView{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	order, err := u.orderRepo.FindByID(ctx, orderID)
	if err == repo.ErrNotFound {
		return CustomerOrderView{}, NewHTTPError(http.StatusNotFound, "order not found")
	}
	if err != nil {
		return CustomerOrderView{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if order.CustomerID != customer.ID {
		return CustomerOrderView{}, NewHTTPError(http.StatusNotFound, "order not found")
	}

	return u.buildCustomerView(ctx, order)
}

type RestaurantOrderItemView struct {
	ID       int64         `json:"id"`
	Product  model.Product `json:"product"`
	Quantity int64         `json:"quantity"`
	Price    int64         `json:"price"`
}

type RestaurantOrderView struct {
	OrderID    int64                     `json:"order_id"`
	CustomerID int64                     `json:"customer_id"`
	Status     string                    `json:"status"`
	Amount     int64                     `json:"amount"`
	CreatedAt  time.Time                 `json:"created_at"`
	OrderItems []RestaurantOrderItemView `json:"order_items"`
}

type RestaurantOrdersQuery struct {
	Status string
	Page   int
	Limit  int
}

// 店舗の注文一覧（自店のみ）。
func (u *OrderViewUsecase) ListRestaurantOrders(ctx context.Context, userID int64, q RestaurantOrdersQuery) ([]RestaurantOrderView, error) {
	rest, err := u.restaurantRepo.FindByUserID(ctx, userID)
	if err == repo.ErrNotFound {
		return nil, NewHTTPError(http.StatusForbidden, "restaurant profile required")
	}
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	var status model.OrderStatus
	if q.Status != "" {
		st, ok := model.ParseOrderStatus(q.Status)
		if !ok {
			return nil, NewHTTPError(http.StatusBadRequest, "invalid status")
		}
		status = st
	}

	orders, _, err := u.orderRepo.ListByRestaurant(ctx, repo.RestaurantOrderListFilter{
		RestaurantID: rest.ID,
		Status:       status,
		Page:         q.Page,
		Limit:        q.Limit,
	})
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	out := make([]RestaurantOrderView, 0, len(orders))
	for _, o := range orders {
		view, err := u.buildRestaurantView(ctx, o)
		if err != nil {
			return nil, err
		}
		out = append(out, view)
	}
	return out, nil
}

// 店舗の注文詳細。
func (u *OrderViewUsecase) GetRestaurantOrder(ctx context.Context, userID int64, orderID int64) (RestaurantOrderView, error) {
	rest, err := u.restaurantRepo.FindByUserID(ctx, userID)
	if err == repo.ErrNotFound {
		return RestaurantOrderView{}, NewHTTPError(http.StatusForbidden, "restaurant profile required")
	}
	if err != nil {
		return RestaurantOrderView{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	order, err := u.orderRepo.FindByID(ctx, orderID)
	if err == repo.ErrNotFound {
		return RestaurantOrderView{}, NewHTTPError(http.StatusNotFound, "order not found")
	}
	if err != nil {
		return RestaurantOrderView{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if order.RestaurantID != rest.ID {
		return RestaurantOrderView{}, NewHTTPError(http.StatusNotFound, "order not found")
	}

	return u.buildRestaurantView(ctx, order)
}

// ドライバーが受けられる注文（OrderPreparedのみ）。
// 受けるかどうかの判断に必要な範囲しか出さない。
type AvailableOrderView struct {
	OrderID      int64     `json:"order_id"`
	RestaurantID int64     `json:"restaurant_id"`
	Restaurant   string    `json:"restaurant"`
	ItemCount    int       `json:"item_count"`
	DeliveryFee  int64     `json:"delivery_fee"`
	CreatedAt    time.Time `json:"created_at"`
}

func (u *OrderViewUsecase) ListAvailableOrders(ctx context.Context, page int, limit int) ([]AvailableOrderView, error) {
	orders, _, err := u.orderRepo.ListPrepared(ctx, page, limit)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	out := make([]AvailableOrderView, 0, len(orders))
	for _, o := range orders {
		items, err := u.orderItemRepo.ListByOrderID(ctx, o.ID)
		if err != nil {
			return nil, NewHTTPError(http.StatusInternalServerError, "db error")
		}

		rest, err := u.restaurantRepo.FindByID(ctx, o.RestaurantID)
		if err != nil && err != repo.ErrNotFound {
			return nil, NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = append(out, AvailableOrderView{
			OrderID:      o.ID,
			RestaurantID: o.RestaurantID,
			Restaurant:   rest.Name,
			ItemCount:    len(items),
			DeliveryFee:  o.DeliveryFee,
			CreatedAt:    o.CreatedAt,
		})
	}
	return out, nil
}

func (u *OrderViewUsecase) buildCustomerView(ctx context.Context, o model.Order) (CustomerOrderView, error) {
	items, err := u.orderItemRepo.ListByOrderID(ctx, o.ID)
	if err != nil {
		return CustomerOrderView{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	view := CustomerOrderView{OrderOutput: toOrderOutput(o, items)}

	rest, err := u.restaurantRepo.FindByID(ctx, o.RestaurantID)
	if err != nil && err != repo.ErrNotFound {
		return CustomerOrderView{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	view.Restaurant = RestaurantSummary{ID: rest.ID, Name: rest.Name, Address: rest.Address}

	if o.DriverID != nil {
		d, err := u.driverRepo.FindByID(ctx, *o.DriverID)
		if err != nil && err != repo.ErrNotFound {
			return CustomerOrderView{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if err == nil {
			view.Driver = &DriverSummary{ID: d.ID, Name: d.Name, Vehicle: d.Vehicle}
		}
	}

	return view, nil
}

func (u *OrderViewUsecase) buildRestaurantView(ctx context.Context, o model.Order) (RestaurantOrderView, error) {
	items, err := u.orderItemRepo.ListByOrderID(ctx, o.ID)
	if err != nil {
		return RestaurantOrderView{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	view := RestaurantOrderView{
		OrderID:    o.ID,
		CustomerID: o.CustomerID,
		Status:     string(o.Status),
		CreatedAt:  o.CreatedAt,
		OrderItems: make([]RestaurantOrderItemView, 0, len(items)),
	}

	// 明細から再計算した金額。スナップショット価格なので保存済みAmountと必ず一致する。
	for _, it := range items {
		p, err := u.productRepo.FindByID(ctx, it.ProductID)
		if err != nil && err != repo.ErrNotFound {
			return RestaurantOrderView{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}

		view.OrderItems = append(view.OrderItems, RestaurantOrderItemView{
			ID:       it.ID,
			Product:  p,
			Quantity: it.Quantity,
			Price:    it.UnitPriceSnapshot,
		})
		view.Amount += it.UnitPriceSnapshot * it.Quantity
	}

	return view, nil
}
