package model

// 注文ステータス。値はDBにそのまま文字列で保存する。
type OrderStatus string

const (
	OrderStatusPendingPayment                OrderStatus = "PendingPayment"
	OrderStatusPaymentConfirmed              OrderStatus = "PaymentConfirmed"
	OrderStatusPendingRestaurantConfirmation OrderStatus = "PendingRestaurantConfirmation"
	OrderStatusAcceptedByRestaurant          OrderStatus = "AcceptedByRestaurant"
	OrderStatusDeclinedByRestaurant          OrderStatus = "DeclinedByRestaurant"
	OrderStatusOrderPrepared                 OrderStatus = "OrderPrepared"
	OrderStatusAssignedToDriver              OrderStatus = "AssignedToDriver"
	OrderStatusDriverAtRestaurant            OrderStatus = "DriverAtRestaurant"
	OrderStatusOrderInTransit                OrderStatus = "OrderInTransit"
	OrderStatusDriverAtAddress               OrderStatus = "DriverAtAddress"
	OrderStatusOrderDelivered                OrderStatus = "OrderDelivered"
	OrderStatusCancelledByCustomer           OrderStatus = "CancelledByCustomer"
)

// 隣接表。ステータスはここに載っている次の状態へしか進めない。
// どのコードパスもこの表を通さずにstatusを書いてはいけない。
var orderStatusSuccessors = map[OrderStatus][]OrderStatus{
	OrderStatusPendingPayment:                {OrderStatusPaymentConfirmed, OrderStatusCancelledByCustomer},
	OrderStatusPaymentConfirmed:              {OrderStatusPendingRestaurantConfirmation, OrderStatusCancelledByCustomer},
	OrderStatusPendingRestaurantConfirmation: {OrderStatusAcceptedByRestaurant, OrderStatusDeclinedByRestaurant, OrderStatusCancelledByCustomer},
	OrderStatusAcceptedByRestaurant:          {OrderStatusOrderPrepared},
	OrderStatusOrderPrepared:                 {OrderStatusAssignedToDriver},
	OrderStatusAssignedToDriver:              {OrderStatusDriverAtRestaurant},
	OrderStatusDriverAtRestaurant:            {OrderStatusOrderInTransit},
	OrderStatusOrderInTransit:                {OrderStatusDriverAtAddress},
	OrderStatusDriverAtAddress:               {OrderStatusOrderDelivered},
	// 終端（successorなし）
	OrderStatusOrderDelivered:       {},
	OrderStatusDeclinedByRestaurant: {},
	OrderStatusCancelledByCustomer:  {},
}

// fromからtoへ1ステップで進めるか。
func CanTransition(from OrderStatus, to OrderStatus) bool {
	for _, s := range orderStatusSuccessors[from] {
		if s == to {
			return true
		}
	}
	return false
}

// 終端ステータスか（これ以上進めない）。
func IsTerminalStatus(s OrderStatus) bool {
	succ, ok := orderStatusSuccessors[s]
	return ok && len(succ) == 0
}

// ステータス文字列の検証つきパース。
func ParseOrderStatus(s string) (OrderStatus, bool) {
	st := OrderStatus(s)
	_, ok := orderStatusSuccessors[st]
	return st, ok
}

// 受取前（レストラン確定前）のみキャンセル可能。
func CanCustomerCancel(from OrderStatus) bool {
	return CanTransition(from, OrderStatusCancelledByCustomer)
}

// 顧客向け一覧のステータスグループ。
type CustomerOrderGroup string

const (
	CustomerOrderGroupPending   CustomerOrderGroup = "Pending"
	CustomerOrderGroupOngoing   CustomerOrderGroup = "Ongoing"
	CustomerOrderGroupCompleted CustomerOrderGroup = "Completed"
	CustomerOrderGroupCancelled CustomerOrderGroup = "Cancelled"
)

func ParseCustomerOrderGroup(s string) (CustomerOrderGroup, bool) {
	switch CustomerOrderGroup(s) {
	case CustomerOrderGroupPending, CustomerOrderGroupOngoing, CustomerOrderGroupCompleted, CustomerOrderGroupCancelled:
		return CustomerOrderGroup(s), true
	}
	return "", false
}

var customerPendingStatuses = []OrderStatus{
	OrderStatusPendingPayment,
	OrderStatusPendingRestaurantConfirmation,
}

var customerCancelledStatuses = []OrderStatus{
	OrderStatusDeclinedByRestaurant,
	OrderStatusCancelledByCustomer,
}

// グループが「含める」ステータスの集合を返す。
// OngoingだけはNOT INで絞る（除外のAND）ので includes=nil, excludes を返す。
// ORの否定で書くと常にtrueになるため、除外リスト方式に固定している。
func (g CustomerOrderGroup) StatusFilter() (includes []OrderStatus, excludes []OrderStatus) {
	switch g {
	case CustomerOrderGroupPending:
		return customerPendingStatuses, nil
	case CustomerOrderGroupCompleted:
		return []OrderStatus{OrderStatusOrderDelivered}, nil
	case CustomerOrderGroupCancelled:
		return customerCancelledStatuses, nil
	case CustomerOrderGroupOngoing:
		ex := make([]OrderStatus, 0, len(customerPendingStatuses)+len(customerCancelledStatuses)+1)
		ex = append(ex, customerPendingStatuses...)
		ex = append(ex, OrderStatusOrderDelivered)
		ex = append(ex, customerCancelledStatuses...)
		return nil, ex
	}
	return nil, nil
}

// グループ判定（フィルタと同じ規則のメモリ内版。テストと表示用）。
func (g CustomerOrderGroup) Matches(s OrderStatus) bool {
	includes, excludes := g.StatusFilter()
	if includes != nil {
		for _, in := range includes {
			if s == in {
				return true
			}
		}
		return false
	}
	for _, ex := range excludes {
		if s == ex {
			return false
		}
	}
	return true
}
