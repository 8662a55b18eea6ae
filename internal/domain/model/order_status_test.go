package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition_HappyPath(t *testing.T) {
	//配達完了までの一本道
	steps := []OrderStatus{
		OrderStatusPendingPayment,
		OrderStatusPaymentConfirmed,
		OrderStatusPendingRestaurantConfirmation,
		OrderStatusAcceptedByRestaurant,
		OrderStatusOrderPrepared,
		OrderStatusAssignedToDriver,
		OrderStatusDriverAtRestaurant,
		OrderStatusOrderInTransit,
		OrderStatusDriverAtAddress,
		OrderStatusOrderDelivered,
	}

	for i := 0; i < len(steps)-1; i++ {
		assert.True(t, CanTransition(steps[i], steps[i+1]), "%s -> %s", steps[i], steps[i+1])
	}
}

func TestCanTransition_NoSkipping(t *testing.T) {
	//Acceptedを飛ばしてPreparedへは行けない
	assert.False(t, CanTransition(OrderStatusPendingRestaurantConfirmation, OrderStatusOrderPrepared))
	//支払い前に受諾はできない
	assert.False(t, CanTransition(OrderStatusPendingPayment, OrderStatusAcceptedByRestaurant))
	//配達フェーズの逆行も不可
	assert.False(t, CanTransition(OrderStatusOrderInTransit, OrderStatusDriverAtRestaurant))
	//同一ステータスへの遷移も不可
	assert.False(t, CanTransition(OrderStatusOrderPrepared, OrderStatusOrderPrepared))
}

func TestCanTransition_TerminalsHaveNoSuccessors(t *testing.T) {
	terminals := []OrderStatus{
		OrderStatusOrderDelivered,
		OrderStatusDeclinedByRestaurant,
		OrderStatusCancelledByCustomer,
	}

	all := []OrderStatus{
		OrderStatusPendingPayment,
		OrderStatusPaymentConfirmed,
		OrderStatusPendingRestaurantConfirmation,
		OrderStatusAcceptedByRestaurant,
		OrderStatusDeclinedByRestaurant,
		OrderStatusOrderPrepared,
		OrderStatusAssignedToDriver,
		OrderStatusDriverAtRestaurant,
		OrderStatusOrderInTransit,
		OrderStatusDriverAtAddress,
		OrderStatusOrderDelivered,
		OrderStatusCancelledByCustomer,
	}

	for _, term := range terminals {
		assert.True(t, IsTerminalStatus(term), "%s", term)
		for _, to := range all {
			assert.False(t, CanTransition(term, to), "%s -> %s", term, to)
		}
	}
}

func TestParseOrderStatus(t *testing.T) {
	st, ok := ParseOrderStatus("AcceptedByRestaurant")
	assert.True(t, ok)
	assert.Equal(t, OrderStatusAcceptedByRestaurant, st)

	_, ok = ParseOrderStatus("Accepted")
	assert.False(t, ok)

	_, ok = ParseOrderStatus("")
	assert.False(t, ok)
}

func TestCanCustomerCancel(t *testing.T) {
	//受諾前だけキャンセルできる
	assert.True(t, CanCustomerCancel(OrderStatusPendingPayment))
	assert.True(t, CanCustomerCancel(OrderStatusPaymentConfirmed))
	assert.True(t, CanCustomerCancel(OrderStatusPendingRestaurantConfirmation))

	assert.False(t, CanCustomerCancel(OrderStatusAcceptedByRestaurant))
	assert.False(t, CanCustomerCancel(OrderStatusOrderInTransit))
	assert.False(t, CanCustomerCancel(OrderStatusOrderDelivered))
	assert.False(t, CanCustomerCancel(OrderStatusCancelledByCustomer))
}

func TestParseCustomerOrderGroup(t *testing.T) {
	g, ok := ParseCustomerOrderGroup("Ongoing")
	assert.True(t, ok)
	assert.Equal(t, CustomerOrderGroupOngoing, g)

	_, ok = ParseCustomerOrderGroup("ongoing")
	assert.False(t, ok)

	_, ok = ParseCustomerOrderGroup("Delivered")
	assert.False(t, ok)
}

// Ongoingは「PendingでもCompletedでもCancelledでもない」の積集合。
// AcceptedByRestaurantを含み、OrderDeliveredを含まないこと。
func TestCustomerOrderGroup_Ongoing(t *testing.T) {
	g := CustomerOrderGroupOngoing

	assert.True(t, g.Matches(OrderStatusPaymentConfirmed))
	assert.True(t, g.Matches(OrderStatusAcceptedByRestaurant))
	assert.True(t, g.Matches(OrderStatusOrderPrepared))
	assert.True(t, g.Matches(OrderStatusAssignedToDriver))
	assert.True(t, g.Matches(OrderStatusDriverAtRestaurant))
	assert.True(t, g.Matches(OrderStatusOrderInTransit))
	assert.True(t, g.Matches(OrderStatusDriverAtAddress))

	assert.False(t, g.Matches(OrderStatusPendingPayment))
	assert.False(t, g.Matches(OrderStatusPendingRestaurantConfirmation))
	assert.False(t, g.Matches(OrderStatusOrderDelivered))
	assert.False(t, g.Matches(OrderStatusDeclinedByRestaurant))
	assert.False(t, g.Matches(OrderStatusCancelledByCustomer))

	includes, excludes := g.StatusFilter()
	assert.Nil(t, includes)
	assert.NotEmpty(t, excludes)
}

// どのステータスもちょうど1つのグループに入る（PaymentConfirmedはOngoing扱い）。
func TestCustomerOrderGroup_Partition(t *testing.T) {
	groups := []CustomerOrderGroup{
		CustomerOrderGroupPending,
		CustomerOrderGroupOngoing,
		CustomerOrderGroupCompleted,
		CustomerOrderGroupCancelled,
	}

	all := []OrderStatus{
		OrderStatusPendingPayment,
		OrderStatusPaymentConfirmed,
		OrderStatusPendingRestaurantConfirmation,
		OrderStatusAcceptedByRestaurant,
		OrderStatusDeclinedByRestaurant,
		OrderStatusOrderPrepared,
		OrderStatusAssignedToDriver,
		OrderStatusDriverAtRestaurant,
		OrderStatusOrderInTransit,
		OrderStatusDriverAtAddress,
		OrderStatusOrderDelivered,
		OrderStatusCancelledByCustomer,
	}

	for _, s := range all {
		matched := 0
		for _, g := range groups {
			if g.Matches(s) {
				matched++
			}
		}
		assert.Equal(t, 1, matched, "%s", s)
	}
}
