package repository

import (
	"context"

	"app/internal/domain/model"
)

type OrderItemRepository interface {
	CreateBulk(ctx context.Context, orderID int64, items []model.OrderItem) error
	ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error)
}

// 遷移履歴（遷移と同一トランザクションで書く）
type OrderEventRepository interface {
	Create(ctx context.Context, ev model.OrderStatusEvent) error
	ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderStatusEvent, error)
}
