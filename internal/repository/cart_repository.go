package repository

import (
	"context"

	"app/internal/domain/model"
)

type CartRepository interface {
	// (customer, restaurant) の組で1つだけ持つカートを取得（無ければ作成）
	GetOrCreate(ctx context.Context, customerID int64, restaurantID int64) (model.Cart, error)
	FindByID(ctx context.Context, cartID int64) (model.Cart, error)
	ListByCustomerID(ctx context.Context, customerID int64) ([]model.Cart, error)
	// カート本体を削除（明細は CartItemRepository.DeleteByCartID で）
	Delete(ctx context.Context, cartID int64) error
}
