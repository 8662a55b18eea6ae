package repository

import (
	"context"

	"app/internal/domain/model"
)

type RestaurantListQuery struct {
	Page  int
	Limit int
	Q     string
}

type RestaurantRepository interface {
	ListPublic(ctx context.Context, q RestaurantListQuery) ([]model.Restaurant, int64, error)
	FindByID(ctx context.Context, id int64) (model.Restaurant, error)
	FindByUserID(ctx context.Context, userID int64) (model.Restaurant, error)

	Create(ctx context.Context, r model.Restaurant) (model.Restaurant, error)
	Update(ctx context.Context, r model.Restaurant) error

	//店舗がこのユーザーの持ち物か（遷移の権限チェックに使う）
	IsOwnedBy(ctx context.Context, restaurantID int64, userID int64) (bool, error)
}
