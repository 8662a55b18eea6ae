package model

import "time"

// カート。1顧客×1店舗につき同時に1つ（複合一意制約で保証）。
// チェックアウトで明細ごと削除される。
type Cart struct {
	ID           int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	CustomerID   int64     `gorm:"not null;uniqueIndex:idx_carts_customer_restaurant" json:"customer_id"`
	RestaurantID int64     `gorm:"not null;uniqueIndex:idx_carts_customer_restaurant" json:"restaurant_id"`
	CreatedAt    time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
