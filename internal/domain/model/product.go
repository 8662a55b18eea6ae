package model

import (
	"time"

	"gorm.io/gorm"
)

// 商品。1店舗が所有する。
// 価格変更は許すが、注文側は必ずスナップショット価格を持つ。
type Product struct {
	ID           int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	RestaurantID int64          `gorm:"not null;index" json:"restaurant_id"`
	Name         string         `gorm:"type:varchar(255);not null" json:"name"`
	Description  string         `gorm:"type:text" json:"description"`
	ImageURL     string         `gorm:"type:varchar(512)" json:"image_url"`
	Price        int64          `gorm:"not null" json:"price"`
	CreatedAt    time.Time      `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"not null;autoUpdateTime" json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}
