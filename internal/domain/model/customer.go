package model

import "time"

// 顧客プロフィール。Userと1:1。
type Customer struct {
	ID     int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID int64 `gorm:"not null;uniqueIndex" json:"user_id"`

	Name string `gorm:"type:varchar(255);not null" json:"name"`

	//配送先住所（チェックアウト時の手数料計算に渡す）
	Address string `gorm:"type:varchar(255)" json:"address"`

	Phone string `gorm:"type:varchar(30)" json:"phone"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
