package model

import "time"

// 注文。statusの書き込みは必ず遷移バリデータ（ガード付きUPDATE）を通す。
// TotalAmount = Amount + ServiceCharge + DeliveryFee が不変条件。
// DriverIDはAssignedToDriver遷移で一度だけ設定され、以後変更しない。
type Order struct {
	ID           int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	CustomerID   int64  `gorm:"not null;index" json:"customer_id"`
	RestaurantID int64  `gorm:"not null;index" json:"restaurant_id"`
	DriverID     *int64 `gorm:"index" json:"driver_id"`

	Amount        int64 `gorm:"not null" json:"amount"`
	ServiceCharge int64 `gorm:"not null" json:"service_charge"`
	DeliveryFee   int64 `gorm:"not null" json:"delivery_fee"`
	TotalAmount   int64 `gorm:"not null" json:"total_amount"`

	Status OrderStatus `gorm:"type:varchar(40);not null;index" json:"status"`

	//決済の参照番号（initialize時に採番、verifyで照合）
	//未決済の注文が複数あってもNULL同士は一意制約に当たらないようポインタにする
	PaymentRef *string `gorm:"type:varchar(64);uniqueIndex" json:"-"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
