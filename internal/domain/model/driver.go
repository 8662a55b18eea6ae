package model

import "time"

type Driver struct {
	ID     int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID int64 `gorm:"not null;uniqueIndex" json:"user_id"`

	Name          string `gorm:"type:varchar(255);not null" json:"name"`
	Vehicle       string `gorm:"type:varchar(100)" json:"vehicle"`
	LicenseNumber string `gorm:"type:varchar(50)" json:"license_number"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
