package model

import "time"

// 決済コールバック起点の遷移はログインユーザーではないので専用のactorで記録する。
const RolePayment Role = "PAYMENT"

// ステータス遷移の履歴。遷移と同じトランザクションで記録する。
// 「誰が」「どこからどこへ」動かしたかを残す。
type OrderStatusEvent struct {
	ID          int64       `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID     int64       `gorm:"not null;index" json:"order_id"`
	ActorUserID int64       `gorm:"not null;index" json:"actor_user_id"`
	ActorRole   Role        `gorm:"type:varchar(20);not null" json:"actor_role"`
	FromStatus  OrderStatus `gorm:"type:varchar(40);not null" json:"from_status"`
	ToStatus    OrderStatus `gorm:"type:varchar(40);not null" json:"to_status"`
	CreatedAt   time.Time   `gorm:"not null;autoCreateTime;index" json:"created_at"`
}
