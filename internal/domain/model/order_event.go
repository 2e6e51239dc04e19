package model

import "time"

type OrderEventType string

const (
	OrderEventCreated          OrderEventType = "ORDER_CREATED"
	OrderEventPaymentConfirmed OrderEventType = "PAYMENT_CONFIRMED"
	OrderEventPaymentDeclined  OrderEventType = "PAYMENT_DECLINED"
)

// 注文の状態遷移ログ。追記のみ。
// 決済が途中で止まった注文を後から突き合わせるために使う。
type OrderEvent struct {
	ID        int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID   int64          `gorm:"not null;index" json:"order_id"`
	Type      OrderEventType `gorm:"type:varchar(40);not null" json:"type"`
	Detail    string         `gorm:"type:text" json:"detail"`
	CreatedAt time.Time      `gorm:"not null;autoCreateTime" json:"created_at"`
}
