package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusPaid       OrderStatus = "paid"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// total_amountは注文時点の確定値（以後の商品価格変更の影響を受けない）
type Order struct {
	ID              int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID          int64           `gorm:"not null;index" json:"user_id"`
	OrderDate       time.Time       `gorm:"not null" json:"order_date"`
	Status          OrderStatus     `gorm:"type:varchar(20);not null;index" json:"status"`
	TotalAmount     decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"total_amount"`
	ShippingAddress string          `gorm:"type:text;not null" json:"shipping_address"`
	PaymentIntent   string          `gorm:"type:varchar(255)" json:"payment_intent,omitempty"`
	IdempotencyKey  string          `gorm:"type:varchar(255);not null;uniqueIndex" json:"-"`
	CreatedAt       time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"not null;autoUpdateTime" json:"-"`
}
