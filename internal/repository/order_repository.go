package repository

import (
	"context"

	"storefront/internal/domain/model"
)

type OrderRepository interface {
	Create(ctx context.Context, order model.Order) (int64, error)
	FindByID(ctx context.Context, orderID int64) (model.Order, error)
	ListByUserID(ctx context.Context, userID int64, page int, limit int) ([]model.Order, int64, error)
	UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error
	SetPaymentIntent(ctx context.Context, orderID int64, intentID string) error
	// 支払い確定。statusとpayment_intentをまとめて更新する。
	MarkPaid(ctx context.Context, orderID int64, intentID string) error

	// 同じキーなら同じ注文を返す（二重送信対策）
	FindByIdempotencyKey(ctx context.Context, userID int64, key string) (model.Order, bool, error)
}
