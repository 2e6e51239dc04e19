package repository

import (
	"context"

	"storefront/internal/domain/model"
)

// 注文イベントは追記のみ
type OrderEventRepository interface {
	Append(ctx context.Context, ev model.OrderEvent) error
	ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderEvent, error)
}
