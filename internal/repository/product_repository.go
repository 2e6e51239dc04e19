package repository

import (
	"context"
	"errors"

	"storefront/internal/domain/model"
)

var ErrNotFound = errors.New("not found")

// 公開一覧の検索条件
type ProductListQuery struct {
	Page     int
	Limit    int
	Q        string
	Category string
}

// 商品の永続化だけを約束。
// ListActive / FindActiveByID は is_active = true を必ず条件に含める。
type ProductRepository interface {
	ListActive(ctx context.Context, q ProductListQuery) ([]model.Product, int64, error)
	FindByID(ctx context.Context, id int64) (model.Product, error)
	FindActiveByID(ctx context.Context, id int64) (model.Product, error)
	ListBySeller(ctx context.Context, sellerID int64) ([]model.Product, error)

	Create(ctx context.Context, p model.Product) (model.Product, error)
	Update(ctx context.Context, p model.Product) error
	SoftDelete(ctx context.Context, id int64) error
}
