package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
)

// カート1行と解決済み商品のペア
type ValidatedLine struct {
	Item    model.CartItem
	Product model.Product
}

// InventoryValidator はカート全行の在庫を検証する。副作用なし。
// どれか1行でも落ちたら全体を失敗させる（部分的な注文を作らない）。
type InventoryValidator struct{}

func NewInventoryValidator() *InventoryValidator {
	return &InventoryValidator{}
}

// 全行を先に検証してから結果を返す。エラーメッセージはどの商品で落ちたか分かる形にする。
func (v *InventoryValidator) Validate(ctx context.Context, products repo.ProductRepository, items []model.CartItem) ([]ValidatedLine, error) {
	lines := make([]ValidatedLine, 0, len(items))

	for _, it := range items {
		p, err := products.FindActiveByID(ctx, it.ProductID)
		if errors.Is(err, repo.ErrNotFound) {
			return nil, NewHTTPError(http.StatusBadRequest,
				fmt.Sprintf("product %d is no longer available", it.ProductID))
		}
		if err != nil {
			return nil, NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if p.Stock < it.Quantity {
			return nil, NewHTTPError(http.StatusBadRequest,
				fmt.Sprintf("not enough stock for %s", p.Name))
		}

		lines = append(lines, ValidatedLine{Item: it, Product: p})
	}

	return lines, nil
}
