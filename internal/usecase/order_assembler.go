package usecase

import (
	"context"
	"net/http"
	"time"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"github.com/shopspring/decimal"
)

// OrderAssembler は検証済みのカート行から Order + OrderItems を組み立てて永続化する。
// 明細の price は今この瞬間の商品価格のコピー。以後の価格変更はここに届かない。
type OrderAssembler struct{}

func NewOrderAssembler() *OrderAssembler {
	return &OrderAssembler{}
}

// トランザクションの中で呼ぶこと。Order と OrderItems は1つの論理単位。
func (a *OrderAssembler) Assemble(
	ctx context.Context,
	r repo.TxRepos,
	userID int64,
	lines []ValidatedLine,
	shippingAddress string,
	idempotencyKey string,
) (model.Order, []model.OrderItem, error) {
	now := time.Now()

	orderItems := make([]model.OrderItem, 0, len(lines))
	total := decimal.Zero

	for _, ln := range lines {
		lineTotal := ln.Product.Price.Mul(decimal.NewFromInt(ln.Item.Quantity))
		total = total.Add(lineTotal)

		//スナップショット
		orderItems = append(orderItems, model.OrderItem{
			ProductID:           ln.Product.ID,
			ProductNameSnapshot: ln.Product.Name,
			Price:               ln.Product.Price,
			Quantity:            ln.Item.Quantity,
			CreatedAt:           now,
		})
	}

	order := model.Order{
		UserID:          userID,
		OrderDate:       now,
		Status:          model.OrderStatusProcessing,
		TotalAmount:     total,
		ShippingAddress: shippingAddress,
		IdempotencyKey:  idempotencyKey,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	orderID, err := r.Orders().Create(ctx, order)
	if err != nil {
		return model.Order{}, nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	order.ID = orderID

	if err := r.OrderItems().CreateBulk(ctx, orderID, orderItems); err != nil {
		return model.Order{}, nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	for i := range orderItems {
		orderItems[i].OrderID = orderID
	}

	return order, orderItems, nil
}
