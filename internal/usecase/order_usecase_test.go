package usecase

import (
	"context"
	"net/http"
	"testing"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// Test: 自分の注文一覧（明細付き）
func TestListMyOrders(t *testing.T) {
	userID := int64(1)
	tm := newFakeTxManager()
	uc := NewOrderUsecase(tm)

	orders := []model.Order{
		{ID: 10, UserID: userID, Status: model.OrderStatusPaid, TotalAmount: price("69.98")},
		{ID: 11, UserID: userID, Status: model.OrderStatusProcessing, TotalAmount: price("10.00")},
	}
	tm.repos.orders.On("ListByUserID", mock.Anything, userID, 1, 50).Return(orders, int64(2), nil)
	tm.repos.orderItems.On("ListByOrderID", mock.Anything, int64(10)).Return([]model.OrderItem{
		{OrderID: 10, ProductID: 101, ProductNameSnapshot: "Keyboard", Price: price("29.99"), Quantity: 2},
	}, nil)
	tm.repos.orderItems.On("ListByOrderID", mock.Anything, int64(11)).Return([]model.OrderItem{}, nil)

	outs, err := uc.ListMyOrders(context.Background(), userID)

	assert.NoError(t, err)
	assert.Len(t, outs, 2)
	assert.Equal(t, "paid", outs[0].Status)
	assert.Len(t, outs[0].Items, 1)
	assert.Equal(t, "Keyboard", outs[0].Items[0].Name)
}

// Test: 他人の注文詳細は404
func TestGetMyOrderDetailOfOtherUser(t *testing.T) {
	tm := newFakeTxManager()
	uc := NewOrderUsecase(tm)

	order := model.Order{ID: 10, UserID: 2, Status: model.OrderStatusPaid, TotalAmount: price("69.98")}
	tm.repos.orders.On("FindByID", mock.Anything, int64(10)).Return(order, nil)

	_, err := uc.GetMyOrderDetail(context.Background(), 1, 10)

	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Status)
}

// Test: 存在しない注文は404
func TestGetMyOrderDetailNotFound(t *testing.T) {
	tm := newFakeTxManager()
	uc := NewOrderUsecase(tm)

	tm.repos.orders.On("FindByID", mock.Anything, int64(999)).Return(model.Order{}, repo.ErrNotFound)

	_, err := uc.GetMyOrderDetail(context.Background(), 1, 999)

	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Status)
}

// Test: 注文詳細はスナップショット価格を返す
func TestGetMyOrderDetailSnapshotPrices(t *testing.T) {
	userID := int64(1)
	tm := newFakeTxManager()
	uc := NewOrderUsecase(tm)

	order := model.Order{ID: 10, UserID: userID, Status: model.OrderStatusPaid, TotalAmount: price("59.98")}
	tm.repos.orders.On("FindByID", mock.Anything, int64(10)).Return(order, nil)
	tm.repos.orderItems.On("ListByOrderID", mock.Anything, int64(10)).Return([]model.OrderItem{
		// 商品は今49.99に値上げされていても、明細は注文時の29.99のまま
		{OrderID: 10, ProductID: 101, ProductNameSnapshot: "Keyboard", Price: price("29.99"), Quantity: 2},
	}, nil)

	out, err := uc.GetMyOrderDetail(context.Background(), userID, 10)

	assert.NoError(t, err)
	assert.True(t, out.Items[0].Price.Equal(price("29.99")))
	assert.True(t, out.TotalAmount.Equal(price("59.98")))
}
