package repository

import "context"

type InventoryRepository interface {
	// 在庫が足りるときだけ減算（WHERE stock >= qty の条件付きUPDATE）。
	// 足りなければ false を返し、何も書かない。
	DecreaseStockIfEnough(ctx context.Context, productID int64, qty int64) (bool, error)

	// 在庫の現在値を設定（出品者の在庫編集）
	SetStock(ctx context.Context, productID int64, newStock int64) error
}
