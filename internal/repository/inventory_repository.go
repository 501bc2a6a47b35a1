package repository

import "context"

// 在庫の増減。どちらも相対更新（stock = stock ± qty）で行う約束。
type InventoryRepository interface {
	// 在庫が足りるときだけ減算（WHERE stock >= qty）
	DecreaseStockIfEnough(ctx context.Context, productID int64, qty int64) (bool, error)

	// 在庫戻し（キャンセル）
	IncreaseStock(ctx context.Context, productID int64, qty int64) error
}
