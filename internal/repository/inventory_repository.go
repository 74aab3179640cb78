package repository

import (
	"context"

	"github.com/CaduValezzi/FIAP-3ESA-csharp-cp3-2025/internal/domain/model"
)

type InventoryRepository interface {
	// 在庫の現在値を設定
	SetStock(ctx context.Context, shirtID int64, newStock int64) error

	// 調整履歴作成
	CreateAdjustments(ctx context.Context, adjustments []model.StockAdjustment) error
}
