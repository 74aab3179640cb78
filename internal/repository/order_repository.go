package repository

import (
	"context"

	"github.com/CaduValezzi/FIAP-3ESA-csharp-cp3-2025/internal/domain/model"
)

type OrderRepository interface {
	FindByID(ctx context.Context, orderID int64) (model.Order, error)
	// 明細は保存しない（OrderItemRepositoryで保存する）
	Create(ctx context.Context, order model.Order) (int64, error)
}
