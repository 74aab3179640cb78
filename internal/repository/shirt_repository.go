package repository

import (
	"context"
	"errors"

	"github.com/CaduValezzi/FIAP-3ESA-csharp-cp3-2025/internal/domain/model"
)

var ErrNotFound = errors.New("not found")

// 一覧の絞り込み
type ShirtFilter struct {
	BandID   *int64
	WithBand bool // バンドをPreloadする
}

// シャツの取得だけを約束。並び順は保証しない。
type ShirtRepository interface {
	List(ctx context.Context, f ShirtFilter) ([]model.Shirt, error)
	FindByID(ctx context.Context, id int64) (model.Shirt, error)
}
