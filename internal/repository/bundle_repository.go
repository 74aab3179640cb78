package repository

import (
	"context"

	"github.com/CaduValezzi/FIAP-3ESA-csharp-cp3-2025/internal/domain/stockfile"
)

// 1日分の照合ファイル（購入・初期在庫・最終在庫）の置き場。
// stampはDDMMYY。Readはファイルが無ければErrNotFoundを返す。
type BundleRepository interface {
	Exists(ctx context.Context, stamp string, slot stockfile.Slot) (bool, error)
	Read(ctx context.Context, stamp string, slot stockfile.Slot) (string, error)
	// 全体を置き換える（途中の状態は見えない）
	Write(ctx context.Context, stamp string, slot stockfile.Slot, content string) error
}
