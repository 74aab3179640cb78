package usecase

import (
	"context"
	"time"

	"github.com/CaduValezzi/FIAP-3ESA-csharp-cp3-2025/internal/domain/stockfile"
)

// 照合中に読み飛ばしたものの通知先。処理は止めない。
type ReconciliationObserver interface {
	MalformedLine(ctx context.Context, slot stockfile.Slot, line stockfile.Malformed)
	MissingShirt(ctx context.Context, slot stockfile.Slot, shirtID int64)
	MissingBand(ctx context.Context, shirtID int64, bandID int64)
}

type NopObserver struct{}

func (NopObserver) MalformedLine(context.Context, stockfile.Slot, stockfile.Malformed) {}
func (NopObserver) MissingShirt(context.Context, stockfile.Slot, int64)                {}
func (NopObserver) MissingBand(context.Context, int64, int64)                          {}

type Clock interface {
	Now() time.Time
}

func reportMalformed(ctx context.Context, obs ReconciliationObserver, slot stockfile.Slot, bad []stockfile.Malformed) {
	for _, m := range bad {
		obs.MalformedLine(ctx, slot, m)
	}
}
