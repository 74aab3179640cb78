package observability

import (
	"context"

	"github.com/CaduValezzi/FIAP-3ESA-csharp-cp3-2025/internal/domain/stockfile"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// ZapObserver は読み飛ばした行や見つからないシャツをwarnで残す。
type ZapObserver struct {
	logger *zap.Logger
}

func NewZapObserver(logger *zap.Logger) *ZapObserver {
	return &ZapObserver{logger: logger.Named("reconciliation")}
}

func (o *ZapObserver) MalformedLine(ctx context.Context, slot stockfile.Slot, line stockfile.Malformed) {
	o.logger.Warn("invalid line skipped",
		zap.String("slot", string(slot)),
		zap.Int("line_no", line.LineNo),
		zap.String("line", line.Text),
		traceField(ctx),
	)
}

func (o *ZapObserver) MissingShirt(ctx context.Context, slot stockfile.Slot, shirtID int64) {
	o.logger.Warn("shirt not found, skipped",
		zap.String("slot", string(slot)),
		zap.Int64("shirt_id", shirtID),
		traceField(ctx),
	)
}

func (o *ZapObserver) MissingBand(ctx context.Context, shirtID int64, bandID int64) {
	o.logger.Warn("shirt without band, exported with empty band name",
		zap.Int64("shirt_id", shirtID),
		zap.Int64("band_id", bandID),
		traceField(ctx),
	)
}

func traceField(ctx context.Context) zap.Field {
	sc := trace.SpanContextFromContext(ctx)
	if !sc.HasTraceID() {
		return zap.Skip()
	}
	return zap.String("trace_id", sc.TraceID().String())
}
