package observability

import (
	"context"
	"testing"

	"github.com/CaduValezzi/FIAP-3ESA-csharp-cp3-2025/internal/domain/stockfile"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestZapObserver_LogsSkippedRecords(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	o := NewZapObserver(zap.New(core))
	ctx := context.Background()

	o.MalformedLine(ctx, stockfile.SlotPurchases, stockfile.Malformed{LineNo: 3, Text: "abc"})
	o.MissingShirt(ctx, stockfile.SlotFinalStock, 42)
	o.MissingBand(ctx, 7, 9)

	entries := logs.All()
	require.Len(t, entries, 3)
	assert.Equal(t, "invalid line skipped", entries[0].Message)
	assert.Equal(t, "compras", entries[0].ContextMap()["slot"])
	assert.Equal(t, int64(3), entries[0].ContextMap()["line_no"])
	assert.Equal(t, int64(42), entries[1].ContextMap()["shirt_id"])
	assert.Equal(t, "reconciliation", entries[2].LoggerName)
}

func TestSetupTracing_NoEndpoint(t *testing.T) {
	shutdown, err := SetupTracing(context.Background(), "")
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}

func TestNewLogger(t *testing.T) {
	l, err := NewLogger("prod")
	require.NoError(t, err)
	assert.NotNil(t, l)

	l, err = NewLogger("dev")
	require.NoError(t, err)
	assert.NotNil(t, l)
}
