package bundle

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/CaduValezzi/FIAP-3ESA-csharp-cp3-2025/internal/domain/stockfile"
	repo "github.com/CaduValezzi/FIAP-3ESA-csharp-cp3-2025/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileBundle_CreatesDirectoryOnWrite(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "files")
	b := NewFileBundle(dir)

	ok, err := b.Exists(ctx, "191026", stockfile.SlotInitialStock)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, b.Write(ctx, "191026", stockfile.SlotInitialStock, "1;Metallica;10\n"))

	data, err := os.ReadFile(filepath.Join(dir, "191026_estoque_inicial.txt"))
	require.NoError(t, err)
	assert.Equal(t, "1;Metallica;10\n", string(data))

	ok, err = b.Exists(ctx, "191026", stockfile.SlotInitialStock)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestFileBundle_WriteReplacesWholeFile(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	b := NewFileBundle(dir)

	require.NoError(t, b.Write(ctx, "191026", stockfile.SlotFinalStock, "1;A;1\n2;A;2\n3;A;3\n"))
	require.NoError(t, b.Write(ctx, "191026", stockfile.SlotFinalStock, "1;A;0\n"))

	got, err := b.Read(ctx, "191026", stockfile.SlotFinalStock)
	require.NoError(t, err)
	assert.Equal(t, "1;A;0\n", got)

	//一時ファイルは残らない
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestFileBundle_ReadMissing(t *testing.T) {
	b := NewFileBundle(t.TempDir())

	_, err := b.Read(context.Background(), "191026", stockfile.SlotPurchases)
	assert.ErrorIs(t, err, repo.ErrNotFound)
}

func TestMemoryBundle(t *testing.T) {
	ctx := context.Background()
	b := NewMemoryBundle()

	_, err := b.Read(ctx, "191026", stockfile.SlotPurchases)
	assert.ErrorIs(t, err, repo.ErrNotFound)

	require.NoError(t, b.Write(ctx, "191026", stockfile.SlotPurchases, "1;4\n"))
	ok, err := b.Exists(ctx, "191026", stockfile.SlotPurchases)
	require.NoError(t, err)
	assert.True(t, ok)

	//日付が違えば別物
	ok, err = b.Exists(ctx, "201026", stockfile.SlotPurchases)
	require.NoError(t, err)
	assert.False(t, ok)
}
