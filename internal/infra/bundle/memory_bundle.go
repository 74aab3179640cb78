package bundle

import (
	"context"
	"sync"

	"github.com/CaduValezzi/FIAP-3ESA-csharp-cp3-2025/internal/domain/stockfile"
	repo "github.com/CaduValezzi/FIAP-3ESA-csharp-cp3-2025/internal/repository"
)

// テスト用。プロセス内だけで保持する。
type MemoryBundle struct {
	mu    sync.RWMutex
	files map[string]string
}

func NewMemoryBundle() *MemoryBundle {
	return &MemoryBundle{files: map[string]string{}}
}

func memoryKey(stamp string, slot stockfile.Slot) string {
	return stockfile.FileName(stamp, slot)
}

func (b *MemoryBundle) Exists(_ context.Context, stamp string, slot stockfile.Slot) (bool, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	_, ok := b.files[memoryKey(stamp, slot)]
	return ok, nil
}

func (b *MemoryBundle) Read(_ context.Context, stamp string, slot stockfile.Slot) (string, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	content, ok := b.files[memoryKey(stamp, slot)]
	if !ok {
		return "", repo.ErrNotFound
	}
	return content, nil
}

func (b *MemoryBundle) Write(_ context.Context, stamp string, slot stockfile.Slot, content string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.files[memoryKey(stamp, slot)] = content
	return nil
}

var _ repo.BundleRepository = (*MemoryBundle)(nil)
