package bundle

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/CaduValezzi/FIAP-3ESA-csharp-cp3-2025/internal/domain/stockfile"
	repo "github.com/CaduValezzi/FIAP-3ESA-csharp-cp3-2025/internal/repository"

	"github.com/google/uuid"
)

// ディレクトリ（files/）に DDMMYY_<slot>.txt で置く
type FileBundle struct {
	dir string
}

func NewFileBundle(dir string) *FileBundle {
	return &FileBundle{dir: dir}
}

func (b *FileBundle) Path(stamp string, slot stockfile.Slot) string {
	return filepath.Join(b.dir, stockfile.FileName(stamp, slot))
}

func (b *FileBundle) Exists(ctx context.Context, stamp string, slot stockfile.Slot) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	_, err := os.Stat(b.Path(stamp, slot))
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (b *FileBundle) Read(ctx context.Context, stamp string, slot stockfile.Slot) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	data, err := os.ReadFile(b.Path(stamp, slot))
	if errors.Is(err, fs.ErrNotExist) {
		return "", repo.ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// 一時ファイルに書いてからrenameする
func (b *FileBundle) Write(ctx context.Context, stamp string, slot stockfile.Slot, content string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	//ディレクトリが無ければ作る
	if err := os.MkdirAll(b.dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", b.dir, err)
	}

	dst := b.Path(stamp, slot)
	tmp := filepath.Join(b.dir, "."+stockfile.FileName(stamp, slot)+"."+uuid.NewString()+".tmp")

	if err := os.WriteFile(tmp, []byte(content), 0o644); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("write %s: %w", dst, err)
	}
	if err := os.Rename(tmp, dst); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replace %s: %w", dst, err)
	}
	return nil
}

var _ repo.BundleRepository = (*FileBundle)(nil)
