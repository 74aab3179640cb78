package repository

import (
	"context"
	"errors"

	"github.com/CaduValezzi/FIAP-3ESA-csharp-cp3-2025/internal/domain/model"
	repo "github.com/CaduValezzi/FIAP-3ESA-csharp-cp3-2025/internal/repository"

	"gorm.io/gorm"
)

type InventoryGormRepository struct {
	db *gorm.DB
}

func NewInventoryGormRepository(db *gorm.DB) *InventoryGormRepository {
	return &InventoryGormRepository{db: db}
}

// 在庫の現在値を設定
func (r *InventoryGormRepository) SetStock(ctx context.Context, shirtID int64, newStock int64) error {
	res := r.db.WithContext(ctx).
		Model(&model.Shirt{}).
		Where("id = ?", shirtID).
		Update("stock", newStock)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// 調整履歴作成（まとめて）
func (r *InventoryGormRepository) CreateAdjustments(ctx context.Context, adjs []model.StockAdjustment) error {
	if len(adjs) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).Create(&adjs).Error; err != nil {
		return err
	}
	return nil
}

var _ repo.InventoryRepository = (*InventoryGormRepository)(nil)
var _ repo.ShirtRepository = (*ShirtGormRepository)(nil)

// gorm.ErrRecordNotFoundを統一
func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
