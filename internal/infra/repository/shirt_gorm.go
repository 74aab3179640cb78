package repository

import (
	"context"
	"errors"

	"github.com/CaduValezzi/FIAP-3ESA-csharp-cp3-2025/internal/domain/model"
	repo "github.com/CaduValezzi/FIAP-3ESA-csharp-cp3-2025/internal/repository"

	"gorm.io/gorm"
)

type ShirtGormRepository struct {
	db *gorm.DB
}

// DI
func NewShirtGormRepository(db *gorm.DB) *ShirtGormRepository {
	return &ShirtGormRepository{db: db}
}

// シャツ一覧。ORDER BYは付けない（DBの返す順のまま）
func (r *ShirtGormRepository) List(ctx context.Context, f repo.ShirtFilter) ([]model.Shirt, error) {
	var shirts []model.Shirt

	tx := r.db.WithContext(ctx).Model(&model.Shirt{})

	//バンドで絞り込み
	if f.BandID != nil {
		tx = tx.Where("band_id = ?", *f.BandID)
	}
	if f.WithBand {
		tx = tx.Preload("Band")
	}

	if err := tx.Find(&shirts).Error; err != nil {
		return []model.Shirt{}, err
	}
	return shirts, nil
}

// IDでシャツを取得
func (r *ShirtGormRepository) FindByID(ctx context.Context, id int64) (model.Shirt, error) {
	var s model.Shirt
	err := r.db.WithContext(ctx).First(&s, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Shirt{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Shirt{}, err
	}
	return s, nil
}
