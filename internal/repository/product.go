package repository

import (
	"context"
	"kzstore-backoffice/internal/model"

	"gorm.io/gorm"
)

type ProductRepository interface {
	// FindLowStock returns active products at or below their minimum
	// stock threshold, capped at limit.
	FindLowStock(ctx context.Context, limit int) ([]*model.Product, error)
	CountActive(ctx context.Context) (int64, error)
	FindFeaturedIDs(ctx context.Context) ([]string, error)
	// ApplyFeaturedDiff unsets and sets the featured flag in a single
	// transaction so a concurrent product write cannot land between the
	// two steps.
	ApplyFeaturedDiff(ctx context.Context, unset, set []string) error
}

type productRepoImpl struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepoImpl{
		db: db,
	}
}

func (r *productRepoImpl) FindLowStock(ctx context.Context, limit int) ([]*model.Product, error) {
	var products []*model.Product
	q := r.db.WithContext(ctx).
		Where("active = ?", true).
		Where("stock <= min_stock").
		Order("stock ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}

	if err := q.Find(&products).Error; err != nil {
		return nil, err
	}

	return products, nil
}

func (r *productRepoImpl) CountActive(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Product{}).
		Where("active = ?", true).
		Count(&count).Error
	return count, err
}

func (r *productRepoImpl) FindFeaturedIDs(ctx context.Context) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).Model(&model.Product{}).
		Where("featured = ?", true).
		Pluck("id", &ids).Error

	if err != nil {
		return nil, err
	}

	return ids, nil
}

func (r *productRepoImpl) ApplyFeaturedDiff(ctx context.Context, unset, set []string) error {
	if len(unset) == 0 && len(set) == 0 {
		return nil
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(unset) > 0 {
			err := tx.Model(&model.Product{}).
				Where("id IN ?", unset).
				Update("featured", false).Error
			if err != nil {
				return err
			}
		}

		if len(set) > 0 {
			err := tx.Model(&model.Product{}).
				Where("id IN ?", set).
				Update("featured", true).Error
			if err != nil {
				return err
			}
		}

		return nil
	})
}
