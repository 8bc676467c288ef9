package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"shop-service/models"
)

// ItemRepository defines read access to the item catalog
type ItemRepository interface {
	FindAll(ctx context.Context) ([]models.Item, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Item, error)
}

// GormItemRepository implements ItemRepository using GORM
type GormItemRepository struct {
	db *gorm.DB
}

// NewItemRepository creates a new instance of GormItemRepository
func NewItemRepository(db *gorm.DB) ItemRepository {
	return &GormItemRepository{db: db}
}

func (r *GormItemRepository) FindAll(ctx context.Context) ([]models.Item, error) {
	var items []models.Item
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// FindByIDs returns the items matching the given IDs. IDs with no matching
// item are simply absent from the result; callers that need all-or-nothing
// semantics compare lengths.
func (r *GormItemRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Item, error) {
	var items []models.Item
	if len(ids) == 0 {
		return items, nil
	}
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
