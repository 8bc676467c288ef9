package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"shop-service/models"
)

// OrderRepository defines the interface for order data access
type OrderRepository interface {
	WithTx(tx *gorm.DB) OrderRepository
	Create(ctx context.Context, userID uuid.UUID, items []models.Item) (*models.Order, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]models.Order, error)
}

// GormOrderRepository implements OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewOrderRepository creates a new instance of GormOrderRepository
func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &GormOrderRepository{db: db}
}

func (r *GormOrderRepository) WithTx(tx *gorm.DB) OrderRepository {
	return &GormOrderRepository{db: tx}
}

// Create appends a new order to the ledger with a server-assigned timestamp.
// The given items are written as snapshot join rows: later mutation of the
// source cart does not affect the order.
func (r *GormOrderRepository) Create(ctx context.Context, userID uuid.UUID, items []models.Item) (*models.Order, error) {
	order := models.Order{ID: uuid.New(), UserID: userID}

	if err := r.db.WithContext(ctx).Omit("Items").Create(&order).Error; err != nil {
		return nil, err
	}

	if len(items) > 0 {
		snapshot := make([]models.OrderItem, 0, len(items))
		for _, item := range items {
			snapshot = append(snapshot, models.OrderItem{OrderID: order.ID, ItemID: item.ID})
		}
		if err := r.db.WithContext(ctx).Create(&snapshot).Error; err != nil {
			return nil, err
		}
	}

	order.Items = items
	return &order, nil
}

// FindByUserID returns all orders owned by the user with their item
// snapshots preloaded, oldest first for a stable display order.
func (r *GormOrderRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at ASC, id ASC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}
