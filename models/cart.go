package models

import (
	"time"

	"github.com/google/uuid"
)

// Cart is the per-user holding area for items pending purchase.
// The unique index on UserID enforces at most one cart per user; carts are
// created lazily and only ever emptied, never deleted.
type Cart struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	Items     []Item    `gorm:"many2many:cart_items;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// CartItem is one cart membership row. Membership is a set: the composite
// primary key keeps an item from appearing in a cart twice.
type CartItem struct {
	CartID uuid.UUID `gorm:"type:uuid;primaryKey"`
	ItemID uuid.UUID `gorm:"type:uuid;primaryKey"`
}

// TotalCost sums the prices of the loaded items. A cart with no items costs 0.
func (c *Cart) TotalCost() int {
	total := 0
	for _, item := range c.Items {
		total += item.Price
	}
	return total
}
