package models

import (
	"time"

	"github.com/google/uuid"
)

// Order is an immutable record of a completed purchase. Items hold a
// snapshot of the cart contents at confirmation time via the order_items
// join table, independent of any later cart mutation.
type Order struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Items     []Item    `gorm:"many2many:order_items;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// OrderItem is one snapshot membership row, written once at confirmation.
type OrderItem struct {
	OrderID uuid.UUID `gorm:"type:uuid;primaryKey"`
	ItemID  uuid.UUID `gorm:"type:uuid;primaryKey"`
}

// TotalCost sums the prices of the snapshotted items.
func (o *Order) TotalCost() int {
	total := 0
	for _, item := range o.Items {
		total += item.Price
	}
	return total
}
