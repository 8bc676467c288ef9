package models

import "github.com/google/uuid"

// Item is a catalog entry. Price is an integer amount in the smallest
// currency unit. Items are never updated once referenced by a cart or order.
type Item struct {
	ID    uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name  string    `gorm:"size:256;not null" json:"name"`
	Price int       `gorm:"not null" json:"price"`
}
