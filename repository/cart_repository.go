package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"shop-service/models"
)

// CartRepository defines the interface for cart data access.
// WithTx returns a repository bound to the given transaction so the checkout
// flow can run order creation and cart flush as one atomic unit.
type CartRepository interface {
	WithTx(tx *gorm.DB) CartRepository
	GetOrCreateByUser(ctx context.Context, userID uuid.UUID) (*models.Cart, error)
	AddItems(ctx context.Context, cart *models.Cart, items []models.Item) error
	RemoveItem(ctx context.Context, cart *models.Cart, itemID uuid.UUID) error
	Clear(ctx context.Context, cart *models.Cart) error
	TotalCost(ctx context.Context, cartID uuid.UUID) (int, error)
}

// GormCartRepository implements CartRepository using GORM
type GormCartRepository struct {
	db *gorm.DB
}

// NewCartRepository creates a new instance of GormCartRepository
func NewCartRepository(db *gorm.DB) CartRepository {
	return &GormCartRepository{db: db}
}

func (r *GormCartRepository) WithTx(tx *gorm.DB) CartRepository {
	return &GormCartRepository{db: tx}
}

// GetOrCreateByUser returns the user's cart, creating an empty one if none
// exists. The unique index on user_id backs the one-cart-per-user invariant:
// if a concurrent request wins the insert, the duplicate-key error is
// recovered by re-fetching the now-existing row.
func (r *GormCartRepository) GetOrCreateByUser(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	cart, err := r.findByUser(ctx, userID)
	if err == nil {
		return cart, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	created := models.Cart{ID: uuid.New(), UserID: userID}
	if err := r.db.WithContext(ctx).Omit("Items").Create(&created).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost the creation race; the cart exists now.
			return r.findByUser(ctx, userID)
		}
		return nil, err
	}

	created.Items = []models.Item{}
	return &created, nil
}

func (r *GormCartRepository) findByUser(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	var cart models.Cart
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("user_id = ?", userID).
		First(&cart).Error
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// AddItems appends items to the cart's set, silently skipping any that are
// already present. Pure set-union semantics: no error, no duplicate rows.
// ON CONFLICT DO NOTHING covers items added concurrently between the cart
// read and this write.
func (r *GormCartRepository) AddItems(ctx context.Context, cart *models.Cart, items []models.Item) error {
	present := make(map[uuid.UUID]struct{}, len(cart.Items))
	for _, item := range cart.Items {
		present[item.ID] = struct{}{}
	}

	memberships := make([]models.CartItem, 0, len(items))
	added := make([]models.Item, 0, len(items))
	for _, item := range items {
		if _, ok := present[item.ID]; ok {
			continue
		}
		present[item.ID] = struct{}{}
		memberships = append(memberships, models.CartItem{CartID: cart.ID, ItemID: item.ID})
		added = append(added, item)
	}
	if len(memberships) == 0 {
		return nil
	}

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&memberships).Error
	if err != nil {
		return err
	}

	cart.Items = append(cart.Items, added...)
	return nil
}

// RemoveItem removes a single item reference from the cart. Removing an item
// that is not in the cart is a no-op, not an error.
func (r *GormCartRepository) RemoveItem(ctx context.Context, cart *models.Cart, itemID uuid.UUID) error {
	err := r.db.WithContext(ctx).
		Where("cart_id = ? AND item_id = ?", cart.ID, itemID).
		Delete(&models.CartItem{}).Error
	if err != nil {
		return err
	}

	remaining := cart.Items[:0]
	for _, item := range cart.Items {
		if item.ID != itemID {
			remaining = append(remaining, item)
		}
	}
	cart.Items = remaining
	return nil
}

// Clear empties the cart's item set. The cart row itself is kept.
func (r *GormCartRepository) Clear(ctx context.Context, cart *models.Cart) error {
	err := r.db.WithContext(ctx).
		Where("cart_id = ?", cart.ID).
		Delete(&models.CartItem{}).Error
	if err != nil {
		return err
	}
	cart.Items = []models.Item{}
	return nil
}

// TotalCost sums the prices of the cart's items in SQL; an empty cart costs 0.
func (r *GormCartRepository) TotalCost(ctx context.Context, cartID uuid.UUID) (int, error) {
	var total int
	err := r.db.WithContext(ctx).
		Raw(`SELECT COALESCE(SUM(items.price), 0) FROM items
			JOIN cart_items ON cart_items.item_id = items.id
			WHERE cart_items.cart_id = ?`, cartID).
		Scan(&total).Error
	if err != nil {
		return 0, err
	}
	return total, nil
}
