package services

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	apperrors "shop-service/common/errors"
	"shop-service/models"
	"shop-service/notifications"
	"shop-service/repository"
)

// CheckoutService orchestrates the cart-to-order flow: submitting an item
// selection into the cart, confirming the cart into an immutable order, and
// notifying the purchasing user.
type CheckoutService struct {
	db          *gorm.DB
	carts       repository.CartRepository
	orders      repository.OrderRepository
	items       repository.ItemRepository
	payments    PaymentProcessor
	broadcaster notifications.Broadcaster
	logger      *zap.Logger
}

// NewCheckoutService creates a new CheckoutService
func NewCheckoutService(
	db *gorm.DB,
	carts repository.CartRepository,
	orders repository.OrderRepository,
	items repository.ItemRepository,
	payments PaymentProcessor,
	broadcaster notifications.Broadcaster,
	logger *zap.Logger,
) *CheckoutService {
	return &CheckoutService{
		db:          db,
		carts:       carts,
		orders:      orders,
		items:       items,
		payments:    payments,
		broadcaster: broadcaster,
		logger:      logger,
	}
}

// SubmitSelection validates the selected item IDs and adds the items to the
// user's cart. Validation is all-or-nothing: an empty selection or any ID
// that does not reference an existing item rejects the whole submission with
// no cart mutation. Items already in the cart are silently skipped.
func (s *CheckoutService) SubmitSelection(ctx context.Context, user *models.User, itemIDs []uuid.UUID) (*models.Cart, error) {
	if len(itemIDs) == 0 {
		return nil, apperrors.ErrEmptySelection
	}

	seen := make(map[uuid.UUID]struct{}, len(itemIDs))
	unique := make([]uuid.UUID, 0, len(itemIDs))
	for _, id := range itemIDs {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}

	items, err := s.items.FindByIDs(ctx, unique)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrDatabaseQuery, err)
	}
	if len(items) != len(unique) {
		return nil, apperrors.ErrUnknownItems
	}

	cart, err := s.carts.GetOrCreateByUser(ctx, user.ID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrDatabaseQuery, err)
	}
	if err := s.carts.AddItems(ctx, cart, items); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrDatabaseQuery, err)
	}
	return cart, nil
}

// Cart returns the user's cart (creating it if needed) and its total cost.
func (s *CheckoutService) Cart(ctx context.Context, user *models.User) (*models.Cart, int, error) {
	cart, err := s.carts.GetOrCreateByUser(ctx, user.ID)
	if err != nil {
		return nil, 0, apperrors.Wrap(apperrors.ErrDatabaseQuery, err)
	}
	total, err := s.carts.TotalCost(ctx, cart.ID)
	if err != nil {
		return nil, 0, apperrors.Wrap(apperrors.ErrDatabaseQuery, err)
	}
	return cart, total, nil
}

// Confirm converts the user's cart into an order. Payment processing, order
// creation and cart flush run in a single transaction: either the order
// exists and the cart is empty, or neither happened. A cart that is already
// empty still confirms and produces an empty order.
//
// The "order placed" notification is published after the transaction
// commits; a publish failure is logged and never rolls the checkout back.
func (s *CheckoutService) Confirm(ctx context.Context, user *models.User) (*models.Order, error) {
	var order *models.Order

	err := s.db.Transaction(func(tx *gorm.DB) error {
		carts := s.carts.WithTx(tx)
		orders := s.orders.WithTx(tx)

		cart, err := carts.GetOrCreateByUser(ctx, user.ID)
		if err != nil {
			return err
		}

		// Payment processing is a placeholder; see NoopPaymentProcessor.
		if err := s.payments.Process(ctx, user, cart.TotalCost()); err != nil {
			return err
		}

		order, err = orders.Create(ctx, user.ID, cart.Items)
		if err != nil {
			return err
		}

		return carts.Clear(ctx, cart)
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrDatabaseTransaction, err)
	}

	channel := notifications.ChannelForUser(user.Username)
	if err := s.broadcaster.Publish(ctx, channel, notifications.OrderPlacedMessage); err != nil {
		s.logger.Warn("Order notification publish failed",
			zap.String("channel", channel),
			zap.Error(err),
		)
	}
	return order, nil
}

// RemoveItem removes a single item reference from the user's cart. Removing
// an item that is not in the cart is a no-op success. Access control (only
// superusers may remove items) is enforced by the route guard.
func (s *CheckoutService) RemoveItem(ctx context.Context, user *models.User, itemID uuid.UUID) error {
	cart, err := s.carts.GetOrCreateByUser(ctx, user.ID)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrDatabaseQuery, err)
	}
	if err := s.carts.RemoveItem(ctx, cart, itemID); err != nil {
		return apperrors.Wrap(apperrors.ErrDatabaseQuery, err)
	}
	return nil
}

// ListOrders returns the user's order history, oldest first.
func (s *CheckoutService) ListOrders(ctx context.Context, user *models.User) ([]models.Order, error) {
	orders, err := s.orders.FindByUserID(ctx, user.ID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrDatabaseQuery, err)
	}
	return orders, nil
}

// ListItems returns the purchasable catalog for the selection form.
func (s *CheckoutService) ListItems(ctx context.Context) ([]models.Item, error) {
	items, err := s.items.FindAll(ctx)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrDatabaseQuery, err)
	}
	return items, nil
}
