package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	apperrors "shop-service/common/errors"
	"shop-service/middleware"
	"shop-service/models"
)

// ICheckoutService abstracts the checkout service for the controller
type ICheckoutService interface {
	SubmitSelection(ctx context.Context, user *models.User, itemIDs []uuid.UUID) (*models.Cart, error)
	Cart(ctx context.Context, user *models.User) (*models.Cart, int, error)
	Confirm(ctx context.Context, user *models.User) (*models.Order, error)
	RemoveItem(ctx context.Context, user *models.User, itemID uuid.UUID) error
	ListOrders(ctx context.Context, user *models.User) ([]models.Order, error)
	ListItems(ctx context.Context) ([]models.Item, error)
}

// ShoppingController handles the purchase form, cart confirmation and order
// history endpoints.
type ShoppingController struct {
	service ICheckoutService
}

// NewShoppingController creates a new ShoppingController
func NewShoppingController(service ICheckoutService) *ShoppingController {
	return &ShoppingController{service: service}
}

type purchaseRequest struct {
	ItemIDs []string `json:"item_ids"`
}

type orderResponse struct {
	ID        uuid.UUID     `json:"id"`
	Items     []models.Item `json:"items"`
	TotalCost int           `json:"total_cost"`
	CreatedAt time.Time     `json:"created_at"`
}

// ListItems returns the purchasable catalog backing the purchase form
func (sc *ShoppingController) ListItems(c *gin.Context) {
	items, err := sc.service.ListItems(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// Purchase submits an item selection into the caller's cart and redirects to
// cart confirmation. The whole selection is rejected if it is empty or names
// an unknown item.
func (sc *ShoppingController) Purchase(c *gin.Context) {
	var req purchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperrors.Wrap(apperrors.ErrInvalidInput, err))
		return
	}

	itemIDs := make([]uuid.UUID, 0, len(req.ItemIDs))
	for _, raw := range req.ItemIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			_ = c.Error(apperrors.ErrUnknownItems)
			return
		}
		itemIDs = append(itemIDs, id)
	}

	user := middleware.UserFromContext(c)
	if _, err := sc.service.SubmitSelection(c.Request.Context(), user, itemIDs); err != nil {
		_ = c.Error(err)
		return
	}

	c.Redirect(http.StatusFound, "/shopping/cart/confirm")
}

// CartConfirm renders the confirmation data: the cart is initialized if the
// user has none yet, and returned with its total cost.
func (sc *ShoppingController) CartConfirm(c *gin.Context) {
	user := middleware.UserFromContext(c)

	cart, total, err := sc.service.Cart(c.Request.Context(), user)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"cart":       cart,
		"total_cost": total,
	})
}

// ConfirmCheckout converts the cart into an order and redirects back to the
// purchase view. Confirming an empty cart produces an empty order.
func (sc *ShoppingController) ConfirmCheckout(c *gin.Context) {
	user := middleware.UserFromContext(c)

	if _, err := sc.service.Confirm(c.Request.Context(), user); err != nil {
		_ = c.Error(err)
		return
	}

	c.Redirect(http.StatusFound, "/shopping/items")
}

// RemoveCartItem removes one item from the caller's cart and redirects to
// cart confirmation. Routed behind the superuser guard.
func (sc *ShoppingController) RemoveCartItem(c *gin.Context) {
	itemID, err := uuid.Parse(c.Param("item_id"))
	if err != nil {
		_ = c.Error(apperrors.Wrap(apperrors.ErrInvalidInput, err))
		return
	}

	user := middleware.UserFromContext(c)
	if err := sc.service.RemoveItem(c.Request.Context(), user, itemID); err != nil {
		_ = c.Error(err)
		return
	}

	c.Redirect(http.StatusFound, "/shopping/cart/confirm")
}

// ListOrders returns the caller's order history with per-order totals
func (sc *ShoppingController) ListOrders(c *gin.Context) {
	user := middleware.UserFromContext(c)

	orders, err := sc.service.ListOrders(c.Request.Context(), user)
	if err != nil {
		_ = c.Error(err)
		return
	}

	resp := make([]orderResponse, 0, len(orders))
	for i := range orders {
		resp = append(resp, orderResponse{
			ID:        orders[i].ID,
			Items:     orders[i].Items,
			TotalCost: orders[i].TotalCost(),
			CreatedAt: orders[i].CreatedAt,
		})
	}

	c.JSON(http.StatusOK, gin.H{"orders": resp})
}
