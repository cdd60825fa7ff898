package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/greenharvest/greenharvest-backend/internal/app/service"
	apperrors "github.com/greenharvest/greenharvest-backend/internal/errors"
	"github.com/greenharvest/greenharvest-backend/internal/middleware"
)

type CartController struct {
	cartService service.CartService
}

func NewCartController(cartService service.CartService) *CartController {
	return &CartController{cartService: cartService}
}

type AddCartItemRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity"`
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

// GetCart returns the caller's cart
// GET /api/v1/cart
func (ctrl *CartController) GetCart(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	items, total, err := ctrl.cartService.GetCart(userID)
	if err != nil {
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "get cart")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"cart_items": items,
		"count":      len(items),
		"total":      total,
	})
}

// AddItem adds a product to the cart, merging with an existing entry
// POST /api/v1/cart
func (ctrl *CartController) AddItem(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	var req AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid add to cart request", map[string]interface{}{
			"user_id": userID,
			"error":   err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Please check the submitted fields")
		return
	}

	items, err := ctrl.cartService.AddItem(userID, req.ProductID, req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProductNotFound):
			apperrors.NotFound(c, apperrors.ProductNotFound, "Product not found")
		case errors.Is(err, service.ErrProductUnavailable):
			apperrors.Conflict(c, apperrors.ProductUnavailable, "This product is currently unavailable")
		default:
			log.Error("Failed to add cart item", err, map[string]interface{}{
				"user_id":    userID,
				"product_id": req.ProductID,
			})
			apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "add cart item")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "Item added to cart",
		"cart_items": items,
		"count":      len(items),
	})
}

// UpdateItem sets the absolute quantity of one entry. A quantity of zero
// or less removes the entry.
// PUT /api/v1/cart/:id
func (ctrl *CartController) UpdateItem(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	itemID := c.Param("id")

	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Please check the submitted fields")
		return
	}

	items, err := ctrl.cartService.UpdateQuantity(userID, itemID, req.Quantity)
	if err != nil {
		if errors.Is(err, service.ErrCartItemNotFound) {
			apperrors.NotFound(c, apperrors.CartItemNotFound, "Cart item not found")
			return
		}
		log.Error("Failed to update cart item", err, map[string]interface{}{
			"user_id": userID,
			"item_id": itemID,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "update cart item")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "Cart updated",
		"cart_items": items,
		"count":      len(items),
	})
}

// RemoveItem deletes one entry from the cart
// DELETE /api/v1/cart/:id
func (ctrl *CartController) RemoveItem(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	itemID := c.Param("id")

	items, err := ctrl.cartService.RemoveItem(userID, itemID)
	if err != nil {
		if errors.Is(err, service.ErrCartItemNotFound) {
			apperrors.NotFound(c, apperrors.CartItemNotFound, "Cart item not found")
			return
		}
		log.Error("Failed to remove cart item", err, map[string]interface{}{
			"user_id": userID,
			"item_id": itemID,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "remove cart item")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "Item removed from cart",
		"cart_items": items,
		"count":      len(items),
	})
}

// ClearCart empties the caller's cart
// DELETE /api/v1/cart
func (ctrl *CartController) ClearCart(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	if err := ctrl.cartService.ClearCart(userID); err != nil {
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "clear cart")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart cleared",
	})
}
