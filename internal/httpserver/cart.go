package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"starbrew/internal/domain"
)

type addItemRequest struct {
	ProductID string `json:"productId" binding:"required"`
}

type updateItemRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

func (h handlers) getCart(c *gin.Context) {
	snap := h.deps.Carts.Get(c.Request.Context(), sessionID(c)).Snapshot()
	c.JSON(http.StatusOK, toCartResponse(snap, h.deps.TaxRateBps, ""))
}

func (h handlers) addCartItem(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "productId required"})
		return
	}

	ctx := c.Request.Context()
	product, err := h.deps.CatalogSvc.Resolve(ctx, req.ProductID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		h.logger.Printf("add cart item product=%s: %v", req.ProductID, err)
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "product unavailable"})
		return
	}

	snap, ev := h.deps.Carts.Get(ctx, sessionID(c)).Add(ctx, *product)
	c.JSON(http.StatusOK, toCartResponse(snap, h.deps.TaxRateBps, ev.Message()))
}

func (h handlers) updateCartItem(c *gin.Context) {
	var req updateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Quantity == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "quantity required"})
		return
	}

	ctx := c.Request.Context()
	snap, ev := h.deps.Carts.Get(ctx, sessionID(c)).SetQuantity(ctx, c.Param("productID"), *req.Quantity)
	c.JSON(http.StatusOK, toCartResponse(snap, h.deps.TaxRateBps, ev.Message()))
}

func (h handlers) removeCartItem(c *gin.Context) {
	ctx := c.Request.Context()
	snap, ev := h.deps.Carts.Get(ctx, sessionID(c)).Remove(ctx, c.Param("productID"))
	c.JSON(http.StatusOK, toCartResponse(snap, h.deps.TaxRateBps, ev.Message()))
}

func (h handlers) clearCart(c *gin.Context) {
	ctx := c.Request.Context()
	snap, ev := h.deps.Carts.Get(ctx, sessionID(c)).Clear(ctx)
	c.JSON(http.StatusOK, toCartResponse(snap, h.deps.TaxRateBps, ev.Message()))
}
