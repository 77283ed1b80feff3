package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"starbrew/internal/checkout"
)

func (h handlers) checkout(c *gin.Context) {
	orderID, err := h.deps.CheckoutSvc.Checkout(c.Request.Context(), sessionID(c), currentCustomer(c))
	if err != nil {
		switch {
		case errors.Is(err, checkout.ErrSignInRequired):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Please sign in to checkout"})
		case errors.Is(err, checkout.ErrEmptyCart):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Your cart is empty"})
		case errors.Is(err, checkout.ErrCheckoutInFlight):
			c.JSON(http.StatusConflict, gin.H{"error": "Checkout already in progress"})
		default:
			h.logger.Printf("checkout session=%s: %v", sessionID(c), err)
			c.JSON(http.StatusBadGateway, gin.H{"error": "Order could not be placed"})
		}
		return
	}
	c.JSON(http.StatusCreated, gin.H{"orderId": orderID, "message": "Order placed successfully!"})
}
