package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"starbrew/internal/domain"
)

func (h handlers) listOrders(c *gin.Context) {
	if h.deps.Orders == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "orders not configured"})
		return
	}
	orders, err := h.deps.Orders.ListByCustomer(c.Request.Context(), currentCustomer(c).ID)
	if err != nil {
		h.logger.Printf("list orders customer=%s: %v", currentCustomer(c).ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "orders unavailable"})
		return
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

func (h handlers) getOrder(c *gin.Context) {
	if h.deps.Orders == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "orders not configured"})
		return
	}
	order, err := h.deps.Orders.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}
		h.logger.Printf("get order id=%s: %v", c.Param("id"), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "orders unavailable"})
		return
	}
	// Customers only ever see their own orders.
	if order.CustomerID != currentCustomer(c).ID {
		c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
		return
	}
	c.JSON(http.StatusOK, order)
}
