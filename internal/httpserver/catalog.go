package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"starbrew/internal/domain"
)

func (h handlers) listCategories(c *gin.Context) {
	categories := h.deps.Categories
	if categories == nil {
		categories = []domain.Category{}
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

func (h handlers) listProducts(c *gin.Context) {
	products, err := h.deps.CatalogSvc.List(c.Request.Context(), c.Query("category"))
	if err != nil {
		h.logger.Printf("list products: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "catalog unavailable"})
		return
	}
	if products == nil {
		products = []domain.Product{}
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}

func (h handlers) getProduct(c *gin.Context) {
	p, err := h.deps.CatalogSvc.Resolve(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		h.logger.Printf("get product id=%s: %v", c.Param("id"), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "catalog unavailable"})
		return
	}
	c.JSON(http.StatusOK, p)
}
