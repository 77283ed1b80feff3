package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"starbrew/internal/domain"
	"starbrew/internal/service/identity"
)

type signinRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h handlers) signup(c *gin.Context) {
	var req identity.SignupInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	customer, err := h.deps.IdentitySvc.Signup(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			c.JSON(http.StatusConflict, gin.H{"error": "email already registered"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"customer": toCustomerResponse(*customer)})
}

func (h handlers) signin(c *gin.Context) {
	var req signinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and password required"})
		return
	}

	customer, access, refresh, err := h.deps.IdentitySvc.Signin(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, identity.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
			return
		}
		h.logger.Printf("signin email=%s: %v", req.Email, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "sign in failed"})
		return
	}
	c.JSON(http.StatusOK, signinResponse{
		Customer:     toCustomerResponse(*customer),
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    h.deps.IdentitySvc.AccessTTLSeconds(),
	})
}

func (h handlers) me(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"customer": toCustomerResponse(*currentCustomer(c))})
}

func (h handlers) rewards(c *gin.Context) {
	if h.deps.RewardsSvc == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "rewards not configured"})
		return
	}
	points, err := h.deps.RewardsSvc.Balance(c.Request.Context(), currentCustomer(c).ID)
	if err != nil {
		h.logger.Printf("rewards balance customer=%s: %v", currentCustomer(c).ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "rewards unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"rewardPoints": points})
}
