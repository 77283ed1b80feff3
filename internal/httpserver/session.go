package httpserver

import (
	"crypto/rand"
	"encoding/base64"
	"net/http"

	"github.com/gin-gonic/gin"

	"starbrew/internal/domain"
)

const (
	// sessionHeader carries the anonymous cart session token. The client
	// stores it locally and replays it on every request, so a cart follows
	// the device across restarts the way a localStorage cart would.
	sessionHeader = "X-Session-Token"

	sessionKey  = "session"
	customerKey = "customer"
)

// sessionMiddleware resolves the cart session token, issuing a fresh one
// when the request carries none. The token is always echoed back so clients
// can persist it.
func sessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader(sessionHeader)
		if !validSessionToken(token) {
			var err error
			token, err = newSessionToken()
			if err != nil {
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "session token"})
				return
			}
		}
		c.Set(sessionKey, token)
		c.Header(sessionHeader, token)
		c.Next()
	}
}

func sessionID(c *gin.Context) string {
	return c.GetString(sessionKey)
}

// validSessionToken accepts url-safe base64 tokens of the size this server
// issues. Anything else starts a new cart instead of erroring.
func validSessionToken(token string) bool {
	if len(token) < 16 || len(token) > 64 {
		return false
	}
	for _, r := range token {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
		default:
			return false
		}
	}
	return true
}

func newSessionToken() (string, error) {
	b := make([]byte, 24)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// authMiddleware resolves an optional bearer token to a customer. Requests
// without a valid token proceed anonymously; only checkout and the account
// routes care about the difference.
func authMiddleware(svc identityService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token != "" {
			if customer, err := svc.LookupByToken(c.Request.Context(), token); err == nil {
				c.Set(customerKey, customer)
			}
		}
		c.Next()
	}
}

// requireCustomer rejects requests that did not resolve to a customer.
func requireCustomer() gin.HandlerFunc {
	return func(c *gin.Context) {
		if currentCustomer(c) == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "sign in required"})
			return
		}
		c.Next()
	}
}

func currentCustomer(c *gin.Context) *domain.Customer {
	v, ok := c.Get(customerKey)
	if !ok {
		return nil
	}
	customer, ok := v.(*domain.Customer)
	if !ok {
		return nil
	}
	return customer
}

func bearerToken(c *gin.Context) string {
	const prefix = "Bearer "
	h := c.GetHeader("Authorization")
	if len(h) > len(prefix) && h[:len(prefix)] == prefix {
		return h[len(prefix):]
	}
	return ""
}
