package middleware

import (
	"github.com/gin-gonic/gin"

	appErrors "github.com/maayan-lessons/booking-api/pkg/errors"
	"github.com/maayan-lessons/booking-api/pkg/response"
)

type tokenValidator interface {
	ValidateToken(token string) error
	CookieName() string
}

// SessionAuth gates admin routes on the session cookie. Missing or invalid
// sessions get a 401 envelope; redirects are left to the client.
func SessionAuth(auth tokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(auth.CookieName())
		if err != nil || token == "" {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}
		if err := auth.ValidateToken(token); err != nil {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}
		c.Next()
	}
}
