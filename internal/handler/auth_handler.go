package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/maayan-lessons/booking-api/internal/dto"
	appErrors "github.com/maayan-lessons/booking-api/pkg/errors"
	"github.com/maayan-lessons/booking-api/pkg/response"
)

// AuthHandler manages the admin session cookie.
type AuthHandler struct {
	auth       AuthService
	cookieName string
	secure     bool
}

// NewAuthHandler constructs an AuthHandler. secure marks cookies
// Secure-only, which production environments should enable.
func NewAuthHandler(auth AuthService, secure bool) *AuthHandler {
	return &AuthHandler{auth: auth, cookieName: auth.CookieName(), secure: secure}
}

// Login godoc
// @Summary Admin login
// @Description Validates the admin password and sets the session cookie.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "credentials"
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /admin/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "password is required"))
		return
	}

	token, ttl, err := h.auth.Login(req.Password)
	if err != nil {
		response.Error(c, err)
		return
	}

	h.setSessionCookie(c, token, int(ttl.Seconds()))
	response.OK(c, gin.H{"role": "admin"})
}

// Logout godoc
// @Summary Admin logout
// @Description Clears the session cookie.
// @Tags auth
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /admin/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	h.setSessionCookie(c, "", -1)
	response.OK(c, gin.H{"loggedOut": true})
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, value string, maxAge int) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     h.cookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteLaxMode,
	})
}
