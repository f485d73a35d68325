package service

import (
	"crypto/subtle"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/maayan-lessons/booking-api/internal/models"
	"github.com/maayan-lessons/booking-api/pkg/config"
	appErrors "github.com/maayan-lessons/booking-api/pkg/errors"
)

// AuthService issues and validates the admin session token carried in the
// session cookie. There is a single admin identity, so the token only
// asserts the role.
type AuthService struct {
	cfg    config.SessionConfig
	logger *zap.Logger
}

// NewAuthService constructs an AuthService.
func NewAuthService(cfg config.SessionConfig, logger *zap.Logger) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{cfg: cfg, logger: logger}
}

// Login checks the admin password and returns a signed session token with
// its TTL. A bcrypt hash takes precedence over the plaintext fallback.
func (s *AuthService) Login(password string) (string, time.Duration, error) {
	if !s.passwordMatches(password) {
		return "", 0, appErrors.ErrInvalidPassword
	}

	now := time.Now().UTC()
	claims := models.SessionClaims{
		Role: models.RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.TTL)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return "", 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to sign session token")
	}
	return token, s.cfg.TTL, nil
}

// ValidateToken parses the session token and confirms the admin role.
func (s *AuthService) ValidateToken(token string) error {
	claims := &models.SessionClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.cfg.Secret), nil
	})
	if err != nil || !parsed.Valid || claims.Role != models.RoleAdmin {
		return appErrors.ErrUnauthorized
	}
	return nil
}

// CookieName returns the configured session cookie name.
func (s *AuthService) CookieName() string {
	return s.cfg.CookieName
}

func (s *AuthService) passwordMatches(password string) bool {
	if s.cfg.AdminPasswordHash != "" {
		return bcrypt.CompareHashAndPassword([]byte(s.cfg.AdminPasswordHash), []byte(password)) == nil
	}
	if s.cfg.AdminPassword == "" {
		s.logger.Warn("admin password not configured, rejecting login")
		return false
	}
	return subtle.ConstantTimeCompare([]byte(s.cfg.AdminPassword), []byte(password)) == 1
}
