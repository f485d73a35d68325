package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/maayan-lessons/booking-api/pkg/config"
	appErrors "github.com/maayan-lessons/booking-api/pkg/errors"
)

func sessionConfig() config.SessionConfig {
	return config.SessionConfig{
		Secret:        "test-secret",
		AdminPassword: "hunter2",
		TTL:           8 * time.Hour,
		CookieName:    "admin_session",
	}
}

func TestAuthLoginAndValidateRoundTrip(t *testing.T) {
	svc := NewAuthService(sessionConfig(), nil)

	token, ttl, err := svc.Login("hunter2")
	require.NoError(t, err)
	assert.Equal(t, 8*time.Hour, ttl)
	require.NoError(t, svc.ValidateToken(token))
}

func TestAuthLoginWrongPassword(t *testing.T) {
	svc := NewAuthService(sessionConfig(), nil)

	_, _, err := svc.Login("wrong")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidPassword.Code, appErrors.FromError(err).Code)
}

func TestAuthBcryptHashTakesPrecedence(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cure"), bcrypt.MinCost)
	require.NoError(t, err)

	cfg := sessionConfig()
	cfg.AdminPasswordHash = string(hash)
	svc := NewAuthService(cfg, nil)

	_, _, err = svc.Login("s3cure")
	require.NoError(t, err)

	// The plaintext fallback is ignored once a hash is configured.
	_, _, err = svc.Login("hunter2")
	require.Error(t, err)
}

func TestAuthRejectsUnconfiguredPassword(t *testing.T) {
	cfg := sessionConfig()
	cfg.AdminPassword = ""
	svc := NewAuthService(cfg, nil)

	_, _, err := svc.Login("")
	require.Error(t, err)
}

func TestAuthValidateRejectsGarbageToken(t *testing.T) {
	svc := NewAuthService(sessionConfig(), nil)
	require.Error(t, svc.ValidateToken("not-a-jwt"))
	require.Error(t, svc.ValidateToken(""))
}

func TestAuthValidateRejectsForeignSecret(t *testing.T) {
	issuer := NewAuthService(sessionConfig(), nil)
	token, _, err := issuer.Login("hunter2")
	require.NoError(t, err)

	other := sessionConfig()
	other.Secret = "different-secret"
	verifier := NewAuthService(other, nil)
	require.Error(t, verifier.ValidateToken(token))
}
