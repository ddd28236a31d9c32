//go:build unit || e2e

package authtest

import (
	"testing"
	"time"

	"kilo-share/internal/pkg/config"
	"kilo-share/internal/pkg/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// JWTHelper mints tokens as the identity provider configured in cfg would.
type JWTHelper struct {
	cfg config.JWTConfig
}

func NewJWTHelper(cfg config.JWTConfig) *JWTHelper {
	return &JWTHelper{cfg: cfg}
}

func (h *JWTHelper) GenerateToken(t *testing.T, userID uuid.UUID) string {
	t.Helper()
	ttl, err := time.ParseDuration(h.cfg.Duration)
	require.NoError(t, err)
	return h.sign(t, h.cfg.Secret, ttl, userID)
}

func (h *JWTHelper) CreateExpiredToken(t *testing.T, userID uuid.UUID) string {
	t.Helper()
	return h.sign(t, h.cfg.Secret, -time.Minute, userID)
}

// ForgedToken is well formed but signed with a key the API does not trust.
func (h *JWTHelper) ForgedToken(t *testing.T, userID uuid.UUID) string {
	t.Helper()
	return h.sign(t, h.cfg.Secret+"-forged", time.Hour, userID)
}

func (h *JWTHelper) sign(t *testing.T, secret string, ttl time.Duration, userID uuid.UUID) string {
	t.Helper()
	token, err := jwt.NewService(secret, h.cfg.Issuer, ttl).GenerateToken(userID)
	require.NoError(t, err)
	return token
}
