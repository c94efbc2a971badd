package auth

import (
	"testing"
	"time"

	"github.com/anonto42/pegawe/backend/internal/models"
	"github.com/anonto42/pegawe/backend/pkg/config"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenIssuer_RoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("secret")

	token, expires, err := issuer.IssueUser(&models.User{ID: 7, Email: "john@example.com"}, time.Hour)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expires, 5*time.Second)

	claims, err := issuer.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "john@example.com", claims.Email)
	assert.Equal(t, models.RoleUser, claims.Role)
	assert.Equal(t, "7", claims.Subject)

	adminToken, _, err := issuer.IssueAdmin("admin", time.Hour)
	require.NoError(t, err)
	claims, err = issuer.Parse(adminToken)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, claims.Role)
	assert.Equal(t, "admin", claims.Subject)
}

func TestTokenIssuer_RejectsTampering(t *testing.T) {
	issuer := NewTokenIssuer("secret")
	token, _, err := issuer.IssueUser(&models.User{ID: 1}, time.Hour)
	require.NoError(t, err)

	_, err = NewTokenIssuer("other-secret").Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = issuer.Parse(token + "x")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = issuer.Parse("am9objpkb2U=")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenIssuer_RejectsExpired(t *testing.T) {
	issuer := NewTokenIssuer("secret")
	issuer.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	token, _, err := issuer.IssueUser(&models.User{ID: 1}, time.Hour)
	require.NoError(t, err)

	_, err = issuer.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenIssuer_RejectsUnknownRoleAndNoneAlg(t *testing.T) {
	issuer := NewTokenIssuer("secret")

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, models.JwtCustomClaims{
		Role:             "superuser",
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	}).SignedString([]byte("secret"))
	require.NoError(t, err)
	_, err = issuer.Parse(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, models.JwtCustomClaims{
		Role:             models.RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = issuer.Parse(unsigned)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAdmin_Verify(t *testing.T) {
	admin, err := NewAdmin(config.AuthConfig{AdminUsername: "admin", AdminPassword: "admin123"})
	require.NoError(t, err)
	assert.True(t, admin.Verify("admin", "admin123"))
	assert.False(t, admin.Verify("admin", "wrong"))
	assert.False(t, admin.Verify("root", "admin123"))

	hash, err := HashPassword("s3cret")
	require.NoError(t, err)
	admin, err = NewAdmin(config.AuthConfig{AdminUsername: "boss", AdminPassword: "ignored", AdminPasswordHash: hash})
	require.NoError(t, err)
	assert.True(t, admin.Verify("boss", "s3cret"))
	assert.False(t, admin.Verify("boss", "ignored"))

	_, err = NewAdmin(config.AuthConfig{AdminUsername: "admin", AdminPasswordHash: "not-a-hash"})
	assert.Error(t, err)
	_, err = NewAdmin(config.AuthConfig{AdminUsername: "admin"})
	assert.Error(t, err)
}
