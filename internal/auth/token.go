// Package auth issues and verifies the signed session tokens used by job
// seekers and the back office, and checks the admin credentials.
package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/anonto42/pegawe/backend/internal/models"
	"github.com/golang-jwt/jwt/v4"
)

// Cookie names carrying the session tokens
const (
	UserCookie  = "user-token"
	AdminCookie = "admin-token"
)

// ErrInvalidToken is returned for tokens that fail signature, expiry or shape checks
var ErrInvalidToken = errors.New("invalid token")

// TokenIssuer signs and parses HS256 session tokens
type TokenIssuer struct {
	secret []byte
	now    func() time.Time
}

// NewTokenIssuer creates a TokenIssuer for the shared secret
func NewTokenIssuer(secret string) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), now: time.Now}
}

// IssueUser returns a token for a job seeker
func (i *TokenIssuer) IssueUser(user *models.User, ttl time.Duration) (string, time.Time, error) {
	return i.issue(models.JwtCustomClaims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   models.RoleUser,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: strconv.FormatUint(uint64(user.ID), 10),
		},
	}, ttl)
}

// IssueAdmin returns a token for the back office account
func (i *TokenIssuer) IssueAdmin(username string, ttl time.Duration) (string, time.Time, error) {
	return i.issue(models.JwtCustomClaims{
		Role: models.RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: username,
		},
	}, ttl)
}

func (i *TokenIssuer) issue(claims models.JwtCustomClaims, ttl time.Duration) (string, time.Time, error) {
	now := i.now()
	expires := now.Add(ttl)
	claims.IssuedAt = jwt.NewNumericDate(now)
	claims.ExpiresAt = jwt.NewNumericDate(expires)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, expires, nil
}

// Parse verifies the signature and expiry of a token and returns its claims
func (i *TokenIssuer) Parse(tokenString string) (*models.JwtCustomClaims, error) {
	claims := &models.JwtCustomClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return i.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid || claims.ExpiresAt == nil {
		return nil, ErrInvalidToken
	}
	switch claims.Role {
	case models.RoleUser:
		if claims.UserID == 0 {
			return nil, ErrInvalidToken
		}
	case models.RoleAdmin:
	default:
		return nil, ErrInvalidToken
	}
	return claims, nil
}
