package session

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/arcanedex/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims is the part of the bearer token the client reads. The signature is
// never checked: the client does not hold the signing key and the server
// re-validates every request.
type Claims struct {
	jwt.RegisteredClaims
	Role string `json:"role,omitempty"`
}

func parseUnverified(token string) (*Claims, error) {
	if token == "" {
		return nil, common.ErrNotLoggedIn
	}
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}
	return claims, nil
}

// Expiry returns the exp claim of token.
func Expiry(token string) (time.Time, error) {
	claims, err := parseUnverified(token)
	if err != nil {
		return time.Time{}, err
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, fmt.Errorf("%w: no expiry", common.ErrInvalidToken)
	}
	return claims.ExpiresAt.Time, nil
}

// IsTokenValid reports whether token carries an expiry strictly after now.
// Absent or malformed tokens are invalid.
func IsTokenValid(token string, now time.Time) bool {
	exp, err := Expiry(token)
	if err != nil {
		return false
	}
	return exp.After(now)
}

// Role returns the role claim of token, or "" when it has none.
func Role(token string) (string, error) {
	claims, err := parseUnverified(token)
	if err != nil {
		return "", err
	}
	return claims.Role, nil
}
