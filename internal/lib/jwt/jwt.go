package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// NewToken issues a signed session token bound to a single user id.
func NewToken(userID int64, secret string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub": userID,
		"exp": time.Now().Add(ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString([]byte(secret))
}

// ParseToken verifies the signature and expiry and returns the user id the
// token is bound to.
func ParseToken(tokenStr, secret string) (int64, error) {
	const op = "lib.jwt.ParseToken"

	claims := jwt.MapClaims{}

	parsedToken, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("%s: unexpected signing method", op)
		}
		return []byte(secret), nil
	})
	if err != nil {
		return 0, fmt.Errorf("%s: failed to parse token: %w", op, err)
	}

	if !parsedToken.Valid {
		return 0, fmt.Errorf("%s: invalid token", op)
	}

	subFloat, ok := claims["sub"].(float64)
	if !ok {
		return 0, fmt.Errorf("%s: missing sub claim", op)
	}

	return int64(subFloat), nil
}
