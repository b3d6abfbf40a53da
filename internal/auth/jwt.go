package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"fitPerksAPI/internal/apperr"
)

// TokenValidity is how long a session token stays usable after login
// or registration.
const TokenValidity = 7 * 24 * time.Hour

// Claims carries the standard registered claims plus the identity of
// the session owner.
type Claims struct {
	jwt.RegisteredClaims
	UserID   string `json:"userId"`
	Username string `json:"username"`
}

func GenerateToken(userID, username string, secretKey []byte, validity time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validity)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
		UserID:   userID,
		Username: username,
	})

	return token.SignedString(secretKey)
}

// ParseToken verifies the signature and expiry and returns the embedded
// claims. Tampered, expired or otherwise invalid tokens come back as
// apperr.ErrForbidden.
func ParseToken(tokenString string, secretKey []byte) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, apperr.ErrForbidden
	}

	if !token.Valid {
		return nil, apperr.ErrForbidden
	}

	return claims, nil
}
