// Package auth signs and checks the session token that records who is
// logged in to the archive shell.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/scewiki/internal/common"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims carries the standard claims plus the archive user id.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"uid"`
}

// GenerateToken returns an HS256 token for userID. A zero validity
// yields a token that never expires.
func GenerateToken(userID string, secretKey []byte, validityDuration time.Duration) (string, error) {
	now := time.Now()
	rc := jwt.RegisteredClaims{
		ID:       uuid.NewString(),
		IssuedAt: jwt.NewNumericDate(now),
	}
	if validityDuration != 0 {
		rc.ExpiresAt = jwt.NewNumericDate(now.Add(validityDuration))
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{RegisteredClaims: rc, UserID: userID})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}
	return tokenString, nil
}

// GetUserIDFromToken verifies tokenString and returns the user id in it.
// Expired tokens yield common.ErrTokenExpired; anything else that fails
// verification yields an error wrapping common.ErrInvalidToken.
func GetUserIDFromToken(tokenString string, secretKey []byte) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", common.ErrTokenExpired
		}
		return "", fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}

	if !token.Valid || claims.UserID == "" {
		return "", common.ErrInvalidToken
	}

	return claims.UserID, nil
}
