package apitest

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// tokenManager issues and validates the bearer tokens the fake service
// hands out at login.
type tokenManager struct {
	secretKey string
	expiry    time.Duration
}

type tokenClaims struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	IsAdmin  bool   `json:"is_admin"`
	jwt.RegisteredClaims
}

func newTokenManager(secretKey string, expiry time.Duration) *tokenManager {
	return &tokenManager{secretKey: secretKey, expiry: expiry}
}

func (m *tokenManager) Generate(userID int64, username string, isAdmin bool) (string, error) {
	claims := &tokenClaims{
		UserID:   userID,
		Username: username,
		IsAdmin:  isAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(m.expiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(m.secretKey))
}

func (m *tokenManager) Validate(tokenString string) (*tokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &tokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(m.secretKey), nil
	})
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*tokenClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, errors.New("invalid token")
}
