package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// TokenTTL bounds how long a portal session stays valid.
const TokenTTL = 12 * time.Hour

type claims struct {
	UserType UserType `json:"userType"`
	jwt.RegisteredClaims
}

// IssueToken signs a session into a bearer token; the HTTP shell's
// analogue of the browser's sessionStorage.
func IssueToken(s Session, secret string) (string, error) {
	if secret == "" {
		return "", errors.New("jwt secret is empty")
	}
	now := time.Now()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		UserType: s.UserType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   s.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
		},
	})
	return tok.SignedString([]byte(secret))
}

// ParseToken restores the session carried by a bearer token.
func ParseToken(tokenString, secret string) (Session, error) {
	var c claims
	_, err := jwt.ParseWithClaims(tokenString, &c, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return Session{}, err
	}
	return Session{IsLoggedIn: true, UserType: c.UserType, UserID: c.Subject}, nil
}
