package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/google/uuid"
)

const (
	// AccessTokenValidity is how long an access token stays usable
	AccessTokenValidity = time.Hour * 24
	// RefreshTokenValidity is how long a refresh token stays usable
	RefreshTokenValidity = time.Hour * 24 * 7
)

// GenerateTokenPair returns the access and refresh tokens for a user id
func GenerateTokenPair(userID uuid.UUID, secret string) (string, string, error) {
	accessToken, err := generateToken(userID, secret, AccessTokenValidity, "access")
	if err != nil {
		return "", "", err
	}
	refreshToken, err := generateToken(userID, secret, RefreshTokenValidity, "refresh")
	if err != nil {
		return "", "", err
	}
	return accessToken, refreshToken, nil
}

func generateToken(userID uuid.UUID, secret string, validity time.Duration, use string) (string, error) {
	claims := jwt.MapClaims{
		"id":  userID.String(),
		"use": use,
		"exp": time.Now().Add(validity).Unix(),
		"iat": time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// GeneratePasswordResetToken issues a short-lived token bound to an email
func GeneratePasswordResetToken(email, secret string) (string, error) {
	claims := jwt.MapClaims{
		"email": email,
		"use":   "password_reset",
		"exp":   time.Now().Add(time.Minute * 20).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ValidateAndGetClaims parses a token string and returns its claims
func ValidateAndGetClaims(tokenString, secret string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}

// UserIDFromClaims pulls the user id claim out of a validated token
func UserIDFromClaims(claims jwt.MapClaims) (uuid.UUID, error) {
	idStr, ok := claims["id"].(string)
	if !ok {
		return uuid.Nil, fmt.Errorf("invalid userID format")
	}
	return uuid.Parse(idStr)
}
