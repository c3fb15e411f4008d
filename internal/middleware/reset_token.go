package middleware

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"VIAJAPLUS_BACK-END/internal/config"
)

// ResetTokenClaims represents the JWT claims for password reset tokens
type ResetTokenClaims struct {
	UserID uuid.UUID `json:"user_id"`
	Email  string    `json:"email"`
	Code   string    `json:"code"`
	jwt.RegisteredClaims
}

// GenerateResetToken generates a temporary JWT token for password reset.
// The token carries the verified code and expires in 10 minutes.
func GenerateResetToken(userID uuid.UUID, email, code string, cfg *config.JWTConfig) (string, error) {
	now := time.Now()
	claims := &ResetTokenClaims{
		UserID: userID,
		Email:  email,
		Code:   code,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(10 * time.Minute)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    "viajaplus",
			Subject:   "password_reset",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.Secret))
}

// ValidateResetToken validates and parses a reset token
func ValidateResetToken(tokenString string, cfg *config.JWTConfig) (*ResetTokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &ResetTokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(cfg.Secret), nil
	})

	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*ResetTokenClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	if claims.Subject != "password_reset" {
		return nil, errors.New("invalid token type")
	}

	return claims, nil
}
