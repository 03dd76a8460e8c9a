package auth

import (
	"os"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/vinaykumarh26/careerport-core/internal/users"
)

type Claims struct {
	UserID    uint       `json:"user_id"`
	Email     string     `json:"email"`
	Role      users.Role `json:"role"`
	CSRFToken string     `json:"csrf_token"`
	jwt.RegisteredClaims
}

// GenerateToken signs a session token for u. Each token carries a fresh
// anti-forgery secret that mutating requests must echo back.
func GenerateToken(u *users.User) (token string, csrfToken string, err error) {
	hours := 24
	if v := os.Getenv("JWT_EXPIRES_HOURS"); v != "" {
		if h, err := strconv.Atoi(v); err == nil && h > 0 {
			hours = h
		}
	}
	now := time.Now()
	csrfToken = uuid.NewString()
	claims := Claims{
		UserID:    u.ID,
		Email:     u.Email,
		Role:      u.Role,
		CSRFToken: csrfToken,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(u.ID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(hours) * time.Hour)),
		},
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	secret := []byte(os.Getenv("JWT_SECRET"))
	token, err = tok.SignedString(secret)
	return token, csrfToken, err
}

func ParseToken(tokenStr string) (*Claims, error) {
	secret := []byte(os.Getenv("JWT_SECRET"))
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	})
	if err != nil {
		return nil, err
	}
	return claims, nil
}
