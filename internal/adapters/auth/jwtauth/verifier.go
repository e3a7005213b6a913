package jwtauth

import (
	"context"
	"errors"
	"strings"

	"github.com/Rambabu64681/Health-API/internal/ports/auth"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")

// Verifier validates HS256 bearer tokens with a shared secret. The subject
// claim becomes the acting user id.
type Verifier struct {
	secret []byte
}

func New(secret string) *Verifier {
	return &Verifier{secret: []byte(secret)}
}

func (v *Verifier) Verify(ctx context.Context, token string) (auth.Claims, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		return v.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !parsed.Valid {
		return auth.Claims{}, ErrInvalidToken
	}

	mc, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return auth.Claims{}, ErrInvalidToken
	}

	sub, err := mc.GetSubject()
	if err != nil || strings.TrimSpace(sub) == "" {
		return auth.Claims{}, ErrInvalidToken
	}

	claims := auth.Claims{UserID: sub}
	if email, ok := mc["email"].(string); ok {
		claims.Email = email
	}
	return claims, nil
}
