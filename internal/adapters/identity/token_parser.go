package identity_adapter

import (
	"context"
	"errors"
	"fmt"

	"rentwise-portal-service/internal/contextkeys"
	"rentwise-portal-service/internal/core/domain"
	"rentwise-portal-service/internal/core/port"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrTokenInvalid = errors.New("token is invalid")
	ErrTokenExpired = errors.New("token has expired")
)

// TokenParser проверяет bearer-токен, выданный платформой, и достает из него пользователя.
type TokenParser struct {
	signingKey []byte
}

func NewTokenParser(signingKey string) (*TokenParser, error) {
	if signingKey == "" {
		return nil, fmt.Errorf("JWT signing key cannot be empty")
	}
	return &TokenParser{signingKey: []byte(signingKey)}, nil
}

// platformClaims - sub содержит ID пользователя платформы.
type platformClaims struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Parse возвращает Identity с исходным токеном, чтобы его можно было передать платформе.
func (p *TokenParser) Parse(ctx context.Context, tokenString string) (domain.Identity, error) {
	parserLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "TokenParser",
		"method":    "Parse",
	})

	claims := &platformClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return p.signingKey, nil
	}, jwt.WithExpirationRequired())

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			parserLogger.Warn("Token has expired", port.Fields{"user_id": claims.Subject})
			return domain.Identity{}, ErrTokenExpired
		}
		parserLogger.Warn("Invalid token format or signature", port.Fields{"error": err.Error()})
		return domain.Identity{}, ErrTokenInvalid
	}
	if !token.Valid || claims.Subject == "" {
		parserLogger.Warn("Token has no subject", nil)
		return domain.Identity{}, ErrTokenInvalid
	}

	return domain.Identity{
		ID:    claims.Subject,
		Name:  claims.Name,
		Email: claims.Email,
		Token: tokenString,
	}, nil
}
