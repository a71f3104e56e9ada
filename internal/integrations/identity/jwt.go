package identity

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/m04kA/SMC-BarberBookingService/internal/domain"
)

// JWTAuthenticator проверяет HS256 access-токены, выпущенные сервисом учетных записей
type JWTAuthenticator struct {
	secret []byte
	issuer string
	leeway time.Duration
}

// NewJWTAuthenticator создает проверку токенов. Пустой issuer не проверяется
func NewJWTAuthenticator(secret, issuer string, leeway time.Duration) *JWTAuthenticator {
	return &JWTAuthenticator{
		secret: []byte(secret),
		issuer: issuer,
		leeway: leeway,
	}
}

// Authenticate проверяет подпись и срок действия токена и возвращает Identity
func (a *JWTAuthenticator) Authenticate(_ context.Context, token string) (domain.Identity, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithLeeway(a.leeway),
	}
	if a.issuer != "" {
		opts = append(opts, jwt.WithIssuer(a.issuer))
	}

	var claims Claims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (interface{}, error) {
		return a.secret, nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !parsed.Valid {
		return nil, ErrInvalidToken
	}

	return toIdentity(claims.Subject, claims.Role, claims.Phone, claims.BranchID)
}
