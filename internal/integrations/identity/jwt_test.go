package identity

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberBookingService/internal/domain"
)

const testSecret = "test-secret"

func signToken(t *testing.T, method jwt.SigningMethod, key interface{}, claims Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

func claimsFor(sub, role string) Claims {
	return Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sub,
			Issuer:    "balik-auth",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
}

func TestJWTAuthenticator_Roles(t *testing.T) {
	auth := NewJWTAuthenticator(testSecret, "balik-auth", 0)

	customer := claimsFor("cust-1", "customer")
	customer.Phone = "+6281111"
	admin := claimsFor("adm-1", "admin")
	admin.BranchID = "b1"

	tests := []struct {
		name   string
		claims Claims
		want   domain.Identity
	}{
		{"customer", customer, domain.CustomerIdentity{ID: "cust-1", Phone: "+6281111"}},
		{"capster", claimsFor("cap-user-1", "capster"), domain.CapsterIdentity{ID: "cap-user-1"}},
		{"admin", admin, domain.AdminIdentity{ID: "adm-1", BranchID: "b1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token := signToken(t, jwt.SigningMethodHS256, []byte(testSecret), tt.claims)

			got, err := auth.Authenticate(context.Background(), token)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestJWTAuthenticator_Rejects(t *testing.T) {
	auth := NewJWTAuthenticator(testSecret, "balik-auth", 0)

	expired := claimsFor("cust-1", "customer")
	expired.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Hour))

	wrongIssuer := claimsFor("cust-1", "customer")
	wrongIssuer.Issuer = "someone-else"

	tests := []struct {
		name    string
		token   string
		wantErr error
	}{
		{"garbage", "not-a-token", ErrInvalidToken},
		{"wrong secret", signToken(t, jwt.SigningMethodHS256, []byte("other"), claimsFor("u", "admin")), ErrInvalidToken},
		{"wrong algorithm", signToken(t, jwt.SigningMethodHS512, []byte(testSecret), claimsFor("u", "admin")), ErrInvalidToken},
		{"expired", signToken(t, jwt.SigningMethodHS256, []byte(testSecret), expired), ErrInvalidToken},
		{"wrong issuer", signToken(t, jwt.SigningMethodHS256, []byte(testSecret), wrongIssuer), ErrInvalidToken},
		{"empty subject", signToken(t, jwt.SigningMethodHS256, []byte(testSecret), claimsFor("", "admin")), ErrInvalidToken},
		{"unknown role", signToken(t, jwt.SigningMethodHS256, []byte(testSecret), claimsFor("u", "owner")), ErrUnknownRole},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := auth.Authenticate(context.Background(), tt.token)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
