package identity

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberBookingService/internal/domain"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newIdentityServer(t *testing.T) *httptest.Server {
	t.Helper()

	users := map[string]User{
		"tok-customer": {ID: "cust-1", Role: "customer", Phone: "+6281111"},
		"tok-admin":    {ID: "adm-1", Role: "admin", BranchID: "b1"},
		"tok-unknown":  {ID: "x-1", Role: "owner"},
	}

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/internal/sessions/me" {
			w.WriteHeader(http.StatusNotFound)
			return
		}

		switch auth := r.Header.Get("Authorization"); auth {
		case "Bearer tok-broken":
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte("upstream down"))
		case "Bearer tok-garbage":
			_, _ = w.Write([]byte("{not json"))
		default:
			user, ok := users[auth[len("Bearer "):]]
			if !ok {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			_ = json.NewEncoder(w).Encode(user)
		}
	}))
}

func TestClient_Authenticate(t *testing.T) {
	srv := newIdentityServer(t)
	defer srv.Close()

	client := NewClient(srv.URL, time.Second, nopLogger{})

	got, err := client.Authenticate(context.Background(), "tok-customer")
	require.NoError(t, err)
	assert.Equal(t, domain.CustomerIdentity{ID: "cust-1", Phone: "+6281111"}, got)

	got, err = client.Authenticate(context.Background(), "tok-admin")
	require.NoError(t, err)
	assert.Equal(t, domain.AdminIdentity{ID: "adm-1", BranchID: "b1"}, got)
}

func TestClient_Authenticate_Errors(t *testing.T) {
	srv := newIdentityServer(t)
	defer srv.Close()

	client := NewClient(srv.URL, time.Second, nopLogger{})

	_, err := client.Authenticate(context.Background(), "tok-expired")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = client.Authenticate(context.Background(), "tok-unknown")
	assert.ErrorIs(t, err, ErrUnknownRole)

	_, err = client.Authenticate(context.Background(), "tok-broken")
	assert.ErrorIs(t, err, ErrInvalidResponse)

	_, err = client.Authenticate(context.Background(), "tok-garbage")
	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestClient_Authenticate_Unreachable(t *testing.T) {
	srv := newIdentityServer(t)
	srv.Close()

	client := NewClient(srv.URL, 200*time.Millisecond, nopLogger{})

	_, err := client.Authenticate(context.Background(), "tok-customer")
	assert.ErrorIs(t, err, ErrInternal)
}
