package health

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestHandle(t *testing.T) {
	h := NewHandler()
	h.now = func() time.Time { return time.Date(2026, 1, 10, 3, 0, 0, 0, time.FixedZone("WIB", 7*3600)) }

	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok","timestamp":"2026-01-09T20:00:00Z"}`, rec.Body.String())
}
