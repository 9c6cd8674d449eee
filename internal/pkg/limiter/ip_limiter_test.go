package limiter

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func TestIPRateLimiter_BurstThenReject(t *testing.T) {
	l := NewIPRateLimiter(rate.Limit(0.001), 2)

	assert.True(t, l.Allow("10.0.0.1"))
	assert.True(t, l.Allow("10.0.0.1"))
	assert.False(t, l.Allow("10.0.0.1"))

	// Another IP has its own bucket
	assert.True(t, l.Allow("10.0.0.2"))
	assert.Equal(t, 2, l.Len())
}

func TestIPRateLimiter_SweepDropsRefilledBuckets(t *testing.T) {
	l := NewIPRateLimiter(rate.Limit(1), 1)
	l.GetLimiter("10.0.0.1").Allow()
	l.GetLimiter("10.0.0.2")

	removed, remaining := l.sweep(time.Now())

	assert.Equal(t, 1, removed)
	assert.Equal(t, 1, remaining)

	removed, remaining = l.sweep(time.Now().Add(time.Hour))
	assert.Equal(t, 1, removed)
	assert.Equal(t, 0, remaining)
}

func TestIPRateLimiter_Middleware(t *testing.T) {
	req := require.New(t)
	l := NewIPRateLimiter(rate.Limit(0.001), 1)
	handler := l.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	first := httptest.NewRecorder()
	handler.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/ws", nil))
	req.Equal(http.StatusNoContent, first.Code)

	second := httptest.NewRecorder()
	handler.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/ws", nil))
	req.Equal(http.StatusTooManyRequests, second.Code)
	req.Contains(second.Body.String(), `"code":1007`)
}

func TestClientIP(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "192.168.1.20:5555"
	assert.Equal(t, "192.168.1.20", ClientIP(r))

	r.RemoteAddr = "weird"
	assert.Equal(t, "weird", ClientIP(r))

	r.RemoteAddr = ""
	assert.Equal(t, "unknown_ip", ClientIP(r))
}
