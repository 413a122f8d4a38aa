package http

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimiter_WindowReset(t *testing.T) {
	rl := NewRateLimiter(2, time.Minute)
	defer rl.Stop()

	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	ok, _ := rl.Allow("user:ana@example.com")
	assert.True(t, ok)
	ok, _ = rl.Allow("user:ana@example.com")
	assert.True(t, ok)

	now = now.Add(20 * time.Second)
	ok, wait := rl.Allow("user:ana@example.com")
	assert.False(t, ok)
	assert.Equal(t, 40*time.Second, wait)

	// other users have their own budget
	ok, _ = rl.Allow("user:luis@example.com")
	assert.True(t, ok)

	now = now.Add(40 * time.Second)
	ok, _ = rl.Allow("user:ana@example.com")
	assert.True(t, ok)
}

func TestRateLimiter_Sweep(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute)
	defer rl.Stop()

	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	rl.Allow("ip:10.0.0.1")
	now = now.Add(90 * time.Second)
	rl.Allow("ip:10.0.0.2")
	now = now.Add(40 * time.Second)
	rl.sweep()

	rl.mu.Lock()
	defer rl.mu.Unlock()
	assert.NotContains(t, rl.quotas, "ip:10.0.0.1")
	assert.Contains(t, rl.quotas, "ip:10.0.0.2")
}

func TestRateLimiter_StopTwice(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute)
	rl.Stop()
	rl.Stop()
}

func TestRetryAfterSeconds(t *testing.T) {
	assert.Equal(t, 60, retryAfterSeconds(time.Minute))
	assert.Equal(t, 1, retryAfterSeconds(200*time.Millisecond))
	assert.Equal(t, 1, retryAfterSeconds(0))
}

func TestUserEmailKey(t *testing.T) {
	t.Run("body email, body restored", func(t *testing.T) {
		body := `{"user_email": " Ana@Example.com ", "name": "Base"}`
		req := httptest.NewRequest(http.MethodPost, "/v1/simulations", strings.NewReader(body))

		assert.Equal(t, "user:ana@example.com", UserEmailKey(req))

		rest, err := io.ReadAll(req.Body)
		require.NoError(t, err)
		assert.Equal(t, body, string(rest))
	})

	t.Run("no email falls back to client address", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/v1/simulations", strings.NewReader(`{invalid-json}`))
		req.RemoteAddr = "10.0.0.7:5555"
		assert.Equal(t, "ip:10.0.0.7", UserEmailKey(req))
	})
}
