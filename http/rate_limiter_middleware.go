package http

import (
	"bytes"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
)

// maxPeekBytes caps how much of a request body UserEmailKey reads.
const maxPeekBytes = 1 << 20

// KeyFunc picks the rate limit bucket for a request.
type KeyFunc func(r *http.Request) string

func RateLimitMiddleware(limiter *RateLimiter, keyFn KeyFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if ok, wait := limiter.Allow(keyFn(r)); !ok {
				w.Header().Set("Retry-After", strconv.Itoa(retryAfterSeconds(wait)))
				WriteError(w, http.StatusTooManyRequests, "rate limit exceeded")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// ClientIPKey buckets anonymous calculator traffic by client address.
func ClientIPKey(r *http.Request) string {
	return "ip:" + clientIP(r)
}

// UserEmailKey buckets simulation store traffic by the owning user: the
// {email} route parameter, or user_email in a JSON body. Requests without
// either fall back to the client address. The body is restored for the
// handler.
func UserEmailKey(r *http.Request) string {
	if email := normalizeEmail(chi.URLParam(r, "email")); email != "" {
		return "user:" + email
	}

	if r.Body != nil && r.Body != http.NoBody {
		raw, err := io.ReadAll(io.LimitReader(r.Body, maxPeekBytes))
		rest := r.Body
		r.Body = struct {
			io.Reader
			io.Closer
		}{io.MultiReader(bytes.NewReader(raw), rest), rest}

		if err == nil {
			var payload struct {
				UserEmail string `json:"user_email"`
			}
			if json.Unmarshal(raw, &payload) == nil {
				if email := normalizeEmail(payload.UserEmail); email != "" {
					return "user:" + email
				}
			}
		}
	}
	return ClientIPKey(r)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// clientIP strips the port when present; middleware.RealIP may already have
// replaced RemoteAddr with a bare address.
func clientIP(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}
