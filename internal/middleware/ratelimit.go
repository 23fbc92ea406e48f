package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"time"
)

// BurstLimit is a transport-level per-IP limiter in front of /send.
// It protects against floods from a single address and is independent of
// the per-sender 24h window enforced in the relay service. The limiter
// fails open when Redis is unavailable.
func (m *Middleware) BurstLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cfg := m.cfg.Relay.BurstLimiting
		if !cfg.Enabled {
			next.ServeHTTP(w, r)
			return
		}

		ctx := r.Context()
		key := fmt.Sprintf("burstlimit:%s", clientIP(r))

		count, err := m.rdb.Incr(ctx, key)
		if err != nil {
			m.log.Error().Err(err).Msg("failed to increment burst limit counter")
			next.ServeHTTP(w, r)
			return
		}

		// Set expiry on first request
		if count == 1 {
			m.rdb.Expire(ctx, key, cfg.Window)
		}

		// Get TTL for reset header
		ttl, _ := m.rdb.Client.TTL(ctx, key).Result()
		resetTime := time.Now().Add(ttl).Unix()

		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(cfg.Limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(max(0, cfg.Limit-int(count))))
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(resetTime, 10))

		if int(count) > cfg.Limit {
			w.Header().Set("Retry-After", strconv.FormatInt(int64(ttl.Seconds()), 10))
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.WriteHeader(http.StatusTooManyRequests)
			w.Write([]byte(`{"success":false,"error":"rate_limited","reason":"Too many requests from this address. Please try again later."}`))
			return
		}

		next.ServeHTTP(w, r)
	})
}

// clientIP returns the client IP address for the rate limit key
func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		return forwarded
	}
	return r.RemoteAddr
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
