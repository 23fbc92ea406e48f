package middleware

import (
	"net/http"
	"runtime/debug"
)

// Recover recovers from panics and logs the error. The client gets the
// standard server_error envelope; internals are never exposed.
func (m *Middleware) Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				m.log.Error().
					Interface("error", err).
					Str("stack", string(debug.Stack())).
					Str("path", r.URL.Path).
					Str("method", r.Method).
					Msg("panic recovered")

				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("Access-Control-Allow-Origin", "*")
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte(`{"success":false,"error":"server_error","reason":"An unexpected error occurred"}`))
			}
		}()

		next.ServeHTTP(w, r)
	})
}
