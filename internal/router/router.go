package router

import (
	"net/http"

	"github.com/JacksonJohnAllanChambers/StillGrateful/internal/handler"
	"github.com/JacksonJohnAllanChambers/StillGrateful/internal/middleware"
)

// New creates and configures the HTTP router
func New(h *handler.Handler, mw *middleware.Middleware) http.Handler {
	mux := http.NewServeMux()

	// Health check endpoints
	mux.HandleFunc("GET /health", h.Health)
	mux.HandleFunc("GET /ready", h.Ready)

	// The single relay endpoint (IP burst limited)
	mux.Handle("POST /send", mw.BurstLimit(http.HandlerFunc(h.Send)))
	mux.HandleFunc("OPTIONS /send", h.SendOptions)

	// Everything else is 404
	mux.HandleFunc("/", h.NotFound)

	// Apply middleware stack
	var handler http.Handler = mux

	// CORS (any origin)
	handler = mw.CORS(handler)

	// Request logging
	handler = mw.Logger(handler)

	// Timing
	handler = mw.Timing(handler)

	// Request ID
	handler = mw.RequestID(handler)

	// Panic recovery (outermost)
	handler = mw.Recover(handler)

	return handler
}
