package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/JacksonJohnAllanChambers/StillGrateful/internal/config"
	"github.com/JacksonJohnAllanChambers/StillGrateful/internal/database"
	"github.com/JacksonJohnAllanChambers/StillGrateful/internal/logger"
	"github.com/JacksonJohnAllanChambers/StillGrateful/internal/model"
)

// Relayer runs the post-validation pipeline for one message.
type Relayer interface {
	Send(ctx context.Context, g *model.Gratitude) error
}

// Handler holds all HTTP handlers
type Handler struct {
	db       *database.Postgres
	rdb      *database.Redis
	log      *logger.Logger
	cfg      *config.Config
	relaySvc Relayer
}

// New creates a new Handler instance
func New(db *database.Postgres, rdb *database.Redis, log *logger.Logger, cfg *config.Config, relaySvc Relayer) *Handler {
	return &Handler{
		db:       db,
		rdb:      rdb,
		log:      log,
		cfg:      cfg,
		relaySvc: relaySvc,
	}
}

// Stable error codes of the response contract
const (
	errValidation      = "validation_error"
	errMessageRejected = "message_rejected"
	errRateLimited     = "rate_limited"
	errServer          = "server_error"
)

// JSON helper functions

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeSuccess(w http.ResponseWriter) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
	})
}

func writeError(w http.ResponseWriter, status int, code, reason string) {
	writeJSON(w, status, map[string]interface{}{
		"success": false,
		"error":   code,
		"reason":  reason,
	})
}

func readJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return errors.New("request body is empty")
	}
	defer r.Body.Close()

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(v)
}
