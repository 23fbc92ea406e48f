package handler

import (
	"errors"
	"net/http"

	"github.com/JacksonJohnAllanChambers/StillGrateful/internal/model"
	"github.com/JacksonJohnAllanChambers/StillGrateful/internal/relay"
	"github.com/JacksonJohnAllanChambers/StillGrateful/internal/service"
)

// Send handles POST /send. Validation failures never reach the pipeline:
// nothing is hashed and no audit record is written for them.
func (h *Handler) Send(w http.ResponseWriter, r *http.Request) {
	var req model.SendRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, errValidation, "request body must be a JSON object with message, recipient_email, context_tag and sender_token")
		return
	}

	g, err := relay.Validate(&req, h.cfg.Relay.MaxMessageLength)
	if err != nil {
		var ve *relay.ValidationError
		if errors.As(err, &ve) {
			writeError(w, http.StatusBadRequest, errValidation, ve.Reason)
			return
		}
		writeError(w, http.StatusBadRequest, errValidation, "invalid request")
		return
	}

	if err := h.relaySvc.Send(r.Context(), g); err != nil {
		switch {
		case errors.Is(err, service.ErrRateLimited):
			writeError(w, http.StatusTooManyRequests, errRateLimited, "You have reached the send limit. Please try again tomorrow.")
		case errors.Is(err, service.ErrMessageRejected):
			writeError(w, http.StatusBadRequest, errMessageRejected, "This message could not be sent.")
		case errors.Is(err, service.ErrDeliveryFailed):
			writeError(w, http.StatusInternalServerError, errServer, "The message could not be delivered. Please try again later.")
		default:
			h.log.Error().Err(err).Msg("relay pipeline failed")
			writeError(w, http.StatusInternalServerError, errServer, "Something went wrong. Please try again later.")
		}
		return
	}

	writeSuccess(w)
}

// SendOptions handles OPTIONS /send for CORS preflight. Always 204,
// regardless of environment state.
func (h *Handler) SendOptions(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

// NotFound handles any unmatched method/path.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, "not_found", "The requested resource does not exist")
}
