package relay

import (
	"fmt"
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/JacksonJohnAllanChambers/StillGrateful/internal/model"
)

// ValidationError describes a rejected payload with a human-readable reason.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func invalid(format string, args ...interface{}) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// Validate checks a raw send request and returns the normalized form.
// Checks run in a fixed order and fail fast on the first violation.
// No side effects; in particular nothing is hashed or logged here.
func Validate(req *model.SendRequest, maxMessageLength int) (*model.Gratitude, error) {
	if req == nil {
		return nil, invalid("request body must be a JSON object")
	}

	message := strings.TrimSpace(req.Message)
	if message == "" {
		return nil, invalid("message must not be empty")
	}
	if utf8.RuneCountInString(message) > maxMessageLength {
		return nil, invalid("message must be at most %d characters", maxMessageLength)
	}

	recipient := strings.ToLower(strings.TrimSpace(req.RecipientEmail))
	if recipient == "" {
		return nil, invalid("recipient_email must not be empty")
	}
	addr, err := mail.ParseAddress(recipient)
	if err != nil || addr.Address != recipient {
		return nil, invalid("recipient_email is not a valid email address")
	}

	tag := model.ContextTag(strings.TrimSpace(req.ContextTag))
	if !tag.Valid() {
		return nil, invalid("context_tag must be one of the supported relationship tags")
	}

	token := strings.TrimSpace(req.SenderToken)
	if token == "" {
		return nil, invalid("sender_token must not be empty")
	}

	return &model.Gratitude{
		Message:        message,
		RecipientEmail: recipient,
		Tag:            tag,
		SenderToken:    token,
	}, nil
}
