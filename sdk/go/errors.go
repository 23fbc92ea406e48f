package stillgrateful

import (
	"encoding/json"
	"fmt"
)

// Sentinel errors returned by the SDK.
var (
	// ErrInvalidRequest is returned when the server rejects the payload.
	ErrInvalidRequest = fmt.Errorf("stillgrateful: invalid request")

	// ErrRateLimited is returned when the sender has hit the send limit.
	ErrRateLimited = fmt.Errorf("stillgrateful: rate limited")

	// ErrMessageRejected is returned when the content filter declined the message.
	ErrMessageRejected = fmt.Errorf("stillgrateful: message rejected")
)

// APIError represents an error response from the relay API.
type APIError struct {
	StatusCode int    `json:"-"`
	Code       string `json:"error"`
	Reason     string `json:"reason"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("stillgrateful: API error %d [%s]: %s", e.StatusCode, e.Code, e.Reason)
}

// Unwrap maps stable error codes to the SDK sentinels so callers can use
// errors.Is without inspecting codes themselves.
func (e *APIError) Unwrap() error {
	switch e.Code {
	case "validation_error":
		return ErrInvalidRequest
	case "message_rejected":
		return ErrMessageRejected
	case "rate_limited":
		return ErrRateLimited
	}
	return nil
}

func parseAPIError(statusCode int, body []byte) error {
	apiErr := &APIError{StatusCode: statusCode}
	if err := json.Unmarshal(body, apiErr); err != nil || apiErr.Code == "" {
		apiErr.Code = "server_error"
		apiErr.Reason = "unexpected response from server"
	}
	return apiErr
}
