package model

// SendRequest is the raw, untrusted POST /send payload.
type SendRequest struct {
	Message        string `json:"message"`
	RecipientEmail string `json:"recipient_email"`
	ContextTag     string `json:"context_tag"`
	SenderToken    string `json:"sender_token"`
}

// Gratitude is a validated, normalized send request. It lives only for
// the duration of one request; the message text is never persisted.
type Gratitude struct {
	Message        string
	RecipientEmail string // trimmed, lower-cased
	Tag            ContextTag
	SenderToken    string
}
