package model

import "time"

// AuditRecord is an append-only outcome row written once per request
// attempt after the terminal state is known. It intentionally has no
// field for the message text.
type AuditRecord struct {
	ID              string     `json:"id"`
	SenderHash      string     `json:"senderHash"`
	RecipientDomain string     `json:"recipientDomain"`
	Tag             ContextTag `json:"tag"`
	Status          string     `json:"status"`
	CreatedAt       time.Time  `json:"createdAt"`
}

// Audit status constants
const (
	AuditStatusSent     = "sent"
	AuditStatusRejected = "rejected"
	AuditStatusError    = "error"
)
