package model

import "time"

// RateLimitRecord is the persisted fixed-window counter for one sender
// identity. Keyed by the hashed sender token; owned exclusively by the
// rate limiter.
type RateLimitRecord struct {
	SenderHash  string    `json:"senderHash"`
	Count       int       `json:"count"`
	WindowStart time.Time `json:"windowStart"`
}
