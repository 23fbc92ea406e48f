package repository

import "errors"

// ErrRateLimited is returned when a sender identity has exhausted its
// window cap.
var ErrRateLimited = errors.New("rate limit exceeded for sender")
