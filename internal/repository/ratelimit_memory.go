package repository

import (
	"context"
	"sync"
	"time"

	"github.com/JacksonJohnAllanChambers/StillGrateful/internal/model"
)

// MemoryRateLimiter is an in-process implementation of the same
// fixed-window contract as RateLimitRepository. State does not survive a
// restart, so it is only suitable for development and tests.
type MemoryRateLimiter struct {
	mu      sync.Mutex
	window  time.Duration
	cap     int
	records map[string]*model.RateLimitRecord
}

// NewMemoryRateLimiter creates a new MemoryRateLimiter
func NewMemoryRateLimiter(window time.Duration, cap int) *MemoryRateLimiter {
	return &MemoryRateLimiter{
		window:  window,
		cap:     cap,
		records: make(map[string]*model.RateLimitRecord),
	}
}

// Reserve atomically claims one send slot for the identifier. Semantics
// match RateLimitRepository.Reserve: create on first send, reset when the
// window has elapsed, increment below the cap, deny without mutation at
// the cap.
func (m *MemoryRateLimiter) Reserve(_ context.Context, senderHash string, now time.Time) (*model.RateLimitRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.records[senderHash]
	if !ok || !rec.WindowStart.After(now.Add(-m.window)) {
		rec = &model.RateLimitRecord{
			SenderHash:  senderHash,
			Count:       1,
			WindowStart: now,
		}
		m.records[senderHash] = rec
		out := *rec
		return &out, nil
	}

	if rec.Count >= m.cap {
		return nil, ErrRateLimited
	}

	rec.Count++
	out := *rec
	return &out, nil
}
