package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/JacksonJohnAllanChambers/StillGrateful/internal/database"
	"github.com/JacksonJohnAllanChambers/StillGrateful/internal/model"
)

// RateLimitRepository enforces the fixed-window send cap per sender
// identity against the persistent counter table.
type RateLimitRepository struct {
	db     *database.Postgres
	window time.Duration
	cap    int
}

// NewRateLimitRepository creates a new RateLimitRepository
func NewRateLimitRepository(db *database.Postgres, window time.Duration, cap int) *RateLimitRepository {
	return &RateLimitRepository{db: db, window: window, cap: cap}
}

// Reserve atomically claims one send slot for the identifier. It creates
// the record on first send, resets the counter when the window has
// elapsed, and increments it otherwise. When the cap is reached within a
// live window, no row is mutated and the reservation is denied.
//
// The whole decision runs as a single conditional upsert, so concurrent
// requests from the same identifier cannot both pass a check-then-act
// gap: the cap is exact under concurrent load.
func (r *RateLimitRepository) Reserve(ctx context.Context, senderHash string, now time.Time) (*model.RateLimitRecord, error) {
	query := `
		INSERT INTO rate_limits (sender_hash, count, window_start)
		VALUES ($1, 1, $2)
		ON CONFLICT (sender_hash) DO UPDATE SET
			count = CASE
				WHEN rate_limits.window_start <= $3 THEN 1
				ELSE rate_limits.count + 1
			END,
			window_start = CASE
				WHEN rate_limits.window_start <= $3 THEN $2
				ELSE rate_limits.window_start
			END
		WHERE rate_limits.window_start <= $3 OR rate_limits.count < $4
		RETURNING count, window_start
	`
	windowFloor := now.Add(-r.window)

	rec := &model.RateLimitRecord{SenderHash: senderHash}
	err := r.db.QueryRowContext(ctx, query, senderHash, now, windowFloor, r.cap).
		Scan(&rec.Count, &rec.WindowStart)
	if errors.Is(err, sql.ErrNoRows) {
		// Conditional update declined: cap reached inside a live window.
		return nil, ErrRateLimited
	}
	if err != nil {
		return nil, fmt.Errorf("failed to reserve rate limit slot: %w", err)
	}
	return rec, nil
}
