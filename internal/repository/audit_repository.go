package repository

import (
	"context"
	"fmt"

	"github.com/JacksonJohnAllanChambers/StillGrateful/internal/database"
	"github.com/JacksonJohnAllanChambers/StillGrateful/internal/model"
)

// AuditRepository handles append-only outcome records. Rows are never
// updated or deleted by the application.
type AuditRepository struct {
	db *database.Postgres
}

// NewAuditRepository creates a new AuditRepository
func NewAuditRepository(db *database.Postgres) *AuditRepository {
	return &AuditRepository{db: db}
}

// Create inserts a new audit record
func (r *AuditRepository) Create(ctx context.Context, rec *model.AuditRecord) error {
	query := `
		INSERT INTO audit_log (id, sender_hash, recipient_domain, tag, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.ExecContext(ctx, query,
		rec.ID,
		rec.SenderHash,
		rec.RecipientDomain,
		string(rec.Tag),
		rec.Status,
		rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create audit record: %w", err)
	}
	return nil
}
