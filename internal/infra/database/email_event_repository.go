package database

import (
	"context"
	"database/sql"

	"github.com/intelleges/iaos-website-sub000/internal/entity"
)

type EmailEventRepository struct {
	DB *sql.DB
}

func NewEmailEventRepository(db *sql.DB) *EmailEventRepository {
	return &EmailEventRepository{DB: db}
}

// Create inserts the audit row. The unique index on provider_event_id makes
// webhook replays a no-op: ON CONFLICT DO NOTHING and zero rows affected.
func (r *EmailEventRepository) Create(ctx context.Context, e *entity.EmailEvent) (bool, error) {
	query := `
		INSERT INTO email_events
			(id, email, event_type, reason, provider_event_id, provider_message_id,
			 occurred_at, received_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (provider_event_id) DO NOTHING
	`

	res, err := r.DB.ExecContext(ctx, query,
		e.ID, e.Email, e.EventType, nullString(e.Reason),
		nullString(e.ProviderEventID), nullString(e.ProviderMessageID),
		e.OccurredAt, e.ReceivedAt,
	)
	if err != nil {
		return false, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}
