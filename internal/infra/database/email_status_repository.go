package database

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/intelleges/iaos-website-sub000/internal/entity"
)

type EmailStatusRepository struct {
	DB *sql.DB
}

func NewEmailStatusRepository(db *sql.DB) *EmailStatusRepository {
	return &EmailStatusRepository{DB: db}
}

func (r *EmailStatusRepository) FindByEmail(ctx context.Context, email string) (*entity.EmailStatus, error) {
	query := `
		SELECT email, delivered_count, opened_count, clicked_count,
		       bounced, spam_reported, unsubscribed,
		       COALESCE(last_event, ''), last_event_at,
		       is_suppressed, COALESCE(suppression_reason, ''), suppressed_at,
		       updated_at
		FROM email_status
		WHERE email = $1
	`

	s := &entity.EmailStatus{}
	err := r.DB.QueryRowContext(ctx, query, email).Scan(
		&s.Email, &s.DeliveredCount, &s.OpenedCount, &s.ClickedCount,
		&s.Bounced, &s.SpamReported, &s.Unsubscribed,
		&s.LastEvent, &s.LastEventAt,
		&s.IsSuppressed, &s.SuppressionReason, &s.SuppressedAt,
		&s.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

// ApplyEvent upserts the aggregate for one delivery event. Counters only go
// up; flags only go from false to true.
func (r *EmailStatusRepository) ApplyEvent(ctx context.Context, email, eventType string, occurredAt time.Time) error {
	deliveredInc, openedInc, clickedInc := 0, 0, 0
	bounced, spam, unsub := false, false, false

	switch eventType {
	case entity.EventDelivered:
		deliveredInc = 1
	case entity.EventOpen:
		openedInc = 1
	case entity.EventClick:
		clickedInc = 1
	case entity.EventBounce, entity.EventDropped:
		bounced = true
	case entity.EventSpamReport:
		spam = true
	case entity.EventUnsubscribe:
		unsub = true
	}

	query := `
		INSERT INTO email_status
			(email, delivered_count, opened_count, clicked_count,
			 bounced, spam_reported, unsubscribed,
			 last_event, last_event_at, is_suppressed, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, FALSE, NOW())
		ON CONFLICT (email) DO UPDATE SET
			delivered_count = email_status.delivered_count + EXCLUDED.delivered_count,
			opened_count    = email_status.opened_count + EXCLUDED.opened_count,
			clicked_count   = email_status.clicked_count + EXCLUDED.clicked_count,
			bounced         = email_status.bounced OR EXCLUDED.bounced,
			spam_reported   = email_status.spam_reported OR EXCLUDED.spam_reported,
			unsubscribed    = email_status.unsubscribed OR EXCLUDED.unsubscribed,
			last_event      = EXCLUDED.last_event,
			last_event_at   = EXCLUDED.last_event_at,
			updated_at      = NOW()
	`

	_, err := r.DB.ExecContext(ctx, query,
		email, deliveredInc, openedInc, clickedInc,
		bounced, spam, unsub,
		eventType, occurredAt,
	)
	return err
}

// Suppress flips the flag only when the address is not already suppressed, so
// the recorded reason is the first trigger until an explicit unsuppress.
func (r *EmailStatusRepository) Suppress(ctx context.Context, email, reason string, at time.Time) (bool, error) {
	query := `
		INSERT INTO email_status
			(email, delivered_count, opened_count, clicked_count,
			 bounced, spam_reported, unsubscribed,
			 is_suppressed, suppression_reason, suppressed_at, updated_at)
		VALUES ($1, 0, 0, 0, FALSE, FALSE, FALSE, TRUE, $2, $3, NOW())
		ON CONFLICT (email) DO UPDATE SET
			is_suppressed      = TRUE,
			suppression_reason = $2,
			suppressed_at      = $3,
			updated_at         = NOW()
		WHERE email_status.is_suppressed = FALSE
	`

	res, err := r.DB.ExecContext(ctx, query, email, reason, at)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *EmailStatusRepository) Unsuppress(ctx context.Context, email string) error {
	_, err := r.DB.ExecContext(ctx, `
		UPDATE email_status
		SET is_suppressed = FALSE, suppression_reason = NULL, suppressed_at = NULL, updated_at = NOW()
		WHERE email = $1
	`, email)
	return err
}
