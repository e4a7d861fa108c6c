package database

import (
	"context"
	"database/sql"
	"time"

	"github.com/intelleges/iaos-website-sub000/internal/entity"
)

type ScheduledEmailRepository struct {
	DB *sql.DB
}

func NewScheduledEmailRepository(db *sql.DB) *ScheduledEmailRepository {
	return &ScheduledEmailRepository{DB: db}
}

func (r *ScheduledEmailRepository) Create(ctx context.Context, e *entity.ScheduledEmail) error {
	query := `
		INSERT INTO scheduled_emails
			(id, recipient_email, recipient_name, email_type, subject, body_html,
			 scheduled_for, sent, failed, retry_count, metadata, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, FALSE, FALSE, 0, $8, $9)
	`
	_, err := r.DB.ExecContext(ctx, query,
		e.ID, e.RecipientEmail, e.RecipientName, e.EmailType, e.Subject, e.BodyHTML,
		e.ScheduledFor, nullString(e.Metadata), e.CreatedAt,
	)
	return err
}

// ClaimDue stamps claimed_at on due pending rows before anyone sends.
// SKIP LOCKED keeps overlapping drains from fighting over the same rows.
func (r *ScheduledEmailRepository) ClaimDue(ctx context.Context, now time.Time, limit int) ([]*entity.ScheduledEmail, error) {
	query := `
		UPDATE scheduled_emails
		SET claimed_at = $1
		WHERE id IN (
			SELECT id FROM scheduled_emails
			WHERE scheduled_for <= $1
			  AND sent = FALSE
			  AND failed = FALSE
			  AND claimed_at IS NULL
			ORDER BY scheduled_for
			LIMIT $2
			FOR UPDATE SKIP LOCKED
		)
		RETURNING id, recipient_email, recipient_name, email_type, subject, body_html,
		          scheduled_for, retry_count, COALESCE(metadata, ''), created_at
	`

	rows, err := r.DB.QueryContext(ctx, query, now, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var claimed []*entity.ScheduledEmail
	for rows.Next() {
		e := &entity.ScheduledEmail{}
		if err := rows.Scan(
			&e.ID, &e.RecipientEmail, &e.RecipientName, &e.EmailType,
			&e.Subject, &e.BodyHTML, &e.ScheduledFor, &e.RetryCount,
			&e.Metadata, &e.CreatedAt,
		); err != nil {
			return nil, err
		}
		claimed = append(claimed, e)
	}

	return claimed, rows.Err()
}

func (r *ScheduledEmailRepository) MarkSent(ctx context.Context, id string, at time.Time) error {
	_, err := r.DB.ExecContext(ctx, `
		UPDATE scheduled_emails
		SET sent = TRUE, sent_at = $2, claimed_at = NULL
		WHERE id = $1
	`, id, at)
	return err
}

func (r *ScheduledEmailRepository) MarkFailed(ctx context.Context, id string, reason string) error {
	_, err := r.DB.ExecContext(ctx, `
		UPDATE scheduled_emails
		SET failed = TRUE, failure_reason = $2, retry_count = retry_count + 1, claimed_at = NULL
		WHERE id = $1
	`, id, reason)
	return err
}

func (r *ScheduledEmailRepository) Reschedule(ctx context.Context, id string, nextAttempt time.Time) error {
	_, err := r.DB.ExecContext(ctx, `
		UPDATE scheduled_emails
		SET scheduled_for = $2, retry_count = retry_count + 1, claimed_at = NULL
		WHERE id = $1
	`, id, nextAttempt)
	return err
}
