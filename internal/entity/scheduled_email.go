package entity

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const (
	EmailTypeDocumentFollowup = "document_followup"
)

// MaxSendAttempts bounds the retry policy of the background drain. A row that
// fails this many provider calls goes to the failed terminal state.
const MaxSendAttempts = 3

// ScheduledEmail is a follow-up waiting in the outbox. Lifecycle:
// pending -> claimed -> sent | pending(retry, backoff) | failed.
type ScheduledEmail struct {
	ID             string     `json:"id"`
	RecipientEmail string     `json:"recipient_email"`
	RecipientName  string     `json:"recipient_name"`
	EmailType      string     `json:"email_type"`
	Subject        string     `json:"subject"`
	BodyHTML       string     `json:"body_html"`
	ScheduledFor   time.Time  `json:"scheduled_for"`
	ClaimedAt      *time.Time `json:"claimed_at,omitempty"`
	Sent           bool       `json:"sent"`
	SentAt         *time.Time `json:"sent_at,omitempty"`
	Failed         bool       `json:"failed"`
	FailureReason  string     `json:"failure_reason,omitempty"`
	RetryCount     int        `json:"retry_count"`
	Metadata       string     `json:"metadata,omitempty"` // free-form JSON
	CreatedAt      time.Time  `json:"created_at"`
}

func NewScheduledEmail(recipientEmail, recipientName, emailType, subject, bodyHTML string, scheduledFor time.Time) *ScheduledEmail {
	return &ScheduledEmail{
		ID:             uuid.New().String(),
		RecipientEmail: NormalizeEmail(recipientEmail),
		RecipientName:  recipientName,
		EmailType:      emailType,
		Subject:        subject,
		BodyHTML:       bodyHTML,
		ScheduledFor:   scheduledFor,
		CreatedAt:      time.Now(),
	}
}

type ScheduledEmailRepositoryInterface interface {
	Create(ctx context.Context, e *ScheduledEmail) error

	// ClaimDue atomically stamps claimed_at on up to limit due pending rows
	// and returns them. A row claimed by one drain is invisible to another.
	ClaimDue(ctx context.Context, now time.Time, limit int) ([]*ScheduledEmail, error)

	MarkSent(ctx context.Context, id string, at time.Time) error
	MarkFailed(ctx context.Context, id string, reason string) error

	// Reschedule releases the claim and pushes scheduled_for into the future,
	// incrementing retry_count.
	Reschedule(ctx context.Context, id string, nextAttempt time.Time) error
}
