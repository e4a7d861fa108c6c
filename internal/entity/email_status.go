package entity

import (
	"context"
	"time"
)

// Suppression reasons. An already-suppressed address keeps its original
// reason; later negative events do not overwrite it.
const (
	SuppressionReasonBounce      = "bounce"
	SuppressionReasonSpam        = "spam"
	SuppressionReasonUnsubscribe = "unsubscribe"
	SuppressionReasonManual      = "manual"
)

func IsValidSuppressionReason(r string) bool {
	switch r {
	case SuppressionReasonBounce, SuppressionReasonSpam, SuppressionReasonUnsubscribe, SuppressionReasonManual:
		return true
	}
	return false
}

// EmailStatus is the per-address aggregate driven by delivery webhook events
// and manual admin actions. Counters only ever go up.
type EmailStatus struct {
	Email             string     `json:"email"`
	DeliveredCount    int        `json:"delivered_count"`
	OpenedCount       int        `json:"opened_count"`
	ClickedCount      int        `json:"clicked_count"`
	Bounced           bool       `json:"bounced"`
	SpamReported      bool       `json:"spam_reported"`
	Unsubscribed      bool       `json:"unsubscribed"`
	LastEvent         string     `json:"last_event,omitempty"`
	LastEventAt       *time.Time `json:"last_event_at,omitempty"`
	IsSuppressed      bool       `json:"is_suppressed"`
	SuppressionReason string     `json:"suppression_reason,omitempty"`
	SuppressedAt      *time.Time `json:"suppressed_at,omitempty"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

type EmailStatusRepositoryInterface interface {
	// FindByEmail returns nil (no error) for an address with no history.
	FindByEmail(ctx context.Context, email string) (*EmailStatus, error)

	// ApplyEvent upserts the aggregate for one delivery event: increments the
	// matching counter or sets the matching flag, and updates last_event.
	ApplyEvent(ctx context.Context, email, eventType string, occurredAt time.Time) error

	// Suppress sets the suppression flag if the address is not already
	// suppressed. Returns true when the flag was newly set.
	Suppress(ctx context.Context, email, reason string, at time.Time) (bool, error)

	Unsuppress(ctx context.Context, email string) error
}
