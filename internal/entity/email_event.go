package entity

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Delivery-provider event types as they arrive on the webhook.
const (
	EventDelivered   = "delivered"
	EventOpen        = "open"
	EventClick       = "click"
	EventBounce      = "bounce"
	EventDropped     = "dropped"
	EventSpamReport  = "spamreport"
	EventUnsubscribe = "unsubscribe"
)

// SuppressingEvents maps the event types that flip an address to suppressed
// onto the suppression reason they record.
var SuppressingEvents = map[string]string{
	EventBounce:      SuppressionReasonBounce,
	EventDropped:     SuppressionReasonBounce,
	EventSpamReport:  SuppressionReasonSpam,
	EventUnsubscribe: SuppressionReasonUnsubscribe,
}

// EmailEvent is the immutable audit row for one raw webhook event. The
// provider event ID doubles as the dedup guard for replayed batches.
type EmailEvent struct {
	ID                string    `json:"id"`
	Email             string    `json:"email"`
	EventType         string    `json:"event_type"`
	Reason            string    `json:"reason,omitempty"`
	ProviderEventID   string    `json:"provider_event_id,omitempty"`
	ProviderMessageID string    `json:"provider_message_id,omitempty"`
	OccurredAt        time.Time `json:"occurred_at"`
	ReceivedAt        time.Time `json:"received_at"`
}

func NewEmailEvent(email, eventType, reason, providerEventID, providerMessageID string, occurredAt time.Time) *EmailEvent {
	return &EmailEvent{
		ID:                uuid.New().String(),
		Email:             NormalizeEmail(email),
		EventType:         eventType,
		Reason:            reason,
		ProviderEventID:   providerEventID,
		ProviderMessageID: providerMessageID,
		OccurredAt:        occurredAt,
		ReceivedAt:        time.Now(),
	}
}

type EmailEventRepositoryInterface interface {
	// Create inserts the audit row. Returns inserted=false when an event with
	// the same provider event ID was already recorded (replay).
	Create(ctx context.Context, e *EmailEvent) (inserted bool, err error)
}
