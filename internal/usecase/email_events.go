package usecase

import (
	"context"
	"log"
	"time"

	"github.com/intelleges/iaos-website-sub000/internal/entity"
)

// InboundEmailEvent is one record of a delivery-provider webhook batch,
// SendGrid field naming.
type InboundEmailEvent struct {
	Email      string `json:"email"`
	Timestamp  int64  `json:"timestamp"`
	Event      string `json:"event"`
	Reason     string `json:"reason,omitempty"`
	SGEventID  string `json:"sg_event_id,omitempty"`
	SGMsgID    string `json:"sg_message_id,omitempty"`
}

type ProcessEventsOutput struct {
	Success   bool `json:"success"`
	Processed int  `json:"processed"`
	Failed    int  `json:"failed"`
}

type ProcessEmailEventsUseCase struct {
	EventRepo  entity.EmailEventRepositoryInterface
	StatusRepo entity.EmailStatusRepositoryInterface
}

func NewProcessEmailEventsUseCase(
	eventRepo entity.EmailEventRepositoryInterface,
	statusRepo entity.EmailStatusRepositoryInterface,
) *ProcessEmailEventsUseCase {
	return &ProcessEmailEventsUseCase{EventRepo: eventRepo, StatusRepo: statusRepo}
}

// Execute processes a webhook batch with per-event isolation: one bad event
// never blocks the rest. Replays (same provider event ID) are skipped before
// touching the aggregate, so re-posting a batch cannot double-count.
func (uc *ProcessEmailEventsUseCase) Execute(ctx context.Context, events []InboundEmailEvent) ProcessEventsOutput {
	out := ProcessEventsOutput{Success: true}

	for _, ev := range events {
		if err := uc.processOne(ctx, ev); err != nil {
			log.Printf("[EVENTS] failed to process %s event for %s: %v", ev.Event, ev.Email, err)
			out.Failed++
			continue
		}
		out.Processed++
	}

	return out
}

func (uc *ProcessEmailEventsUseCase) processOne(ctx context.Context, ev InboundEmailEvent) error {
	if ev.Email == "" || ev.Event == "" {
		return &DomainError{Code: "INVALID_EVENT", Message: "event is missing email or type"}
	}

	occurredAt := time.Unix(ev.Timestamp, 0)
	if ev.Timestamp == 0 {
		occurredAt = time.Now()
	}

	record := entity.NewEmailEvent(ev.Email, ev.Event, ev.Reason, ev.SGEventID, ev.SGMsgID, occurredAt)

	inserted, err := uc.EventRepo.Create(ctx, record)
	if err != nil {
		return err
	}
	if !inserted {
		// Already recorded: idempotent replay, nothing else to do.
		return nil
	}

	if err := uc.StatusRepo.ApplyEvent(ctx, record.Email, record.EventType, occurredAt); err != nil {
		return err
	}

	if reason, ok := entity.SuppressingEvents[record.EventType]; ok {
		newlySet, err := uc.StatusRepo.Suppress(ctx, record.Email, reason, occurredAt)
		if err != nil {
			return err
		}
		if newlySet {
			log.Printf("[EVENTS] %s suppressed (%s)", record.Email, reason)
		}
	}

	return nil
}
