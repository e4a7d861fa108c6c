package worker

import (
	"context"
	"log"
	"time"

	"github.com/intelleges/iaos-website-sub000/internal/infra/http/middleware"
	"github.com/intelleges/iaos-website-sub000/internal/usecase"
)

// FollowupWorker periodically drains the scheduled-email outbox. Each tick is
// one stateless pass of the usecase; all coordination lives in the claim
// semantics of the repository.
type FollowupWorker struct {
	processor    *usecase.ProcessScheduledEmailsUseCase
	tickInterval time.Duration
}

func NewFollowupWorker(processor *usecase.ProcessScheduledEmailsUseCase, tickInterval time.Duration) *FollowupWorker {
	if tickInterval <= 0 {
		tickInterval = time.Hour
	}
	return &FollowupWorker{
		processor:    processor,
		tickInterval: tickInterval,
	}
}

func (w *FollowupWorker) Start(ctx context.Context) {
	log.Printf("[FOLLOWUP] drain worker started (every %s)", w.tickInterval)

	ticker := time.NewTicker(w.tickInterval)
	defer ticker.Stop()

	w.drain(ctx)

	for {
		select {
		case <-ctx.Done():
			log.Println("[FOLLOWUP] drain worker stopped")
			return
		case <-ticker.C:
			w.drain(ctx)
		}
	}
}

func (w *FollowupWorker) drain(ctx context.Context) {
	out, err := w.processor.Execute(ctx)
	if err != nil {
		log.Printf("[FOLLOWUP] drain pass failed: %v", err)
		return
	}

	middleware.RecordFollowupOutcomes(out.Sent, out.Retried, out.Failed)

	if out.Claimed > 0 {
		log.Printf("[FOLLOWUP] drained %d emails (%d sent, %d retried, %d failed)",
			out.Claimed, out.Sent, out.Retried, out.Failed)
	}
}
