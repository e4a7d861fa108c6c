package usecase

import (
	"context"
	"log"
	"time"

	"github.com/intelleges/iaos-website-sub000/internal/entity"
)

const (
	// DrainBatchSize caps how many rows one pass touches.
	DrainBatchSize = 50

	retryBaseDelay = 15 * time.Minute
)

type DrainOutput struct {
	Claimed int `json:"claimed"`
	Sent    int `json:"sent"`
	Retried int `json:"retried"`
	Failed  int `json:"failed"`
}

// ProcessScheduledEmailsUseCase drains the outbox: claim -> send -> finalize.
// The claim is stamped before any provider call, so two overlapping drains
// can never double-send the same row.
type ProcessScheduledEmailsUseCase struct {
	Repo        entity.ScheduledEmailRepositoryInterface
	Sender      EmailService
	Suppression SuppressionChecker

	now func() time.Time
}

func NewProcessScheduledEmailsUseCase(
	repo entity.ScheduledEmailRepositoryInterface,
	sender EmailService,
	suppression SuppressionChecker,
) *ProcessScheduledEmailsUseCase {
	return &ProcessScheduledEmailsUseCase{
		Repo:        repo,
		Sender:      sender,
		Suppression: suppression,
		now:         time.Now,
	}
}

// Execute is one stateless pass; safe to run on any interval, repeatedly.
func (uc *ProcessScheduledEmailsUseCase) Execute(ctx context.Context) (*DrainOutput, error) {
	due, err := uc.Repo.ClaimDue(ctx, uc.now(), DrainBatchSize)
	if err != nil {
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: "failed to claim due emails: " + err.Error()}
	}

	out := &DrainOutput{Claimed: len(due)}

	for _, email := range due {
		uc.processOne(ctx, email, out)
	}

	return out, nil
}

func (uc *ProcessScheduledEmailsUseCase) processOne(ctx context.Context, email *entity.ScheduledEmail, out *DrainOutput) {
	// The recipient may have bounced or unsubscribed since scheduling.
	if uc.Suppression != nil {
		status, err := uc.Suppression.CheckEmailSuppression(ctx, email.RecipientEmail)
		if err == nil && status.IsSuppressed {
			if err := uc.Repo.MarkFailed(ctx, email.ID, "recipient suppressed: "+status.Reason); err != nil {
				log.Printf("[DRAIN] failed to mark %s failed: %v", email.ID, err)
			}
			out.Failed++
			return
		}
	}

	sendErr := uc.Sender.Send(email.RecipientEmail, email.RecipientName, email.Subject, email.BodyHTML)
	if sendErr == nil {
		if err := uc.Repo.MarkSent(ctx, email.ID, uc.now()); err != nil {
			log.Printf("[DRAIN] sent %s but failed to mark it: %v", email.ID, err)
		}
		out.Sent++
		return
	}

	log.Printf("[DRAIN] provider rejected %s (attempt %d): %v", email.ID, email.RetryCount+1, sendErr)

	// Bounded retry with exponential backoff; after the last attempt the row
	// goes to the failed terminal state with the provider's reason.
	if email.RetryCount+1 >= entity.MaxSendAttempts {
		if err := uc.Repo.MarkFailed(ctx, email.ID, sendErr.Error()); err != nil {
			log.Printf("[DRAIN] failed to mark %s failed: %v", email.ID, err)
		}
		out.Failed++
		return
	}

	backoff := retryBaseDelay << uint(email.RetryCount)
	if err := uc.Repo.Reschedule(ctx, email.ID, uc.now().Add(backoff)); err != nil {
		log.Printf("[DRAIN] failed to reschedule %s: %v", email.ID, err)
	}
	out.Retried++
}
