package usecase

import (
	"context"

	"github.com/intelleges/iaos-website-sub000/internal/entity"
	"github.com/intelleges/iaos-website-sub000/internal/infra/queue"
)

// EnrichmentProvider looks up company metadata for a lead. Implementations
// must tolerate missing credentials and provider failures by returning
// (nil, "", nil): enrichment being unavailable is a scoring input, not an error.
type EnrichmentProvider interface {
	EnrichCompany(ctx context.Context, email, company string) (*entity.Enrichment, string, error)
}

// EmailService delivers a single HTML email.
type EmailService interface {
	Send(to, toName, subject, htmlBody string) error
}

// QueueProducerInterface publishes qualified leads for the sales
// notification worker.
type QueueProducerInterface interface {
	PublishQualifiedLead(ctx context.Context, payload queue.QualifiedLeadPayload) error
}

// SuppressionChecker gates sends against the per-address aggregate status.
type SuppressionChecker interface {
	CheckEmailSuppression(ctx context.Context, email string) (*SuppressionStatus, error)
}
