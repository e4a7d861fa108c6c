package usecase

import (
	"context"
	"log"
	"strings"

	"github.com/intelleges/iaos-website-sub000/internal/entity"
	"github.com/intelleges/iaos-website-sub000/internal/infra/queue"
)

type QualifyLeadInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Company string `json:"company"`
	Title   string `json:"title,omitempty"`
}

type QualifyLeadOutput struct {
	Qualified   bool               `json:"qualified"`
	Score       int                `json:"score"`
	Reasons     []string           `json:"reasons"`
	Explanation string             `json:"explanation"`
	Enrichment  *entity.Enrichment `json:"enrichment,omitempty"`
}

type QualifyLeadUseCase struct {
	Rules       ScoringRules
	AttemptRepo entity.QualificationAttemptRepositoryInterface
	Enricher    EnrichmentProvider
	Queue       QueueProducerInterface
}

func NewQualifyLeadUseCase(
	rules ScoringRules,
	attemptRepo entity.QualificationAttemptRepositoryInterface,
	enricher EnrichmentProvider,
	producer QueueProducerInterface,
) *QualifyLeadUseCase {
	return &QualifyLeadUseCase{
		Rules:       rules,
		AttemptRepo: attemptRepo,
		Enricher:    enricher,
		Queue:       producer,
	}
}

func (uc *QualifyLeadUseCase) Execute(ctx context.Context, input QualifyLeadInput) (*QualifyLeadOutput, error) {
	if errs := ValidateQualifyLeadInput(input); len(errs) > 0 {
		return nil, validationFailed(errs)
	}

	// Enrichment is best-effort: nil means "score without it".
	var enrichment *entity.Enrichment
	var raw string
	if uc.Enricher != nil {
		enrichment, raw, _ = uc.Enricher.EnrichCompany(ctx, input.Email, input.Company)
	}

	result := ScoreLead(uc.Rules, input.Name, input.Email, input.Company, input.Title, enrichment)

	attempt := entity.NewQualificationAttempt(input.Name, entity.NormalizeEmail(input.Email), input.Company, input.Title)
	attempt.Score = result.Score
	attempt.Qualified = result.Qualified
	attempt.Reasons = result.Reasons
	attempt.EnrichmentRaw = raw
	if enrichment != nil {
		attempt.Industry = enrichment.Industry
		attempt.EmployeeCount = enrichment.EmployeeCount
		attempt.Country = enrichment.Country
		attempt.RevenueBand = enrichment.RevenueBand
		attempt.Website = enrichment.Website
	}

	// Logging the attempt must never block the answer to the visitor.
	if err := uc.AttemptRepo.Create(ctx, attempt); err != nil {
		log.Printf("[QUALIFY] failed to persist attempt for %s: %v", attempt.Email, err)
	}

	if result.Qualified && uc.Queue != nil {
		payload := queue.QualifiedLeadPayload{
			AttemptID: attempt.ID,
			Name:      input.Name,
			Email:     attempt.Email,
			Company:   input.Company,
			Title:     input.Title,
			Score:     result.Score,
			Reasons:   result.Reasons,
		}
		if enrichment != nil {
			payload.Industry = enrichment.Industry
			payload.Country = enrichment.Country
			payload.Employees = enrichment.EmployeeCount
		}
		if err := uc.Queue.PublishQualifiedLead(ctx, payload); err != nil {
			log.Printf("[QUALIFY] failed to publish sales notification for %s: %v", attempt.Email, err)
		}
	}

	return &QualifyLeadOutput{
		Qualified:   result.Qualified,
		Score:       result.Score,
		Reasons:     result.Reasons,
		Explanation: strings.Join(result.Reasons, "; "),
		Enrichment:  enrichment,
	}, nil
}

// RecentAttempts returns the latest scoring attempts for sales review.
func (uc *QualifyLeadUseCase) RecentAttempts(ctx context.Context, limit int) ([]*entity.QualificationAttempt, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	attempts, err := uc.AttemptRepo.FindRecent(ctx, limit)
	if err != nil {
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: "failed to load attempts: " + err.Error()}
	}
	return attempts, nil
}
