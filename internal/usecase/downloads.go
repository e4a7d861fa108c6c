package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/intelleges/iaos-website-sub000/internal/entity"
)

// FollowupDelay is how long after a gated download the follow-up email goes out.
const FollowupDelay = 2 * time.Hour

type CheckLimitInput struct {
	Email string `json:"email"`
}

type CheckLimitOutput struct {
	DownloadCount      int  `json:"downloadCount"`
	LimitReached       bool `json:"limitReached"`
	RemainingDownloads int  `json:"remainingDownloads"`
}

type RecordDownloadInput struct {
	Email         string `json:"email"`
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	Company       string `json:"company,omitempty"`
	Role          string `json:"role,omitempty"`
	DocumentTitle string `json:"documentTitle"`
	DocumentURL   string `json:"documentUrl"`
	DocumentType  string `json:"documentType"`
}

type RecordDownloadOutput struct {
	Success            bool `json:"success"`
	DownloadCount      int  `json:"downloadCount"`
	RemainingDownloads int  `json:"remainingDownloads"`
}

// FollowupBuilder renders the follow-up email for a downloaded document.
type FollowupBuilder interface {
	BuildDocumentFollowup(firstName, documentTitle, documentURL string) (subject, html string, err error)
}

type DownloadUseCase struct {
	Repo        entity.DownloadRepositoryInterface
	EmailRepo   entity.ScheduledEmailRepositoryInterface
	Suppression SuppressionChecker
	Followup    FollowupBuilder
}

func NewDownloadUseCase(
	repo entity.DownloadRepositoryInterface,
	emailRepo entity.ScheduledEmailRepositoryInterface,
	suppression SuppressionChecker,
	followup FollowupBuilder,
) *DownloadUseCase {
	return &DownloadUseCase{
		Repo:        repo,
		EmailRepo:   emailRepo,
		Suppression: suppression,
		Followup:    followup,
	}
}

// CheckLimit is read-only: current count against the lifetime quota.
func (uc *DownloadUseCase) CheckLimit(ctx context.Context, input CheckLimitInput) (*CheckLimitOutput, error) {
	if errs := validateEmail(input.Email); len(errs) > 0 {
		return nil, validationFailed(errs)
	}

	count, err := uc.Repo.CountByEmail(ctx, entity.NormalizeEmail(input.Email))
	if err != nil {
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: "failed to count downloads: " + err.Error()}
	}

	return &CheckLimitOutput{
		DownloadCount:      count,
		LimitReached:       count >= entity.DownloadLimit,
		RemainingDownloads: remaining(count),
	}, nil
}

// RecordDownload persists the download atomically with the quota check and
// schedules the follow-up email. The follow-up insert is a non-critical side
// effect: its failure is logged, the download still succeeds.
func (uc *DownloadUseCase) RecordDownload(ctx context.Context, input RecordDownloadInput) (*RecordDownloadOutput, error) {
	if errs := ValidateRecordDownloadInput(input); len(errs) > 0 {
		return nil, validationFailed(errs)
	}

	download := entity.NewDocumentDownload(
		input.Email, input.FirstName, input.LastName,
		input.Company, input.Role,
		input.DocumentTitle, input.DocumentURL, input.DocumentType,
	)

	count, err := uc.Repo.CreateWithQuota(ctx, download, entity.DownloadLimit)
	if err != nil {
		if errors.Is(err, entity.ErrDownloadLimitReached) {
			return nil, &DomainError{
				Code:    "DOWNLOAD_LIMIT_REACHED",
				Message: fmt.Sprintf("download limit of %d documents reached for this email", entity.DownloadLimit),
			}
		}
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: "failed to record download: " + err.Error()}
	}

	uc.scheduleFollowup(ctx, download)

	return &RecordDownloadOutput{
		Success:            true,
		DownloadCount:      count,
		RemainingDownloads: remaining(count),
	}, nil
}

func (uc *DownloadUseCase) scheduleFollowup(ctx context.Context, d *entity.DocumentDownload) {
	// Suppressed addresses never get new scheduled emails.
	if uc.Suppression != nil {
		status, err := uc.Suppression.CheckEmailSuppression(ctx, d.Email)
		if err != nil {
			log.Printf("[DOWNLOADS] suppression check failed for %s: %v", d.Email, err)
		} else if status.IsSuppressed {
			log.Printf("[DOWNLOADS] %s is suppressed (%s), skipping follow-up", d.Email, status.Reason)
			return
		}
	}

	subject, html, err := uc.Followup.BuildDocumentFollowup(d.FirstName, d.DocumentTitle, d.DocumentURL)
	if err != nil {
		log.Printf("[DOWNLOADS] failed to build follow-up for %s: %v", d.Email, err)
		return
	}

	email := entity.NewScheduledEmail(
		d.Email,
		d.FirstName+" "+d.LastName,
		entity.EmailTypeDocumentFollowup,
		subject,
		html,
		time.Now().Add(FollowupDelay),
	)

	meta, _ := json.Marshal(map[string]string{
		"download_id":    d.ID,
		"document_title": d.DocumentTitle,
		"document_type":  d.DocumentType,
	})
	email.Metadata = string(meta)

	if err := uc.EmailRepo.Create(ctx, email); err != nil {
		log.Printf("[DOWNLOADS] failed to schedule follow-up for %s: %v", d.Email, err)
	}
}

func remaining(count int) int {
	if count >= entity.DownloadLimit {
		return 0
	}
	return entity.DownloadLimit - count
}
