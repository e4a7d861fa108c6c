package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/intelleges/iaos-website-sub000/internal/entity"
)

type SuppressionStatus struct {
	IsSuppressed bool       `json:"isSuppressed"`
	Reason       string     `json:"reason,omitempty"`
	SuppressedAt *time.Time `json:"suppressedAt,omitempty"`
}

type SuppressionActionOutput struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type SuppressionUseCase struct {
	StatusRepo entity.EmailStatusRepositoryInterface
}

func NewSuppressionUseCase(statusRepo entity.EmailStatusRepositoryInterface) *SuppressionUseCase {
	return &SuppressionUseCase{StatusRepo: statusRepo}
}

// CheckEmailSuppression is fail-open for unknown addresses: no history means
// not suppressed.
func (uc *SuppressionUseCase) CheckEmailSuppression(ctx context.Context, email string) (*SuppressionStatus, error) {
	if errs := validateEmail(email); len(errs) > 0 {
		return nil, validationFailed(errs)
	}

	status, err := uc.StatusRepo.FindByEmail(ctx, entity.NormalizeEmail(email))
	if err != nil {
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: "failed to look up email status: " + err.Error()}
	}
	if status == nil {
		return &SuppressionStatus{IsSuppressed: false}, nil
	}

	return &SuppressionStatus{
		IsSuppressed: status.IsSuppressed,
		Reason:       status.SuppressionReason,
		SuppressedAt: status.SuppressedAt,
	}, nil
}

// SuppressEmail is the manual admin action. Repeated suppressions are not an
// error; the address simply stays suppressed.
func (uc *SuppressionUseCase) SuppressEmail(ctx context.Context, email, reason string) (*SuppressionActionOutput, error) {
	if errs := validateEmail(email); len(errs) > 0 {
		return nil, validationFailed(errs)
	}
	if reason == "" {
		reason = entity.SuppressionReasonManual
	}
	if !entity.IsValidSuppressionReason(reason) {
		return nil, &DomainError{
			Code:    "INVALID_REASON",
			Message: fmt.Sprintf("unknown suppression reason %q", reason),
		}
	}

	newlySet, err := uc.StatusRepo.Suppress(ctx, entity.NormalizeEmail(email), reason, time.Now())
	if err != nil {
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: "failed to suppress email: " + err.Error()}
	}

	msg := "email suppressed"
	if !newlySet {
		msg = "email was already suppressed"
	}
	return &SuppressionActionOutput{Success: true, Message: msg}, nil
}

func (uc *SuppressionUseCase) UnsuppressEmail(ctx context.Context, email string) (*SuppressionActionOutput, error) {
	if errs := validateEmail(email); len(errs) > 0 {
		return nil, validationFailed(errs)
	}

	if err := uc.StatusRepo.Unsuppress(ctx, entity.NormalizeEmail(email)); err != nil {
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: "failed to unsuppress email: " + err.Error()}
	}

	return &SuppressionActionOutput{Success: true, Message: "email unsuppressed"}, nil
}
