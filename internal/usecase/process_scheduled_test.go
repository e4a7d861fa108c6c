package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/intelleges/iaos-website-sub000/internal/entity"
)

func pendingEmail(id string, retries int) *entity.ScheduledEmail {
	return &entity.ScheduledEmail{
		ID:             id,
		RecipientEmail: "jane@boeing.com",
		RecipientName:  "Jane Doe",
		EmailType:      entity.EmailTypeDocumentFollowup,
		Subject:        "Following up",
		BodyHTML:       "<html>...</html>",
		ScheduledFor:   time.Now().Add(-time.Minute),
		RetryCount:     retries,
	}
}

func TestDrainSendsDueEmails(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	mockRepo := new(MockScheduledEmailRepository)
	mockSender := new(MockEmailService)
	mockSuppression := new(MockSuppressionChecker)

	due := []*entity.ScheduledEmail{pendingEmail("em-1", 0), pendingEmail("em-2", 0)}
	mockRepo.On("ClaimDue", ctx, now, DrainBatchSize).Return(due, nil)
	mockSuppression.On("CheckEmailSuppression", ctx, "jane@boeing.com").Return(notSuppressed(), nil)
	mockSender.On("Send", "jane@boeing.com", "Jane Doe", "Following up", "<html>...</html>").Return(nil)
	mockRepo.On("MarkSent", ctx, "em-1", now).Return(nil)
	mockRepo.On("MarkSent", ctx, "em-2", now).Return(nil)

	uc := NewProcessScheduledEmailsUseCase(mockRepo, mockSender, mockSuppression)
	uc.now = func() time.Time { return now }

	out, err := uc.Execute(ctx)

	assert.NoError(t, err)
	assert.Equal(t, 2, out.Claimed)
	assert.Equal(t, 2, out.Sent)
	assert.Equal(t, 0, out.Failed)
	mockRepo.AssertCalled(t, "MarkSent", ctx, "em-1", now)
	mockRepo.AssertCalled(t, "MarkSent", ctx, "em-2", now)
}

func TestDrainRetriesWithBackoff(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	mockRepo := new(MockScheduledEmailRepository)
	mockSender := new(MockEmailService)

	mockRepo.On("ClaimDue", ctx, now, DrainBatchSize).
		Return([]*entity.ScheduledEmail{pendingEmail("em-1", 0)}, nil)
	mockSender.On("Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("smtp 451 temporary failure"))
	// First failure: retry in 15 minutes, not a terminal state.
	mockRepo.On("Reschedule", ctx, "em-1", now.Add(15*time.Minute)).Return(nil)

	uc := NewProcessScheduledEmailsUseCase(mockRepo, mockSender, nil)
	uc.now = func() time.Time { return now }

	out, err := uc.Execute(ctx)

	assert.NoError(t, err)
	assert.Equal(t, 1, out.Retried)
	assert.Equal(t, 0, out.Failed)
	mockRepo.AssertCalled(t, "Reschedule", ctx, "em-1", now.Add(15*time.Minute))
	mockRepo.AssertNotCalled(t, "MarkFailed", mock.Anything, mock.Anything, mock.Anything)
}

func TestDrainSecondRetryDoublesBackoff(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	mockRepo := new(MockScheduledEmailRepository)
	mockSender := new(MockEmailService)

	mockRepo.On("ClaimDue", ctx, now, DrainBatchSize).
		Return([]*entity.ScheduledEmail{pendingEmail("em-1", 1)}, nil)
	mockSender.On("Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("smtp 451 temporary failure"))
	mockRepo.On("Reschedule", ctx, "em-1", now.Add(30*time.Minute)).Return(nil)

	uc := NewProcessScheduledEmailsUseCase(mockRepo, mockSender, nil)
	uc.now = func() time.Time { return now }

	out, err := uc.Execute(ctx)

	assert.NoError(t, err)
	assert.Equal(t, 1, out.Retried)
}

func TestDrainFailsAfterMaxAttempts(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	mockRepo := new(MockScheduledEmailRepository)
	mockSender := new(MockEmailService)

	mockRepo.On("ClaimDue", ctx, now, DrainBatchSize).
		Return([]*entity.ScheduledEmail{pendingEmail("em-1", entity.MaxSendAttempts-1)}, nil)
	mockSender.On("Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("smtp 550 rejected"))
	mockRepo.On("MarkFailed", ctx, "em-1", "smtp 550 rejected").Return(nil)

	uc := NewProcessScheduledEmailsUseCase(mockRepo, mockSender, nil)
	uc.now = func() time.Time { return now }

	out, err := uc.Execute(ctx)

	assert.NoError(t, err)
	assert.Equal(t, 1, out.Failed)
	mockRepo.AssertNotCalled(t, "Reschedule", mock.Anything, mock.Anything, mock.Anything)
}

func TestDrainSkipsSuppressedRecipient(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	mockRepo := new(MockScheduledEmailRepository)
	mockSender := new(MockEmailService)
	mockSuppression := new(MockSuppressionChecker)

	mockRepo.On("ClaimDue", ctx, now, DrainBatchSize).
		Return([]*entity.ScheduledEmail{pendingEmail("em-1", 0)}, nil)
	mockSuppression.On("CheckEmailSuppression", ctx, "jane@boeing.com").
		Return(&SuppressionStatus{IsSuppressed: true, Reason: entity.SuppressionReasonSpam}, nil)
	mockRepo.On("MarkFailed", ctx, "em-1", "recipient suppressed: spam").Return(nil)

	uc := NewProcessScheduledEmailsUseCase(mockRepo, mockSender, mockSuppression)
	uc.now = func() time.Time { return now }

	out, err := uc.Execute(ctx)

	assert.NoError(t, err)
	assert.Equal(t, 1, out.Failed)
	mockSender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestDrainNothingDue(t *testing.T) {
	ctx := context.Background()
	now := time.Now()

	mockRepo := new(MockScheduledEmailRepository)
	mockRepo.On("ClaimDue", mock.Anything, mock.Anything, DrainBatchSize).
		Return([]*entity.ScheduledEmail{}, nil)

	uc := NewProcessScheduledEmailsUseCase(mockRepo, new(MockEmailService), nil)
	uc.now = func() time.Time { return now }

	out, err := uc.Execute(ctx)

	assert.NoError(t, err)
	assert.Equal(t, 0, out.Claimed)
}
