package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/intelleges/iaos-website-sub000/internal/entity"
)

func validDownloadInput() RecordDownloadInput {
	return RecordDownloadInput{
		Email:         "Jane@Boeing.com",
		FirstName:     "Jane",
		LastName:      "Doe",
		Company:       "Boeing",
		Role:          "VP of Procurement",
		DocumentTitle: "Supplier Compliance Capability Statement",
		DocumentURL:   "https://cdn.intelleges.com/docs/capability.pdf",
		DocumentType:  entity.DocumentTypeCapability,
	}
}

func notSuppressed() *SuppressionStatus {
	return &SuppressionStatus{IsSuppressed: false}
}

func TestCheckLimit(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		count     int
		reached   bool
		remaining int
	}{
		{0, false, 3},
		{2, false, 1},
		{3, true, 0},
		{4, true, 0},
	}

	for _, tt := range tests {
		mockRepo := new(MockDownloadRepository)
		mockRepo.On("CountByEmail", ctx, "jane@boeing.com").Return(tt.count, nil)

		uc := NewDownloadUseCase(mockRepo, nil, nil, nil)
		out, err := uc.CheckLimit(ctx, CheckLimitInput{Email: "Jane@Boeing.com"})

		assert.NoError(t, err)
		assert.Equal(t, tt.count, out.DownloadCount)
		assert.Equal(t, tt.reached, out.LimitReached)
		assert.Equal(t, tt.remaining, out.RemainingDownloads)
	}
}

func TestRecordDownloadSchedulesFollowup(t *testing.T) {
	ctx := context.Background()

	mockRepo := new(MockDownloadRepository)
	mockEmails := new(MockScheduledEmailRepository)
	mockSuppression := new(MockSuppressionChecker)
	mockBuilder := new(MockFollowupBuilder)

	mockRepo.On("CreateWithQuota", ctx, mock.MatchedBy(func(d *entity.DocumentDownload) bool {
		return d.Email == "jane@boeing.com" // normalized
	}), entity.DownloadLimit).Return(1, nil)
	mockSuppression.On("CheckEmailSuppression", ctx, "jane@boeing.com").Return(notSuppressed(), nil)
	mockBuilder.On("BuildDocumentFollowup", "Jane", "Supplier Compliance Capability Statement",
		"https://cdn.intelleges.com/docs/capability.pdf").
		Return("Following up", "<html>...</html>", nil)

	before := time.Now()
	mockEmails.On("Create", ctx, mock.MatchedBy(func(e *entity.ScheduledEmail) bool {
		delay := e.ScheduledFor.Sub(before)
		return e.RecipientEmail == "jane@boeing.com" &&
			e.EmailType == entity.EmailTypeDocumentFollowup &&
			delay >= FollowupDelay && delay < FollowupDelay+time.Minute
	})).Return(nil)

	uc := NewDownloadUseCase(mockRepo, mockEmails, mockSuppression, mockBuilder)
	out, err := uc.RecordDownload(ctx, validDownloadInput())

	assert.NoError(t, err)
	assert.True(t, out.Success)
	assert.Equal(t, 1, out.DownloadCount)
	assert.Equal(t, 2, out.RemainingDownloads)
	mockEmails.AssertCalled(t, "Create", ctx, mock.Anything)
}

func TestRecordDownloadLimitReached(t *testing.T) {
	ctx := context.Background()

	mockRepo := new(MockDownloadRepository)
	mockEmails := new(MockScheduledEmailRepository)

	mockRepo.On("CreateWithQuota", ctx, mock.Anything, entity.DownloadLimit).
		Return(3, entity.ErrDownloadLimitReached)

	uc := NewDownloadUseCase(mockRepo, mockEmails, nil, nil)
	out, err := uc.RecordDownload(ctx, validDownloadInput())

	assert.Nil(t, out)
	assert.True(t, IsDomainError(err))
	assert.Equal(t, "DOWNLOAD_LIMIT_REACHED", err.(*DomainError).Code)
	// No follow-up may be scheduled for a rejected download.
	mockEmails.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRecordDownloadSuppressedRecipientSkipsFollowup(t *testing.T) {
	ctx := context.Background()

	mockRepo := new(MockDownloadRepository)
	mockEmails := new(MockScheduledEmailRepository)
	mockSuppression := new(MockSuppressionChecker)
	mockBuilder := new(MockFollowupBuilder)

	mockRepo.On("CreateWithQuota", ctx, mock.Anything, entity.DownloadLimit).Return(1, nil)
	mockSuppression.On("CheckEmailSuppression", ctx, "jane@boeing.com").
		Return(&SuppressionStatus{IsSuppressed: true, Reason: entity.SuppressionReasonBounce}, nil)

	uc := NewDownloadUseCase(mockRepo, mockEmails, mockSuppression, mockBuilder)
	out, err := uc.RecordDownload(ctx, validDownloadInput())

	// The download itself still succeeds.
	assert.NoError(t, err)
	assert.True(t, out.Success)
	mockEmails.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	mockBuilder.AssertNotCalled(t, "BuildDocumentFollowup", mock.Anything, mock.Anything, mock.Anything)
}

func TestRecordDownloadFollowupFailureIsSwallowed(t *testing.T) {
	ctx := context.Background()

	mockRepo := new(MockDownloadRepository)
	mockEmails := new(MockScheduledEmailRepository)
	mockSuppression := new(MockSuppressionChecker)
	mockBuilder := new(MockFollowupBuilder)

	mockRepo.On("CreateWithQuota", ctx, mock.Anything, entity.DownloadLimit).Return(2, nil)
	mockSuppression.On("CheckEmailSuppression", ctx, mock.Anything).Return(notSuppressed(), nil)
	mockBuilder.On("BuildDocumentFollowup", mock.Anything, mock.Anything, mock.Anything).
		Return("s", "b", nil)
	mockEmails.On("Create", ctx, mock.Anything).Return(assert.AnError)

	uc := NewDownloadUseCase(mockRepo, mockEmails, mockSuppression, mockBuilder)
	out, err := uc.RecordDownload(ctx, validDownloadInput())

	assert.NoError(t, err)
	assert.True(t, out.Success)
}

func TestRecordDownloadValidation(t *testing.T) {
	uc := NewDownloadUseCase(new(MockDownloadRepository), nil, nil, nil)

	input := validDownloadInput()
	input.DocumentType = "brochure"

	out, err := uc.RecordDownload(context.Background(), input)
	assert.Nil(t, out)
	assert.True(t, IsDomainError(err))
}
