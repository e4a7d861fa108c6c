package usecase

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/intelleges/iaos-website-sub000/internal/entity"
	"github.com/intelleges/iaos-website-sub000/internal/infra/queue"
)

// MockAttemptRepository
type MockAttemptRepository struct {
	mock.Mock
}

func (m *MockAttemptRepository) Create(ctx context.Context, a *entity.QualificationAttempt) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAttemptRepository) FindRecent(ctx context.Context, limit int) ([]*entity.QualificationAttempt, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.QualificationAttempt), args.Error(1)
}

// MockEnrichmentProvider
type MockEnrichmentProvider struct {
	mock.Mock
}

func (m *MockEnrichmentProvider) EnrichCompany(ctx context.Context, email, company string) (*entity.Enrichment, string, error) {
	args := m.Called(ctx, email, company)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).(*entity.Enrichment), args.String(1), args.Error(2)
}

// MockQueueProducer
type MockQueueProducer struct {
	mock.Mock
}

func (m *MockQueueProducer) PublishQualifiedLead(ctx context.Context, payload queue.QualifiedLeadPayload) error {
	args := m.Called(ctx, payload)
	return args.Error(0)
}

// MockDownloadRepository
type MockDownloadRepository struct {
	mock.Mock
}

func (m *MockDownloadRepository) CountByEmail(ctx context.Context, email string) (int, error) {
	args := m.Called(ctx, email)
	return args.Int(0), args.Error(1)
}

func (m *MockDownloadRepository) CreateWithQuota(ctx context.Context, d *entity.DocumentDownload, limit int) (int, error) {
	args := m.Called(ctx, d, limit)
	return args.Int(0), args.Error(1)
}

// MockScheduledEmailRepository
type MockScheduledEmailRepository struct {
	mock.Mock
}

func (m *MockScheduledEmailRepository) Create(ctx context.Context, e *entity.ScheduledEmail) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *MockScheduledEmailRepository) ClaimDue(ctx context.Context, now time.Time, limit int) ([]*entity.ScheduledEmail, error) {
	args := m.Called(ctx, now, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.ScheduledEmail), args.Error(1)
}

func (m *MockScheduledEmailRepository) MarkSent(ctx context.Context, id string, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

func (m *MockScheduledEmailRepository) MarkFailed(ctx context.Context, id string, reason string) error {
	args := m.Called(ctx, id, reason)
	return args.Error(0)
}

func (m *MockScheduledEmailRepository) Reschedule(ctx context.Context, id string, nextAttempt time.Time) error {
	args := m.Called(ctx, id, nextAttempt)
	return args.Error(0)
}

// MockEmailStatusRepository
type MockEmailStatusRepository struct {
	mock.Mock
}

func (m *MockEmailStatusRepository) FindByEmail(ctx context.Context, email string) (*entity.EmailStatus, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.EmailStatus), args.Error(1)
}

func (m *MockEmailStatusRepository) ApplyEvent(ctx context.Context, email, eventType string, occurredAt time.Time) error {
	args := m.Called(ctx, email, eventType, occurredAt)
	return args.Error(0)
}

func (m *MockEmailStatusRepository) Suppress(ctx context.Context, email, reason string, at time.Time) (bool, error) {
	args := m.Called(ctx, email, reason, at)
	return args.Bool(0), args.Error(1)
}

func (m *MockEmailStatusRepository) Unsuppress(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

// MockEmailEventRepository
type MockEmailEventRepository struct {
	mock.Mock
}

func (m *MockEmailEventRepository) Create(ctx context.Context, e *entity.EmailEvent) (bool, error) {
	args := m.Called(ctx, e)
	return args.Bool(0), args.Error(1)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) Send(to, toName, subject, htmlBody string) error {
	args := m.Called(to, toName, subject, htmlBody)
	return args.Error(0)
}

// MockSuppressionChecker
type MockSuppressionChecker struct {
	mock.Mock
}

func (m *MockSuppressionChecker) CheckEmailSuppression(ctx context.Context, email string) (*SuppressionStatus, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*SuppressionStatus), args.Error(1)
}

// MockFollowupBuilder
type MockFollowupBuilder struct {
	mock.Mock
}

func (m *MockFollowupBuilder) BuildDocumentFollowup(firstName, documentTitle, documentURL string) (string, string, error) {
	args := m.Called(firstName, documentTitle, documentURL)
	return args.String(0), args.String(1), args.Error(2)
}
