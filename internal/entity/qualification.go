package entity

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Enrichment holds third-party company metadata looked up by domain.
// All fields are best-effort: the provider may know nothing about a company.
type Enrichment struct {
	Domain        string `json:"domain"`
	Name          string `json:"name"`
	Industry      string `json:"industry"`
	EmployeeCount int    `json:"employee_count"`
	Country       string `json:"country"`
	RevenueBand   string `json:"revenue_band"`
	Website       string `json:"website"`
}

// QualificationAttempt is one row per scoring invocation. Immutable after
// creation; retained for sales review.
type QualificationAttempt struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Company string `json:"company"`
	Title   string `json:"title,omitempty"`

	// Derived from enrichment, empty/zero when the provider had nothing.
	Industry      string `json:"industry,omitempty"`
	EmployeeCount int    `json:"employee_count,omitempty"`
	Country       string `json:"country,omitempty"`
	RevenueBand   string `json:"revenue_band,omitempty"`
	Website       string `json:"website,omitempty"`

	Score         int       `json:"score"`
	Qualified     bool      `json:"qualified"`
	Reasons       []string  `json:"reasons"`
	EnrichmentRaw string    `json:"-"` // raw provider payload, JSON, may be empty
	CreatedAt     time.Time `json:"created_at"`
}

func NewQualificationAttempt(name, email, company, title string) *QualificationAttempt {
	return &QualificationAttempt{
		ID:        uuid.New().String(),
		Name:      name,
		Email:     email,
		Company:   company,
		Title:     title,
		CreatedAt: time.Now(),
	}
}

type QualificationAttemptRepositoryInterface interface {
	Create(ctx context.Context, attempt *QualificationAttempt) error
	FindRecent(ctx context.Context, limit int) ([]*QualificationAttempt, error)
}
