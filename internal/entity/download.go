package entity

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DownloadLimit is the lifetime quota of gated documents per email address.
const DownloadLimit = 3

var ErrDownloadLimitReached = errors.New("download limit reached")

const (
	DocumentTypeCapability = "capability"
	DocumentTypeProtocol   = "protocol"
	DocumentTypeWhitepaper = "whitepaper"
	DocumentTypeCaseStudy  = "case_study"
)

func IsValidDocumentType(t string) bool {
	switch t {
	case DocumentTypeCapability, DocumentTypeProtocol, DocumentTypeWhitepaper, DocumentTypeCaseStudy:
		return true
	}
	return false
}

// DocumentDownload is one row per accepted gated download. Email is stored
// normalized (lower-cased); the quota is counted against that form.
type DocumentDownload struct {
	ID            string     `json:"id"`
	Email         string     `json:"email"`
	FirstName     string     `json:"first_name"`
	LastName      string     `json:"last_name"`
	Company       string     `json:"company,omitempty"`
	Role          string     `json:"role,omitempty"`
	DocumentTitle string     `json:"document_title"`
	DocumentURL   string     `json:"document_url"`
	DocumentType  string     `json:"document_type"`
	DownloadedAt  time.Time  `json:"downloaded_at"`
	FollowupSent  bool       `json:"followup_sent"`
	FollowupAt    *time.Time `json:"followup_sent_at,omitempty"`
}

func NewDocumentDownload(email, firstName, lastName, company, role, title, url, docType string) *DocumentDownload {
	return &DocumentDownload{
		ID:            uuid.New().String(),
		Email:         NormalizeEmail(email),
		FirstName:     firstName,
		LastName:      lastName,
		Company:       company,
		Role:          role,
		DocumentTitle: title,
		DocumentURL:   url,
		DocumentType:  docType,
		DownloadedAt:  time.Now(),
	}
}

// NormalizeEmail is the canonical form used for quota counting and
// suppression lookups.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

type DownloadRepositoryInterface interface {
	CountByEmail(ctx context.Context, email string) (int, error)

	// CreateWithQuota inserts the download only if the address is still under
	// the lifetime limit, atomically with the count. Returns the count after
	// the insert, or ErrDownloadLimitReached.
	CreateWithQuota(ctx context.Context, d *DocumentDownload, limit int) (int, error)
}
