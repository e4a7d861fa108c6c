package usecase

import (
	"net/mail"
	"strings"

	"github.com/intelleges/iaos-website-sub000/internal/entity"
)

func ValidateQualifyLeadInput(input QualifyLeadInput) []ValidationError {
	var errs []ValidationError

	if strings.TrimSpace(input.Name) == "" {
		errs = append(errs, ValidationError{"name", "is required"})
	} else if len(input.Name) > 200 {
		errs = append(errs, ValidationError{"name", "must not exceed 200 characters"})
	}

	errs = append(errs, validateEmail(input.Email)...)

	if strings.TrimSpace(input.Company) == "" {
		errs = append(errs, ValidationError{"company", "is required"})
	}

	return errs
}

func ValidateRecordDownloadInput(input RecordDownloadInput) []ValidationError {
	var errs []ValidationError

	errs = append(errs, validateEmail(input.Email)...)

	if strings.TrimSpace(input.FirstName) == "" {
		errs = append(errs, ValidationError{"first_name", "is required"})
	}
	if strings.TrimSpace(input.LastName) == "" {
		errs = append(errs, ValidationError{"last_name", "is required"})
	}
	if strings.TrimSpace(input.DocumentTitle) == "" {
		errs = append(errs, ValidationError{"document_title", "is required"})
	}
	if strings.TrimSpace(input.DocumentURL) == "" {
		errs = append(errs, ValidationError{"document_url", "is required"})
	}
	if !entity.IsValidDocumentType(input.DocumentType) {
		errs = append(errs, ValidationError{"document_type", "must be capability, protocol, whitepaper or case_study"})
	}

	return errs
}

func validateEmail(email string) []ValidationError {
	if strings.TrimSpace(email) == "" {
		return []ValidationError{{"email", "is required"}}
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return []ValidationError{{"email", "is invalid"}}
	}
	return nil
}
