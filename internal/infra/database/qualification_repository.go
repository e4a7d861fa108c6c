package database

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/intelleges/iaos-website-sub000/internal/entity"
)

type QualificationRepository struct {
	DB *sql.DB
}

func NewQualificationRepository(db *sql.DB) *QualificationRepository {
	return &QualificationRepository{DB: db}
}

func (r *QualificationRepository) Create(ctx context.Context, a *entity.QualificationAttempt) error {
	reasons, err := json.Marshal(a.Reasons)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO qualification_attempts
			(id, name, email, company, title,
			 industry, employee_count, country, revenue_band, website,
			 score, qualified, reasons, enrichment_raw, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`

	_, err = r.DB.ExecContext(ctx, query,
		a.ID, a.Name, a.Email, a.Company, nullString(a.Title),
		nullString(a.Industry), a.EmployeeCount, nullString(a.Country),
		nullString(a.RevenueBand), nullString(a.Website),
		a.Score, a.Qualified, string(reasons), nullString(a.EnrichmentRaw),
		a.CreatedAt,
	)
	return err
}

func (r *QualificationRepository) FindRecent(ctx context.Context, limit int) ([]*entity.QualificationAttempt, error) {
	query := `
		SELECT id, name, email, company, COALESCE(title, ''),
		       COALESCE(industry, ''), employee_count, COALESCE(country, ''),
		       COALESCE(revenue_band, ''), COALESCE(website, ''),
		       score, qualified, reasons, COALESCE(enrichment_raw, ''), created_at
		FROM qualification_attempts
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := r.DB.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var attempts []*entity.QualificationAttempt
	for rows.Next() {
		a := &entity.QualificationAttempt{}
		var reasons string
		if err := rows.Scan(
			&a.ID, &a.Name, &a.Email, &a.Company, &a.Title,
			&a.Industry, &a.EmployeeCount, &a.Country,
			&a.RevenueBand, &a.Website,
			&a.Score, &a.Qualified, &reasons, &a.EnrichmentRaw, &a.CreatedAt,
		); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(reasons), &a.Reasons); err != nil {
			a.Reasons = []string{reasons}
		}
		attempts = append(attempts, a)
	}

	return attempts, rows.Err()
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
