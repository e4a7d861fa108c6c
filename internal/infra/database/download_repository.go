package database

import (
	"context"
	"database/sql"

	"github.com/intelleges/iaos-website-sub000/internal/entity"
)

type DownloadRepository struct {
	DB *sql.DB
}

func NewDownloadRepository(db *sql.DB) *DownloadRepository {
	return &DownloadRepository{DB: db}
}

func (r *DownloadRepository) CountByEmail(ctx context.Context, email string) (int, error) {
	var count int
	err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM document_downloads WHERE email = $1`,
		email,
	).Scan(&count)
	return count, err
}

// CreateWithQuota serializes concurrent requests for the same address with a
// transaction-scoped advisory lock, so count-then-insert is atomic and the
// lifetime quota can never be exceeded.
func (r *DownloadRepository) CreateWithQuota(ctx context.Context, d *entity.DocumentDownload, limit int) (int, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, d.Email); err != nil {
		return 0, err
	}

	var count int
	err = tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM document_downloads WHERE email = $1`,
		d.Email,
	).Scan(&count)
	if err != nil {
		return 0, err
	}

	if count >= limit {
		return count, entity.ErrDownloadLimitReached
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO document_downloads
			(id, email, first_name, last_name, company, role,
			 document_title, document_url, document_type, downloaded_at, followup_sent)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, FALSE)
	`,
		d.ID, d.Email, d.FirstName, d.LastName,
		nullString(d.Company), nullString(d.Role),
		d.DocumentTitle, d.DocumentURL, d.DocumentType, d.DownloadedAt,
	)
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}

	return count + 1, nil
}
