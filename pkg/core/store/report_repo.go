package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNoDatabase is returned when the archive has no connection pool.
var ErrNoDatabase = errors.New("database pool not initialized")

// ErrReportNotFound is returned by Load for an unknown id.
var ErrReportNotFound = errors.New("report not found")

// ArchivedReport is one exported artifact (spreadsheet or document).
type ArchivedReport struct {
	ID        uuid.UUID `json:"id"`
	Company   string    `json:"company"`
	Kind      string    `json:"kind"` // xlsx, pdf, html, md
	Content   []byte    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

// ReportRepo stores exported artifacts. Company financials are never
// persisted; only the generated bytes are.
type ReportRepo struct {
	pool *pgxpool.Pool
}

// NewReportRepo creates a repository over p. A nil pool is allowed and
// makes every call fail with ErrNoDatabase.
func NewReportRepo(p *pgxpool.Pool) *ReportRepo {
	return &ReportRepo{pool: p}
}

// Enabled reports whether the repository has a database behind it.
func (r *ReportRepo) Enabled() bool {
	return r != nil && r.pool != nil
}

// Save inserts rep, assigning an id and timestamp when unset.
func (r *ReportRepo) Save(ctx context.Context, rep *ArchivedReport) error {
	if !r.Enabled() {
		return ErrNoDatabase
	}
	if rep.ID == uuid.Nil {
		rep.ID = uuid.New()
	}
	if rep.CreatedAt.IsZero() {
		rep.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO analysis_reports (id, company, kind, content, created_at)
		VALUES ($1, $2, $3, $4, $5)`

	if _, err := r.pool.Exec(ctx, query, rep.ID, rep.Company, rep.Kind, rep.Content, rep.CreatedAt); err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}
	return nil
}

// Load retrieves one archived report by id.
func (r *ReportRepo) Load(ctx context.Context, id uuid.UUID) (*ArchivedReport, error) {
	if !r.Enabled() {
		return nil, ErrNoDatabase
	}

	query := `SELECT id, company, kind, content, created_at FROM analysis_reports WHERE id = $1`

	var rep ArchivedReport
	err := r.pool.QueryRow(ctx, query, id).Scan(&rep.ID, &rep.Company, &rep.Kind, &rep.Content, &rep.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrReportNotFound
		}
		return nil, fmt.Errorf("failed to load report: %w", err)
	}
	return &rep, nil
}
