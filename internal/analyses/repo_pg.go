package analyses

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"docassist/internal/report"
)

// PGRepo implements Repo using Postgres. Reports are stored as JSONB.
type PGRepo struct {
	DB *sql.DB
}

const analysisColumns = `id, document_id, title, source, industry_id, confidence, pinned, text_length, duration_ms, report, created_at`

// Create inserts a new analysis.
func (r *PGRepo) Create(ctx context.Context, analysis Analysis) error {
	const query = `
INSERT INTO analyses (
	id, document_id, title, source, industry_id, confidence, pinned, text_length, duration_ms, report, created_at
)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	payload, err := json.Marshal(analysis.Report)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	_, err = r.DB.ExecContext(ctx, query,
		analysis.ID,
		nullString(analysis.DocumentID),
		analysis.Title,
		analysis.Source,
		analysis.IndustryID,
		analysis.Confidence,
		analysis.Pinned,
		analysis.TextLength,
		analysis.DurationMs,
		payload,
		analysis.CreatedAt,
	)
	return err
}

// GetByID returns an analysis by ID.
func (r *PGRepo) GetByID(ctx context.Context, analysisID string) (Analysis, error) {
	query := `SELECT ` + analysisColumns + `
FROM analyses
WHERE id = $1
LIMIT 1`
	a, err := scanAnalysis(r.DB.QueryRowContext(ctx, query, analysisID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Analysis{}, ErrNotFound
		}
		return Analysis{}, err
	}
	return a, nil
}

// List returns analyses newest first.
func (r *PGRepo) List(ctx context.Context, limit, offset int) ([]Analysis, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	query := `SELECT ` + analysisColumns + `
FROM analyses
ORDER BY created_at DESC, id
LIMIT $1 OFFSET $2`
	return r.query(ctx, query, limit, offset)
}

// ListByDocument returns the analyses of one document newest first.
func (r *PGRepo) ListByDocument(ctx context.Context, documentID string) ([]Analysis, error) {
	query := `SELECT ` + analysisColumns + `
FROM analyses
WHERE document_id = $1
ORDER BY created_at DESC, id`
	return r.query(ctx, query, documentID)
}

func (r *PGRepo) query(ctx context.Context, query string, args ...any) ([]Analysis, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Analysis{}
	for rows.Next() {
		a, err := scanAnalysis(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAnalysis(row rowScanner) (Analysis, error) {
	var a Analysis
	var documentID sql.NullString
	var title sql.NullString
	var payload []byte
	if err := row.Scan(
		&a.ID,
		&documentID,
		&title,
		&a.Source,
		&a.IndustryID,
		&a.Confidence,
		&a.Pinned,
		&a.TextLength,
		&a.DurationMs,
		&payload,
		&a.CreatedAt,
	); err != nil {
		return Analysis{}, err
	}
	if documentID.Valid {
		a.DocumentID = documentID.String
	}
	if title.Valid {
		a.Title = title.String
	}
	var rep report.Report
	if len(payload) > 0 {
		if err := json.Unmarshal(payload, &rep); err != nil {
			return Analysis{}, fmt.Errorf("decode report %s: %w", a.ID, err)
		}
	}
	rep.FillEmpty()
	a.Report = rep
	a.Saved = true
	return a, nil
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

var _ Repo = (*PGRepo)(nil)
