package documents

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// PGRepo implements DocumentsRepo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const documentColumns = `id, file_name, content_type, size_bytes, storage_provider, storage_key, checksum, extracted_text_key, extracted_at, created_at`

// Create inserts a new document.
func (r *PGRepo) Create(ctx context.Context, doc Document) error {
	const query = `
INSERT INTO documents (
    id,
    file_name,
    content_type,
    size_bytes,
    storage_provider,
    storage_key,
    checksum,
    created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	storageProvider := doc.StorageProvider
	if storageProvider == "" {
		storageProvider = "local"
	}
	var checksum sql.NullString
	if doc.Checksum != "" {
		checksum = sql.NullString{String: doc.Checksum, Valid: true}
	}

	_, err := r.DB.ExecContext(
		ctx,
		query,
		doc.ID,
		doc.FileName,
		doc.ContentType,
		doc.SizeBytes,
		storageProvider,
		doc.StorageKey,
		checksum,
		doc.CreatedAt,
	)
	return err
}

// GetByID fetches a document by ID.
func (r *PGRepo) GetByID(ctx context.Context, documentID string) (Document, error) {
	query := `SELECT ` + documentColumns + `
FROM documents
WHERE id = $1 AND deleted_at IS NULL
LIMIT 1`
	doc, err := scanDocument(r.DB.QueryRowContext(ctx, query, documentID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Document{}, ErrNotFound
		}
		return Document{}, err
	}
	return doc, nil
}

// List lists documents ordered newest-first.
func (r *PGRepo) List(ctx context.Context, limit, offset int) ([]Document, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	query := `SELECT ` + documentColumns + `
FROM documents
WHERE deleted_at IS NULL
ORDER BY created_at DESC, id
LIMIT $1 OFFSET $2`

	rows, err := r.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Document{}
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, doc)
	}
	return out, rows.Err()
}

// UpdateExtraction stores the extracted text metadata for a document.
func (r *PGRepo) UpdateExtraction(ctx context.Context, documentID, extractedKey string, extractedAt time.Time) error {
	const query = `
UPDATE documents
SET extracted_text_key = $1, extracted_at = $2
WHERE id = $3 AND extracted_text_key IS NULL`
	_, err := r.DB.ExecContext(ctx, query, extractedKey, extractedAt, documentID)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDocument(row rowScanner) (Document, error) {
	var doc Document
	var storageProvider sql.NullString
	var checksum sql.NullString
	var extractedKey sql.NullString
	var extractedAt sql.NullTime
	if err := row.Scan(
		&doc.ID,
		&doc.FileName,
		&doc.ContentType,
		&doc.SizeBytes,
		&storageProvider,
		&doc.StorageKey,
		&checksum,
		&extractedKey,
		&extractedAt,
		&doc.CreatedAt,
	); err != nil {
		return Document{}, err
	}
	if storageProvider.Valid {
		doc.StorageProvider = storageProvider.String
	}
	if checksum.Valid {
		doc.Checksum = checksum.String
	}
	if extractedKey.Valid {
		doc.ExtractedTextKey = extractedKey.String
	}
	if extractedAt.Valid {
		doc.ExtractedAt = &extractedAt.Time
	}
	return doc, nil
}

var _ DocumentsRepo = (*PGRepo)(nil)
