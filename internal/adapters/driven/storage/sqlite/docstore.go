package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/stacklight-labs/sitesmith/internal/core/domain"
	"github.com/stacklight-labs/sitesmith/internal/core/ports/driven"
)

// documentStore implements driven.DocumentStore.
type documentStore struct {
	store *Store
}

var _ driven.DocumentStore = (*documentStore)(nil)

// Save stores or replaces a generated document.
func (s *documentStore) Save(ctx context.Context, doc *domain.GeneratedDocument) error {
	validationJSON, err := json.Marshal(doc.Validation)
	if err != nil {
		return fmt.Errorf("marshalling validation: %w", err)
	}

	now := time.Now().UTC()
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = now
	}
	doc.UpdatedAt = now

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO documents (id, business_name, category, html, thinking, pipeline_version, validation, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			business_name = excluded.business_name,
			category = excluded.category,
			html = excluded.html,
			thinking = excluded.thinking,
			pipeline_version = excluded.pipeline_version,
			validation = excluded.validation,
			updated_at = excluded.updated_at
	`, doc.ID, doc.BusinessName, doc.Category, doc.HTML, doc.Thinking,
		doc.PipelineVersion, string(validationJSON), doc.CreatedAt, doc.UpdatedAt)

	if err != nil {
		return fmt.Errorf("saving document: %w", err)
	}
	return nil
}

// Get retrieves a document by ID.
func (s *documentStore) Get(ctx context.Context, id string) (*domain.GeneratedDocument, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, business_name, category, html, thinking, pipeline_version, validation, created_at, updated_at
		FROM documents WHERE id = ?
	`, id)

	doc, err := scanDocument(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return doc, nil
}

// List returns stored documents, newest first.
func (s *documentStore) List(ctx context.Context, limit int) ([]*domain.GeneratedDocument, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, business_name, category, html, thinking, pipeline_version, validation, created_at, updated_at
		FROM documents ORDER BY created_at DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying documents: %w", err)
	}
	defer rows.Close()

	var docs []*domain.GeneratedDocument //nolint:prealloc // size unknown from query
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating documents: %w", err)
	}

	return docs, nil
}

// Delete removes a document by ID.
func (s *documentStore) Delete(ctx context.Context, id string) error {
	_, err := s.store.db.ExecContext(ctx, "DELETE FROM documents WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting document: %w", err)
	}
	return nil
}

// Close is a no-op; the shared connection is owned by the parent Store.
func (s *documentStore) Close() error {
	return nil
}

// scanner abstracts sql.Row and sql.Rows for shared scanning.
type scanner interface {
	Scan(dest ...any) error
}

func scanDocument(row scanner) (*domain.GeneratedDocument, error) {
	var doc domain.GeneratedDocument
	var validationJSON string
	var createdAt, updatedAt sql.NullTime

	if err := row.Scan(&doc.ID, &doc.BusinessName, &doc.Category, &doc.HTML,
		&doc.Thinking, &doc.PipelineVersion, &validationJSON, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning document: %w", err)
	}

	if err := json.Unmarshal([]byte(validationJSON), &doc.Validation); err != nil {
		return nil, fmt.Errorf("unmarshaling validation: %w", err)
	}

	if createdAt.Valid {
		doc.CreatedAt = createdAt.Time
	}
	if updatedAt.Valid {
		doc.UpdatedAt = updatedAt.Time
	}

	return &doc, nil
}
