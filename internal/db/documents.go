package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ErrNotFound is returned when a document does not exist.
var ErrNotFound = errors.New("document not found")

const documentColumns = `id, kind, role, weeks, analysis_type, raw_text, overall_score, created_at`

// CreateDocument stores a new document and returns it with its ID and timestamp.
func (db *DB) CreateDocument(ctx context.Context, input *DocumentCreateInput) (*Document, error) {
	if input.Kind != KindStudyPlan && input.Kind != KindAnalysis {
		return nil, fmt.Errorf("invalid document kind %q", input.Kind)
	}

	doc := &Document{
		ID:           uuid.New(),
		Kind:         input.Kind,
		Role:         nullableString(input.Role),
		Weeks:        nullableInt(input.Weeks),
		AnalysisType: nullableString(input.AnalysisType),
		RawText:      input.RawText,
		OverallScore: input.OverallScore,
	}

	err := db.pool.QueryRow(ctx,
		`INSERT INTO documents (id, kind, role, weeks, analysis_type, raw_text, overall_score)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING created_at`,
		doc.ID, string(doc.Kind), doc.Role, doc.Weeks, doc.AnalysisType, doc.RawText, doc.OverallScore,
	).Scan(&doc.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create document: %w", err)
	}
	return doc, nil
}

// GetDocument retrieves a document by ID. It returns ErrNotFound when absent.
func (db *DB) GetDocument(ctx context.Context, id uuid.UUID) (*Document, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+documentColumns+` FROM documents WHERE id = $1`, id)

	doc, err := scanDocument(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get document %s: %w", id, err)
	}
	return doc, nil
}

// ListDocuments returns documents newest first.
func (db *DB) ListDocuments(ctx context.Context, opts ListOptions) ([]Document, error) {
	opts = opts.normalize()

	rows, err := db.pool.Query(ctx,
		`SELECT `+documentColumns+` FROM documents
		 WHERE ($1::text = '' OR kind = $1::text)
		 ORDER BY created_at DESC, id
		 LIMIT $2 OFFSET $3`,
		string(opts.Kind), opts.Limit, opts.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	defer rows.Close()

	docs := []Document{}
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		docs = append(docs, *doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	return docs, nil
}

// DeleteDocument removes a document. It returns ErrNotFound when absent.
func (db *DB) DeleteDocument(ctx context.Context, id uuid.UUID) error {
	tag, err := db.pool.Exec(ctx, `DELETE FROM documents WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete document %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanDocument(row pgx.Row) (*Document, error) {
	var doc Document
	var kind string
	err := row.Scan(&doc.ID, &kind, &doc.Role, &doc.Weeks, &doc.AnalysisType,
		&doc.RawText, &doc.OverallScore, &doc.CreatedAt)
	if err != nil {
		return nil, err
	}
	doc.Kind = DocumentKind(kind)
	return &doc, nil
}
