package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/canteiro/internal/db"
	"github.com/alexanderramin/canteiro/internal/domain"
	"github.com/alexanderramin/canteiro/internal/importer"
)

// SQLiteProjectRepo implements ProjectRepo on a JSON document column.
type SQLiteProjectRepo struct {
	db db.DBTX
}

// NewSQLiteProjectRepo creates a new SQLiteProjectRepo.
func NewSQLiteProjectRepo(conn db.DBTX) *SQLiteProjectRepo {
	return &SQLiteProjectRepo{db: conn}
}

// Put inserts p or replaces the stored document with the same ID.
func (r *SQLiteProjectRepo) Put(ctx context.Context, p *domain.Project) error {
	doc, err := json.Marshal(importer.Denormalize(*p))
	if err != nil {
		return fmt.Errorf("encoding project %s: %w", p.ID, err)
	}

	now := nowUTC()
	created := now
	if p.CreatedAt != nil {
		created = p.CreatedAt.UTC().Format(time.RFC3339)
	}

	query := `INSERT INTO projects (id, contractor_id, doc, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			contractor_id = excluded.contractor_id,
			doc = excluded.doc,
			updated_at = excluded.updated_at`
	if _, err := r.db.ExecContext(ctx, query, p.ID, p.ContractorID, string(doc), created, now); err != nil {
		return fmt.Errorf("upserting project: %w", err)
	}
	return bumpRevision(ctx, r.db)
}

func (r *SQLiteProjectRepo) Get(ctx context.Context, id string) (*domain.Project, error) {
	var doc string
	err := r.db.QueryRowContext(ctx, `SELECT doc FROM projects WHERE id = ?`, id).Scan(&doc)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("project %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning project: %w", err)
	}

	var s importer.StoredProject
	if err := json.Unmarshal([]byte(doc), &s); err != nil {
		return nil, fmt.Errorf("decoding project %s: %w", id, err)
	}
	p := importer.Normalize(s)
	if p.ID == "" {
		p.ID = id
	}
	return &p, nil
}

// ListStored returns the raw documents readable under scope, ordered by ID.
// An empty scope yields an empty, non-nil slice without touching the table.
// Documents that are not JSON objects are skipped.
func (r *SQLiteProjectRepo) ListStored(ctx context.Context, scope domain.ReadScope) ([]importer.StoredProject, error) {
	out := []importer.StoredProject{}
	if scope.IsEmpty() {
		return out, nil
	}

	query := `SELECT id, doc FROM projects ORDER BY id`
	var args []any
	if !scope.All {
		query = `SELECT id, doc FROM projects WHERE contractor_id IN (` + placeholders(len(scope.ContractorIDs)) + `) ORDER BY id`
		for _, id := range scope.ContractorIDs {
			args = append(args, id)
		}
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id, doc string
		if err := rows.Scan(&id, &doc); err != nil {
			return nil, fmt.Errorf("scanning project row: %w", err)
		}
		var s importer.StoredProject
		if err := json.Unmarshal([]byte(doc), &s); err != nil {
			continue
		}
		if s.ID == "" {
			s.ID = importer.FlexString(id)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating projects: %w", err)
	}
	return out, nil
}

func (r *SQLiteProjectRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting project: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("project %s: %w", id, ErrNotFound)
	}
	return bumpRevision(ctx, r.db)
}

// Revision returns the current store revision.
func (r *SQLiteProjectRepo) Revision(ctx context.Context) (int64, error) {
	var rev int64
	if err := r.db.QueryRowContext(ctx, `SELECT revision FROM store_meta WHERE id = 1`).Scan(&rev); err != nil {
		return 0, fmt.Errorf("reading store revision: %w", err)
	}
	return rev, nil
}
