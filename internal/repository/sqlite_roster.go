package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/canteiro/internal/db"
	"github.com/alexanderramin/canteiro/internal/domain"
)

// SQLiteRosterRepo implements RosterRepo using a SQLite database.
type SQLiteRosterRepo struct {
	db db.DBTX
}

// NewSQLiteRosterRepo creates a new SQLiteRosterRepo.
func NewSQLiteRosterRepo(conn db.DBTX) *SQLiteRosterRepo {
	return &SQLiteRosterRepo{db: conn}
}

func (r *SQLiteRosterRepo) Create(ctx context.Context, e *domain.RosterEntry) error {
	query := `INSERT INTO roster_entries (id, nome_fantasia, funcionario, created_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET nome_fantasia = excluded.nome_fantasia, funcionario = excluded.funcionario`
	if _, err := r.db.ExecContext(ctx, query, e.ID, e.NomeFantasia, e.Funcionario, nowUTC()); err != nil {
		return fmt.Errorf("inserting roster entry: %w", err)
	}
	return nil
}

// List returns the roster grouped by company, then by employee name.
func (r *SQLiteRosterRepo) List(ctx context.Context) ([]domain.RosterEntry, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, nome_fantasia, funcionario FROM roster_entries
		ORDER BY nome_fantasia, funcionario, id`)
	if err != nil {
		return nil, fmt.Errorf("listing roster: %w", err)
	}
	defer rows.Close()

	var out []domain.RosterEntry
	for rows.Next() {
		var e domain.RosterEntry
		if err := rows.Scan(&e.ID, &e.NomeFantasia, &e.Funcionario); err != nil {
			return nil, fmt.Errorf("scanning roster row: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating roster: %w", err)
	}
	return out, nil
}
