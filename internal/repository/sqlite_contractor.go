package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/canteiro/internal/db"
	"github.com/alexanderramin/canteiro/internal/domain"
)

// SQLiteContractorRepo implements ContractorRepo using a SQLite database.
type SQLiteContractorRepo struct {
	db db.DBTX
}

// NewSQLiteContractorRepo creates a new SQLiteContractorRepo.
func NewSQLiteContractorRepo(conn db.DBTX) *SQLiteContractorRepo {
	return &SQLiteContractorRepo{db: conn}
}

// Create inserts c, or renames the contractor when the ID already exists.
func (r *SQLiteContractorRepo) Create(ctx context.Context, c *domain.Contractor) error {
	query := `INSERT INTO contractors (id, name, created_at) VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET name = excluded.name`
	if _, err := r.db.ExecContext(ctx, query, c.ID, c.Name, nowUTC()); err != nil {
		return fmt.Errorf("inserting contractor: %w", err)
	}
	return nil
}

func (r *SQLiteContractorRepo) GetByID(ctx context.Context, id string) (*domain.Contractor, error) {
	var c domain.Contractor
	err := r.db.QueryRowContext(ctx, `SELECT id, name FROM contractors WHERE id = ?`, id).Scan(&c.ID, &c.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("contractor %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning contractor: %w", err)
	}
	return &c, nil
}

func (r *SQLiteContractorRepo) List(ctx context.Context) ([]domain.Contractor, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM contractors ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("listing contractors: %w", err)
	}
	defer rows.Close()

	var out []domain.Contractor
	for rows.Next() {
		var c domain.Contractor
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("scanning contractor row: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating contractors: %w", err)
	}
	return out, nil
}
