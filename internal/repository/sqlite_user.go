package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/canteiro/internal/db"
	"github.com/alexanderramin/canteiro/internal/domain"
)

// SQLiteUserRepo implements UserRepo using a SQLite database.
type SQLiteUserRepo struct {
	db db.DBTX
}

// NewSQLiteUserRepo creates a new SQLiteUserRepo.
func NewSQLiteUserRepo(conn db.DBTX) *SQLiteUserRepo {
	return &SQLiteUserRepo{db: conn}
}

// Upsert inserts u or updates the user with the same email. Emails are
// compared lowercased.
func (r *SQLiteUserRepo) Upsert(ctx context.Context, u *domain.User) error {
	ids, err := json.Marshal(domain.NonNil(u.ContractorIDs))
	if err != nil {
		return fmt.Errorf("encoding contractor ids: %w", err)
	}
	now := nowUTC()
	query := `INSERT INTO users (id, name, email, role, contractor_ids, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(email) DO UPDATE SET
			name = excluded.name,
			role = excluded.role,
			contractor_ids = excluded.contractor_ids,
			updated_at = excluded.updated_at`
	_, err = r.db.ExecContext(ctx, query,
		u.ID,
		u.Name,
		strings.ToLower(u.Email),
		string(u.Role),
		string(ids),
		now,
		now,
	)
	if err != nil {
		return fmt.Errorf("upserting user: %w", err)
	}
	return nil
}

func (r *SQLiteUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT id, name, email, role, contractor_ids FROM users WHERE email = ?`
	u, err := scanUser(r.db.QueryRowContext(ctx, query, strings.ToLower(strings.TrimSpace(email))))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user %s: %w", email, ErrNotFound)
		}
		return nil, err
	}
	return u, nil
}

func (r *SQLiteUserRepo) List(ctx context.Context) ([]domain.User, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, email, role, contractor_ids FROM users ORDER BY email`)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating users: %w", err)
	}
	return users, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*domain.User, error) {
	var u domain.User
	var role, ids string
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &role, &ids); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning user: %w", err)
	}
	u.Role = domain.UserRole(role)
	if err := json.Unmarshal([]byte(ids), &u.ContractorIDs); err != nil {
		return nil, fmt.Errorf("decoding contractor ids for %s: %w", u.Email, err)
	}
	return &u, nil
}
