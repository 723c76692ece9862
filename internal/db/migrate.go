package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

// Projects are stored as whole JSON documents in the shape the snapshot
// importer reads. contractor_id is lifted out of the document so read scopes
// can be applied in SQL.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS contractors (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		created_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS projects (
		id            TEXT PRIMARY KEY,
		contractor_id TEXT NOT NULL DEFAULT '',
		doc           TEXT NOT NULL CHECK(json_valid(doc)),
		created_at    TEXT NOT NULL,
		updated_at    TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_projects_contractor ON projects(contractor_id)`,

	`CREATE TABLE IF NOT EXISTS users (
		id             TEXT PRIMARY KEY,
		name           TEXT NOT NULL DEFAULT '',
		email          TEXT NOT NULL UNIQUE,
		role           TEXT NOT NULL DEFAULT 'visualizador'
		               CHECK(role IN ('admin','gerente','visualizador','ts','user_fast')),
		contractor_ids TEXT NOT NULL DEFAULT '[]',
		created_at     TEXT NOT NULL,
		updated_at     TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS roster_entries (
		id            TEXT PRIMARY KEY,
		nome_fantasia TEXT NOT NULL,
		funcionario   TEXT NOT NULL,
		created_at    TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_roster_company ON roster_entries(nome_fantasia)`,

	`CREATE TABLE IF NOT EXISTS store_meta (
		id       INTEGER PRIMARY KEY CHECK(id = 1),
		revision INTEGER NOT NULL DEFAULT 0
	)`,

	`INSERT OR IGNORE INTO store_meta (id, revision) VALUES (1, 0)`,
}
