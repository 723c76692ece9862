package db

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db))
}

func TestMigrate_CreatesAllTables(t *testing.T) {
	db := openTestDB(t)

	expected := []string{"contractors", "projects", "users", "roster_entries", "store_meta"}
	for _, table := range expected {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
		assert.Equal(t, table, name)
	}
}

func TestMigrate_CreatesIndexes(t *testing.T) {
	db := openTestDB(t)

	for _, idx := range []string{"idx_projects_contractor", "idx_roster_company"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='index' AND name=?`, idx).Scan(&name)
		require.NoError(t, err, "index %s should exist", idx)
	}
}

func TestMigrate_ForeignKeysEnabled(t *testing.T) {
	db := openTestDB(t)

	var fk int
	require.NoError(t, db.QueryRow(`PRAGMA foreign_keys`).Scan(&fk))
	assert.Equal(t, 1, fk, "foreign keys should be enabled")
}

func TestMigrate_SeedsRevisionOnce(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`UPDATE store_meta SET revision = 7 WHERE id = 1`)
	require.NoError(t, err)
	require.NoError(t, Migrate(db))

	var count, rev int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*), MAX(revision) FROM store_meta`).Scan(&count, &rev))
	assert.Equal(t, 1, count)
	assert.Equal(t, 7, rev, "re-running migrations must not reset the revision")
}

func TestMigrate_ProjectDocMustBeJSON(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO projects (id, doc, created_at, updated_at)
		VALUES ('p1', 'not json', '2025-01-01T00:00:00Z', '2025-01-01T00:00:00Z')`)
	assert.Error(t, err, "non-JSON documents should be rejected by CHECK constraint")

	_, err = db.Exec(`INSERT INTO projects (id, doc, created_at, updated_at)
		VALUES ('p2', '{"id":"p2"}', '2025-01-01T00:00:00Z', '2025-01-01T00:00:00Z')`)
	assert.NoError(t, err)
}

func TestMigrate_UserRoleConstraint(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO users (id, email, role, created_at, updated_at)
		VALUES ('u1', 'a@b.c', 'superuser', '2025-01-01T00:00:00Z', '2025-01-01T00:00:00Z')`)
	assert.Error(t, err, "unknown roles should be rejected")

	_, err = db.Exec(`INSERT INTO users (id, email, role, created_at, updated_at)
		VALUES ('u1', 'a@b.c', 'gerente', '2025-01-01T00:00:00Z', '2025-01-01T00:00:00Z')`)
	assert.NoError(t, err)
}
