package testutil

import (
	"context"
	"database/sql"
	"testing"

	"github.com/alexanderramin/canteiro/internal/db"
)

// NewTestDB opens a migrated in-memory store that closes with the test.
func NewTestDB(t testing.TB) *sql.DB {
	t.Helper()
	conn, err := db.OpenDB(db.MemoryPath)
	if err != nil {
		t.Fatalf("opening test store: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

// NewTestUoW returns the unit of work snapshot imports run in.
func NewTestUoW(conn *sql.DB) db.UnitOfWork {
	return db.NewSQLiteUnitOfWork(conn)
}

// FailOnNthExecUoW behaves like the real unit of work except that the
// FailOn-th write statement (counting from 1) returns Err. Reads are never
// counted. Imports use it to prove a failed batch leaves nothing behind.
type FailOnNthExecUoW struct {
	DB     *sql.DB
	FailOn int32
	Err    error
}

func (u *FailOnNthExecUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	return db.NewSQLiteUnitOfWork(u.DB).WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return fn(ctx, &execCounter{DBTX: tx, failOn: u.FailOn, err: u.Err})
	})
}

type execCounter struct {
	db.DBTX
	n      int32
	failOn int32
	err    error
}

func (c *execCounter) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	c.n++
	if c.n == c.failOn {
		return nil, c.err
	}
	return c.DBTX.ExecContext(ctx, query, args...)
}
