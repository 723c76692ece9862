package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/canteiro/internal/db"
)

// nowUTC returns the current UTC time formatted as RFC3339.
func nowUTC() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// placeholders returns "?, ?, ..." with n markers.
func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

// bumpRevision advances the store revision after a write.
func bumpRevision(ctx context.Context, conn db.DBTX) error {
	if _, err := conn.ExecContext(ctx, `UPDATE store_meta SET revision = revision + 1 WHERE id = 1`); err != nil {
		return fmt.Errorf("bumping store revision: %w", err)
	}
	return nil
}
