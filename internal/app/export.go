package app

import (
	"time"

	"github.com/alexanderramin/canteiro/internal/tracking"
)

type ExportRequest struct {
	Now       *time.Time
	UserEmail string
	Criteria  tracking.Criteria
}

type ExportResult struct {
	FileName string
	Rows     int
}

// ImportResult counts what an import wrote, plus per-record warnings for
// fields that had to be defaulted.
type ImportResult struct {
	Projects    int
	Contractors int
	Users       int
	Roster      int
	Warnings    []string
}
