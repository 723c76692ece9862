package app

import (
	"time"

	"github.com/alexanderramin/canteiro/internal/domain"
	"github.com/alexanderramin/canteiro/internal/tracking"
)

// QueryRequest selects the projects visible to UserEmail that satisfy
// Criteria at Now.
type QueryRequest struct {
	Now       *time.Time
	UserEmail string
	Criteria  tracking.Criteria
}

type QueryResponse struct {
	User     domain.User
	Projects []domain.Project
	Total    int // visible before filtering
}
