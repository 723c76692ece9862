package cli

import (
	"time"

	"github.com/alexanderramin/canteiro/internal/app"
	"github.com/alexanderramin/canteiro/internal/tracking"
)

func queryRequest(now time.Time, email string, c tracking.Criteria) app.QueryRequest {
	return app.QueryRequest{Now: &now, UserEmail: email, Criteria: c}
}

func statusRequest(now time.Time, email string, c tracking.Criteria) app.StatusRequest {
	return app.StatusRequest{Now: &now, UserEmail: email, Criteria: c}
}

func exportRequest(now time.Time, email string, c tracking.Criteria) app.ExportRequest {
	return app.ExportRequest{Now: &now, UserEmail: email, Criteria: c}
}
