package httpserver

import (
	"time"

	"github.com/alexanderramin/canteiro/internal/app"
	"github.com/alexanderramin/canteiro/internal/domain"
	"github.com/alexanderramin/canteiro/internal/tracking"
)

type userJSON struct {
	Email string          `json:"email"`
	Name  string          `json:"name"`
	Role  domain.UserRole `json:"role"`
}

type statusJSON struct {
	Label      domain.Status `json:"label"`
	Background string        `json:"background"`
	Text       string        `json:"text"`
}

type projectJSON struct {
	ID                      string     `json:"id"`
	Name                    string     `json:"name"`
	Factory                 string     `json:"factory,omitempty"`
	OrderNumber             string     `json:"order_number,omitempty"`
	Contractor              string     `json:"contractor,omitempty"`
	ContractorID            string     `json:"contractor_id,omitempty"`
	Area                    string     `json:"area,omitempty"`
	Leader                  []string   `json:"leader"`
	StartDate               *time.Time `json:"start_date,omitempty"`
	EstimatedCompletionDate *time.Time `json:"estimated_completion_date,omitempty"`
	CompletionDate          *time.Time `json:"completion_date,omitempty"`
	Progress                int        `json:"progress"`
	Critical                bool       `json:"critical"`
	Status                  statusJSON `json:"status"`
}

type listJSON struct {
	User     userJSON      `json:"user"`
	Total    int           `json:"total"`
	Count    int           `json:"count"`
	Projects []projectJSON `json:"projects"`
}

type statusViewJSON struct {
	ID                      string     `json:"id"`
	DisplayID               string     `json:"display_id"`
	Name                    string     `json:"name"`
	OrderNumber             string     `json:"order_number,omitempty"`
	Contractor              string     `json:"contractor,omitempty"`
	Critical                bool       `json:"critical"`
	Status                  statusJSON `json:"status"`
	Progress                int        `json:"progress"`
	Predicted               int        `json:"predicted"`
	Lag                     int        `json:"lag"`
	StartDate               *time.Time `json:"start_date,omitempty"`
	EstimatedCompletionDate *time.Time `json:"estimated_completion_date,omitempty"`
	Agenda                  *time.Time `json:"agenda,omitempty"`
	ClearedCount            int        `json:"cleared_count"`
	SinceClearance          string     `json:"since_clearance,omitempty"`
	ClearanceOverdue        bool       `json:"clearance_overdue"`
}

type summaryJSON struct {
	Date              string                `json:"date"`
	Total             int                   `json:"total"`
	ProjectsCreated   int                   `json:"projects_created"`
	ProjectsCompleted int                   `json:"projects_completed"`
	Critical          int                   `json:"critical"`
	ByStatus          map[domain.Status]int `json:"by_status"`
}

type statusBoardJSON struct {
	GeneratedAt time.Time        `json:"generated_at"`
	User        userJSON         `json:"user"`
	Summary     summaryJSON      `json:"summary"`
	Projects    []statusViewJSON `json:"projects"`
}

func toUserJSON(u domain.User) userJSON {
	return userJSON{Email: u.Email, Name: u.Name, Role: u.Role}
}

func toListJSON(resp *app.QueryResponse, now time.Time) listJSON {
	out := listJSON{
		User:     toUserJSON(resp.User),
		Total:    resp.Total,
		Count:    len(resp.Projects),
		Projects: make([]projectJSON, 0, len(resp.Projects)),
	}
	for i := range resp.Projects {
		p := &resp.Projects[i]
		st := tracking.Classify(p, now)
		leader := p.Leader
		if leader == nil {
			leader = []string{}
		}
		out.Projects = append(out.Projects, projectJSON{
			ID:                      p.ID,
			Name:                    p.Name,
			Factory:                 p.Factory,
			OrderNumber:             p.OrderNumber,
			Contractor:              p.Contractor,
			ContractorID:            p.ContractorID,
			Area:                    p.Area,
			Leader:                  leader,
			StartDate:               p.StartDate,
			EstimatedCompletionDate: p.EstimatedCompletionDate,
			CompletionDate:          p.CompletionDate,
			Progress:                p.Progress,
			Critical:                p.Critical,
			Status:                  statusJSON{Label: st.Status, Background: st.Background, Text: st.Text},
		})
	}
	return out
}

func toStatusBoardJSON(resp *app.StatusResponse) statusBoardJSON {
	out := statusBoardJSON{
		GeneratedAt: resp.GeneratedAt,
		User:        toUserJSON(resp.User),
		Summary: summaryJSON{
			Date:              resp.Summary.Date.Format(dateLayout),
			Total:             resp.Summary.Total,
			ProjectsCreated:   resp.Summary.ProjectsCreated,
			ProjectsCompleted: resp.Summary.ProjectsCompleted,
			Critical:          resp.Summary.Critical,
			ByStatus:          resp.Summary.ByStatus,
		},
		Projects: make([]statusViewJSON, 0, len(resp.Projects)),
	}
	for _, v := range resp.Projects {
		out.Projects = append(out.Projects, statusViewJSON{
			ID:                      v.ProjectID,
			DisplayID:               v.DisplayID,
			Name:                    v.Name,
			OrderNumber:             v.OrderNumber,
			Contractor:              v.Contractor,
			Critical:                v.Critical,
			Status:                  statusJSON{Label: v.Status, Background: v.Background, Text: v.Text},
			Progress:                v.Progress,
			Predicted:               v.Predicted,
			Lag:                     v.Lag,
			StartDate:               v.StartDate,
			EstimatedCompletionDate: v.EstimatedCompletionDate,
			Agenda:                  v.Agenda,
			ClearedCount:            v.ClearedCount,
			SinceClearance:          v.SinceClearance.Text,
			ClearanceOverdue:        v.SinceClearance.IsOverdue,
		})
	}
	return out
}
