package service

import (
	"context"
	"time"

	"github.com/alexanderramin/canteiro/internal/app"
	"github.com/alexanderramin/canteiro/internal/domain"
	"github.com/alexanderramin/canteiro/internal/logging"
	"github.com/alexanderramin/canteiro/internal/repository"
	"github.com/alexanderramin/canteiro/internal/tracking"
	"go.uber.org/zap"
)

type statusService struct {
	users    repository.UserRepo
	projects repository.ProjectRepo
	loc      *time.Location
	logger   *zap.Logger
	observer UseCaseObserver
}

func NewStatusService(
	users repository.UserRepo,
	projects repository.ProjectRepo,
	loc *time.Location,
	logger *zap.Logger,
	observers ...UseCaseObserver,
) StatusService {
	return &statusService{
		users:    users,
		projects: projects,
		loc:      locOrLocal(loc),
		logger:   logging.OrNop(logger),
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *statusService) GetStatus(ctx context.Context, req app.StatusRequest) (resp *app.StatusResponse, err error) {
	fields := map[string]any{"user": req.UserEmail}
	defer observe(ctx, s.observer, "status", fields, &err)()

	now := app.Clock(req.Now)
	sess, u, err := scopedSession(ctx, s.users, s.projects, req.UserEmail, req.Criteria, s.loc, s.logger)
	if err != nil {
		return nil, err
	}

	projects := sess.Filtered(now)
	pr := tracking.NewPredictor(func() time.Time { return now })
	views := make([]app.ProjectStatusView, 0, len(projects))
	for i := range projects {
		views = append(views, buildStatusView(pr, &projects[i], now))
	}
	fields["projects"] = len(views)

	return &app.StatusResponse{
		GeneratedAt: now,
		User:        *u,
		Summary:     tracking.Summarize(projects, now, s.loc),
		Projects:    views,
	}, nil
}

func buildStatusView(pr *tracking.Predictor, p *domain.Project, now time.Time) app.ProjectStatusView {
	res := pr.Classify(p)

	v := app.ProjectStatusView{
		ProjectID:               p.ID,
		DisplayID:               p.DisplayID(),
		Name:                    p.Name,
		OrderNumber:             p.OrderNumber,
		Contractor:              p.Contractor,
		Critical:                p.Critical,
		Status:                  res.Status,
		Background:              res.Background,
		Text:                    res.Text,
		Progress:                p.Progress,
		Predicted:               pr.Predict(p),
		Lag:                     pr.Lag(p),
		StartDate:               p.StartDate,
		EstimatedCompletionDate: p.EstimatedCompletionDate,
		ClearedCount:            p.ClearedCount(),
	}
	if a, ok := p.LatestAgenda(); ok {
		d := a.Date
		v.Agenda = &d
	}
	if last, ok := lastClearance(p); ok && !p.IsComplete() {
		v.SinceClearance = tracking.FormatElapsed(last, now)
	}
	return v
}

func lastClearance(p *domain.Project) (time.Time, bool) {
	var last time.Time
	for _, t := range p.Clearances {
		if t.After(last) {
			last = t
		}
	}
	return last, !last.IsZero()
}
