package service

import (
	"context"
	"time"

	"github.com/alexanderramin/canteiro/internal/app"
	"github.com/alexanderramin/canteiro/internal/logging"
	"github.com/alexanderramin/canteiro/internal/repository"
	"go.uber.org/zap"
)

type queryService struct {
	users    repository.UserRepo
	projects repository.ProjectRepo
	loc      *time.Location
	logger   *zap.Logger
	observer UseCaseObserver
}

func NewQueryService(
	users repository.UserRepo,
	projects repository.ProjectRepo,
	loc *time.Location,
	logger *zap.Logger,
	observers ...UseCaseObserver,
) QueryService {
	return &queryService{
		users:    users,
		projects: projects,
		loc:      locOrLocal(loc),
		logger:   logging.OrNop(logger),
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *queryService) ListProjects(ctx context.Context, req app.QueryRequest) (resp *app.QueryResponse, err error) {
	fields := map[string]any{"user": req.UserEmail}
	defer observe(ctx, s.observer, "list-projects", fields, &err)()

	now := app.Clock(req.Now)
	sess, u, err := scopedSession(ctx, s.users, s.projects, req.UserEmail, req.Criteria, s.loc, s.logger)
	if err != nil {
		return nil, err
	}

	resp = &app.QueryResponse{
		User:     *u,
		Projects: sess.Filtered(now),
		Total:    len(sess.State().Projects),
	}
	fields["visible"] = resp.Total
	fields["matched"] = len(resp.Projects)
	return resp, nil
}
