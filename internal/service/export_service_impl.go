package service

import (
	"context"
	"io"
	"time"

	"github.com/alexanderramin/canteiro/internal/app"
	"github.com/alexanderramin/canteiro/internal/export"
	"github.com/alexanderramin/canteiro/internal/logging"
	"github.com/alexanderramin/canteiro/internal/repository"
	"go.uber.org/zap"
)

type exportService struct {
	users    repository.UserRepo
	projects repository.ProjectRepo
	loc      *time.Location
	logger   *zap.Logger
	observer UseCaseObserver
}

func NewExportService(
	users repository.UserRepo,
	projects repository.ProjectRepo,
	loc *time.Location,
	logger *zap.Logger,
	observers ...UseCaseObserver,
) ExportService {
	return &exportService{
		users:    users,
		projects: projects,
		loc:      locOrLocal(loc),
		logger:   logging.OrNop(logger),
		observer: useCaseObserverOrNoop(observers),
	}
}

// Export writes the report workbook for the projects req selects.
func (s *exportService) Export(ctx context.Context, req app.ExportRequest, w io.Writer) (res *app.ExportResult, err error) {
	fields := map[string]any{"user": req.UserEmail}
	defer observe(ctx, s.observer, "export", fields, &err)()

	now := app.Clock(req.Now)
	sess, _, err := scopedSession(ctx, s.users, s.projects, req.UserEmail, req.Criteria, s.loc, s.logger)
	if err != nil {
		return nil, err
	}

	report := export.BuildReport(sess.Filtered(now), now, s.loc)
	if err = export.WriteReport(w, report); err != nil {
		return nil, err
	}
	fields["rows"] = len(report.Rows)
	return &app.ExportResult{FileName: export.ReportFileName, Rows: len(report.Rows)}, nil
}

func (s *exportService) ExportTemplate(ctx context.Context, w io.Writer) (res *app.ExportResult, err error) {
	defer observe(ctx, s.observer, "export-template", nil, &err)()

	if err = export.WriteTemplate(w); err != nil {
		return nil, err
	}
	return &app.ExportResult{FileName: export.TemplateFileName}, nil
}
