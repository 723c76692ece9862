package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/canteiro/internal/domain"
	"github.com/alexanderramin/canteiro/internal/feed"
	"github.com/alexanderramin/canteiro/internal/importer"
	"github.com/alexanderramin/canteiro/internal/metrics"
	"github.com/alexanderramin/canteiro/internal/repository"
	"github.com/alexanderramin/canteiro/internal/tracking"
	"github.com/google/uuid"
)

type projectService struct {
	projects repository.ProjectRepo
	notifier feed.Notifier
	observer UseCaseObserver
	clock    tracking.Clock
}

func NewProjectService(projects repository.ProjectRepo, notifier feed.Notifier, observers ...UseCaseObserver) ProjectService {
	if notifier == nil {
		notifier = feed.NopNotifier{}
	}
	return &projectService{
		projects: projects,
		notifier: notifier,
		observer: useCaseObserverOrNoop(observers),
		clock:    tracking.SystemClock,
	}
}

func (s *projectService) now() time.Time {
	return s.clock().UTC()
}

func (s *projectService) Create(ctx context.Context, p *domain.Project) (err error) {
	fields := map[string]any{"name": p.Name}
	defer observe(ctx, s.observer, "create-project", fields, &err)()

	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("project name is required")
	}
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if p.StartDate != nil && p.EstimatedCompletionDate != nil && p.EstimatedCompletionDate.Before(*p.StartDate) {
		return fmt.Errorf("estimated completion %s precedes start %s",
			p.EstimatedCompletionDate.Format(time.DateOnly), p.StartDate.Format(time.DateOnly))
	}
	if p.Progress < 0 || p.Progress > 100 {
		return fmt.Errorf("progress %d outside 0-100", p.Progress)
	}
	if p.CreatedAt == nil {
		now := s.now()
		p.CreatedAt = &now
	}
	if p.Clearances == nil {
		p.Clearances = domain.Clearances{}
	}
	fields["project_id"] = p.ID

	if err = s.projects.Put(ctx, p); err != nil {
		return fmt.Errorf("creating project: %w", err)
	}
	s.written(ctx, "create", fields)
	return nil
}

func (s *projectService) Get(ctx context.Context, id string) (*domain.Project, error) {
	return s.projects.Get(ctx, id)
}

func (s *projectService) ListStored(ctx context.Context, scope domain.ReadScope) ([]importer.StoredProject, error) {
	return s.projects.ListStored(ctx, scope)
}

func (s *projectService) SetProgress(ctx context.Context, id string, progress int) error {
	if progress < 0 || progress > 100 {
		return fmt.Errorf("progress %d outside 0-100", progress)
	}
	return s.mutate(ctx, "set-progress", id, func(p *domain.Project, now time.Time) error {
		p.Progress = progress
		p.ProgressHistory = append(p.ProgressHistory, domain.ProgressEntry{Date: now, Progress: progress})
		if progress == 100 && p.CompletionDate == nil {
			p.CompletionDate = &now
		}
		return nil
	})
}

func (s *projectService) AppendActivity(ctx context.Context, id, text, userEmail string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return fmt.Errorf("activity text is required")
	}
	return s.mutate(ctx, "append-activity", id, func(p *domain.Project, now time.Time) error {
		p.ActivitySummary = append(p.ActivitySummary, domain.ActivityEntry{Date: now, Text: text, UserEmail: userEmail})
		return nil
	})
}

func (s *projectService) AppendObservation(ctx context.Context, id, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return fmt.Errorf("observation text is required")
	}
	return s.mutate(ctx, "append-observation", id, func(p *domain.Project, now time.Time) error {
		p.ObservationHistory = append(p.ObservationHistory, domain.Observation{Date: now, Text: text})
		return nil
	})
}

// SetAgenda schedules the project for date. Earlier entries are kept; the
// latest one by SetAt is the effective agenda.
func (s *projectService) SetAgenda(ctx context.Context, id string, date time.Time) error {
	return s.mutate(ctx, "set-agenda", id, func(p *domain.Project, now time.Time) error {
		p.AgendaHistory = append(p.AgendaHistory, domain.AgendaEntry{Date: date, SetAt: now})
		return nil
	})
}

func (s *projectService) SetClearance(ctx context.Context, id string, cp domain.Checkpoint, at time.Time) error {
	if _, ok := domain.ParseCheckpoint(string(cp)); !ok {
		return fmt.Errorf("unknown checkpoint %q", cp)
	}
	return s.mutate(ctx, "set-clearance", id, func(p *domain.Project, now time.Time) error {
		if at.IsZero() {
			at = now
		}
		if p.Clearances == nil {
			p.Clearances = domain.Clearances{}
		}
		p.Clearances[cp] = at
		return nil
	})
}

func (s *projectService) Complete(ctx context.Context, id string) error {
	return s.mutate(ctx, "complete-project", id, func(p *domain.Project, now time.Time) error {
		if p.IsComplete() && p.CompletionDate != nil {
			return fmt.Errorf("project %s is already complete", p.DisplayID())
		}
		p.Progress = 100
		p.CompletionDate = &now
		p.ProgressHistory = append(p.ProgressHistory, domain.ProgressEntry{Date: now, Progress: 100})
		return nil
	})
}

func (s *projectService) Delete(ctx context.Context, id string) (err error) {
	fields := map[string]any{"project_id": id}
	defer observe(ctx, s.observer, "delete-project", fields, &err)()

	if err = s.projects.Delete(ctx, id); err != nil {
		return err
	}
	s.written(ctx, "delete", fields)
	return nil
}

// mutate loads id, applies fn and writes the project back.
func (s *projectService) mutate(ctx context.Context, name, id string, fn func(p *domain.Project, now time.Time) error) (err error) {
	fields := map[string]any{"project_id": id}
	defer observe(ctx, s.observer, name, fields, &err)()

	p, err := s.projects.Get(ctx, id)
	if err != nil {
		return err
	}
	if err = fn(p, s.now()); err != nil {
		return err
	}
	if err = s.projects.Put(ctx, p); err != nil {
		return fmt.Errorf("saving project: %w", err)
	}
	s.written(ctx, name, fields)
	return nil
}

// written counts the write and announces the new revision. Announcement
// failures are reported on the event, never to the caller: watchers still
// catch up by polling.
func (s *projectService) written(ctx context.Context, operation string, fields map[string]any) {
	metrics.IncrementProjectWrite(operation)

	rev, err := s.projects.Revision(ctx)
	if err != nil {
		fields["notify_error"] = err.Error()
		return
	}
	fields["revision"] = rev
	if err := s.notifier.Publish(ctx, rev); err != nil {
		fields["notify_error"] = err.Error()
	}
}
