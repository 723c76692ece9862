package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alexanderramin/canteiro/internal/app"
	"github.com/alexanderramin/canteiro/internal/db"
	"github.com/alexanderramin/canteiro/internal/export"
	"github.com/alexanderramin/canteiro/internal/feed"
	"github.com/alexanderramin/canteiro/internal/importer"
	"github.com/alexanderramin/canteiro/internal/metrics"
	"github.com/alexanderramin/canteiro/internal/repository"
	"github.com/alexanderramin/canteiro/internal/tracking"
)

type importService struct {
	uow      db.UnitOfWork
	notifier feed.Notifier
	loc      *time.Location
	observer UseCaseObserver
	clock    tracking.Clock
}

// NewImportService imports snapshots in a single transaction: either every
// record lands or none does.
func NewImportService(uow db.UnitOfWork, notifier feed.Notifier, loc *time.Location, observers ...UseCaseObserver) ImportService {
	if notifier == nil {
		notifier = feed.NopNotifier{}
	}
	return &importService{
		uow:      uow,
		notifier: notifier,
		loc:      locOrLocal(loc),
		observer: useCaseObserverOrNoop(observers),
		clock:    tracking.SystemClock,
	}
}

// ImportFile reads a JSON snapshot or a filled-in xlsx template.
func (s *importService) ImportFile(ctx context.Context, path string) (res *app.ImportResult, err error) {
	fields := map[string]any{"path": path}
	defer observe(ctx, s.observer, "import", fields, &err)()

	snap, err := s.load(path)
	if err != nil {
		return nil, err
	}
	res, err = s.importSnapshot(ctx, snap)
	if err != nil {
		return nil, err
	}
	fields["projects"] = res.Projects
	fields["warnings"] = len(res.Warnings)
	return res, nil
}

func (s *importService) load(path string) (*importer.Snapshot, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("opening import file: %w", err)
		}
		defer f.Close()
		return export.ReadTemplate(f, s.clock(), s.loc)
	}
	snap, err := importer.LoadSnapshotFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading import file: %w", err)
	}
	return snap, nil
}

func (s *importService) importSnapshot(ctx context.Context, snap *importer.Snapshot) (*app.ImportResult, error) {
	res := &app.ImportResult{}
	if snap.Skipped > 0 {
		res.Warnings = append(res.Warnings, fmt.Sprintf("%d entries skipped: not a project record", snap.Skipped))
	}

	for i := range snap.Projects {
		for _, problem := range importer.ValidateStored(&snap.Projects[i]) {
			label := string(snap.Projects[i].ID)
			if label == "" {
				label = fmt.Sprintf("#%d", i+1)
			}
			res.Warnings = append(res.Warnings, fmt.Sprintf("project %s: %v", label, problem))
		}
	}
	projects := importer.NormalizeAll(snap.Projects)
	metrics.RecordsNormalized.Add(float64(len(projects)))

	var rev int64
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		contractors := repository.NewSQLiteContractorRepo(tx)
		for _, sc := range snap.Contractors {
			c := importer.ToContractor(sc)
			if err := contractors.Create(ctx, &c); err != nil {
				return fmt.Errorf("importing contractor %q: %w", c.Name, err)
			}
		}

		users := repository.NewSQLiteUserRepo(tx)
		for _, su := range snap.Users {
			u := importer.ToUser(su)
			if u.Email == "" {
				res.Warnings = append(res.Warnings, fmt.Sprintf("user %s skipped: no email", u.ID))
				continue
			}
			if err := users.Upsert(ctx, &u); err != nil {
				return fmt.Errorf("importing user %s: %w", u.Email, err)
			}
			res.Users++
		}

		roster := repository.NewSQLiteRosterRepo(tx)
		for _, sr := range snap.Roster {
			e := importer.ToRosterEntry(sr)
			if err := roster.Create(ctx, &e); err != nil {
				return fmt.Errorf("importing roster entry %q: %w", e.Funcionario, err)
			}
		}

		repo := repository.NewSQLiteProjectRepo(tx)
		for i := range projects {
			if err := repo.Put(ctx, &projects[i]); err != nil {
				return fmt.Errorf("importing project %q: %w", projects[i].Name, err)
			}
		}

		var err error
		rev, err = repo.Revision(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}

	res.Projects = len(projects)
	res.Contractors = len(snap.Contractors)
	res.Roster = len(snap.Roster)
	if res.Projects > 0 {
		metrics.ProjectWrites.WithLabelValues("import").Add(float64(res.Projects))
		if err := s.notifier.Publish(ctx, rev); err != nil {
			res.Warnings = append(res.Warnings, fmt.Sprintf("change notification failed: %v", err))
		}
	}
	return res, nil
}
