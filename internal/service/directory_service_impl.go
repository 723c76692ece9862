package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/canteiro/internal/domain"
	"github.com/alexanderramin/canteiro/internal/repository"
	"github.com/google/uuid"
)

type directoryService struct {
	users       repository.UserRepo
	contractors repository.ContractorRepo
	roster      repository.RosterRepo
}

func NewDirectoryService(users repository.UserRepo, contractors repository.ContractorRepo, roster repository.RosterRepo) DirectoryService {
	return &directoryService{users: users, contractors: contractors, roster: roster}
}

func (s *directoryService) AddUser(ctx context.Context, u *domain.User) error {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	if u.Email == "" {
		return fmt.Errorf("user email is required")
	}
	if u.Role == "" {
		u.Role = domain.RoleViewer
	}
	if !domain.ValidRoles[u.Role] {
		return fmt.Errorf("unknown role %q", u.Role)
	}
	for _, id := range u.ContractorIDs {
		if _, err := s.contractors.GetByID(ctx, id); err != nil {
			return fmt.Errorf("user %s: %w", u.Email, err)
		}
	}
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return s.users.Upsert(ctx, u)
}

func (s *directoryService) GetUser(ctx context.Context, email string) (*domain.User, error) {
	return s.users.GetByEmail(ctx, email)
}

func (s *directoryService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}

func (s *directoryService) AddContractor(ctx context.Context, c *domain.Contractor) error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("contractor name is required")
	}
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return s.contractors.Create(ctx, c)
}

func (s *directoryService) ListContractors(ctx context.Context) ([]domain.Contractor, error) {
	return s.contractors.List(ctx)
}

func (s *directoryService) AddRosterEntry(ctx context.Context, e *domain.RosterEntry) error {
	if strings.TrimSpace(e.NomeFantasia) == "" || strings.TrimSpace(e.Funcionario) == "" {
		return fmt.Errorf("roster entry needs both company and employee")
	}
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	return s.roster.Create(ctx, e)
}

func (s *directoryService) ListRoster(ctx context.Context) ([]domain.RosterEntry, error) {
	return s.roster.List(ctx)
}
