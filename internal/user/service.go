package user

import (
	"log/slog"

	"github.com/Efeg35/contravo-sub006/internal"
	"github.com/Efeg35/contravo-sub006/internal/auth"
)

type Repository interface {
	GetByID(userID int64) (*User, error)
	ListByDepartments(departments []string) ([]*User, error)
	ListAll() ([]*User, error)
}

type Service struct {
	repo   Repository
	cfg    internal.WorkflowConfig
	logger *slog.Logger
}

func NewService(repo Repository, cfg internal.WorkflowConfig, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		cfg:    cfg,
		logger: logger,
	}
}

// GetByID loads a single user with derived permissions.
func (s *Service) GetByID(userID int64) (*User, error) {
	u, err := s.repo.GetByID(userID)
	if err != nil {
		s.logger.Error("failed to load user", "error", err, "user_id", userID)
		return nil, internal.ErrUserNotFound
	}
	return u.WithPermissions()
}

// ListVisible enumerates the users inside the actor's department visibility
// scope, the same scope the contract listing applies.
func (s *Service) ListVisible(actor *auth.Actor) ([]*User, error) {
	scope := auth.VisibleDepartments(
		actor.Department,
		actor.GlobalRole,
		s.cfg.HeadOfficeDepartment,
		s.cfg.AlwaysVisibleDepartments,
	)

	if scope.All {
		return s.repo.ListAll()
	}
	return s.repo.ListByDepartments(scope.Departments)
}
