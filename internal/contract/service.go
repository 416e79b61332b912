package contract

import (
	"context"
	"log/slog"
	"strings"

	"github.com/Efeg35/contravo-sub006/internal"
	"github.com/Efeg35/contravo-sub006/internal/auth"
	"github.com/Efeg35/contravo-sub006/internal/workflow"
)

type Repository interface {
	Create(contract *Contract) error
	GetByID(contractID int64) (*Contract, error)
	ListAll(limit, offset int) ([]*Contract, error)
	ListByDepartments(departments []string, limit, offset int) ([]*Contract, error)
	Update(contract *Contract) error
	Archive(contractID int64) error
}

// WorkflowAPI is the slice of the workflow service the contract endpoints
// need: resolving and applying the single next action.
type WorkflowAPI interface {
	NextAction(contractID int64, actor *auth.Actor) (*workflow.NextAction, error)
	ApplyAction(ctx context.Context, contractID int64, actor *auth.Actor, action workflow.Action) error
}

type Service struct {
	repo     Repository
	workflow WorkflowAPI
	cfg      internal.WorkflowConfig
	logger   *slog.Logger
}

func NewService(repo Repository, workflowService WorkflowAPI, cfg internal.WorkflowConfig, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		workflow: workflowService,
		cfg:      cfg,
		logger:   logger,
	}
}

// CreateContract creates a new draft owned by the actor, in the actor's
// department.
func (s *Service) CreateContract(actor *auth.Actor, dto CreateContractDTO) (*Contract, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	perms, err := actor.EffectivePermissionsFor(dto.CompanyID)
	if err != nil {
		return nil, err
	}
	if !perms.Has("contracts.create") && !perms.Has("company.contracts.create") {
		s.logger.Warn("contract creation denied", "user_id", actor.ID)
		return nil, internal.ErrUnauthorizedAccess
	}

	contract := &Contract{
		Title:       strings.TrimSpace(dto.Title),
		Description: dto.Description,
		Status:      workflow.StatusDraft,
		Department:  actor.Department,
		CreatedByID: actor.ID,
		CompanyID:   dto.CompanyID,
		Amount:      dto.Amount,
		Tags:        dto.Tags,
	}

	if err := s.repo.Create(contract); err != nil {
		s.logger.Error("failed to create contract", "error", err, "user_id", actor.ID)
		return nil, internal.NewInternalError("failed to create contract", err)
	}

	s.logger.Info("contract created", "contract_id", contract.ID, "user_id", actor.ID)
	return contract, nil
}

// GetContract returns a single contract if the actor may see it: owners
// always, everyone else through the department visibility scope.
func (s *Service) GetContract(contractID int64, actor *auth.Actor) (*Contract, error) {
	contract, err := s.repo.GetByID(contractID)
	if err != nil {
		return nil, internal.ErrContractNotFound
	}

	if contract.CreatedByID != actor.ID {
		scope := s.visibilityScope(actor)
		if !scope.Allows(contract.Department) {
			s.logger.Warn("contract access denied",
				"contract_id", contractID,
				"user_id", actor.ID,
				"department", contract.Department)
			return nil, internal.ErrUnauthorizedAccess
		}
	}

	return contract, nil
}

// ListContracts enumerates contracts inside the actor's visibility scope.
func (s *Service) ListContracts(actor *auth.Actor, limit, offset int) ([]*Contract, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	scope := s.visibilityScope(actor)
	if scope.All {
		return s.repo.ListAll(limit, offset)
	}
	return s.repo.ListByDepartments(scope.Departments, limit, offset)
}

// UpdateContract applies a partial update. Only drafts are editable, and only
// by the owner or an editor-or-better role.
func (s *Service) UpdateContract(contractID int64, actor *auth.Actor, dto UpdateContractDTO) (*Contract, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	contract, err := s.repo.GetByID(contractID)
	if err != nil {
		return nil, internal.ErrContractNotFound
	}
	if !contract.IsDraft() {
		return nil, internal.ErrCannotModify
	}

	allowed, err := s.canModify(contract, actor)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, internal.ErrUnauthorizedAccess
	}

	if dto.Title != nil {
		contract.Title = strings.TrimSpace(*dto.Title)
	}
	if dto.Description != nil {
		contract.Description = *dto.Description
	}
	if dto.Amount != nil {
		contract.Amount = dto.Amount
	}
	if dto.Tags != nil {
		contract.Tags = dto.Tags
	}

	if err := s.repo.Update(contract); err != nil {
		s.logger.Error("failed to update contract", "error", err, "contract_id", contractID)
		return nil, internal.NewInternalError("failed to update contract", err)
	}
	return contract, nil
}

// ArchiveContract soft-deletes an active contract. Reserved to actors holding
// the archive permission.
func (s *Service) ArchiveContract(contractID int64, actor *auth.Actor) error {
	contract, err := s.repo.GetByID(contractID)
	if err != nil {
		return internal.ErrContractNotFound
	}
	if contract.Status != workflow.StatusActive {
		return internal.ErrInvalidTransition
	}

	perms, err := actor.EffectivePermissionsFor(contract.CompanyID)
	if err != nil {
		return err
	}
	if !perms.Has("contracts.archive") {
		return internal.ErrUnauthorizedAccess
	}

	if err := s.repo.Archive(contractID); err != nil {
		s.logger.Error("failed to archive contract", "error", err, "contract_id", contractID)
		return internal.NewInternalError("failed to archive contract", err)
	}

	s.logger.Info("contract archived", "contract_id", contractID, "user_id", actor.ID)
	return nil
}

// NextAction resolves the actor's single next workflow action, nil when
// nothing is actionable.
func (s *Service) NextAction(contractID int64, actor *auth.Actor) (*workflow.NextAction, error) {
	if _, err := s.GetContract(contractID, actor); err != nil {
		return nil, err
	}
	return s.workflow.NextAction(contractID, actor)
}

// ApplyAction executes a workflow action after re-resolving it against the
// current snapshot.
func (s *Service) ApplyAction(ctx context.Context, contractID int64, actor *auth.Actor, action workflow.Action) error {
	if _, err := s.GetContract(contractID, actor); err != nil {
		return err
	}
	return s.workflow.ApplyAction(ctx, contractID, actor, action)
}

func (s *Service) visibilityScope(actor *auth.Actor) auth.DepartmentScope {
	return auth.VisibleDepartments(
		actor.Department,
		actor.GlobalRole,
		s.cfg.HeadOfficeDepartment,
		s.cfg.AlwaysVisibleDepartments,
	)
}

// canModify mirrors the workflow's owner-or-editor rule: ownership, a global
// EDITOR-or-better role, or an EDITOR-or-better role in the owning company.
func (s *Service) canModify(contract *Contract, actor *auth.Actor) (bool, error) {
	if contract.CreatedByID == actor.ID {
		return true, nil
	}
	ok, err := actor.GlobalRole.Includes(auth.GlobalRoleEditor)
	if err != nil || ok {
		return ok, err
	}
	if contract.CompanyID != nil {
		if role, member := actor.CompanyRoleFor(*contract.CompanyID); member {
			return role.Includes(auth.CompanyRoleEditor)
		}
	}
	return false, nil
}
