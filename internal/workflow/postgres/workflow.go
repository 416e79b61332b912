package postgres

import (
	"errors"
	"log/slog"
	"time"

	"gorm.io/gorm"

	companyDatamodel "github.com/Efeg35/contravo-sub006/internal/core/datamodel/company"
	contractDatamodel "github.com/Efeg35/contravo-sub006/internal/core/datamodel/contract"
	"github.com/Efeg35/contravo-sub006/internal/workflow"
)

// WorkflowRepository implements workflow.Repository using GORM. Snapshots are
// loaded with their relations in one read so the resolver never sees a
// half-updated contract.
type WorkflowRepository struct {
	db     *gorm.DB
	logger *slog.Logger
}

// NewWorkflowRepository creates a new workflow repository
func NewWorkflowRepository(db *gorm.DB, logger *slog.Logger) workflow.Repository {
	return &WorkflowRepository{db: db, logger: logger}
}

// GetSnapshot loads the contract with approvals, signature requests and the
// owning company's creator
func (r *WorkflowRepository) GetSnapshot(contractID int64) (*workflow.ContractSnapshot, error) {
	var model contractDatamodel.Contract
	err := r.db.
		Preload("Approvals").
		Preload("SignatureRequests").
		Where("id = ?", contractID).
		First(&model).Error
	if err != nil {
		return nil, err
	}

	snapshot := &workflow.ContractSnapshot{
		ID:          model.ID,
		Status:      workflow.ContractStatus(model.Status),
		CreatedByID: model.CreatedByID,
		CompanyID:   model.CompanyID,
	}

	for _, a := range model.Approvals {
		snapshot.Approvals = append(snapshot.Approvals, workflow.Approval{
			ApproverID: a.ApproverID,
			Status:     workflow.ApprovalStatus(a.Status),
			CreatedAt:  a.CreatedAt,
		})
	}
	for _, s := range model.SignatureRequests {
		snapshot.SignatureRequests = append(snapshot.SignatureRequests, workflow.SignatureRequest{
			UserID: s.UserID,
			Status: workflow.SignatureStatus(s.Status),
			Order:  s.SigningOrder,
		})
	}

	if model.CompanyID != nil {
		var company companyDatamodel.Company
		if err := r.db.Where("id = ?", *model.CompanyID).First(&company).Error; err == nil {
			snapshot.CompanyCreatedBy = &company.CreatedByID
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	return snapshot, nil
}

// GetRecord flattens the contract row into the generic map the condition
// evaluator works on
func (r *WorkflowRepository) GetRecord(contractID int64) (map[string]any, error) {
	var model contractDatamodel.Contract
	if err := r.db.Where("id = ?", contractID).First(&model).Error; err != nil {
		return nil, err
	}

	record := map[string]any{
		"id":            model.ID,
		"title":         model.Title,
		"status":        model.Status,
		"department":    model.Department,
		"created_by_id": model.CreatedByID,
		"tags":          model.Tags,
	}
	if model.Amount != nil {
		record["amount"] = *model.Amount
	}
	if model.CompanyID != nil {
		record["company_id"] = *model.CompanyID
	}
	return record, nil
}

// GetSteps loads the contract's workflow steps with decoded conditions
func (r *WorkflowRepository) GetSteps(contractID int64) ([]workflow.Step, error) {
	var models []contractDatamodel.WorkflowStep
	err := r.db.
		Where("contract_id = ?", contractID).
		Order("step_order ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	steps := make([]workflow.Step, 0, len(models))
	for _, m := range models {
		steps = append(steps, workflow.Step{
			ID:         m.ID,
			Name:       m.Name,
			Order:      m.StepOrder,
			Conditions: workflow.ParseStepConditions(m.Conditions, r.logger),
		})
	}
	return steps, nil
}

// UpdateStatus moves the contract to the given status
func (r *WorkflowRepository) UpdateStatus(contractID int64, status workflow.ContractStatus) error {
	return r.db.Model(&contractDatamodel.Contract{}).
		Where("id = ?", contractID).
		Updates(map[string]interface{}{
			"status":     string(status),
			"updated_at": time.Now(),
		}).Error
}

// SetApprovalStatus decides the approver's earliest pending approval
func (r *WorkflowRepository) SetApprovalStatus(contractID, approverID int64, status workflow.ApprovalStatus) error {
	var approval contractDatamodel.Approval
	err := r.db.
		Where("contract_id = ? AND approver_id = ? AND status = ?", contractID, approverID, string(workflow.ApprovalPending)).
		Order("created_at ASC").
		First(&approval).Error
	if err != nil {
		return err
	}

	now := time.Now()
	return r.db.Model(&contractDatamodel.Approval{}).
		Where("id = ?", approval.ID).
		Updates(map[string]interface{}{
			"status":     string(status),
			"decided_at": now,
		}).Error
}

// SetSignatureStatus finalizes one entry of the signing sequence
func (r *WorkflowRepository) SetSignatureStatus(contractID, userID int64, order int, status workflow.SignatureStatus) error {
	updates := map[string]interface{}{
		"status": string(status),
	}
	if status == workflow.SignatureSigned {
		updates["signed_at"] = time.Now()
	}

	return r.db.Model(&contractDatamodel.SignatureRequest{}).
		Where("contract_id = ? AND user_id = ? AND signing_order = ?", contractID, userID, order).
		Updates(updates).Error
}
