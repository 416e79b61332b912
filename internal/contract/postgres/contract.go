package postgres

import (
	"time"

	"gorm.io/gorm"

	"github.com/Efeg35/contravo-sub006/internal/contract"
	contractDatamodel "github.com/Efeg35/contravo-sub006/internal/core/datamodel/contract"
	"github.com/Efeg35/contravo-sub006/internal/workflow"
)

// ContractRepository implements the contract.Repository interface using GORM
type ContractRepository struct {
	db *gorm.DB
}

// NewContractRepository creates a new contract repository
func NewContractRepository(db *gorm.DB) contract.Repository {
	return &ContractRepository{db: db}
}

// Create saves a new contract to the database
func (r *ContractRepository) Create(c *contract.Contract) error {
	model := contract.ToDataModel(c)
	if err := r.db.Create(model).Error; err != nil {
		return err
	}
	c.ID = model.ID
	c.CreatedAt = model.CreatedAt
	c.UpdatedAt = model.UpdatedAt
	return nil
}

// GetByID retrieves a contract with its approval and signature relations
func (r *ContractRepository) GetByID(id int64) (*contract.Contract, error) {
	var model contractDatamodel.Contract
	err := r.db.
		Preload("Approvals").
		Preload("SignatureRequests").
		Where("id = ?", id).
		First(&model).Error
	if err != nil {
		return nil, err
	}
	return contract.FromDataModel(&model), nil
}

// ListAll retrieves contracts without department restriction, newest first
func (r *ContractRepository) ListAll(limit, offset int) ([]*contract.Contract, error) {
	var models []*contractDatamodel.Contract
	err := r.db.
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return contract.FromDataModelSlice(models), nil
}

// ListByDepartments retrieves contracts inside the given department allowlist
func (r *ContractRepository) ListByDepartments(departments []string, limit, offset int) ([]*contract.Contract, error) {
	var models []*contractDatamodel.Contract
	err := r.db.
		Where("department IN ?", departments).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return contract.FromDataModelSlice(models), nil
}

// Update persists mutable contract fields
func (r *ContractRepository) Update(c *contract.Contract) error {
	model := contract.ToDataModel(c)
	model.UpdatedAt = time.Now()
	return r.db.Model(&contractDatamodel.Contract{}).
		Where("id = ?", c.ID).
		Updates(map[string]interface{}{
			"title":       model.Title,
			"description": model.Description,
			"amount":      model.Amount,
			"tags":        model.Tags,
			"updated_at":  model.UpdatedAt,
		}).Error
}

// Archive moves the contract into its terminal archived status
func (r *ContractRepository) Archive(id int64) error {
	return r.db.Model(&contractDatamodel.Contract{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     string(workflow.StatusArchived),
			"updated_at": time.Now(),
		}).Error
}
