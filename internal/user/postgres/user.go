package postgres

import (
	"gorm.io/gorm"

	userDatamodel "github.com/Efeg35/contravo-sub006/internal/core/datamodel/user"
	"github.com/Efeg35/contravo-sub006/internal/user"
)

// UserRepository implements the user.Repository interface using GORM
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) user.Repository {
	return &UserRepository{db: db}
}

// GetByID retrieves an active user by id
func (r *UserRepository) GetByID(userID int64) (*user.User, error) {
	var model userDatamodel.User
	err := r.db.Where("id = ? AND is_active = ?", userID, true).First(&model).Error
	if err != nil {
		return nil, err
	}
	return user.FromDataModel(&model), nil
}

// ListByDepartments retrieves active users inside the department allowlist
func (r *UserRepository) ListByDepartments(departments []string) ([]*user.User, error) {
	var models []*userDatamodel.User
	err := r.db.
		Where("department IN ? AND is_active = ?", departments, true).
		Order("name ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return fromDataModels(models), nil
}

// ListAll retrieves every active user
func (r *UserRepository) ListAll() ([]*user.User, error) {
	var models []*userDatamodel.User
	err := r.db.
		Where("is_active = ?", true).
		Order("name ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return fromDataModels(models), nil
}

func fromDataModels(models []*userDatamodel.User) []*user.User {
	users := make([]*user.User, len(models))
	for i, m := range models {
		users[i] = user.FromDataModel(m)
	}
	return users
}
