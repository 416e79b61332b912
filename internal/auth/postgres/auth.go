package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/Efeg35/contravo-sub006/internal"
	"github.com/Efeg35/contravo-sub006/internal/auth"
	companyDatamodel "github.com/Efeg35/contravo-sub006/internal/core/datamodel/company"
	userDatamodel "github.com/Efeg35/contravo-sub006/internal/core/datamodel/user"
)

// AuthRepository implements auth.Repository using GORM.
type AuthRepository struct {
	db *gorm.DB
}

func NewAuthRepository(db *gorm.DB) *AuthRepository {
	return &AuthRepository{db: db}
}

func (r *AuthRepository) GetCredentialsByEmail(email string) (string, int64, error) {
	var u userDatamodel.User
	err := r.db.Where("email = ? AND is_active = ?", email, true).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", 0, internal.ErrInvalidCredentials
		}
		return "", 0, err
	}
	return u.PasswordHash, u.ID, nil
}

// GetActorByID loads the user together with all company memberships in one
// snapshot, so downstream decisions work off a consistent view.
func (r *AuthRepository) GetActorByID(userID int64) (*auth.Actor, error) {
	var u userDatamodel.User
	err := r.db.Where("id = ?", userID).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrUserNotFound
		}
		return nil, err
	}
	if !u.IsActive {
		return nil, internal.ErrUserInactive
	}

	var memberRows []companyDatamodel.CompanyMember
	if err := r.db.Where("user_id = ?", userID).Find(&memberRows).Error; err != nil {
		return nil, err
	}

	memberships := make([]auth.CompanyMembership, 0, len(memberRows))
	for _, m := range memberRows {
		memberships = append(memberships, auth.CompanyMembership{
			CompanyID:   m.CompanyID,
			CompanyRole: auth.CompanyRole(m.CompanyRole),
		})
	}

	return &auth.Actor{
		ID:             u.ID,
		Email:          u.Email,
		Name:           u.Name,
		GlobalRole:     auth.GlobalRole(u.GlobalRole),
		Department:     u.Department,
		DepartmentRole: auth.DepartmentRole(u.DepartmentRole),
		Memberships:    memberships,
	}, nil
}
