package user

import (
	"time"

	"github.com/Efeg35/contravo-sub006/internal/auth"
	userDatamodel "github.com/Efeg35/contravo-sub006/internal/core/datamodel/user"
)

// User is the API-facing view of an account, roles and derived permission
// tokens included.
type User struct {
	ID             int64     `json:"id"`
	Email          string    `json:"email"`
	Name           string    `json:"name"`
	GlobalRole     string    `json:"global_role"`
	Department     string    `json:"department,omitempty"`
	DepartmentRole string    `json:"department_role,omitempty"`
	Permissions    []string  `json:"permissions,omitempty"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
}

func FromDataModel(m *userDatamodel.User) *User {
	return &User{
		ID:             m.ID,
		Email:          m.Email,
		Name:           m.Name,
		GlobalRole:     m.GlobalRole,
		Department:     m.Department,
		DepartmentRole: m.DepartmentRole,
		IsActive:       m.IsActive,
		CreatedAt:      m.CreatedAt,
	}
}

// WithPermissions attaches the derived global permission tokens. Unknown
// roles propagate as errors; the permission list is never guessed.
func (u *User) WithPermissions() (*User, error) {
	perms, err := auth.EffectivePermissions(auth.GlobalRole(u.GlobalRole), nil)
	if err != nil {
		return nil, err
	}
	u.Permissions = perms.Tokens()
	return u, nil
}
