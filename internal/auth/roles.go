package auth

import (
	"github.com/Efeg35/contravo-sub006/internal"
)

// Role tiers. Each tier is totally ordered; a role implicitly holds every
// permission of lower ranks within its own tier.

type GlobalRole string

const (
	GlobalRoleAdmin  GlobalRole = "ADMIN"
	GlobalRoleEditor GlobalRole = "EDITOR"
	GlobalRoleViewer GlobalRole = "VIEWER"
)

type CompanyRole string

const (
	CompanyRoleOwner  CompanyRole = "OWNER"
	CompanyRoleAdmin  CompanyRole = "ADMIN"
	CompanyRoleEditor CompanyRole = "EDITOR"
	CompanyRoleViewer CompanyRole = "VIEWER"
)

type DepartmentRole string

const (
	DepartmentRoleHead    DepartmentRole = "HEAD"
	DepartmentRoleManager DepartmentRole = "MANAGER"
	DepartmentRoleMember  DepartmentRole = "MEMBER"
)

type RoleTier string

const (
	TierGlobal     RoleTier = "global"
	TierCompany    RoleTier = "company"
	TierDepartment RoleTier = "department"
)

var globalRoleRank = map[GlobalRole]int{
	GlobalRoleViewer: 1,
	GlobalRoleEditor: 2,
	GlobalRoleAdmin:  3,
}

var companyRoleRank = map[CompanyRole]int{
	CompanyRoleViewer: 1,
	CompanyRoleEditor: 2,
	CompanyRoleAdmin:  3,
	CompanyRoleOwner:  4,
}

var departmentRoleRank = map[DepartmentRole]int{
	DepartmentRoleMember:  1,
	DepartmentRoleManager: 2,
	DepartmentRoleHead:    3,
}

func (r GlobalRole) Rank() (int, error) {
	rank, ok := globalRoleRank[r]
	if !ok {
		return 0, internal.NewInvalidRoleError(string(r), string(TierGlobal))
	}
	return rank, nil
}

// Includes reports whether r holds every permission of required, i.e. ranks
// at or above it within the global tier.
func (r GlobalRole) Includes(required GlobalRole) (bool, error) {
	have, err := r.Rank()
	if err != nil {
		return false, err
	}
	want, err := required.Rank()
	if err != nil {
		return false, err
	}
	return have >= want, nil
}

func (r CompanyRole) Rank() (int, error) {
	rank, ok := companyRoleRank[r]
	if !ok {
		return 0, internal.NewInvalidRoleError(string(r), string(TierCompany))
	}
	return rank, nil
}

func (r CompanyRole) Includes(required CompanyRole) (bool, error) {
	have, err := r.Rank()
	if err != nil {
		return false, err
	}
	want, err := required.Rank()
	if err != nil {
		return false, err
	}
	return have >= want, nil
}

func (r DepartmentRole) Rank() (int, error) {
	rank, ok := departmentRoleRank[r]
	if !ok {
		return 0, internal.NewInvalidRoleError(string(r), string(TierDepartment))
	}
	return rank, nil
}

func (r DepartmentRole) Includes(required DepartmentRole) (bool, error) {
	have, err := r.Rank()
	if err != nil {
		return false, err
	}
	want, err := required.Rank()
	if err != nil {
		return false, err
	}
	return have >= want, nil
}

// RolePriority returns a monotonically increasing integer per rank for the
// given tier. Callers break ties at equal priority themselves, typically by
// record creation time; equal ranks are never resolved silently here.
func RolePriority(role string, tier RoleTier) (int, error) {
	switch tier {
	case TierGlobal:
		return GlobalRole(role).Rank()
	case TierCompany:
		return CompanyRole(role).Rank()
	case TierDepartment:
		return DepartmentRole(role).Rank()
	default:
		return 0, internal.NewInvalidRoleError(role, string(tier))
	}
}
