package auth

import (
	"sort"
)

// PermissionSet is a derived set of capability tokens. It is always
// recomputed from current roles, never stored.
type PermissionSet map[string]struct{}

func (ps PermissionSet) Has(permission string) bool {
	_, ok := ps[permission]
	return ok
}

func (ps PermissionSet) Add(permissions ...string) {
	for _, p := range permissions {
		ps[p] = struct{}{}
	}
}

func (ps PermissionSet) Union(other PermissionSet) PermissionSet {
	out := make(PermissionSet, len(ps)+len(other))
	for p := range ps {
		out[p] = struct{}{}
	}
	for p := range other {
		out[p] = struct{}{}
	}
	return out
}

// Contains reports whether ps is a superset of other.
func (ps PermissionSet) Contains(other PermissionSet) bool {
	for p := range other {
		if !ps.Has(p) {
			return false
		}
	}
	return true
}

// Tokens returns the capability tokens in sorted order, ready for a JSON
// response.
func (ps PermissionSet) Tokens() []string {
	out := make([]string, 0, len(ps))
	for p := range ps {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// Capability tokens granted at each rank. Each role's effective set is the
// union of its own tokens and every strictly lower rank's tokens.
var globalRoleGrants = map[GlobalRole][]string{
	GlobalRoleViewer: {
		"contracts.view",
		"files.view",
		"notifications.view",
	},
	GlobalRoleEditor: {
		"contracts.create",
		"contracts.edit",
		"contracts.submit",
		"contracts.send",
		"contracts.activate",
		"files.upload",
	},
	GlobalRoleAdmin: {
		"contracts.delete",
		"contracts.archive",
		"users.manage",
		"companies.manage",
		"templates.manage",
	},
}

var companyRoleGrants = map[CompanyRole][]string{
	CompanyRoleViewer: {
		"company.contracts.view",
	},
	CompanyRoleEditor: {
		"company.contracts.create",
		"company.contracts.edit",
		"company.contracts.submit",
		"company.contracts.send",
		"company.contracts.activate",
	},
	CompanyRoleAdmin: {
		"company.contracts.approve",
		"company.members.manage",
	},
	CompanyRoleOwner: {
		"company.settings.manage",
		"company.delete",
	},
}

// GlobalPermissions derives the permission set for a global role via the
// hierarchy's includes rule.
func GlobalPermissions(role GlobalRole) (PermissionSet, error) {
	rank, err := role.Rank()
	if err != nil {
		return nil, err
	}
	ps := make(PermissionSet)
	for r, grants := range globalRoleGrants {
		if globalRoleRank[r] <= rank {
			ps.Add(grants...)
		}
	}
	return ps, nil
}

// CompanyPermissions derives the company-scoped permission set for a company
// role.
func CompanyPermissions(role CompanyRole) (PermissionSet, error) {
	rank, err := role.Rank()
	if err != nil {
		return nil, err
	}
	ps := make(PermissionSet)
	for r, grants := range companyRoleGrants {
		if companyRoleRank[r] <= rank {
			ps.Add(grants...)
		}
	}
	return ps, nil
}

// EffectivePermissions computes an actor's permission set. With no company
// context the set is derived solely from the global role. With a company role
// the result is the union of both: a company role only ever adds
// company-scoped capabilities, it never reduces global ones.
func EffectivePermissions(globalRole GlobalRole, companyRole *CompanyRole) (PermissionSet, error) {
	ps, err := GlobalPermissions(globalRole)
	if err != nil {
		return nil, err
	}
	if companyRole == nil {
		return ps, nil
	}
	companyPS, err := CompanyPermissions(*companyRole)
	if err != nil {
		return nil, err
	}
	return ps.Union(companyPS), nil
}
