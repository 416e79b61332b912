package auth

// DepartmentScope is the result of the visibility filter: either unfiltered
// access or an explicit department allowlist the caller applies as a
// `department IN (...)` restriction.
type DepartmentScope struct {
	All         bool
	Departments []string
}

// VisibleDepartments computes which departments the actor may enumerate.
// Global admins and head-office members see everything. Everyone else sees
// their own department plus the always-visible set (in practice head office
// and legal). The result is never empty for a department-bearing actor.
func VisibleDepartments(actorDepartment string, actorGlobalRole GlobalRole, headOffice string, alwaysVisible []string) DepartmentScope {
	if actorGlobalRole == GlobalRoleAdmin || (actorDepartment != "" && actorDepartment == headOffice) {
		return DepartmentScope{All: true}
	}

	seen := make(map[string]struct{})
	departments := make([]string, 0, len(alwaysVisible)+1)
	appendDept := func(d string) {
		if d == "" {
			return
		}
		if _, dup := seen[d]; dup {
			return
		}
		seen[d] = struct{}{}
		departments = append(departments, d)
	}

	appendDept(actorDepartment)
	for _, d := range alwaysVisible {
		appendDept(d)
	}

	return DepartmentScope{Departments: departments}
}

// Allows reports whether a resource in the given department falls inside the
// scope.
func (s DepartmentScope) Allows(department string) bool {
	if s.All {
		return true
	}
	for _, d := range s.Departments {
		if d == department {
			return true
		}
	}
	return false
}
