package domain

import "slices"

// User is an account allowed to read (and, for some roles, edit) projects.
type User struct {
	ID            string
	Name          string
	Email         string
	Role          UserRole
	ContractorIDs []string
}

// SeesEverything reports whether the role bypasses contractor scoping.
func (u *User) SeesEverything() bool {
	return u.Role == RoleAdmin || u.Role == RoleManager
}

// ReadScope is the set of projects a user may read.
type ReadScope struct {
	All           bool
	ContractorIDs []string
}

// ScopeNone reads nothing.
var ScopeNone = ReadScope{}

// ScopeFor derives the read scope of u. A nil user reads nothing.
func ScopeFor(u *User) ReadScope {
	if u == nil {
		return ScopeNone
	}
	if u.SeesEverything() {
		return ReadScope{All: true}
	}
	if len(u.ContractorIDs) == 0 {
		return ScopeNone
	}
	return ReadScope{ContractorIDs: slices.Clone(u.ContractorIDs)}
}

// IsEmpty reports whether the scope can never match a project.
func (s ReadScope) IsEmpty() bool {
	return !s.All && len(s.ContractorIDs) == 0
}

// Allows reports whether a project owned by contractorID is readable.
func (s ReadScope) Allows(contractorID string) bool {
	if s.All {
		return true
	}
	return contractorID != "" && slices.Contains(s.ContractorIDs, contractorID)
}

// Equal reports whether two scopes select the same projects.
func (s ReadScope) Equal(o ReadScope) bool {
	if s.All || o.All {
		return s.All == o.All
	}
	a, b := slices.Clone(s.ContractorIDs), slices.Clone(o.ContractorIDs)
	slices.Sort(a)
	slices.Sort(b)
	return slices.Equal(slices.Compact(a), slices.Compact(b))
}
