package authz

// Role is the closed set of account roles. A user may hold several at once:
// every registered user starts as a Traveler and may later also become a
// Driver.
type Role string

const (
	RoleAdmin    Role = "Admin"
	RoleTraveler Role = "Traveler"
	RoleDriver   Role = "Driver"
)

var AllRoles = []Role{RoleAdmin, RoleTraveler, RoleDriver}

func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleAdmin, RoleTraveler, RoleDriver:
		return Role(s), true
	}
	return "", false
}

// RoleSet is a tagged set over the closed enumeration, replacing ad hoc
// string membership checks.
type RoleSet map[Role]struct{}

func NewRoleSet(roles ...Role) RoleSet {
	set := make(RoleSet, len(roles))
	for _, r := range roles {
		set[r] = struct{}{}
	}
	return set
}

func RoleSetFromStrings(raw []string) RoleSet {
	set := make(RoleSet, len(raw))
	for _, s := range raw {
		if r, ok := ParseRole(s); ok {
			set[r] = struct{}{}
		}
	}
	return set
}

func (s RoleSet) Has(r Role) bool {
	_, ok := s[r]
	return ok
}

func (s RoleSet) Strings() []string {
	out := make([]string, 0, len(s))
	for _, r := range AllRoles {
		if s.Has(r) {
			out = append(out, string(r))
		}
	}
	return out
}
