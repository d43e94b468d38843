package authz

// Identity is the authenticated caller, decoded from a validated access
// token. It is passed explicitly to every authorization decision; handlers
// never reach into an ambient principal.
type Identity struct {
	UserID     uint
	Username   string
	Roles      RoleSet
	DriverID   int
	TravelerID int
}

func (id Identity) IsAdmin() bool    { return id.Roles.Has(RoleAdmin) }
func (id Identity) IsDriver() bool   { return id.Roles.Has(RoleDriver) }
func (id Identity) IsTraveler() bool { return id.Roles.Has(RoleTraveler) }
