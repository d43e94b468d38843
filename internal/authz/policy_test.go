package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func identity(userID uint, roles ...Role) Identity {
	return Identity{UserID: userID, Username: "u", Roles: NewRoleSet(roles...)}
}

func TestDriverPolicy(t *testing.T) {
	t.Parallel()

	admin := identity(1, RoleAdmin)
	driver := identity(2, RoleTraveler, RoleDriver)
	traveler := identity(3, RoleTraveler)

	tests := []struct {
		name    string
		check   error
		allowed bool
	}{
		{"anyone reads drivers", CanReadDriver(traveler), true},
		{"admin creates for traveler", CanCreateDriverForTraveler(admin), true},
		{"traveler cannot create for others", CanCreateDriverForTraveler(traveler), false},
		{"traveler promotes self", CanCreateDriverSelf(traveler), true},
		{"existing driver cannot promote again", CanCreateDriverSelf(driver), false},
		{"admin is not a traveler", CanCreateDriverSelf(admin), false},
		{"driver updates own profile", CanUpdateDriver(driver, 2), true},
		{"driver cannot update another", CanUpdateDriver(driver, 9), false},
		{"admin cannot update a driver", CanUpdateDriver(admin, 2), false},
		{"admin deletes any driver", CanDeleteDriver(admin, 2), true},
		{"driver deletes self", CanDeleteDriver(driver, 2), true},
		{"traveler cannot delete driver", CanDeleteDriver(traveler, 2), false},
		{"admin reads driver passengers", CanReadDriverPassengers(admin, 2), true},
		{"driver reads own passengers", CanReadDriverPassengers(driver, 2), true},
		{"driver cannot read another's passengers", CanReadDriverPassengers(driver, 9), false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if tt.allowed {
				assert.NoError(t, tt.check)
			} else {
				assert.ErrorIs(t, tt.check, ErrForbidden)
			}
		})
	}
}

func TestTravelerPolicy(t *testing.T) {
	t.Parallel()

	admin := identity(1, RoleAdmin)
	driver := identity(2, RoleTraveler, RoleDriver)
	traveler := identity(3, RoleTraveler)

	tests := []struct {
		name    string
		check   error
		allowed bool
	}{
		{"only admin lists travelers", CanListTravelers(admin), true},
		{"traveler cannot list travelers", CanListTravelers(traveler), false},
		{"only admin creates travelers", CanCreateTraveler(admin), true},
		{"driver cannot create travelers", CanCreateTraveler(driver), false},
		{"admin reads any traveler", CanReadTraveler(admin, 3), true},
		{"driver reads any traveler", CanReadTraveler(driver, 3), true},
		{"traveler reads self", CanReadTraveler(traveler, 3), true},
		{"traveler cannot read another", CanReadTraveler(traveler, 9), false},
		{"traveler reads own passengers", CanReadTravelerPassengers(traveler, 3), true},
		{"driver cannot read traveler passengers", CanReadTravelerPassengers(driver, 3), false},
		{"traveler updates self", CanUpdateTraveler(traveler, 3), true},
		{"admin cannot update traveler", CanUpdateTraveler(admin, 3), false},
		{"admin deletes any traveler", CanDeleteTraveler(admin, 3), true},
		{"traveler deletes self", CanDeleteTraveler(traveler, 3), true},
		{"traveler cannot delete another", CanDeleteTraveler(traveler, 9), false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if tt.allowed {
				assert.NoError(t, tt.check)
			} else {
				assert.ErrorIs(t, tt.check, ErrForbidden)
			}
		})
	}
}

func TestTripAndPassengerPolicy(t *testing.T) {
	t.Parallel()

	admin := identity(1, RoleAdmin)
	driver := identity(2, RoleTraveler, RoleDriver)
	traveler := identity(3, RoleTraveler)

	tests := []struct {
		name    string
		check   error
		allowed bool
	}{
		{"anyone reads trips", CanReadTrip(traveler), true},
		{"driver manages own trips", CanManageTrip(driver, 2), true},
		{"driver cannot manage another's trips", CanManageTrip(driver, 9), false},
		{"admin cannot manage trips", CanManageTrip(admin, 2), false},
		{"traveler registers as passenger", CanCreatePassenger(traveler), true},
		{"admin cannot register as passenger", CanCreatePassenger(admin), false},
		{"driver reads own trip passengers", CanReadTripPassengers(driver, 2), true},
		{"traveler cannot read trip passengers", CanReadTripPassengers(traveler, 2), false},
		{"traveler updates own registration", CanUpdatePassenger(traveler, 3), true},
		{"traveler cannot update another's", CanUpdatePassenger(traveler, 9), false},
		{"admin removes any passenger", CanDeletePassenger(admin, 2, 3), true},
		{"trip driver removes passenger", CanDeletePassenger(driver, 2, 3), true},
		{"traveler removes own registration", CanDeletePassenger(traveler, 2, 3), true},
		{"unrelated traveler cannot remove", CanDeletePassenger(traveler, 2, 9), false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if tt.allowed {
				assert.NoError(t, tt.check)
			} else {
				assert.ErrorIs(t, tt.check, ErrForbidden)
			}
		})
	}
}

func TestRoleSetFromStrings(t *testing.T) {
	t.Parallel()

	set := RoleSetFromStrings([]string{"Admin", "Driver", "bogus"})
	assert.True(t, set.Has(RoleAdmin))
	assert.True(t, set.Has(RoleDriver))
	assert.False(t, set.Has(RoleTraveler))
	assert.Len(t, set, 2)
}
