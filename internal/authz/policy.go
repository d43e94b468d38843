package authz

import "errors"

// ErrForbidden means the token was valid but the caller's roles or ownership
// do not permit the action.
var ErrForbidden = errors.New("forbidden")

// The decision functions below are the per-resource policy table. Each takes
// the caller identity and the ownership facts already looked up by the
// service layer, and is pure: no I/O, no ambient state. Business-rule blocks
// (active trips, duplicate registrations, seat capacity) are not authorization
// and live in the services.

func allow(ok bool) error {
	if ok {
		return nil
	}
	return ErrForbidden
}

// Driver profiles are public to any authenticated caller.
func CanReadDriver(id Identity) error { return nil }

// A driver profile is created either by an admin on behalf of a traveler, or
// by a traveler promoting themself. The service resolves which case applies;
// these two express the actor rules.
func CanCreateDriverForTraveler(id Identity) error {
	return allow(id.IsAdmin())
}

func CanCreateDriverSelf(id Identity) error {
	return allow(id.IsTraveler() && !id.IsDriver())
}

func CanUpdateDriver(id Identity, driverUserID uint) error {
	return allow(id.IsDriver() && id.UserID == driverUserID)
}

func CanDeleteDriver(id Identity, driverUserID uint) error {
	return allow(id.IsAdmin() || (id.IsDriver() && id.UserID == driverUserID))
}

func CanReadDriverPassengers(id Identity, driverUserID uint) error {
	return allow(id.IsAdmin() || (id.IsDriver() && id.UserID == driverUserID))
}

func CanCreateTraveler(id Identity) error {
	return allow(id.IsAdmin())
}

func CanListTravelers(id Identity) error {
	return allow(id.IsAdmin())
}

func CanReadTraveler(id Identity, travelerUserID uint) error {
	return allow(id.IsAdmin() || id.IsDriver() || (id.IsTraveler() && id.UserID == travelerUserID))
}

func CanReadTravelerPassengers(id Identity, travelerUserID uint) error {
	return allow(id.IsAdmin() || (id.IsTraveler() && id.UserID == travelerUserID))
}

func CanUpdateTraveler(id Identity, travelerUserID uint) error {
	return allow(id.IsTraveler() && id.UserID == travelerUserID)
}

func CanDeleteTraveler(id Identity, travelerUserID uint) error {
	return allow(id.IsAdmin() || (id.IsTraveler() && id.UserID == travelerUserID))
}

// Trips are readable by any authenticated caller; only the owning driver may
// create, update or delete them.
func CanReadTrip(id Identity) error { return nil }

func CanManageTrip(id Identity, driverUserID uint) error {
	return allow(id.IsDriver() && id.UserID == driverUserID)
}

func CanCreatePassenger(id Identity) error {
	return allow(id.IsTraveler())
}

func CanReadTripPassengers(id Identity, driverUserID uint) error {
	return allow(id.IsAdmin() || (id.IsDriver() && id.UserID == driverUserID))
}

func CanUpdatePassenger(id Identity, travelerUserID uint) error {
	return allow(id.IsTraveler() && id.UserID == travelerUserID)
}

func CanDeletePassenger(id Identity, driverUserID, travelerUserID uint) error {
	return allow(id.IsAdmin() ||
		(id.IsDriver() && id.UserID == driverUserID) ||
		(id.IsTraveler() && id.UserID == travelerUserID))
}
