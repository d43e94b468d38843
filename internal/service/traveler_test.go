package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/TadasTam/LiftSearch-Backend/internal/models"
	"github.com/TadasTam/LiftSearch-Backend/internal/transport"
)

func TestTravelerService_List_AdminOnly(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := &TravelerService{Repo: r}
	ctx := context.Background()

	admin := seedAdminUser(t, r, "admin")
	user, traveler := seedTraveler(t, r, "alice", "pw1234")

	got, err := svc.List(ctx, adminIdentity(admin))
	require.NoError(t, err)
	assert.Len(t, got, 1)

	_, err = svc.List(ctx, travelerIdentity(user, traveler))
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestTravelerService_Get_SelfOrPrivileged(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := &TravelerService{Repo: r}
	ctx := context.Background()

	user, traveler := seedTraveler(t, r, "alice", "pw1234")
	other, otherTraveler := seedTraveler(t, r, "mallory", "pw1234")

	got, err := svc.Get(ctx, travelerIdentity(user, traveler), traveler.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Name)

	_, err = svc.Get(ctx, travelerIdentity(other, otherTraveler), traveler.ID)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestTravelerService_Create_AdminAddsProfile(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := &TravelerService{Repo: r}
	ctx := context.Background()

	admin := seedAdminUser(t, r, "admin")
	target := seedAdminUser(t, r, "second-admin")

	resp, err := svc.Create(ctx, adminIdentity(admin), transport.CreateTravelerRequest{UserID: target.ID})
	require.NoError(t, err)
	assert.Equal(t, "second-admin", resp.Name)

	_, err = svc.Create(ctx, adminIdentity(admin), transport.CreateTravelerRequest{UserID: target.ID})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnprocessable)
	assert.EqualError(t, err, "This user is already a traveler")
}

func TestTravelerService_Delete_CascadesAccount(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := &TravelerService{Repo: r}
	ctx := context.Background()

	user, traveler := seedTraveler(t, r, "alice", "pw1234")
	driver := seedDriver(t, r, user)
	trip := seedTrip(t, r, driver.ID, 2)
	trip.Status = models.TripStatusFinished
	require.NoError(t, r.SaveTrip(ctx, trip))

	_, riderTraveler := seedTraveler(t, r, "bob", "pw1234")
	require.NoError(t, r.CreatePassenger(ctx, &models.Passenger{
		StartCity:  "Vilnius",
		EndCity:    "Kaunas",
		TripID:     trip.ID,
		TravelerID: riderTraveler.ID,
	}))

	require.NoError(t, svc.Delete(ctx, travelerIdentity(user, traveler), traveler.ID))

	_, err := r.GetUserByID(ctx, user.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	_, err = r.GetTraveler(ctx, traveler.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	_, err = r.GetDriver(ctx, driver.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	trips, err := r.ListTripsByDriver(ctx, driver.ID)
	require.NoError(t, err)
	assert.Empty(t, trips)

	remaining, err := r.CountPassengersByTrip(ctx, trip.ID)
	require.NoError(t, err)
	assert.Zero(t, remaining)
}

func TestTravelerService_Delete_BlockedByActiveRegistration(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := &TravelerService{Repo: r}
	ctx := context.Background()

	driverUser, _ := seedTraveler(t, r, "bob", "pw1234")
	driver := seedDriver(t, r, driverUser)
	trip := seedTrip(t, r, driver.ID, 2)

	rider, riderTraveler := seedTraveler(t, r, "alice", "pw1234")
	passenger := models.Passenger{
		StartCity:  "Vilnius",
		EndCity:    "Kaunas",
		TripID:     trip.ID,
		TravelerID: riderTraveler.ID,
	}
	require.NoError(t, r.CreatePassenger(ctx, &passenger))

	err := svc.Delete(ctx, travelerIdentity(rider, riderTraveler), riderTraveler.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnprocessable)
	assert.EqualError(t, err, "Traveler can't be removed because he has active trips")
}

func TestTravelerService_Delete_BlockedByActiveTripAsDriver(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := &TravelerService{Repo: r}
	ctx := context.Background()

	user, traveler := seedTraveler(t, r, "bob", "pw1234")
	driver := seedDriver(t, r, user)
	seedTrip(t, r, driver.ID, 2)

	err := svc.Delete(ctx, travelerIdentity(user, traveler), traveler.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnprocessable)
	assert.EqualError(t, err, "Driver can't be removed because he has active trips")
}
