package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TadasTam/LiftSearch-Backend/internal/authz"
)

func TestAuthService_Register_CreatesTravelerAccount(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := newTestAuthService(r)
	ctx := context.Background()

	user, err := svc.Register(ctx, "alice", "pw1234", "alice@example.com")
	require.NoError(t, err)
	require.NotZero(t, user.ID)
	assert.Equal(t, "alice", user.Username)

	roles, err := r.GetRoles(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, roles.Has(authz.RoleTraveler))
	assert.False(t, roles.Has(authz.RoleDriver))

	traveler, err := r.GetTravelerByUserID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, traveler.CancelledCount)
}

func TestAuthService_Register_DuplicateUsername(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := newTestAuthService(r)
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", "pw1234", "alice@example.com")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "alice", "other", "other@example.com")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnprocessable)
	assert.EqualError(t, err, "Username already taken")
}

func TestAuthService_Login_IssuesTokenPair(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := newTestAuthService(r)
	ctx := context.Background()

	_, traveler := seedTraveler(t, r, "alice", "pw1234")

	pair, err := svc.Login(ctx, "alice", "pw1234")
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)

	claims, err := svc.Tokens.ParseAccessToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Username)
	assert.Contains(t, claims.Roles, "Traveler")
	assert.Equal(t, -1, claims.DriverID)
	assert.Equal(t, int(traveler.ID), claims.TravelerID)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := newTestAuthService(r)
	ctx := context.Background()

	seedTraveler(t, r, "alice", "pw1234")

	pair, err := svc.Login(ctx, "alice", "wrong")
	require.Error(t, err)
	assert.Nil(t, pair)
	assert.ErrorIs(t, err, ErrUnprocessable)
	assert.EqualError(t, err, "Username or password was incorrect")
}

func TestAuthService_Login_UnknownUser(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := newTestAuthService(r)

	pair, err := svc.Login(context.Background(), "nobody", "pw1234")
	require.Error(t, err)
	assert.Nil(t, pair)
	assert.ErrorIs(t, err, ErrUnprocessable)
}

func TestAuthService_Refresh_IssuesNewPair(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := newTestAuthService(r)
	ctx := context.Background()

	seedTraveler(t, r, "alice", "pw1234")
	pair, err := svc.Login(ctx, "alice", "pw1234")
	require.NoError(t, err)

	next, err := svc.Refresh(ctx, pair.RefreshToken)
	require.NoError(t, err)
	require.NotEmpty(t, next.AccessToken)
	require.NotEmpty(t, next.RefreshToken)

	claims, err := svc.Tokens.ParseAccessToken(next.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Username)
}

func TestAuthService_Refresh_GarbageToken(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := newTestAuthService(r)

	pair, err := svc.Refresh(context.Background(), "not-a-valid-jwt")
	require.Error(t, err)
	assert.Nil(t, pair)
	assert.ErrorIs(t, err, ErrUnprocessable)
	assert.EqualError(t, err, "Invalid token")
}

func TestAuthService_Refresh_DeletedUser(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := newTestAuthService(r)
	ctx := context.Background()

	user, _ := seedTraveler(t, r, "alice", "pw1234")
	pair, err := svc.Login(ctx, "alice", "pw1234")
	require.NoError(t, err)

	require.NoError(t, r.DeleteUser(ctx, user.ID))

	_, err = svc.Refresh(ctx, pair.RefreshToken)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnprocessable)
	assert.EqualError(t, err, "Invalid token")
}

func TestAuthService_Logout_InvalidatesRefreshTokens(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := newTestAuthService(r)
	ctx := context.Background()

	user, traveler := seedTraveler(t, r, "alice", "pw1234")
	pair, err := svc.Login(ctx, "alice", "pw1234")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, travelerIdentity(user, traveler)))

	// The refresh token itself is still well formed but redemption is refused.
	_, err = svc.Refresh(ctx, pair.RefreshToken)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnprocessable)
	assert.EqualError(t, err, "Invalid token")
}

func TestAuthService_Login_ClearsForcedRelogin(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := newTestAuthService(r)
	ctx := context.Background()

	user, traveler := seedTraveler(t, r, "alice", "pw1234")
	first, err := svc.Login(ctx, "alice", "pw1234")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, travelerIdentity(user, traveler)))
	_, err = svc.Refresh(ctx, first.RefreshToken)
	require.Error(t, err)

	second, err := svc.Login(ctx, "alice", "pw1234")
	require.NoError(t, err)

	_, err = svc.Refresh(ctx, second.RefreshToken)
	require.NoError(t, err)
}
