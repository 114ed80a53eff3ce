package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yelpcamp/internal/models"
)

func TestRegisterAndAuthenticate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.register(t, "alice")
	assert.NotEqual(t, "Sup3r$ecret", alice.PasswordHash)

	u, err := f.users.Authenticate(ctx, models.LoginRequest{Username: "alice", Password: "Sup3r$ecret"})
	require.NoError(t, err)
	assert.Equal(t, alice.ID, u.ID)

	_, err = f.users.Authenticate(ctx, models.LoginRequest{Username: "alice", Password: "wrong"})
	assert.Equal(t, KindAuthentication, KindOf(err))
	assert.Equal(t, MsgInvalidCredentials, PublicMessage(err))

	_, err = f.users.Authenticate(ctx, models.LoginRequest{Username: "nobody", Password: "Sup3r$ecret"})
	assert.Equal(t, KindAuthentication, KindOf(err))
	assert.Equal(t, MsgInvalidCredentials, PublicMessage(err))
}

func TestRegisterDuplicates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.register(t, "alice")

	_, err := f.users.Register(ctx, models.RegisterRequest{Username: "alice", Email: "new@example.com", Password: "Sup3r$ecret"})
	assert.Equal(t, KindConflict, KindOf(err))
	assert.Equal(t, MsgUsernameTaken, PublicMessage(err))

	_, err = f.users.Register(ctx, models.RegisterRequest{Username: "alice2", Email: "alice@example.com", Password: "Sup3r$ecret"})
	assert.Equal(t, KindConflict, KindOf(err))
	assert.Equal(t, MsgEmailTaken, PublicMessage(err))
}

func TestLoginAndRefresh(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.register(t, "alice")

	res, err := f.users.Login(ctx, models.LoginRequest{Username: "alice", Password: "Sup3r$ecret"})
	require.NoError(t, err)
	assert.Equal(t, alice.ID, res.UserID)
	assert.NotEmpty(t, res.Token)

	refreshed, err := f.users.Refresh(ctx, res.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, "alice", refreshed.Username)

	_, err = f.users.Refresh(ctx, res.Token)
	assert.Equal(t, KindAuthentication, KindOf(err), "an access token is not a refresh token")
}

func TestTokens(t *testing.T) {
	tokens := NewTokens("test-secret")
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	tokens.now = func() time.Time { return now }
	u := &models.User{ID: "u1", Username: "alice"}

	access, err := tokens.Issue(u)
	require.NoError(t, err)
	claims, err := tokens.Validate(access)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, now.Add(AccessTokenTTL).Unix(), claims.ExpiresAt.Unix())

	_, err = tokens.ValidateRefresh(access)
	assert.Equal(t, KindAuthentication, KindOf(err))

	_, err = NewTokens("other-secret").Validate(access)
	assert.Equal(t, KindAuthentication, KindOf(err))

	now = now.Add(AccessTokenTTL + time.Minute)
	_, err = tokens.Validate(access)
	assert.Equal(t, KindAuthentication, KindOf(err))

	refresh, err := tokens.IssueRefresh(u)
	require.NoError(t, err)
	now = now.Add(RefreshTokenTTL - time.Hour)
	_, err = tokens.ValidateRefresh(refresh)
	assert.NoError(t, err)
}
