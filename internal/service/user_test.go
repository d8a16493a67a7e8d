package service

import (
	"context"
	"testing"

	"ecostore-api/internal/dbtest"
	"ecostore-api/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestValidateSession(t *testing.T) {
	ctx := context.Background()
	db := dbtest.Open(t)
	user := dbtest.CreateUser(t, db, "ana@example.com", "abc")
	noToken := dbtest.CreateUser(t, db, "bo@example.com", "")
	svc := NewUserService(repository.NewUserRepository(db), zap.NewNop())

	assert.True(t, svc.ValidateSession(ctx, user.ID, "abc"))
	assert.False(t, svc.ValidateSession(ctx, user.ID, "abd"))
	assert.False(t, svc.ValidateSession(ctx, user.ID, "ab"))
	assert.False(t, svc.ValidateSession(ctx, user.ID, ""))
	assert.False(t, svc.ValidateSession(ctx, 999, "abc"))
	assert.False(t, svc.ValidateSession(ctx, noToken.ID, ""))
}

func TestCreateUserAndIssueSessionToken(t *testing.T) {
	ctx := context.Background()
	db := dbtest.Open(t)
	svc := NewUserService(repository.NewUserRepository(db), zap.NewNop())

	user, err := svc.CreateUser(ctx, "ana@example.com", "Ana")
	require.NoError(t, err)
	require.NotEmpty(t, user.SessionToken)
	assert.True(t, svc.ValidateSession(ctx, user.ID, user.SessionToken))

	token, err := svc.IssueSessionToken(ctx, user.ID)
	require.NoError(t, err)
	assert.NotEqual(t, user.SessionToken, token)
	assert.True(t, svc.ValidateSession(ctx, user.ID, token))
	assert.False(t, svc.ValidateSession(ctx, user.ID, user.SessionToken))

	_, err = svc.IssueSessionToken(ctx, 999)
	assert.Error(t, err)

	_, err = svc.CreateUser(ctx, "  ", "nobody")
	assert.Error(t, err)
}
