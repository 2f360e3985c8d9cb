package usecase

import (
	"context"
	"testing"
	"time"

	"healthhive/internal/apperr"
	"healthhive/internal/data/entity"
	"healthhive/internal/dto/request"
	"healthhive/internal/gateway"

	"github.com/stretchr/testify/require"
)

func TestAccountService_RegisterTwice(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	exists, err := env.svc.Account.CheckExists(ctx, "a@x.com")
	require.NoError(t, err)
	require.False(t, exists)

	env.register(t, "a@x.com", entity.RoleUser, entity.StatusPending, "")

	_, err = env.svc.Account.Register(ctx, "", &request.RegisterUserRequest{
		Email: "a@x.com", Name: "Again", Role: "user", Status: "pending",
	})
	require.ErrorIs(t, err, apperr.ErrConflict)

	exists, err = env.svc.Account.CheckExists(ctx, "a@x.com")
	require.NoError(t, err)
	require.True(t, exists)

	require.Equal(t, []string{gateway.EventUserRegistered}, env.events.Types())
}

func TestAccountService_RegisterValidation(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.Account.Register(context.Background(), "", &request.RegisterUserRequest{
		Email: "a@x.com", Name: "A", Role: "superuser", Status: "pending",
	})
	require.ErrorIs(t, err, apperr.ErrValidation)

	var verr *apperr.ValidationError
	require.ErrorAs(t, err, &verr)
	require.Contains(t, verr.Fields, "role")

	_, err = env.svc.Account.Register(context.Background(), "", &request.RegisterUserRequest{Email: "a@x.com"})
	require.ErrorIs(t, err, apperr.ErrValidation)
}

func TestAccountService_RegisterPrivilegedAccounts(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.register(t, "admin@x.com", entity.RoleAdmin, entity.StatusApproved, "")
	env.register(t, "plain@x.com", entity.RoleUser, entity.StatusPending, "")

	privileged := []*request.RegisterUserRequest{
		{Email: "root@x.com", Name: "Root", Role: "admin", Status: "approved"},
		{Email: "shop@x.com", Name: "Shop", Role: "seller", Status: "approved"},
		{Email: "early@x.com", Name: "Early", Role: "user", Status: "approved", ApplyingFor: "seller"},
	}

	for _, req := range privileged {
		_, err := env.svc.Account.Register(ctx, "", req)
		require.ErrorIs(t, err, apperr.ErrForbidden, req.Email)

		_, err = env.svc.Account.Register(ctx, "plain@x.com", req)
		require.ErrorIs(t, err, apperr.ErrForbidden, req.Email)

		exists, err := env.svc.Account.CheckExists(ctx, req.Email)
		require.NoError(t, err)
		require.False(t, exists, req.Email)
	}

	for _, req := range privileged {
		resp, err := env.svc.Account.Register(ctx, "admin@x.com", req)
		require.NoError(t, err, req.Email)
		require.Equal(t, entity.UserRole(req.Role), resp.Role)
	}

	applicant, err := env.svc.Account.Register(ctx, "", &request.RegisterUserRequest{
		Email: "applicant@x.com", Name: "Applicant", Role: "user", Status: "pending", ApplyingFor: "seller",
	})
	require.NoError(t, err)
	require.Equal(t, entity.RoleUser, applicant.Role)
}

func TestAccountService_EnsureAdmin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.register(t, "owner@x.com", entity.RoleUser, entity.StatusPending, "")

	require.NoError(t, env.svc.Account.EnsureAdmin(ctx, "root@x.com"))
	require.NoError(t, env.svc.Account.EnsureAdmin(ctx, "root@x.com"))
	require.NoError(t, env.svc.Account.EnsureAdmin(ctx, "owner@x.com"))

	for _, email := range []string{"root@x.com", "owner@x.com"} {
		user, err := env.svc.Account.GetUser(ctx, email)
		require.NoError(t, err)
		require.Equal(t, entity.RoleAdmin, user.Role)
		require.Equal(t, entity.StatusApproved, user.Status)
	}

	users, err := env.svc.Account.ListUsers(ctx, "root@x.com")
	require.NoError(t, err)
	require.Len(t, users, 2)
}

func TestAccountService_RecordLogin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.svc.Account.RecordLogin(ctx, "ghost@x.com", nil)
	require.ErrorIs(t, err, apperr.ErrNotFound)

	exists, err := env.svc.Account.CheckExists(ctx, "ghost@x.com")
	require.NoError(t, err)
	require.False(t, exists)

	env.register(t, "a@x.com", entity.RoleUser, entity.StatusPending, "")

	at := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	resp, err := env.svc.Account.RecordLogin(ctx, "a@x.com", &request.LoginTimeRequest{LastLoginTime: &at})
	require.NoError(t, err)
	require.True(t, at.Equal(resp.LastLoginTime))

	user, err := env.svc.Account.GetUser(ctx, "a@x.com")
	require.NoError(t, err)
	require.NotNil(t, user.LastLoginTime)
	require.True(t, at.Equal(*user.LastLoginTime))

	resp, err = env.svc.Account.RecordLogin(ctx, "a@x.com", &request.LoginTimeRequest{})
	require.NoError(t, err)
	require.WithinDuration(t, time.Now(), resp.LastLoginTime, time.Minute)
}

func TestAccountService_ResolveApplication(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.register(t, "admin@x.com", entity.RoleAdmin, entity.StatusApproved, "")
	env.register(t, "seller@x.com", entity.RoleUser, entity.StatusPending, entity.ApplyingForSeller)
	env.register(t, "other@x.com", entity.RoleUser, entity.StatusPending, entity.ApplyingForSeller)

	pending, err := env.svc.Account.ListPendingSellers(ctx, "admin@x.com")
	require.NoError(t, err)
	require.Len(t, pending, 2)

	_, err = env.svc.Account.ListPendingSellers(ctx, "seller@x.com")
	require.ErrorIs(t, err, apperr.ErrForbidden)

	_, err = env.svc.Account.ResolveApplication(ctx, "seller@x.com", &request.ApprovalRequest{Email: "seller@x.com", Status: "approved"})
	require.ErrorIs(t, err, apperr.ErrForbidden)

	resp, err := env.svc.Account.ResolveApplication(ctx, "admin@x.com", &request.ApprovalRequest{Email: "seller@x.com", Status: "approved"})
	require.NoError(t, err)
	require.True(t, resp.Changed)
	require.Equal(t, entity.RoleSeller, resp.Role)
	require.Equal(t, entity.StatusApproved, resp.Status)

	// same decision again is a no-op, a flipped decision is rejected
	resp, err = env.svc.Account.ResolveApplication(ctx, "admin@x.com", &request.ApprovalRequest{Email: "seller@x.com", Status: "approved"})
	require.NoError(t, err)
	require.False(t, resp.Changed)

	_, err = env.svc.Account.ResolveApplication(ctx, "admin@x.com", &request.ApprovalRequest{Email: "seller@x.com", Status: "rejected"})
	require.ErrorIs(t, err, apperr.ErrConflict)

	resp, err = env.svc.Account.ResolveApplication(ctx, "admin@x.com", &request.ApprovalRequest{Email: "other@x.com", Status: "rejected"})
	require.NoError(t, err)
	require.Equal(t, entity.RoleUser, resp.Role)
	require.Equal(t, entity.StatusRejected, resp.Status)

	_, err = env.svc.Account.ResolveApplication(ctx, "admin@x.com", &request.ApprovalRequest{Email: "ghost@x.com", Status: "approved"})
	require.ErrorIs(t, err, apperr.ErrNotFound)

	sellers, err := env.svc.Account.ListSellers(ctx)
	require.NoError(t, err)
	require.Len(t, sellers, 1)
	require.Equal(t, "seller@x.com", sellers[0].Email)

	pending, err = env.svc.Account.ListPendingSellers(ctx, "admin@x.com")
	require.NoError(t, err)
	require.Empty(t, pending)

	users, err := env.svc.Account.ListUsers(ctx, "admin@x.com")
	require.NoError(t, err)
	require.Len(t, users, 3)
}
