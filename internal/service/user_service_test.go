package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayush-04jha/Expence-Management/internal/model"
)

func TestCreateUser(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	user, err := f.userSvc.CreateUser(ctx, "c1", CreateUserInput{
		Email:     "new@acme.test",
		FullName:  "New Hire",
		Role:      model.RoleEmployee,
		ManagerID: strPtr("mgr"),
		Password:  "s3cret",
	})
	require.NoError(t, err)
	assert.Equal(t, "c1", user.CompanyID)
	require.NotNil(t, user.ManagerID)
	assert.Equal(t, "mgr", *user.ManagerID)
	assert.NotEqual(t, "s3cret", user.Password, "password must be stored hashed")

	_, err = f.userSvc.CreateUser(ctx, "c1", CreateUserInput{
		Email:    "new@acme.test",
		FullName: "Dup",
		Role:     model.RoleEmployee,
		Password: "x",
	})
	require.ErrorContains(t, err, "email already in use")

	_, err = f.userSvc.CreateUser(ctx, "c1", CreateUserInput{
		Email:    "odd@acme.test",
		FullName: "Odd",
		Role:     model.Role("director"),
		Password: "x",
	})
	require.Error(t, err)
}

func TestManagerAssignmentRejectsCycles(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	// Self-management.
	_, err := f.userSvc.UpdateUser(ctx, "c1", "mgr", UpdateUserInput{ManagerID: strPtr("mgr")})
	require.ErrorIs(t, err, ErrManagerCycle)

	// emp -> mgr already; closing the loop mgr -> emp must fail.
	_, err = f.userSvc.UpdateUser(ctx, "c1", "mgr", UpdateUserInput{ManagerID: strPtr("emp")})
	require.ErrorIs(t, err, ErrManagerCycle)

	// Longer chain: mgr2 -> emp -> mgr, then mgr -> mgr2 closes a 3-cycle.
	_, err = f.userSvc.UpdateUser(ctx, "c1", "mgr2", UpdateUserInput{ManagerID: strPtr("emp")})
	require.NoError(t, err)
	_, err = f.userSvc.UpdateUser(ctx, "c1", "mgr", UpdateUserInput{ManagerID: strPtr("mgr2")})
	require.ErrorIs(t, err, ErrManagerCycle)

	// A clean assignment up the chain is fine.
	_, err = f.userSvc.UpdateUser(ctx, "c1", "mgr", UpdateUserInput{ManagerID: strPtr("admin")})
	require.NoError(t, err)
}

func TestManagerMustBeInSameCompany(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	require.NoError(t, f.users.Create(ctx, &model.User{ID: "other", CompanyID: "c2", Email: "o@x.test", Role: model.RoleManager}))

	_, err := f.userSvc.UpdateUser(ctx, "c1", "emp", UpdateUserInput{ManagerID: strPtr("other")})
	require.ErrorContains(t, err, "manager not found")

	_, err = f.userSvc.UpdateUser(ctx, "c1", "emp", UpdateUserInput{ManagerID: strPtr("ghost")})
	require.ErrorContains(t, err, "manager not found")
}

func TestUpdateUserClearManager(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	user, err := f.userSvc.UpdateUser(ctx, "c1", "emp", UpdateUserInput{ClearManager: true})
	require.NoError(t, err)
	assert.Nil(t, user.ManagerID)

	// ClearManager wins even when a manager id is supplied.
	user, err = f.userSvc.UpdateUser(ctx, "c1", "emp", UpdateUserInput{ManagerID: strPtr("mgr"), ClearManager: true})
	require.NoError(t, err)
	assert.Nil(t, user.ManagerID)
}

func TestUpdateUserScopedToCompany(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.userSvc.UpdateUser(ctx, "c2", "emp", UpdateUserInput{FullName: strPtr("Renamed")})
	require.ErrorContains(t, err, "user not found")

	role := model.RoleManager
	user, err := f.userSvc.UpdateUser(ctx, "c1", "emp", UpdateUserInput{FullName: strPtr("Renamed"), Role: &role})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", user.FullName)
	assert.Equal(t, model.RoleManager, user.Role)
}
