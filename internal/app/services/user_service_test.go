package services

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/safatanc/hotel-audit-core/internal/app/errors"
	"github.com/safatanc/hotel-audit-core/internal/app/models"
	"github.com/safatanc/hotel-audit-core/internal/infrastructures"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestUserService(t *testing.T) *UserService {
	service := NewUserService(setupTestDB(t), infrastructures.NewValidator())
	service.clock = fixedClock
	return service
}

func TestUserService_CreateUser(t *testing.T) {
	service := newTestUserService(t)
	ctx := context.Background()

	req := &models.UserCreateRequest{
		Username: "raj.patel",
		Password: "corporate123",
		Role:     models.UserRoleCorporate,
		Name:     "Raj Patel",
		Email:    "raj.patel@hotel-audit.com",
	}

	user, err := service.CreateUser(ctx, req)
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.NotEqual(t, req.Password, user.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)))

	_, err = service.CreateUser(ctx, req)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, err.(*errors.AppError).StatusCode)

	req.Username = "someone.else"
	req.Role = "guest"
	_, err = service.CreateUser(ctx, req)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, err.(*errors.AppError).StatusCode)
}

func TestUserService_GetUsersByRole(t *testing.T) {
	service := newTestUserService(t)
	ctx := context.Background()
	createUser(t, service.db, "sarah.johnson", models.UserRoleAuditor)
	createUser(t, service.db, "mike.chen", models.UserRoleAuditor)
	createUser(t, service.db, "lisa.thompson", models.UserRoleReviewer)

	auditors, err := service.GetUsersByRole(ctx, models.UserRoleAuditor)
	require.NoError(t, err)
	require.Len(t, auditors, 2)
	assert.Equal(t, "mike.chen", auditors[0].Username)

	_, err = service.GetUsersByRole(ctx, "guest")
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, err.(*errors.AppError).StatusCode)
}

func TestUserService_GetUserStatistics(t *testing.T) {
	service := newTestUserService(t)
	ctx := context.Background()

	joined := map[string]time.Time{
		"sarah.johnson": daysAgo(90),
		"mike.chen":     daysAgo(3),
		"lisa.thompson": daysAgo(10),
	}
	for username, role := range map[string]models.UserRole{
		"sarah.johnson": models.UserRoleAuditor,
		"mike.chen":     models.UserRoleAuditor,
		"lisa.thompson": models.UserRoleReviewer,
	} {
		user := createUser(t, service.db, username, role)
		require.NoError(t, service.db.Model(user).Update("created_at", joined[username]).Error)
	}

	stats, err := service.GetUserStatistics(ctx)
	require.NoError(t, err)
	require.Len(t, stats, 2)

	assert.Equal(t, models.UserRoleAuditor, stats[0].Role)
	assert.Equal(t, int64(2), stats[0].UserCount)
	assert.Equal(t, int64(1), stats[0].NewUsersLast30Days)
	assert.Equal(t, models.UserRoleReviewer, stats[1].Role)
	assert.Equal(t, int64(1), stats[1].NewUsersLast30Days)
}

func TestUserService_UpdateUser(t *testing.T) {
	service := newTestUserService(t)
	ctx := context.Background()
	user := createUser(t, service.db, "priya.sharma", models.UserRoleHotelGM)

	name := "Priya S."
	password := "newpassword"
	updated, err := service.UpdateUser(ctx, user.ID, &models.UserPatch{Name: &name, Password: &password})
	require.NoError(t, err)
	assert.Equal(t, name, updated.Name)
	assert.Equal(t, models.UserRoleHotelGM, updated.Role)

	var stored models.User
	require.NoError(t, service.db.First(&stored, user.ID).Error)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte(password)))

	_, err = service.UpdateUser(ctx, 999, &models.UserPatch{Name: &name})
	assert.True(t, errors.IsNotFound(err))
}
