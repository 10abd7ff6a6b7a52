package services

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/safatanc/hotel-audit-core/internal/app/errors"
	"github.com/safatanc/hotel-audit-core/internal/app/models"
	"github.com/safatanc/hotel-audit-core/internal/infrastructures"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAuthService(t *testing.T) *AuthService {
	userService := NewUserService(setupTestDB(t), infrastructures.NewValidator())
	service := NewAuthService(userService, infrastructures.AuthConfig{
		SecretKey:      "test-secret",
		AccessTokenTTL: 30 * time.Minute,
	})
	service.clock = fixedClock
	return service
}

func assertUnauthorized(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	appErr, ok := err.(*errors.AppError)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, appErr.StatusCode)
}

func TestAuthService_LoginAndResolveToken(t *testing.T) {
	service := newTestAuthService(t)
	ctx := context.Background()
	user := createUser(t, service.userService.db, "sarah.johnson", models.UserRoleAuditor)

	token, err := service.Login(ctx, "sarah.johnson", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "bearer", token.TokenType)
	assert.NotEmpty(t, token.AccessToken)

	current, err := service.CurrentUser(ctx, token.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, current.ID)
	assert.Equal(t, models.UserRoleAuditor, current.Role)
}

func TestAuthService_Login_SameAnswerForUnknownUserAndBadPassword(t *testing.T) {
	service := newTestAuthService(t)
	ctx := context.Background()
	createUser(t, service.userService.db, "sarah.johnson", models.UserRoleAuditor)

	_, wrongPassword := service.Login(ctx, "sarah.johnson", "nope")
	assertUnauthorized(t, wrongPassword)

	_, unknownUser := service.Login(ctx, "nobody", "secret123")
	assertUnauthorized(t, unknownUser)

	assert.Equal(t, wrongPassword.Error(), unknownUser.Error())
}

func TestAuthService_CurrentUser_RejectsBadTokens(t *testing.T) {
	service := newTestAuthService(t)
	ctx := context.Background()
	user := createUser(t, service.userService.db, "sarah.johnson", models.UserRoleAuditor)

	valid, err := service.IssueToken(user)
	require.NoError(t, err)

	t.Run("garbage", func(t *testing.T) {
		_, err := service.CurrentUser(ctx, "not-a-token")
		assertUnauthorized(t, err)
	})

	t.Run("expired", func(t *testing.T) {
		later := *service
		later.clock = func() time.Time { return fixedNow.Add(31 * time.Minute) }
		_, err := later.CurrentUser(ctx, valid)
		assertUnauthorized(t, err)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := *service
		other.config.SecretKey = "another-secret"
		_, err := other.CurrentUser(ctx, valid)
		assertUnauthorized(t, err)
	})

	t.Run("unknown subject", func(t *testing.T) {
		ghost, err := service.IssueToken(&models.User{Username: "ghost"})
		require.NoError(t, err)
		_, err = service.CurrentUser(ctx, ghost)
		assertUnauthorized(t, err)
	})

	t.Run("none algorithm", func(t *testing.T) {
		claims := jwt.RegisteredClaims{
			Subject:   user.Username,
			ExpiresAt: jwt.NewNumericDate(fixedNow.Add(time.Hour)),
		}
		unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)
		_, err = service.CurrentUser(ctx, unsigned)
		assertUnauthorized(t, err)
	})
}
