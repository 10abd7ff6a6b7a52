package middlewares

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/safatanc/hotel-audit-core/internal/app/errors"
	"github.com/safatanc/hotel-audit-core/internal/app/models"
	"github.com/safatanc/hotel-audit-core/internal/app/pkg"
	"github.com/safatanc/hotel-audit-core/internal/app/services"
)

// UserLocalKey is where Authenticate stores the current *models.User
const UserLocalKey = "user"

type AuthMiddleware struct {
	authService *services.AuthService
}

func NewAuthMiddleware(authService *services.AuthService) *AuthMiddleware {
	return &AuthMiddleware{authService: authService}
}

func (m *AuthMiddleware) Authenticate(c *fiber.Ctx) error {
	header := c.Get(fiber.HeaderAuthorization)
	if header == "" || !strings.HasPrefix(strings.ToLower(header), "bearer ") {
		c.Set(fiber.HeaderWWWAuthenticate, "Bearer")
		return pkg.ErrorResponse(c, errors.NewUnauthorizedError("Not authenticated"))
	}

	token := strings.TrimSpace(header[len("bearer "):])

	user, err := m.authService.CurrentUser(c.UserContext(), token)
	if err != nil {
		c.Set(fiber.HeaderWWWAuthenticate, "Bearer")
		return pkg.ErrorResponse(c, err)
	}

	c.Locals(UserLocalKey, user)

	return c.Next()
}

// RequireRoles lets the request through only for the given roles. It must
// run after Authenticate.
func (m *AuthMiddleware) RequireRoles(roles ...models.UserRole) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		if user == nil {
			return pkg.ErrorResponse(c, errors.NewUnauthorizedError("Not authenticated"))
		}

		for _, role := range roles {
			if user.Role == role {
				return c.Next()
			}
		}

		return pkg.ErrorResponse(c, errors.NewForbiddenError())
	}
}

// CurrentUser returns the authenticated user or nil
func CurrentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(UserLocalKey).(*models.User)
	return user
}
