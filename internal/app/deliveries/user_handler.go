package deliveries

import (
	"github.com/gofiber/fiber/v2"
	"github.com/safatanc/hotel-audit-core/internal/app/middlewares"
	"github.com/safatanc/hotel-audit-core/internal/app/models"
	"github.com/safatanc/hotel-audit-core/internal/app/pkg"
	"github.com/safatanc/hotel-audit-core/internal/app/services"
)

type UserHandler struct {
	userService    *services.UserService
	authMiddleware *middlewares.AuthMiddleware
}

func NewUserHandler(userService *services.UserService, authMiddleware *middlewares.AuthMiddleware) *UserHandler {
	return &UserHandler{
		userService:    userService,
		authMiddleware: authMiddleware,
	}
}

func (h *UserHandler) RegisterRoutes(router fiber.Router) {
	userGroup := router.Group("/users")

	userGroup.Get("/", h.GetUsers)
	userGroup.Get("/statistics", h.GetUserStatistics)

	// Admin only
	userGroup.Post("/", h.authMiddleware.RequireRoles(models.UserRoleAdmin), h.CreateUser)
	userGroup.Patch("/:id", h.authMiddleware.RequireRoles(models.UserRoleAdmin), h.UpdateUser)
}

func (h *UserHandler) CreateUser(c *fiber.Ctx) error {
	var req models.UserCreateRequest
	if err := parseBody(c, &req); err != nil {
		return pkg.ErrorResponse(c, err)
	}

	user, err := h.userService.CreateUser(c.UserContext(), &req)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.CreatedResponse(c, user)
}

// GetUsers lists every user, or those of one role when ?role= is given
func (h *UserHandler) GetUsers(c *fiber.Ctx) error {
	var (
		users []models.User
		err   error
	)

	if role := c.Query("role"); role != "" {
		users, err = h.userService.GetUsersByRole(c.UserContext(), models.UserRole(role))
	} else {
		users, err = h.userService.GetAllUsers(c.UserContext())
	}
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, users)
}

func (h *UserHandler) GetUserStatistics(c *fiber.Ctx) error {
	stats, err := h.userService.GetUserStatistics(c.UserContext())
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, stats)
}

func (h *UserHandler) UpdateUser(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	var patch models.UserPatch
	if err := parseBody(c, &patch); err != nil {
		return pkg.ErrorResponse(c, err)
	}

	user, err := h.userService.UpdateUser(c.UserContext(), id, &patch)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, user)
}
