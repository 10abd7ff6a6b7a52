package deliveries

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/safatanc/hotel-audit-core/internal/app/errors"
	"github.com/safatanc/hotel-audit-core/internal/app/middlewares"
	"github.com/safatanc/hotel-audit-core/internal/app/models"
	"github.com/safatanc/hotel-audit-core/internal/app/pkg"
	"github.com/safatanc/hotel-audit-core/internal/app/services"
	"github.com/safatanc/hotel-audit-core/internal/infrastructures"
)

type AuthHandler struct {
	authService    *services.AuthService
	authMiddleware *middlewares.AuthMiddleware
	validator      *infrastructures.Validator
}

func NewAuthHandler(authService *services.AuthService, authMiddleware *middlewares.AuthMiddleware, validator *infrastructures.Validator) *AuthHandler {
	return &AuthHandler{
		authService:    authService,
		authMiddleware: authMiddleware,
		validator:      validator,
	}
}

func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/login", h.LoginForm)
	router.Post("/login-json", h.LoginJSON)
	router.Post("/login-flexible", h.LoginFlexible)
	router.Get("/me", h.authMiddleware.Authenticate, h.Me)
}

// LoginForm accepts OAuth2 password-style form fields
func (h *AuthHandler) LoginForm(c *fiber.Ctx) error {
	req := models.LoginRequest{
		Username: c.FormValue("username"),
		Password: c.FormValue("password"),
	}
	return h.login(c, &req)
}

func (h *AuthHandler) LoginJSON(c *fiber.Ctx) error {
	var req models.LoginRequest
	if err := parseBody(c, &req); err != nil {
		return pkg.ErrorResponse(c, err)
	}
	return h.login(c, &req)
}

// LoginFlexible takes JSON or form credentials depending on the content
// type, falling back to JSON.
func (h *AuthHandler) LoginFlexible(c *fiber.Ctx) error {
	var req models.LoginRequest

	contentType := strings.ToLower(c.Get(fiber.HeaderContentType))
	switch {
	case strings.Contains(contentType, fiber.MIMEApplicationForm), strings.Contains(contentType, fiber.MIMEMultipartForm):
		req.Username = c.FormValue("username")
		req.Password = c.FormValue("password")
	default:
		if err := c.App().Config().JSONDecoder(c.Body(), &req); err != nil {
			return pkg.ErrorResponse(c, errors.NewUnprocessableEntityError("Invalid request format. Expected JSON or form data."))
		}
	}

	if req.Username == "" || req.Password == "" {
		return pkg.ErrorResponse(c, errors.NewUnprocessableEntityError("Username and password are required"))
	}

	return h.login(c, &req)
}

func (h *AuthHandler) login(c *fiber.Ctx, req *models.LoginRequest) error {
	if err := h.validator.Validate(req); err != nil {
		return pkg.ErrorResponse(c, err)
	}

	token, err := h.authService.Login(c.UserContext(), req.Username, req.Password)
	if err != nil {
		c.Set(fiber.HeaderWWWAuthenticate, "Bearer")
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, token)
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	return pkg.SuccessResponse(c, middlewares.CurrentUser(c))
}
