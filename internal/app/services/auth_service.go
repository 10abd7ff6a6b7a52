package services

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/safatanc/hotel-audit-core/internal/app/errors"
	"github.com/safatanc/hotel-audit-core/internal/app/models"
	"github.com/safatanc/hotel-audit-core/internal/infrastructures"
	"golang.org/x/crypto/bcrypt"
)

const tokenTypeBearer = "bearer"

type AuthService struct {
	userService *UserService
	config      infrastructures.AuthConfig
	clock       func() time.Time
}

func NewAuthService(userService *UserService, config infrastructures.AuthConfig) *AuthService {
	return &AuthService{
		userService: userService,
		config:      config,
		clock:       func() time.Time { return time.Now().UTC() },
	}
}

// Login checks the credentials and issues an access token. Unknown users and
// wrong passwords get the same answer.
func (s *AuthService) Login(ctx context.Context, username, password string) (*models.Token, error) {
	user, err := s.userService.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, errors.NewUnauthorizedError("Incorrect username or password")
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, errors.NewUnauthorizedError("Incorrect username or password")
	}

	accessToken, err := s.IssueToken(user)
	if err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to issue access token")
	}

	return &models.Token{
		AccessToken: accessToken,
		TokenType:   tokenTypeBearer,
	}, nil
}

func (s *AuthService) IssueToken(user *models.User) (string, error) {
	now := s.clock()
	claims := jwt.RegisteredClaims{
		Subject:   user.Username,
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.config.AccessTokenTTL)),
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.config.SecretKey))
}

// CurrentUser resolves a bearer token to its user
func (s *AuthService) CurrentUser(ctx context.Context, tokenString string) (*models.User, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(s.config.SecretKey), nil
	}, jwt.WithTimeFunc(s.clock))
	if err != nil || !token.Valid || claims.Subject == "" {
		return nil, errors.NewUnauthorizedError("Could not validate credentials")
	}

	user, err := s.userService.GetUserByUsername(ctx, claims.Subject)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, errors.NewUnauthorizedError("Could not validate credentials")
		}
		return nil, err
	}

	return user, nil
}
