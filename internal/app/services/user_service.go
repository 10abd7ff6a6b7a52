package services

import (
	"context"
	"time"

	"github.com/safatanc/hotel-audit-core/internal/app/errors"
	"github.com/safatanc/hotel-audit-core/internal/app/models"
	"github.com/safatanc/hotel-audit-core/internal/infrastructures"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserService struct {
	db        *gorm.DB
	validator *infrastructures.Validator
	clock     func() time.Time
}

func NewUserService(db *gorm.DB, validator *infrastructures.Validator) *UserService {
	return &UserService{
		db:        db,
		validator: validator,
		clock:     func() time.Time { return time.Now().UTC() },
	}
}

// HashPassword returns the bcrypt hash stored in users.password
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func (s *UserService) CreateUser(ctx context.Context, req *models.UserCreateRequest) (*models.User, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	db := s.db.WithContext(ctx)

	var count int64
	if err := db.Model(&models.User{}).Where("username = ?", req.Username).Count(&count).Error; err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to check username")
	}
	if count > 0 {
		return nil, errors.NewBadRequestError("Username already registered")
	}

	hashed, err := HashPassword(req.Password)
	if err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to hash password")
	}

	user := &models.User{
		Username: req.Username,
		Password: hashed,
		Role:     req.Role,
		Name:     req.Name,
		Email:    req.Email,
	}

	if err := db.Create(user).Error; err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to create user")
	}

	return user, nil
}

func (s *UserService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).First(&user, id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("User not found")
		}
		return nil, errors.NewInternalServerError(err, "Failed to get user")
	}

	return &user, nil
}

func (s *UserService) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("User not found")
		}
		return nil, errors.NewInternalServerError(err, "Failed to get user")
	}

	return &user, nil
}

func (s *UserService) GetUsersByRole(ctx context.Context, role models.UserRole) ([]models.User, error) {
	if !role.IsValid() {
		return nil, errors.NewBadRequestError("Invalid role")
	}

	var users []models.User
	err := s.db.WithContext(ctx).Where("role = ?", role).Order("name ASC").Find(&users).Error
	if err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to get users")
	}

	return users, nil
}

func (s *UserService) GetAllUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := s.db.WithContext(ctx).Order("name ASC").Find(&users).Error
	if err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to get users")
	}

	return users, nil
}

// GetUserStatistics counts users per role, and how many of them joined in
// the last 30 days.
func (s *UserService) GetUserStatistics(ctx context.Context) ([]models.UserStatistics, error) {
	since := s.clock().AddDate(0, 0, -30)

	var stats []models.UserStatistics
	err := s.db.WithContext(ctx).
		Model(&models.User{}).
		Select("role, COUNT(*) AS user_count, COUNT(CASE WHEN created_at >= ? THEN 1 END) AS new_users_last_30_days", since).
		Group("role").
		Order("user_count DESC").
		Scan(&stats).Error
	if err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to get user statistics")
	}

	return stats, nil
}

func (s *UserService) UpdateUser(ctx context.Context, id uint, patch *models.UserPatch) (*models.User, error) {
	if err := s.validator.Validate(patch); err != nil {
		return nil, err
	}

	user, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if patch.Name != nil {
		updates["name"] = *patch.Name
	}
	if patch.Email != nil {
		updates["email"] = *patch.Email
	}
	if patch.Role != nil {
		updates["role"] = *patch.Role
	}
	if patch.Password != nil {
		hashed, err := HashPassword(*patch.Password)
		if err != nil {
			return nil, errors.NewInternalServerError(err, "Failed to hash password")
		}
		updates["password"] = hashed
	}

	if len(updates) == 0 {
		return user, nil
	}

	if err := s.db.WithContext(ctx).Model(user).Updates(updates).Error; err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to update user")
	}

	return s.GetUser(ctx, id)
}
