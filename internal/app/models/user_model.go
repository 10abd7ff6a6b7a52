package models

import (
	"time"
)

type UserRole string

const (
	UserRoleAdmin     UserRole = "admin"
	UserRoleAuditor   UserRole = "auditor"
	UserRoleReviewer  UserRole = "reviewer"
	UserRoleCorporate UserRole = "corporate"
	UserRoleHotelGM   UserRole = "hotelgm"
)

func (r UserRole) IsValid() bool {
	switch r {
	case UserRoleAdmin, UserRoleAuditor, UserRoleReviewer, UserRoleCorporate, UserRoleHotelGM:
		return true
	default:
		return false
	}
}

type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"username"`
	Password  string    `gorm:"type:varchar(255);not null" json:"-"`
	Role      UserRole  `gorm:"type:varchar(20);not null;index" json:"role"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	Email     string    `gorm:"type:varchar(255);not null" json:"email"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

type UserCreateRequest struct {
	Username string   `json:"username" validate:"required,max=100"`
	Password string   `json:"password" validate:"required,min=6,max=72"`
	Role     UserRole `json:"role" validate:"required,oneof=admin auditor reviewer corporate hotelgm"`
	Name     string   `json:"name" validate:"required,max=255"`
	Email    string   `json:"email" validate:"required,email,max=255"`
}

// UserPatch lists every field a profile update may touch. Nil fields are
// left as they are.
type UserPatch struct {
	Name     *string   `json:"name,omitempty" validate:"omitempty,max=255"`
	Email    *string   `json:"email,omitempty" validate:"omitempty,email,max=255"`
	Role     *UserRole `json:"role,omitempty" validate:"omitempty,oneof=admin auditor reviewer corporate hotelgm"`
	Password *string   `json:"password,omitempty" validate:"omitempty,min=6,max=72"`
}

type UserStatistics struct {
	Role               UserRole `json:"role"`
	UserCount          int64    `json:"user_count"`
	NewUsersLast30Days int64    `gorm:"column:new_users_last_30_days" json:"new_users_last_30_days"`
}

type LoginRequest struct {
	Username string `json:"username" form:"username" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}
