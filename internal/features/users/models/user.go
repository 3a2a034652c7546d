package users_models

import (
	users_enums "clienttrack/internal/features/users/enums"
	"strings"
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID                   uuid.UUID            `json:"id"`
	Username             string               `json:"username"`
	FirstName            string               `json:"firstName" gorm:"column:first_name"`
	LastName             string               `json:"lastName"  gorm:"column:last_name"`
	Email                string               `json:"email"`
	HashedPassword       *string              `json:"-"         gorm:"column:hashed_password"`
	PasswordCreationTime time.Time            `json:"-"         gorm:"column:password_creation_time"`
	Role                 users_enums.UserRole `json:"role"`
	CreatedBy            *uuid.UUID           `json:"createdBy" gorm:"column:created_by"`
	LastLogin            *time.Time           `json:"lastLogin" gorm:"column:last_login"`
	CreatedAt            time.Time            `json:"createdAt"`
	UpdatedAt            time.Time            `json:"updatedAt"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) Name() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

func (u *User) HasPassword() bool {
	return u.HashedPassword != nil && *u.HashedPassword != ""
}
