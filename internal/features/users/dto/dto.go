package users_dto

import (
	"time"

	users_enums "clienttrack/internal/features/users/enums"

	"github.com/google/uuid"
)

type SignInRequestDTO struct {
	Email    string `json:"email"    binding:"required"`
	Password string `json:"password" binding:"required"`
}

type SignInResponseDTO struct {
	UserID uuid.UUID `json:"userId"`
	Email  string    `json:"email"`
	Token  string    `json:"token"`
}

type SetAdminPasswordRequestDTO struct {
	Password string `json:"password" binding:"required,min=8"`
}

type IsAdminHasPasswordResponseDTO struct {
	HasPassword bool `json:"hasPassword"`
}

type ChangePasswordRequestDTO struct {
	NewPassword string `json:"newPassword" binding:"required,min=8"`
}

type CreateUserRequestDTO struct {
	FirstName            string               `json:"firstName"            binding:"required,min=3,max=191"`
	LastName             string               `json:"lastName"             binding:"required,min=3,max=191"`
	Email                string               `json:"email"                binding:"required,email,max=191"`
	Password             string               `json:"password"             binding:"required,min=8"`
	PasswordConfirmation string               `json:"passwordConfirmation" binding:"required,eqfield=Password"`
	Role                 users_enums.UserRole `json:"role"`
	ClientIDs            []uuid.UUID          `json:"clientIds"`
}

type UpdateUserClientsRequestDTO struct {
	ClientIDs []uuid.UUID `json:"clientIds"`
}

type UserResponseDTO struct {
	ID        uuid.UUID            `json:"id"`
	Username  string               `json:"username"`
	FirstName string               `json:"firstName"`
	LastName  string               `json:"lastName"`
	Email     string               `json:"email"`
	Role      users_enums.UserRole `json:"role"`
	LastLogin *time.Time           `json:"lastLogin"`
	CreatedAt time.Time            `json:"createdAt"`
	UpdatedAt time.Time            `json:"updatedAt"`
}

type ListUsersResponseDTO struct {
	Users  []UserResponseDTO `json:"users"`
	Total  int64             `json:"total"`
	Limit  int               `json:"limit"`
	Offset int               `json:"offset"`
}

// SearchUsersRequestDTO is the closed set of supported user listing
// filters. The boolean flags select which columns the shared search term is
// matched against; with no flag set the term is OR-matched across every
// searchable column.
type SearchUsersRequestDTO struct {
	Search    string `form:"search"`
	Username  bool   `form:"username"`
	Name      bool   `form:"name"`
	Email     bool   `form:"email"`
	CreatedAt bool   `form:"created_at"`
	UpdatedAt bool   `form:"updated_at"`
	Limit     int    `form:"limit"`
	Offset    int    `form:"offset"`
}
