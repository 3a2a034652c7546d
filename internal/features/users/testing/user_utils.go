package users_testing

import (
	"fmt"
	"strings"
	"time"

	users_dto "clienttrack/internal/features/users/dto"
	users_enums "clienttrack/internal/features/users/enums"
	users_models "clienttrack/internal/features/users/models"
	users_repositories "clienttrack/internal/features/users/repositories"
	users_services "clienttrack/internal/features/users/services"

	"github.com/google/uuid"
)

func CreateTestUser(role users_enums.UserRole) *users_dto.SignInResponseDTO {
	userID := uuid.New()
	shortID := userID.String()[:8]
	email := fmt.Sprintf("%s-%s@test.com", strings.ToLower(string(role)), shortID)

	hashedPassword := "$2a$10$test"
	user := &users_models.User{
		ID:                   userID,
		Username:             "test-user-" + shortID,
		FirstName:            "Test",
		LastName:             "User " + shortID,
		Email:                email,
		HashedPassword:       &hashedPassword,
		PasswordCreationTime: time.Now().UTC(),
		Role:                 role,
		CreatedAt:            time.Now().UTC(),
		UpdatedAt:            time.Now().UTC(),
	}

	userRepository := &users_repositories.UserRepository{}
	err := userRepository.CreateUser(user)
	if err != nil {
		panic(err)
	}

	response, err := users_services.GetUserService().GenerateAccessToken(user)
	if err != nil {
		panic(err)
	}

	return response
}

func ReacreateInitAdminAndGetAccess() *users_dto.SignInResponseDTO {
	RecreateInitialAdmin()

	userRepository := &users_repositories.UserRepository{}
	user, err := userRepository.GetUserByEmail("admin")
	if err != nil {
		panic(err)
	}

	response, err := users_services.GetUserService().GenerateAccessToken(user)
	if err != nil {
		panic(err)
	}

	return response
}

func RecreateInitialAdmin() {
	userRepository := &users_repositories.UserRepository{}
	err := userRepository.RenameUserEmailForTests("admin", "admin-"+uuid.New().String())
	if err != nil {
		panic(err)
	}

	userService := users_services.GetUserService()
	err = userService.CreateInitialAdmin()
	if err != nil {
		panic(err)
	}
}
