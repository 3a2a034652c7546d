package users_services

import (
	"clienttrack/internal/features/access"
	users_repositories "clienttrack/internal/features/users/repositories"
)

var secretKeyRepository = &users_repositories.SecretKeyRepository{}
var userRepository = &users_repositories.UserRepository{}

var userService = &UserService{
	userRepository:      userRepository,
	secretKeyRepository: secretKeyRepository,
}
var managementService = &UserManagementService{
	userRepository: userRepository,
	accessService:  access.GetAccessService(),
}

func GetUserService() *UserService {
	return userService
}

func GetManagementService() *UserManagementService {
	return managementService
}
