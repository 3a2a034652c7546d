package users_services

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"clienttrack/internal/features/access"
	users_dto "clienttrack/internal/features/users/dto"
	users_enums "clienttrack/internal/features/users/enums"
	users_interfaces "clienttrack/internal/features/users/interfaces"
	users_models "clienttrack/internal/features/users/models"
	users_repositories "clienttrack/internal/features/users/repositories"
	"clienttrack/internal/util/validation"
)

const (
	defaultUsersPageSize = 50
	maxUsersPageSize     = 200
)

type UserManagementService struct {
	userRepository *users_repositories.UserRepository
	accessService  *access.AccessService
	auditLogWriter users_interfaces.AuditLogWriter
}

func (s *UserManagementService) SetAuditLogWriter(writer users_interfaces.AuditLogWriter) {
	s.auditLogWriter = writer
}

// ListUsers returns the users inside the caller's visibility, refined by the
// search request. Non-administrators only see users sharing at least one
// client with them; the caller themselves is never included.
func (s *UserManagementService) ListUsers(
	currentUser *users_models.User,
	request *users_dto.SearchUsersRequestDTO,
) (*users_dto.ListUsersResponseDTO, error) {
	if !access.Can(currentUser.Role, access.ActionViewUser) {
		return nil, access.ErrNoAccess
	}

	limit := request.Limit
	if limit <= 0 {
		limit = defaultUsersPageSize
	}
	if limit > maxUsersPageSize {
		limit = maxUsersPageSize
	}

	offset := request.Offset
	if offset < 0 {
		offset = 0
	}

	base := s.accessService.AccessibleUsersQuery(currentUser.Role, currentUser.ID)

	users, total, err := s.userRepository.SearchUsers(base, request, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to search users: %w", err)
	}

	response := &users_dto.ListUsersResponseDTO{
		Users:  make([]users_dto.UserResponseDTO, 0, len(users)),
		Total:  total,
		Limit:  limit,
		Offset: offset,
	}

	for _, user := range users {
		response.Users = append(response.Users, *toUserResponseDTO(user))
	}

	return response, nil
}

// GetUserProfile resolves a single user. Everyone may read their own
// profile; other profiles resolve only inside the caller's visibility, and a
// user outside it is indistinguishable from a missing one.
func (s *UserManagementService) GetUserProfile(
	userID uuid.UUID,
	requestedBy *users_models.User,
) (*users_dto.UserResponseDTO, error) {
	if userID == requestedBy.ID || requestedBy.Role == users_enums.UserRoleAdmin {
		user, err := s.userRepository.GetUserByID(userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, access.ErrNoAccess
			}

			return nil, err
		}

		return toUserResponseDTO(user), nil
	}

	var user users_models.User

	err := s.accessService.
		AccessibleUsersQuery(requestedBy.Role, requestedBy.ID).
		Where("users.id = ?", userID).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, access.ErrNoAccess
		}

		return nil, err
	}

	return toUserResponseDTO(&user), nil
}

// CreateUser creates a user and grants them the selected client memberships.
// All request problems are collected into one validation error and no row is
// written while any remain.
func (s *UserManagementService) CreateUser(
	request *users_dto.CreateUserRequestDTO,
	createdBy *users_models.User,
) (*users_dto.UserResponseDTO, error) {
	if !access.Can(createdBy.Role, access.ActionCreateUser) {
		return nil, access.ErrNoAccess
	}

	if !access.CanAssignRole(createdBy.Role, request.Role) {
		return nil, errors.New("insufficient permissions to assign this role")
	}

	validationErrors := &validation.Errors{}

	if !request.Role.IsValid() {
		validationErrors.Add("No Role selected")
	}

	hasAccess, err := s.accessService.HasAccessToClients(request.ClientIDs, createdBy.Role, createdBy.ID)
	if err != nil {
		return nil, err
	}
	if !hasAccess {
		validationErrors.Add("No client selected.")
	}

	if validationErrors.HasErrors() {
		return nil, validationErrors
	}

	email := strings.ToLower(strings.TrimSpace(request.Email))

	existingUser, err := s.userRepository.GetUserByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existingUser != nil {
		return nil, errors.New("user with this email already exists")
	}

	username, err := s.generateUsername(request.FirstName, request.LastName)
	if err != nil {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(request.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	hashedPasswordStr := string(hashedPassword)

	user := &users_models.User{
		ID:                   uuid.New(),
		Username:             username,
		FirstName:            strings.TrimSpace(request.FirstName),
		LastName:             strings.TrimSpace(request.LastName),
		Email:                email,
		HashedPassword:       &hashedPasswordStr,
		PasswordCreationTime: time.Now().UTC(),
		Role:                 request.Role,
		CreatedBy:            &createdBy.ID,
		CreatedAt:            time.Now().UTC(),
		UpdatedAt:            time.Now().UTC(),
	}

	if err := s.userRepository.CreateUser(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	// Memberships are written only after the user row is committed.
	if err := s.accessService.GrantMemberships(user.ID, request.ClientIDs); err != nil {
		return nil, err
	}

	s.auditLogWriter.WriteAuditLog(
		fmt.Sprintf("User created: %s (%s)", user.Name(), user.Email),
		&createdBy.ID,
		nil,
	)

	return toUserResponseDTO(user), nil
}

// UpdateUserClients grants the target user memberships to the requested
// clients. Grants are append-only: memberships are never revoked here.
func (s *UserManagementService) UpdateUserClients(
	userID uuid.UUID,
	request *users_dto.UpdateUserClientsRequestDTO,
	updatedBy *users_models.User,
) error {
	if !access.Can(updatedBy.Role, access.ActionEditUser) {
		return access.ErrNoAccess
	}

	if _, err := s.GetUserProfile(userID, updatedBy); err != nil {
		return err
	}

	hasAccess, err := s.accessService.HasAccessToClients(request.ClientIDs, updatedBy.Role, updatedBy.ID)
	if err != nil {
		return err
	}
	if !hasAccess {
		validationErrors := &validation.Errors{}
		validationErrors.Add("No client selected.")

		return validationErrors
	}

	existing, err := s.accessService.GetMembershipClientIDs(userID)
	if err != nil {
		return fmt.Errorf("failed to get memberships: %w", err)
	}

	existingSet := make(map[uuid.UUID]struct{}, len(existing))
	for _, clientID := range existing {
		existingSet[clientID] = struct{}{}
	}

	for _, clientID := range request.ClientIDs {
		if _, ok := existingSet[clientID]; ok {
			continue
		}

		if err := s.accessService.GrantMembership(userID, clientID); err != nil {
			return fmt.Errorf("failed to grant membership to client %s: %w", clientID, err)
		}

		existingSet[clientID] = struct{}{}
	}

	s.auditLogWriter.WriteAuditLog(
		fmt.Sprintf("User client access updated for user %s", userID),
		&updatedBy.ID,
		nil,
	)

	return nil
}

func (s *UserManagementService) DeleteUser(userID uuid.UUID, deletedBy *users_models.User) error {
	if !access.Can(deletedBy.Role, access.ActionDeleteUser) {
		return access.ErrNoAccess
	}

	if userID == deletedBy.ID {
		return errors.New("cannot delete your own account")
	}

	user, err := s.userRepository.GetUserByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return access.ErrNoAccess
		}

		return fmt.Errorf("failed to get user: %w", err)
	}

	if user.Email == "admin" {
		return errors.New("the root admin account cannot be deleted")
	}

	if err := s.userRepository.DeleteUser(userID); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	s.auditLogWriter.WriteAuditLog(
		fmt.Sprintf("User deleted: %s (%s)", user.Name(), user.Email),
		&deletedBy.ID,
		nil,
	)

	return nil
}

// generateUsername slugs the full name and disambiguates collisions with a
// short random suffix.
func (s *UserManagementService) generateUsername(firstName, lastName string) (string, error) {
	base := slug.Make(strings.TrimSpace(firstName) + " " + strings.TrimSpace(lastName))
	if base == "" {
		base = "user"
	}

	existing, err := s.userRepository.GetUserByUsername(base)
	if err != nil {
		return "", fmt.Errorf("failed to check username: %w", err)
	}
	if existing == nil {
		return base, nil
	}

	for range 5 {
		suffix, err := randomSuffix()
		if err != nil {
			return "", err
		}

		candidate := base + "-" + suffix

		existing, err := s.userRepository.GetUserByUsername(candidate)
		if err != nil {
			return "", fmt.Errorf("failed to check username: %w", err)
		}
		if existing == nil {
			return candidate, nil
		}
	}

	return "", errors.New("failed to generate a unique username")
}

func randomSuffix() (string, error) {
	raw := make([]byte, 2)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("failed to generate suffix: %w", err)
	}

	return hex.EncodeToString(raw), nil
}

func toUserResponseDTO(user *users_models.User) *users_dto.UserResponseDTO {
	return &users_dto.UserResponseDTO{
		ID:        user.ID,
		Username:  user.Username,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
		Role:      user.Role,
		LastLogin: user.LastLogin,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}
