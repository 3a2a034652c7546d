package clients_services

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"

	"clienttrack/internal/features/access"
	audit_logs "clienttrack/internal/features/audit_logs"
	clients_dto "clienttrack/internal/features/clients/dto"
	clients_models "clienttrack/internal/features/clients/models"
	clients_repositories "clienttrack/internal/features/clients/repositories"
	users_models "clienttrack/internal/features/users/models"
	users_services "clienttrack/internal/features/users/services"
	cache_utils "clienttrack/internal/util/cache"
	"clienttrack/internal/util/validation"
)

const (
	defaultClientsPageSize = 50
	maxClientsPageSize     = 200
)

type ClientService struct {
	clientRepository *clients_repositories.ClientRepository
	accessService    *access.AccessService
	userService      *users_services.UserService
	auditLogService  *audit_logs.AuditLogService

	clientCacheUtil *cache_utils.CacheUtil[clients_models.Client]
	singleflight    singleflight.Group // Prevents thundering herd on DB calls
}

// ListClients returns the clients inside the caller's accessible set,
// refined by the search request.
func (s *ClientService) ListClients(
	user *users_models.User,
	request *clients_dto.SearchClientsRequestDTO,
) (*clients_dto.ListClientsResponseDTO, error) {
	if !access.Can(user.Role, access.ActionViewClient) {
		return nil, access.ErrNoAccess
	}

	limit := request.Limit
	if limit <= 0 {
		limit = defaultClientsPageSize
	}
	if limit > maxClientsPageSize {
		limit = maxClientsPageSize
	}

	offset := request.Offset
	if offset < 0 {
		offset = 0
	}

	base := s.accessService.AccessibleClientsQuery(user.Role, user.ID)

	clients, total, err := s.clientRepository.SearchClients(base, request, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to search clients: %w", err)
	}

	response := &clients_dto.ListClientsResponseDTO{
		Clients: make([]clients_dto.ClientResponseDTO, 0, len(clients)),
		Total:   total,
		Limit:   limit,
		Offset:  offset,
	}

	for _, client := range clients {
		response.Clients = append(response.Clients, *toClientResponseDTO(client))
	}

	return response, nil
}

// GetClientBySlug resolves a client visible to the user. A slug outside the
// user's accessible set resolves exactly like a missing one.
func (s *ClientService) GetClientBySlug(
	clientSlug string,
	user *users_models.User,
) (*clients_dto.ClientResponseDTO, error) {
	if !access.Can(user.Role, access.ActionViewClient) {
		return nil, access.ErrNoAccess
	}

	client, err := s.GetClientWithCache(clientSlug)
	if err != nil {
		return nil, access.ErrNoAccess
	}

	canAccess, err := s.accessService.CanUserAccessClient(client.ID, user.Role, user.ID)
	if err != nil {
		return nil, err
	}
	if !canAccess {
		return nil, access.ErrNoAccess
	}

	return toClientResponseDTO(client), nil
}

// CreateClient creates a client and grants memberships to the creator and
// every explicitly selected user. Membership rows are written only after the
// client row is committed.
func (s *ClientService) CreateClient(
	request *clients_dto.CreateClientRequestDTO,
	creator *users_models.User,
) (*clients_dto.ClientResponseDTO, error) {
	if !access.Can(creator.Role, access.ActionCreateClient) {
		return nil, access.ErrNoAccess
	}

	validationErrors := &validation.Errors{}

	company := strings.TrimSpace(request.Company)

	existing, err := s.clientRepository.GetClientByCompany(company)
	if err != nil {
		return nil, fmt.Errorf("failed to check company: %w", err)
	}
	if existing != nil {
		validationErrors.Add("A client with this company name already exists.")
	}

	for _, userID := range request.UserIDs {
		if _, err := s.userService.GetUserByID(userID); err != nil {
			validationErrors.Add("One of the selected users does not exist.")
			break
		}
	}

	if validationErrors.HasErrors() {
		return nil, validationErrors
	}

	clientSlug, err := s.generateSlug(company)
	if err != nil {
		return nil, err
	}

	client := &clients_models.Client{
		ID:             uuid.New(),
		Slug:           clientSlug,
		Company:        company,
		FirstName:      strings.TrimSpace(request.FirstName),
		LastName:       strings.TrimSpace(request.LastName),
		Email:          strings.ToLower(strings.TrimSpace(request.Email)),
		ContactNumber:  strings.TrimSpace(request.ContactNumber),
		BuildingNumber: strings.TrimSpace(request.BuildingNumber),
		StreetName:     strings.TrimSpace(request.StreetName),
		City:           strings.TrimSpace(request.City),
		Postcode:       strings.TrimSpace(request.Postcode),
		CreatedBy:      &creator.ID,
		UpdatedBy:      &creator.ID,
		CreatedAt:      time.Now().UTC(),
		UpdatedAt:      time.Now().UTC(),
	}

	if err := s.clientRepository.CreateClient(client); err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	// Pre-warm cache with new client for immediate availability
	s.clientCacheUtil.Set(client.Slug, client)

	if err := s.accessService.GrantMembership(creator.ID, client.ID); err != nil {
		return nil, fmt.Errorf("failed to create membership: %w", err)
	}

	for _, userID := range request.UserIDs {
		if userID == creator.ID {
			continue
		}

		if err := s.accessService.GrantMembership(userID, client.ID); err != nil {
			return nil, fmt.Errorf("failed to create membership: %w", err)
		}
	}

	s.auditLogService.WriteAuditLog(
		fmt.Sprintf("Client created: %s", client.Company),
		&creator.ID,
		&client.ID,
	)

	return toClientResponseDTO(client), nil
}

func (s *ClientService) UpdateClient(
	clientSlug string,
	request *clients_dto.UpdateClientRequestDTO,
	user *users_models.User,
) (*clients_dto.ClientResponseDTO, error) {
	if !access.Can(user.Role, access.ActionEditClient) {
		return nil, access.ErrNoAccess
	}

	client, err := s.resolveAccessibleClient(clientSlug, user)
	if err != nil {
		return nil, err
	}

	company := strings.TrimSpace(request.Company)

	existing, err := s.clientRepository.GetClientByCompany(company)
	if err != nil {
		return nil, fmt.Errorf("failed to check company: %w", err)
	}
	if existing != nil && existing.ID != client.ID {
		validationErrors := &validation.Errors{}
		validationErrors.Add("A client with this company name already exists.")

		return nil, validationErrors
	}

	client.Company = company
	client.FirstName = strings.TrimSpace(request.FirstName)
	client.LastName = strings.TrimSpace(request.LastName)
	client.Email = strings.ToLower(strings.TrimSpace(request.Email))
	client.ContactNumber = strings.TrimSpace(request.ContactNumber)
	client.BuildingNumber = strings.TrimSpace(request.BuildingNumber)
	client.StreetName = strings.TrimSpace(request.StreetName)
	client.City = strings.TrimSpace(request.City)
	client.Postcode = strings.TrimSpace(request.Postcode)
	client.UpdatedBy = &user.ID
	client.UpdatedAt = time.Now().UTC()

	if err := s.clientRepository.UpdateClient(client); err != nil {
		return nil, fmt.Errorf("failed to update client: %w", err)
	}

	s.clientCacheUtil.Invalidate(client.Slug)

	s.auditLogService.WriteAuditLog(
		fmt.Sprintf("Client updated: %s", client.Company),
		&user.ID,
		&client.ID,
	)

	return toClientResponseDTO(client), nil
}

func (s *ClientService) DeleteClient(clientSlug string, user *users_models.User) error {
	if !access.Can(user.Role, access.ActionDeleteClient) {
		return access.ErrNoAccess
	}

	client, err := s.resolveAccessibleClient(clientSlug, user)
	if err != nil {
		return err
	}

	if err := s.clientRepository.DeleteClient(client.ID); err != nil {
		return fmt.Errorf("failed to delete client: %w", err)
	}

	s.clientCacheUtil.Invalidate(client.Slug)

	s.auditLogService.WriteAuditLog(
		fmt.Sprintf("Client deleted: %s", client.Company),
		&user.ID,
		&client.ID,
	)

	return nil
}

func (s *ClientService) GetClientAuditLogs(
	clientSlug string,
	user *users_models.User,
	request *audit_logs.GetAuditLogsRequest,
) (*audit_logs.GetAuditLogsResponse, error) {
	client, err := s.resolveAccessibleClient(clientSlug, user)
	if err != nil {
		return nil, err
	}

	return s.auditLogService.GetClientAuditLogs(client.ID, request)
}

// GetClientWithCache resolves a client by slug through the cache, falling
// back to the database behind singleflight. Missing slugs are cached
// negatively to prevent repeated DB hits.
func (s *ClientService) GetClientWithCache(clientSlug string) (*clients_models.Client, error) {
	if cachedClient := s.clientCacheUtil.Get(clientSlug); cachedClient != nil {
		if cachedClient.IsNotExists {
			return nil, errors.New("client not found")
		}

		return cachedClient, nil
	}

	result, err, _ := s.singleflight.Do(clientSlug, func() (any, error) {
		client, err := s.clientRepository.GetClientBySlug(clientSlug)
		if err != nil {
			return nil, err
		}
		if client == nil {
			return nil, gorm.ErrRecordNotFound
		}

		return client, nil
	})

	if err != nil {
		invalidCachedClient := &clients_models.Client{
			Slug:        clientSlug,
			IsNotExists: true,
		}
		s.clientCacheUtil.Set(clientSlug, invalidCachedClient)

		return nil, errors.New("client not found")
	}

	client := result.(*clients_models.Client)
	s.clientCacheUtil.Set(clientSlug, client)

	return client, nil
}

func (s *ClientService) resolveAccessibleClient(
	clientSlug string,
	user *users_models.User,
) (*clients_models.Client, error) {
	client, err := s.clientRepository.GetClientBySlug(clientSlug)
	if err != nil {
		return nil, fmt.Errorf("failed to get client: %w", err)
	}
	if client == nil {
		return nil, access.ErrNoAccess
	}

	canAccess, err := s.accessService.CanUserAccessClient(client.ID, user.Role, user.ID)
	if err != nil {
		return nil, err
	}
	if !canAccess {
		return nil, access.ErrNoAccess
	}

	return client, nil
}

// generateSlug slugs the company name and disambiguates collisions with a
// short random suffix.
func (s *ClientService) generateSlug(company string) (string, error) {
	base := slug.Make(company)
	if base == "" {
		base = "client"
	}

	existing, err := s.clientRepository.GetClientBySlug(base)
	if err != nil {
		return "", fmt.Errorf("failed to check slug: %w", err)
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

		existing, err := s.clientRepository.GetClientBySlug(candidate)
		if err != nil {
			return "", fmt.Errorf("failed to check slug: %w", err)
		}
		if existing == nil {
			return candidate, nil
		}
	}

	return "", errors.New("failed to generate a unique slug")
}

func randomSuffix() (string, error) {
	raw := make([]byte, 2)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("failed to generate suffix: %w", err)
	}

	return hex.EncodeToString(raw), nil
}

func toClientResponseDTO(client *clients_models.Client) *clients_dto.ClientResponseDTO {
	return &clients_dto.ClientResponseDTO{
		ID:             client.ID,
		Slug:           client.Slug,
		Company:        client.Company,
		FirstName:      client.FirstName,
		LastName:       client.LastName,
		Email:          client.Email,
		ContactNumber:  client.ContactNumber,
		BuildingNumber: client.BuildingNumber,
		StreetName:     client.StreetName,
		City:           client.City,
		Postcode:       client.Postcode,
		CreatedBy:      client.CreatedBy,
		UpdatedBy:      client.UpdatedBy,
		CreatedAt:      client.CreatedAt,
		UpdatedAt:      client.UpdatedAt,
	}
}
