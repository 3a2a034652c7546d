package logs_services

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"

	"clienttrack/internal/features/access"
	audit_logs "clienttrack/internal/features/audit_logs"
	logs_dto "clienttrack/internal/features/logs/dto"
	logs_models "clienttrack/internal/features/logs/models"
	logs_repositories "clienttrack/internal/features/logs/repositories"
	users_models "clienttrack/internal/features/users/models"
	"clienttrack/internal/util/validation"
)

const (
	defaultLogsPageSize = 50
	maxLogsPageSize     = 200
)

type LogService struct {
	logRepository   *logs_repositories.LogRepository
	accessService   *access.AccessService
	auditLogService *audit_logs.AuditLogService
}

// ListLogs returns the logs whose owning client is inside the caller's
// accessible set, refined by the search request.
func (s *LogService) ListLogs(
	user *users_models.User,
	request *logs_dto.SearchLogsRequestDTO,
) (*logs_dto.ListLogsResponseDTO, error) {
	if !access.Can(user.Role, access.ActionViewLog) {
		return nil, access.ErrNoAccess
	}

	limit := request.Limit
	if limit <= 0 {
		limit = defaultLogsPageSize
	}
	if limit > maxLogsPageSize {
		limit = maxLogsPageSize
	}

	offset := request.Offset
	if offset < 0 {
		offset = 0
	}

	base := s.accessService.AccessibleLogsQuery(user.Role, user.ID)

	logs, total, err := s.logRepository.SearchLogs(base, request, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to search logs: %w", err)
	}

	response := &logs_dto.ListLogsResponseDTO{
		Logs:   make([]logs_dto.LogResponseDTO, 0, len(logs)),
		Total:  total,
		Limit:  limit,
		Offset: offset,
	}

	for _, log := range logs {
		response.Logs = append(response.Logs, *toLogResponseDTO(log))
	}

	return response, nil
}

// GetLogBySlug resolves a log whose owning client is visible to the user. A
// slug outside the user's accessible set resolves exactly like a missing
// one.
func (s *LogService) GetLogBySlug(
	logSlug string,
	user *users_models.User,
) (*logs_dto.LogResponseDTO, error) {
	if !access.Can(user.Role, access.ActionViewLog) {
		return nil, access.ErrNoAccess
	}

	log, err := s.resolveAccessibleLog(logSlug, user)
	if err != nil {
		return nil, err
	}

	return toLogResponseDTO(log), nil
}

// CreateLog creates a log for a client within the creator's accessible set.
// A client reference outside that set fails validation before any row is
// written.
func (s *LogService) CreateLog(
	request *logs_dto.CreateLogRequestDTO,
	creator *users_models.User,
) (*logs_dto.LogResponseDTO, error) {
	if !access.Can(creator.Role, access.ActionCreateLog) {
		return nil, access.ErrNoAccess
	}

	if err := s.validateClientReference(request.ClientID, creator); err != nil {
		return nil, err
	}

	logSlug, err := s.generateSlug(request.Title)
	if err != nil {
		return nil, err
	}

	log := &logs_models.Log{
		ID:          uuid.New(),
		Slug:        logSlug,
		ClientID:    request.ClientID,
		Title:       strings.TrimSpace(request.Title),
		Description: request.Description,
		Body:        request.Body,
		Notes:       request.Notes,
		CreatedBy:   &creator.ID,
		UpdatedBy:   &creator.ID,
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}

	if err := s.logRepository.CreateLog(log); err != nil {
		return nil, fmt.Errorf("failed to create log: %w", err)
	}

	s.auditLogService.WriteAuditLog(
		fmt.Sprintf("Log created: %s", log.Title),
		&creator.ID,
		&log.ClientID,
	)

	return toLogResponseDTO(log), nil
}

func (s *LogService) UpdateLog(
	logSlug string,
	request *logs_dto.UpdateLogRequestDTO,
	user *users_models.User,
) (*logs_dto.LogResponseDTO, error) {
	if !access.Can(user.Role, access.ActionEditLog) {
		return nil, access.ErrNoAccess
	}

	log, err := s.resolveAccessibleLog(logSlug, user)
	if err != nil {
		return nil, err
	}

	// Reassigning the log to another client re-runs the full check.
	if request.ClientID != log.ClientID {
		if err := s.validateClientReference(request.ClientID, user); err != nil {
			return nil, err
		}

		log.ClientID = request.ClientID
	}

	log.Title = strings.TrimSpace(request.Title)
	log.Description = request.Description
	log.Body = request.Body
	log.Notes = request.Notes
	log.UpdatedBy = &user.ID
	log.UpdatedAt = time.Now().UTC()

	if err := s.logRepository.UpdateLog(log); err != nil {
		return nil, fmt.Errorf("failed to update log: %w", err)
	}

	s.auditLogService.WriteAuditLog(
		fmt.Sprintf("Log updated: %s", log.Title),
		&user.ID,
		&log.ClientID,
	)

	return toLogResponseDTO(log), nil
}

func (s *LogService) DeleteLog(logSlug string, user *users_models.User) error {
	if !access.Can(user.Role, access.ActionDeleteLog) {
		return access.ErrNoAccess
	}

	log, err := s.resolveAccessibleLog(logSlug, user)
	if err != nil {
		return err
	}

	if err := s.logRepository.DeleteLog(log.ID); err != nil {
		return fmt.Errorf("failed to delete log: %w", err)
	}

	s.auditLogService.WriteAuditLog(
		fmt.Sprintf("Log deleted: %s", log.Title),
		&user.ID,
		&log.ClientID,
	)

	return nil
}

// validateClientReference ensures the referenced client is inside the
// user's accessible set. The nil UUID counts as "no client selected".
func (s *LogService) validateClientReference(clientID uuid.UUID, user *users_models.User) error {
	clientIDs := []uuid.UUID{}
	if clientID != uuid.Nil {
		clientIDs = append(clientIDs, clientID)
	}

	hasAccess, err := s.accessService.HasAccessToClients(clientIDs, user.Role, user.ID)
	if err != nil {
		return err
	}

	if !hasAccess {
		validationErrors := &validation.Errors{}
		validationErrors.Add("No client selected.")

		return validationErrors
	}

	return nil
}

func (s *LogService) resolveAccessibleLog(
	logSlug string,
	user *users_models.User,
) (*logs_models.Log, error) {
	log, err := s.logRepository.GetLogBySlug(logSlug)
	if err != nil {
		return nil, fmt.Errorf("failed to get log: %w", err)
	}
	if log == nil {
		return nil, access.ErrNoAccess
	}

	canAccess, err := s.accessService.CanUserAccessClient(log.ClientID, user.Role, user.ID)
	if err != nil {
		return nil, err
	}
	if !canAccess {
		return nil, access.ErrNoAccess
	}

	return log, nil
}

// generateSlug slugs the title and disambiguates collisions with a short
// random suffix.
func (s *LogService) generateSlug(title string) (string, error) {
	base := slug.Make(title)
	if base == "" {
		base = "log"
	}

	existing, err := s.logRepository.GetLogBySlug(base)
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

		existing, err := s.logRepository.GetLogBySlug(candidate)
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

func toLogResponseDTO(log *logs_models.Log) *logs_dto.LogResponseDTO {
	return &logs_dto.LogResponseDTO{
		ID:          log.ID,
		Slug:        log.Slug,
		ClientID:    log.ClientID,
		Title:       log.Title,
		Description: log.Description,
		Body:        log.Body,
		Notes:       log.Notes,
		CreatedBy:   log.CreatedBy,
		UpdatedBy:   log.UpdatedBy,
		CreatedAt:   log.CreatedAt,
		UpdatedAt:   log.UpdatedAt,
	}
}
