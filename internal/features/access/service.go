package access

import (
	"errors"
	"fmt"

	users_enums "clienttrack/internal/features/users/enums"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrNoAccess is returned both when a row does not exist and when it exists
// outside the caller's accessible set, so a denied caller cannot probe for
// resource existence.
var ErrNoAccess = errors.New("resource not found or access denied")

type AccessService struct {
	accessRepository *AccessRepository
}

// GrantMembership records that a user may access a client. Callers must
// invoke this only after the parent user/client row has been committed.
func (s *AccessService) GrantMembership(userID, clientID uuid.UUID) error {
	return s.accessRepository.CreateMembership(&Membership{
		UserID:   userID,
		ClientID: clientID,
	})
}

func (s *AccessService) GrantMemberships(userID uuid.UUID, clientIDs []uuid.UUID) error {
	for _, clientID := range clientIDs {
		if err := s.GrantMembership(userID, clientID); err != nil {
			return fmt.Errorf("failed to grant membership to client %s: %w", clientID, err)
		}
	}

	return nil
}

// AccessibleClientsQuery returns the base listing query for clients visible
// to the user. The administrative override lives here, ahead of the
// membership filter; the filter itself never bypasses memberships.
func (s *AccessService) AccessibleClientsQuery(role users_enums.UserRole, userID uuid.UUID) *gorm.DB {
	if role == users_enums.UserRoleAdmin {
		return s.accessRepository.AllClientsQuery()
	}

	return s.accessRepository.AccessibleClientsQuery(userID)
}

func (s *AccessService) AccessibleLogsQuery(role users_enums.UserRole, userID uuid.UUID) *gorm.DB {
	if role == users_enums.UserRoleAdmin {
		return s.accessRepository.AllLogsQuery()
	}

	return s.accessRepository.AccessibleLogsQuery(userID)
}

func (s *AccessService) AccessibleUsersQuery(role users_enums.UserRole, userID uuid.UUID) *gorm.DB {
	if role == users_enums.UserRoleAdmin {
		return s.accessRepository.AllUsersQuery(userID)
	}

	return s.accessRepository.AccessibleUsersQuery(userID)
}

// CanUserAccessClient reports whether a single client row is within the
// user's accessible set.
func (s *AccessService) CanUserAccessClient(clientID uuid.UUID, role users_enums.UserRole, userID uuid.UUID) (bool, error) {
	if role == users_enums.UserRoleAdmin {
		return true, nil
	}

	return s.accessRepository.IsClientAccessible(clientID, userID)
}

// HasAccessToClients reports whether every requested client ID is within
// the user's accessible set. An empty ID set is always false: the
// non-emptiness requirement is folded into the check so no caller can
// bypass it through vacuous set containment. Administrators skip the
// membership restriction but every ID must still resolve to a client row.
func (s *AccessService) HasAccessToClients(clientIDs []uuid.UUID, role users_enums.UserRole, userID uuid.UUID) (bool, error) {
	unique := dedupeIDs(clientIDs)
	if len(unique) == 0 {
		return false, nil
	}

	var (
		count int64
		err   error
	)

	if role == users_enums.UserRoleAdmin {
		count, err = s.accessRepository.CountExistingClients(unique)
	} else {
		count, err = s.accessRepository.CountAccessibleAmong(userID, unique)
	}

	if err != nil {
		return false, fmt.Errorf("failed to check client access: %w", err)
	}

	return count == int64(len(unique)), nil
}

func (s *AccessService) GetMembershipClientIDs(userID uuid.UUID) ([]uuid.UUID, error) {
	return s.accessRepository.GetMembershipClientIDs(userID)
}

func dedupeIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	unique := make([]uuid.UUID, 0, len(ids))

	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}

		seen[id] = struct{}{}
		unique = append(unique, id)
	}

	return unique
}
