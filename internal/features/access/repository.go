package access

import (
	"time"

	"clienttrack/internal/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AccessRepository struct{}

// CreateMembership inserts a client_user row. Duplicate (user, client)
// pairs are not rejected; accessible queries group by the target entity's
// primary key so duplicates never surface in results.
func (r *AccessRepository) CreateMembership(membership *Membership) error {
	if membership.ID == uuid.Nil {
		membership.ID = uuid.New()
	}

	if membership.CreatedAt.IsZero() {
		membership.CreatedAt = time.Now().UTC()
	}

	return storage.GetDb().Create(membership).Error
}

func (r *AccessRepository) GetMembershipClientIDs(userID uuid.UUID) ([]uuid.UUID, error) {
	clientIDs := make([]uuid.UUID, 0)

	err := storage.GetDb().
		Table("client_user").
		Distinct("client_id").
		Where("user_id = ?", userID).
		Pluck("client_id", &clientIDs).Error

	return clientIDs, err
}

// AccessibleClientsQuery restricts the clients table to rows the user holds
// a membership to. The GROUP BY collapses duplicate membership rows before
// any pagination a caller composes on top.
func (r *AccessRepository) AccessibleClientsQuery(userID uuid.UUID) *gorm.DB {
	return storage.GetDb().
		Table("clients").
		Select("clients.*").
		Joins("LEFT JOIN client_user ON clients.id = client_user.client_id").
		Where("client_user.user_id = ?", userID).
		Group("clients.id")
}

func (r *AccessRepository) AllClientsQuery() *gorm.DB {
	return storage.GetDb().Table("clients")
}

// AccessibleLogsQuery restricts the logs table to rows whose owning client
// the user holds a membership to.
func (r *AccessRepository) AccessibleLogsQuery(userID uuid.UUID) *gorm.DB {
	return storage.GetDb().
		Table("logs").
		Select("logs.*").
		Joins("LEFT JOIN client_user ON logs.client_id = client_user.client_id").
		Where("client_user.user_id = ?", userID).
		Group("logs.id")
}

func (r *AccessRepository) AllLogsQuery() *gorm.DB {
	return storage.GetDb().Table("logs")
}

// AccessibleUsersQuery enumerates the other users sharing at least one
// client membership with the given user. The requesting user's own row is
// always excluded.
func (r *AccessRepository) AccessibleUsersQuery(userID uuid.UUID) *gorm.DB {
	return storage.GetDb().
		Table("users").
		Select("users.*").
		Joins("JOIN client_user ON users.id = client_user.user_id").
		Where("client_user.client_id IN (SELECT client_id FROM client_user WHERE user_id = ?)", userID).
		Where("users.id != ?", userID).
		Group("users.id")
}

func (r *AccessRepository) AllUsersQuery(exceptUserID uuid.UUID) *gorm.DB {
	return storage.GetDb().
		Table("users").
		Where("users.id != ?", exceptUserID)
}

func (r *AccessRepository) IsClientAccessible(clientID, userID uuid.UUID) (bool, error) {
	var count int64

	err := storage.GetDb().
		Table("client_user").
		Where("user_id = ? AND client_id = ?", userID, clientID).
		Count(&count).Error

	return count > 0, err
}

// CountAccessibleAmong counts how many of the given client IDs the user
// holds a membership to, each ID counted once.
func (r *AccessRepository) CountAccessibleAmong(userID uuid.UUID, clientIDs []uuid.UUID) (int64, error) {
	var count int64

	err := storage.GetDb().
		Table("client_user").
		Distinct("client_id").
		Where("user_id = ? AND client_id IN ?", userID, clientIDs).
		Count(&count).Error

	return count, err
}

// CountExistingClients counts how many of the given IDs resolve to client
// rows, each ID counted once. Used for the administrative path of the bulk
// access check, where memberships are bypassed but dangling references are
// still rejected.
func (r *AccessRepository) CountExistingClients(clientIDs []uuid.UUID) (int64, error) {
	var count int64

	err := storage.GetDb().
		Table("clients").
		Where("id IN ?", clientIDs).
		Count(&count).Error

	return count, err
}
