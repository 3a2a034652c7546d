package users_repositories

import (
	"fmt"
	"time"

	users_dto "clienttrack/internal/features/users/dto"
	users_enums "clienttrack/internal/features/users/enums"
	users_models "clienttrack/internal/features/users/models"
	"clienttrack/internal/storage"
	sanitize_utils "clienttrack/internal/util/sanitize"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepository struct{}

func (r *UserRepository) CreateUser(user *users_models.User) error {
	return storage.GetDb().Create(user).Error
}

func (r *UserRepository) GetUserByEmail(email string) (*users_models.User, error) {
	var user users_models.User

	if err := storage.GetDb().Where("email = ?", email).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}

		return nil, err
	}

	return &user, nil
}

func (r *UserRepository) GetUserByID(userID uuid.UUID) (*users_models.User, error) {
	var user users_models.User

	if err := storage.GetDb().Where("id = ?", userID).First(&user).Error; err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *UserRepository) GetUserByUsername(username string) (*users_models.User, error) {
	var user users_models.User

	if err := storage.GetDb().Where("username = ?", username).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}

		return nil, err
	}

	return &user, nil
}

func (r *UserRepository) UpdateUserPassword(userID uuid.UUID, hashedPassword string) error {
	return storage.GetDb().Model(&users_models.User{}).
		Where("id = ?", userID).
		Updates(map[string]any{
			"hashed_password":        hashedPassword,
			"password_creation_time": time.Now().UTC(),
		}).Error
}

func (r *UserRepository) UpdateLastLogin(userID uuid.UUID) error {
	return storage.GetDb().Model(&users_models.User{}).
		Where("id = ?", userID).
		Update("last_login", time.Now().UTC()).Error
}

func (r *UserRepository) DeleteUser(userID uuid.UUID) error {
	return storage.GetDb().Delete(&users_models.User{}, userID).Error
}

func (r *UserRepository) CreateInitialAdmin() error {
	admin, err := r.GetUserByEmail("admin")
	if err != nil {
		return fmt.Errorf("failed to get admin user: %w", err)
	}

	if admin != nil {
		return nil
	}

	admin = &users_models.User{
		ID:                   uuid.New(),
		Username:             "admin",
		FirstName:            "Root",
		LastName:             "Admin",
		Email:                "admin",
		HashedPassword:       nil,
		PasswordCreationTime: time.Now().UTC(),
		Role:                 users_enums.UserRoleAdmin,
		CreatedAt:            time.Now().UTC(),
		UpdatedAt:            time.Now().UTC(),
	}

	return storage.GetDb().Create(admin).Error
}

func (r *UserRepository) RenameUserEmailForTests(oldEmail, newEmail string) error {
	// Username is unique too, so the displaced row must free both columns.
	return storage.GetDb().Model(&users_models.User{}).
		Where("email = ?", oldEmail).
		Updates(map[string]any{"email": newEmail, "username": newEmail}).Error
}

// SearchUsers applies search refinement and pagination on top of an
// accessibility-scoped base query. The base query's grouping already
// deduplicated rows, so limit/offset here can never split an entity.
func (r *UserRepository) SearchUsers(
	base *gorm.DB,
	request *users_dto.SearchUsersRequestDTO,
	limit, offset int,
) ([]*users_models.User, int64, error) {
	query := r.applySearch(base, request)

	var total int64
	if err := storage.GetDb().
		Table("(?) AS scoped_users", query.Session(&gorm.Session{})).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	users := make([]*users_models.User, 0)

	err := query.
		Order("users.first_name ASC").
		Limit(limit).
		Offset(offset).
		Find(&users).Error

	return users, total, err
}

func (r *UserRepository) applySearch(
	query *gorm.DB,
	request *users_dto.SearchUsersRequestDTO,
) *gorm.DB {
	term := sanitize_utils.SearchTerm(request.Search)
	if term == "" {
		return query
	}

	pattern := "%" + term + "%"

	if request.Username || request.Name || request.Email || request.CreatedAt || request.UpdatedAt {
		if request.Username {
			query = query.Where("users.username LIKE ?", pattern)
		}
		if request.Name {
			first, last, isFullName := sanitize_utils.SplitFullName(term)
			if isFullName {
				query = query.
					Where("users.first_name LIKE ?", "%"+first+"%").
					Where("users.last_name LIKE ?", "%"+last+"%")
			} else {
				query = query.Where("users.first_name LIKE ?", "%"+first+"%")
			}
		}
		if request.Email {
			query = query.Where("users.email LIKE ?", pattern)
		}
		if request.CreatedAt {
			query = query.Where("CAST(users.created_at AS TEXT) LIKE ?", pattern)
		}
		if request.UpdatedAt {
			query = query.Where("CAST(users.updated_at AS TEXT) LIKE ?", pattern)
		}

		return query
	}

	return query.Where(
		`users.username LIKE ? OR users.first_name LIKE ? OR users.last_name LIKE ?
			OR users.email LIKE ?
			OR CAST(users.created_at AS TEXT) LIKE ? OR CAST(users.updated_at AS TEXT) LIKE ?`,
		pattern, pattern, pattern, pattern, pattern, pattern,
	)
}
