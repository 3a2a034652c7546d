package clients_repositories

import (
	clients_dto "clienttrack/internal/features/clients/dto"
	clients_models "clienttrack/internal/features/clients/models"
	"clienttrack/internal/storage"
	sanitize_utils "clienttrack/internal/util/sanitize"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ClientRepository struct{}

func (r *ClientRepository) CreateClient(client *clients_models.Client) error {
	return storage.GetDb().Create(client).Error
}

func (r *ClientRepository) GetClientBySlug(slug string) (*clients_models.Client, error) {
	var client clients_models.Client

	if err := storage.GetDb().Where("slug = ?", slug).First(&client).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}

		return nil, err
	}

	return &client, nil
}

func (r *ClientRepository) GetClientByCompany(company string) (*clients_models.Client, error) {
	var client clients_models.Client

	if err := storage.GetDb().Where("company = ?", company).First(&client).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}

		return nil, err
	}

	return &client, nil
}

func (r *ClientRepository) UpdateClient(client *clients_models.Client) error {
	return storage.GetDb().Save(client).Error
}

func (r *ClientRepository) DeleteClient(clientID uuid.UUID) error {
	return storage.GetDb().Delete(&clients_models.Client{}, clientID).Error
}

// SearchClients applies search refinement and pagination on top of an
// accessibility-scoped base query. The base query's grouping already
// deduplicated rows, so limit/offset here can never split an entity.
func (r *ClientRepository) SearchClients(
	base *gorm.DB,
	request *clients_dto.SearchClientsRequestDTO,
	limit, offset int,
) ([]*clients_models.Client, int64, error) {
	query := r.applySearch(base, request)

	var total int64
	if err := storage.GetDb().
		Table("(?) AS scoped_clients", query.Session(&gorm.Session{})).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	clients := make([]*clients_models.Client, 0)

	err := query.
		Order("clients.company ASC").
		Limit(limit).
		Offset(offset).
		Find(&clients).Error

	return clients, total, err
}

func (r *ClientRepository) applySearch(
	query *gorm.DB,
	request *clients_dto.SearchClientsRequestDTO,
) *gorm.DB {
	term := sanitize_utils.SearchTerm(request.Search)
	if term == "" {
		return query
	}

	pattern := "%" + term + "%"

	if request.Company || request.Representative || request.Email || request.CreatedAt || request.UpdatedAt {
		if request.Company {
			query = query.Where("clients.company LIKE ?", pattern)
		}
		if request.Representative {
			first, last, isFullName := sanitize_utils.SplitFullName(term)
			if isFullName {
				query = query.
					Where("clients.first_name LIKE ?", "%"+first+"%").
					Where("clients.last_name LIKE ?", "%"+last+"%")
			} else {
				query = query.Where("clients.first_name LIKE ?", "%"+first+"%")
			}
		}
		if request.Email {
			query = query.Where("clients.email LIKE ?", pattern)
		}
		if request.CreatedAt {
			query = query.Where("CAST(clients.created_at AS TEXT) LIKE ?", pattern)
		}
		if request.UpdatedAt {
			query = query.Where("CAST(clients.updated_at AS TEXT) LIKE ?", pattern)
		}

		return query
	}

	return query.Where(
		`clients.company LIKE ? OR clients.first_name LIKE ? OR clients.last_name LIKE ?
			OR clients.email LIKE ? OR clients.contact_number LIKE ? OR clients.city LIKE ?
			OR CAST(clients.created_at AS TEXT) LIKE ? OR CAST(clients.updated_at AS TEXT) LIKE ?`,
		pattern, pattern, pattern, pattern, pattern, pattern, pattern, pattern,
	)
}
