package logs_repositories

import (
	logs_dto "clienttrack/internal/features/logs/dto"
	logs_models "clienttrack/internal/features/logs/models"
	"clienttrack/internal/storage"
	sanitize_utils "clienttrack/internal/util/sanitize"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LogRepository struct{}

func (r *LogRepository) CreateLog(log *logs_models.Log) error {
	return storage.GetDb().Create(log).Error
}

func (r *LogRepository) GetLogBySlug(slug string) (*logs_models.Log, error) {
	var log logs_models.Log

	if err := storage.GetDb().Where("slug = ?", slug).First(&log).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}

		return nil, err
	}

	return &log, nil
}

func (r *LogRepository) UpdateLog(log *logs_models.Log) error {
	return storage.GetDb().Save(log).Error
}

func (r *LogRepository) DeleteLog(logID uuid.UUID) error {
	return storage.GetDb().Delete(&logs_models.Log{}, logID).Error
}

// SearchLogs applies search refinement and pagination on top of an
// accessibility-scoped base query. The base query's grouping already
// deduplicated rows, so limit/offset here can never split an entity.
func (r *LogRepository) SearchLogs(
	base *gorm.DB,
	request *logs_dto.SearchLogsRequestDTO,
	limit, offset int,
) ([]*logs_models.Log, int64, error) {
	query := r.applySearch(base, request)

	var total int64
	if err := storage.GetDb().
		Table("(?) AS scoped_logs", query.Session(&gorm.Session{})).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	logs := make([]*logs_models.Log, 0)

	err := query.
		Order("logs.created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&logs).Error

	return logs, total, err
}

func (r *LogRepository) applySearch(
	query *gorm.DB,
	request *logs_dto.SearchLogsRequestDTO,
) *gorm.DB {
	term := sanitize_utils.SearchTerm(request.Search)
	if term == "" {
		return query
	}

	pattern := "%" + term + "%"

	if request.Title || request.Description || request.Body || request.CreatedAt || request.UpdatedAt {
		if request.Title {
			query = query.Where("logs.title LIKE ?", pattern)
		}
		if request.Description {
			query = query.Where("logs.description LIKE ?", pattern)
		}
		if request.Body {
			query = query.Where("logs.body LIKE ?", pattern)
		}
		if request.CreatedAt {
			query = query.Where("CAST(logs.created_at AS TEXT) LIKE ?", pattern)
		}
		if request.UpdatedAt {
			query = query.Where("CAST(logs.updated_at AS TEXT) LIKE ?", pattern)
		}

		return query
	}

	return query.Where(
		`logs.title LIKE ? OR logs.description LIKE ? OR logs.body LIKE ? OR logs.notes LIKE ?
			OR CAST(logs.created_at AS TEXT) LIKE ? OR CAST(logs.updated_at AS TEXT) LIKE ?`,
		pattern, pattern, pattern, pattern, pattern, pattern,
	)
}
