package logs_models

import (
	"time"

	"github.com/google/uuid"
)

// Log is a free-text note belonging to exactly one client.
type Log struct {
	ID          uuid.UUID  `json:"id"`
	Slug        string     `json:"slug"`
	ClientID    uuid.UUID  `json:"clientId"    gorm:"column:client_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Body        string     `json:"body"`
	Notes       string     `json:"notes"`
	CreatedBy   *uuid.UUID `json:"createdBy"   gorm:"column:created_by"`
	UpdatedBy   *uuid.UUID `json:"updatedBy"   gorm:"column:updated_by"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func (Log) TableName() string {
	return "logs"
}
