package logs_dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateLogRequestDTO struct {
	ClientID    uuid.UUID `json:"clientId"`
	Title       string    `json:"title"       binding:"required,min=2,max=191"`
	Description string    `json:"description" binding:"max=1000"`
	Body        string    `json:"body"`
	Notes       string    `json:"notes"`
}

type UpdateLogRequestDTO struct {
	ClientID    uuid.UUID `json:"clientId"`
	Title       string    `json:"title"       binding:"required,min=2,max=191"`
	Description string    `json:"description" binding:"max=1000"`
	Body        string    `json:"body"`
	Notes       string    `json:"notes"`
}

type LogResponseDTO struct {
	ID          uuid.UUID  `json:"id"`
	Slug        string     `json:"slug"`
	ClientID    uuid.UUID  `json:"clientId"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Body        string     `json:"body"`
	Notes       string     `json:"notes"`
	CreatedBy   *uuid.UUID `json:"createdBy"`
	UpdatedBy   *uuid.UUID `json:"updatedBy"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

type ListLogsResponseDTO struct {
	Logs   []LogResponseDTO `json:"logs"`
	Total  int64            `json:"total"`
	Limit  int              `json:"limit"`
	Offset int              `json:"offset"`
}

// SearchLogsRequestDTO selects which columns the shared search term is
// matched against; with no flag set the term is OR-matched across every
// searchable column.
type SearchLogsRequestDTO struct {
	Search      string `form:"search"`
	Title       bool   `form:"title"`
	Description bool   `form:"description"`
	Body        bool   `form:"body"`
	CreatedAt   bool   `form:"created_at"`
	UpdatedAt   bool   `form:"updated_at"`
	Limit       int    `form:"limit"`
	Offset      int    `form:"offset"`
}
