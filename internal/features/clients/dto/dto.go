package clients_dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateClientRequestDTO struct {
	Company        string      `json:"company"        binding:"required,min=2,max=191"`
	FirstName      string      `json:"firstName"      binding:"required,min=2,max=191"`
	LastName       string      `json:"lastName"       binding:"required,min=2,max=191"`
	Email          string      `json:"email"          binding:"required,email,max=191"`
	ContactNumber  string      `json:"contactNumber"  binding:"max=40"`
	BuildingNumber string      `json:"buildingNumber" binding:"max=40"`
	StreetName     string      `json:"streetName"     binding:"max=191"`
	City           string      `json:"city"           binding:"max=191"`
	Postcode       string      `json:"postcode"       binding:"max=20"`
	UserIDs        []uuid.UUID `json:"userIds"`
}

type UpdateClientRequestDTO struct {
	Company        string `json:"company"        binding:"required,min=2,max=191"`
	FirstName      string `json:"firstName"      binding:"required,min=2,max=191"`
	LastName       string `json:"lastName"       binding:"required,min=2,max=191"`
	Email          string `json:"email"          binding:"required,email,max=191"`
	ContactNumber  string `json:"contactNumber"  binding:"max=40"`
	BuildingNumber string `json:"buildingNumber" binding:"max=40"`
	StreetName     string `json:"streetName"     binding:"max=191"`
	City           string `json:"city"           binding:"max=191"`
	Postcode       string `json:"postcode"       binding:"max=20"`
}

type ClientResponseDTO struct {
	ID             uuid.UUID  `json:"id"`
	Slug           string     `json:"slug"`
	Company        string     `json:"company"`
	FirstName      string     `json:"firstName"`
	LastName       string     `json:"lastName"`
	Email          string     `json:"email"`
	ContactNumber  string     `json:"contactNumber"`
	BuildingNumber string     `json:"buildingNumber"`
	StreetName     string     `json:"streetName"`
	City           string     `json:"city"`
	Postcode       string     `json:"postcode"`
	CreatedBy      *uuid.UUID `json:"createdBy"`
	UpdatedBy      *uuid.UUID `json:"updatedBy"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

type ListClientsResponseDTO struct {
	Clients []ClientResponseDTO `json:"clients"`
	Total   int64               `json:"total"`
	Limit   int                 `json:"limit"`
	Offset  int                 `json:"offset"`
}

// SearchClientsRequestDTO selects which columns the shared search term is
// matched against; with no flag set the term is OR-matched across every
// searchable column.
type SearchClientsRequestDTO struct {
	Search         string `form:"search"`
	Company        bool   `form:"company"`
	Representative bool   `form:"representative"`
	Email          bool   `form:"email"`
	CreatedAt      bool   `form:"created_at"`
	UpdatedAt      bool   `form:"updated_at"`
	Limit          int    `form:"limit"`
	Offset         int    `form:"offset"`
}
