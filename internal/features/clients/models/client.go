package clients_models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Client struct {
	ID             uuid.UUID  `json:"id"`
	Slug           string     `json:"slug"`
	Company        string     `json:"company"`
	FirstName      string     `json:"firstName"      gorm:"column:first_name"`
	LastName       string     `json:"lastName"       gorm:"column:last_name"`
	Email          string     `json:"email"`
	ContactNumber  string     `json:"contactNumber"  gorm:"column:contact_number"`
	BuildingNumber string     `json:"buildingNumber" gorm:"column:building_number"`
	StreetName     string     `json:"streetName"     gorm:"column:street_name"`
	City           string     `json:"city"`
	Postcode       string     `json:"postcode"`
	CreatedBy      *uuid.UUID `json:"createdBy"      gorm:"column:created_by"`
	UpdatedBy      *uuid.UUID `json:"updatedBy"      gorm:"column:updated_by"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`

	// IsNotExists marks negative cache entries; never stored in the DB.
	IsNotExists bool `json:"isNotExists,omitempty" gorm:"-"`
}

func (Client) TableName() string {
	return "clients"
}

// Representative is the client's contact person full name.
func (c *Client) Representative() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}
