package access

import (
	"time"

	"github.com/google/uuid"
)

// Membership is a row of the client_user association table, the single
// source of truth for which users may see which clients. The table carries
// no uniqueness constraint, so duplicate (user, client) pairs may coexist;
// every read path collapses them by grouping on the target entity's
// primary key.
type Membership struct {
	ID        uuid.UUID `json:"id"        gorm:"column:id"`
	UserID    uuid.UUID `json:"userId"    gorm:"column:user_id"`
	ClientID  uuid.UUID `json:"clientId"  gorm:"column:client_id"`
	CreatedAt time.Time `json:"createdAt" gorm:"column:created_at"`
}

func (Membership) TableName() string {
	return "client_user"
}
