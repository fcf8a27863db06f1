package models

import (
	"time"
)

// User is the profile record for a verified identity. The UID is the
// opaque identifier supplied by the identity provider; credential
// verification happens upstream of this service.
type User struct {
	UID         string    `gorm:"primaryKey" json:"uid"`
	DisplayName string    `gorm:"not null" json:"display_name"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
