// File: internal/domain/case.go
package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StatusReviewing is the status written by the system on intake. Admins may
// overwrite the status with arbitrary text, so this is a default, not an enum.
const StatusReviewing = "Reviewing"

// DefaultCaseTitle is used when the intake form leaves the title blank.
const DefaultCaseTitle = "New Litigation Inquiry"

// Case represents a single client intake record. A case is identified by its
// normalized email: at most one case should exist per normalized email.
type Case struct {
	ID        string    `json:"id" gorm:"type:uuid;primaryKey"`
	UserEmail string    `json:"user_email" gorm:"index;not null"` // trimmed + lowercased
	Title     string    `json:"title" gorm:"not null"`
	Status    string    `json:"status" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
}

// BeforeCreate hook to generate UUID
func (c *Case) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return nil
}
