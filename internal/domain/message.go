// File: internal/domain/message.go
package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Sender roles for a message. The wire value is the role string itself.
const (
	SenderClient = "client"
	SenderLawyer = "lawyer"
)

// ValidSender reports whether s is one of the two known sender roles.
func ValidSender(s string) bool {
	return s == SenderClient || s == SenderLawyer
}

// Message represents a single chat entry within a case. Messages are
// immutable and ordered by CreatedAt ascending.
type Message struct {
	ID        string    `json:"id" gorm:"type:uuid;primaryKey"`
	CaseID    string    `json:"case_id" gorm:"type:uuid;index;not null"`
	Sender    string    `json:"sender" gorm:"not null"` // "client" or "lawyer"
	Content   string    `json:"content" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at"`
}

// BeforeCreate hook to generate UUID
func (m *Message) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	return nil
}
