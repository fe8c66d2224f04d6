// File: internal/repository/message/message_repository.go
package message

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/iyunix/go-counsel/internal/domain"
)

type gormMessageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &gormMessageRepository{db: db}
}

// Create appends a message. Messages are immutable after insert.
func (r *gormMessageRepository) Create(ctx context.Context, m *domain.Message) (*domain.Message, error) {
	if err := r.validateMessageInput(m); err != nil {
		zap.S().Warnf("[MessageRepository] Validation failed: %v", err)
		return nil, err
	}

	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		zap.S().Errorf("[MessageRepository] Database error during message creation for case ID %s: %v", m.CaseID, err)
		return nil, errors.New("database error creating message")
	}
	return m, nil
}

// FindByCaseID returns the full message history for a case, chronological.
// No pagination: result size is unbounded.
func (r *gormMessageRepository) FindByCaseID(ctx context.Context, caseID string) ([]domain.Message, error) {
	if caseID == "" {
		return nil, errors.New("invalid case ID")
	}

	var messages []domain.Message
	err := r.db.WithContext(ctx).
		Where("case_id = ?", caseID).
		Order("created_at ASC").
		Find(&messages).Error
	if err != nil {
		zap.S().Errorf("[MessageRepository] Database error finding messages for case ID %s: %v", caseID, err)
		return nil, errors.New("database error fetching messages")
	}
	return messages, nil
}

func (r *gormMessageRepository) validateMessageInput(m *domain.Message) error {
	if m == nil {
		return errors.New("message cannot be nil")
	}
	if m.CaseID == "" {
		return errors.New("message case ID cannot be empty")
	}
	if !domain.ValidSender(m.Sender) {
		return errors.New("message sender must be client or lawyer")
	}
	return nil
}
