// File: internal/repository/message/interface.go
package message

import (
	"context"

	"github.com/iyunix/go-counsel/internal/domain"
)

// MessageRepository defines data access for case messages.
type MessageRepository interface {
	Create(ctx context.Context, m *domain.Message) (*domain.Message, error)
	FindByCaseID(ctx context.Context, caseID string) ([]domain.Message, error)
}
