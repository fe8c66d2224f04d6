// File: internal/services/message_service.go
package services

import (
	"context"

	"github.com/iyunix/go-counsel/internal/domain"
	"github.com/iyunix/go-counsel/internal/repository/message"
	"github.com/iyunix/go-counsel/internal/services/portal"
)

// MessageService appends and lists the chat history of a case.
type MessageService struct {
	messageRepo message.MessageRepository
	logger      Logger
}

func NewMessageService(messageRepo message.MessageRepository, logger Logger) (*MessageService, error) {
	if messageRepo == nil {
		return nil, portal.NewValidationError("constructor", "message repository is required")
	}
	if logger == nil {
		logger = &NoOpLogger{}
	}
	return &MessageService{messageRepo: messageRepo, logger: logger}, nil
}

// Append records a message on a case. The sender role is caller-supplied and
// is only checked against the known role values, not against the session:
// the client-facing endpoint trusts the role it is given.
func (s *MessageService) Append(ctx context.Context, caseID, sender, content string) error {
	if caseID == "" {
		return portal.NewValidationError("append_message", "case ID is required")
	}
	if !domain.ValidSender(sender) {
		return portal.NewValidationError("append_message", "sender must be client or lawyer")
	}

	msg := &domain.Message{
		CaseID:  caseID,
		Sender:  sender,
		Content: content,
	}
	if _, err := s.messageRepo.Create(ctx, msg); err != nil {
		return portal.NewStoreError("append_message", "could not store message", err)
	}

	s.logger.Info("message appended", "case_id", caseID, "sender", sender)
	return nil
}

// ListForCase returns the case history in chronological order.
func (s *MessageService) ListForCase(ctx context.Context, caseID string) ([]domain.Message, error) {
	if caseID == "" {
		return nil, portal.NewValidationError("list_messages", "case ID is required")
	}

	messages, err := s.messageRepo.FindByCaseID(ctx, caseID)
	if err != nil {
		return nil, portal.NewStoreError("list_messages", "could not fetch messages", err)
	}
	return messages, nil
}
