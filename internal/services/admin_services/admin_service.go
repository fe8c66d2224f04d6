// File: internal/services/admin_services/admin_service.go
package admin_services

import (
	"context"
	"errors"

	"github.com/iyunix/go-counsel/internal/domain"
	"github.com/iyunix/go-counsel/internal/repository/casefile"
	"github.com/iyunix/go-counsel/internal/repository/message"
	"github.com/iyunix/go-counsel/internal/services/portal"
)

type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
	Debug(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
}

// AdminService covers the lawyer-side operations. Every method assumes the
// admin gate has already been passed; it does no authorization of its own.
type AdminService struct {
	caseRepo    casefile.CaseRepository
	messageRepo message.MessageRepository
	logger      Logger
}

func NewAdminService(caseRepo casefile.CaseRepository, messageRepo message.MessageRepository, logger Logger) (*AdminService, error) {
	if caseRepo == nil {
		return nil, portal.NewValidationError("constructor", "case repository is required")
	}
	if messageRepo == nil {
		return nil, portal.NewValidationError("constructor", "message repository is required")
	}
	return &AdminService{caseRepo: caseRepo, messageRepo: messageRepo, logger: logger}, nil
}

// AllCases returns every case in the firm, newest first.
func (s *AdminService) AllCases(ctx context.Context) ([]domain.Case, error) {
	cases, err := s.caseRepo.FindAll(ctx)
	if err != nil {
		return nil, portal.NewStoreError("all_cases", "could not fetch cases", err)
	}
	return cases, nil
}

// UpdateStatus overwrites a case status with whatever text the admin sent.
func (s *AdminService) UpdateStatus(ctx context.Context, caseID, status string) error {
	if caseID == "" {
		return portal.NewValidationError("update_status", "case ID is required")
	}

	if err := s.caseRepo.UpdateStatus(ctx, caseID, status); err != nil {
		if errors.Is(err, casefile.ErrCaseNotFound) {
			return portal.NewNotFoundError("update_status", "case not found")
		}
		return portal.NewStoreError("update_status", "could not update case status", err)
	}

	s.logger.Info("case status updated", "case_id", caseID, "status", status)
	return nil
}

// Reply appends a message to a case with the sender fixed to lawyer.
func (s *AdminService) Reply(ctx context.Context, caseID, content string) error {
	if caseID == "" {
		return portal.NewValidationError("admin_reply", "case ID is required")
	}

	msg := &domain.Message{
		CaseID:  caseID,
		Sender:  domain.SenderLawyer,
		Content: content,
	}
	if _, err := s.messageRepo.Create(ctx, msg); err != nil {
		return portal.NewStoreError("admin_reply", "could not store reply", err)
	}

	s.logger.Info("lawyer reply sent", "case_id", caseID)
	return nil
}
