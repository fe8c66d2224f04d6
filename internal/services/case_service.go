// File: internal/services/case_service.go
package services

import (
	"context"
	"errors"
	"strings"

	"github.com/iyunix/go-counsel/internal/domain"
	"github.com/iyunix/go-counsel/internal/repository/casefile"
	"github.com/iyunix/go-counsel/internal/services/portal"
)

// CaseService implements the intake flow: one case per normalized email,
// opened on first submission and resumed on every later one.
type CaseService struct {
	caseRepo casefile.CaseRepository
	logger   Logger
}

func NewCaseService(caseRepo casefile.CaseRepository, logger Logger) (*CaseService, error) {
	if caseRepo == nil {
		return nil, portal.NewValidationError("constructor", "case repository is required")
	}
	if logger == nil {
		logger = &NoOpLogger{}
	}
	return &CaseService{caseRepo: caseRepo, logger: logger}, nil
}

// NormalizeEmail is the canonical form used as case identity: trimmed and
// lowercased. No further validation is applied to the address.
func NormalizeEmail(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// OpenOrResume returns the existing case for the email, or creates one with
// status "Reviewing". Resume never touches the stored title or status. The
// returned bool reports whether a new case was created.
//
// The check-then-insert is not transactional: two concurrent submissions for
// a brand-new email can both pass the check and create duplicate cases. This
// matches the behavior of the original portal and is left as-is.
func (s *CaseService) OpenOrResume(ctx context.Context, rawEmail, title string) (*domain.Case, bool, error) {
	email := NormalizeEmail(rawEmail)
	if email == "" {
		return nil, false, portal.NewValidationError("open_or_resume", "email is required")
	}

	existing, err := s.caseRepo.FirstByUserEmail(ctx, email)
	if err == nil {
		s.logger.Info("resuming existing case", "case_id", existing.ID)
		return existing, false, nil
	}
	if !errors.Is(err, casefile.ErrCaseNotFound) {
		return nil, false, portal.NewStoreError("open_or_resume", "could not check for existing case", err)
	}

	if strings.TrimSpace(title) == "" {
		title = domain.DefaultCaseTitle
	}

	newCase := &domain.Case{
		UserEmail: email,
		Title:     title,
		Status:    domain.StatusReviewing,
	}
	created, err := s.caseRepo.Create(ctx, newCase)
	if err != nil {
		return nil, false, portal.NewStoreError("open_or_resume", "could not create case", err)
	}

	s.logger.Info("case opened", "case_id", created.ID, "title", created.Title)
	return created, true, nil
}

// GetCase fetches a single case by ID.
func (s *CaseService) GetCase(ctx context.Context, caseID string) (*domain.Case, error) {
	if caseID == "" {
		return nil, portal.NewValidationError("get_case", "case ID is required")
	}

	c, err := s.caseRepo.FindByID(ctx, caseID)
	if err != nil {
		if errors.Is(err, casefile.ErrCaseNotFound) {
			return nil, portal.NewNotFoundError("get_case", "case not found")
		}
		return nil, portal.NewStoreError("get_case", "could not fetch case", err)
	}
	return c, nil
}

// CasesForUser returns the cases for one normalized email, newest first.
func (s *CaseService) CasesForUser(ctx context.Context, rawEmail string) ([]domain.Case, error) {
	email := NormalizeEmail(rawEmail)
	if email == "" {
		return nil, portal.NewValidationError("cases_for_user", "email is required")
	}

	cases, err := s.caseRepo.FindByUserEmail(ctx, email)
	if err != nil {
		return nil, portal.NewStoreError("cases_for_user", "could not fetch cases", err)
	}
	return cases, nil
}
