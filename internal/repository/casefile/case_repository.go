// File: internal/repository/casefile/case_repository.go
package casefile

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/iyunix/go-counsel/internal/domain"
)

var ErrCaseNotFound = errors.New("case not found")

type gormCaseRepository struct {
	db *gorm.DB
}

func NewCaseRepository(db *gorm.DB) CaseRepository {
	return &gormCaseRepository{db: db}
}

// Create inserts a new case. The store assigns ID and CreatedAt.
func (r *gormCaseRepository) Create(ctx context.Context, c *domain.Case) (*domain.Case, error) {
	if err := r.validateCaseInput(c); err != nil {
		zap.S().Warnf("[CaseRepository] Validation failed: %v", err)
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if err := r.db.WithContext(ctx).Create(c).Error; err != nil {
		// Secure logging - no sensitive data exposed
		zap.S().Errorf("[CaseRepository] Database error during case creation: %v", err)
		return nil, errors.New("database error creating case")
	}

	zap.S().Infof("[CaseRepository] Case created successfully with ID: %s", c.ID)
	return c, nil
}

func (r *gormCaseRepository) FindByID(ctx context.Context, caseID string) (*domain.Case, error) {
	if caseID == "" {
		return nil, errors.New("invalid case ID")
	}

	var c domain.Case
	err := r.db.WithContext(ctx).First(&c, "id = ?", caseID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCaseNotFound
		}
		zap.S().Errorf("[CaseRepository] Database error finding case ID %s: %v", caseID, err)
		return nil, errors.New("database error fetching case")
	}
	return &c, nil
}

// FirstByUserEmail returns the oldest case for a normalized email, or
// ErrCaseNotFound. Used by the open-or-resume check before insert.
func (r *gormCaseRepository) FirstByUserEmail(ctx context.Context, email string) (*domain.Case, error) {
	if email == "" {
		return nil, errors.New("invalid user email")
	}

	var c domain.Case
	err := r.db.WithContext(ctx).
		Where("user_email = ?", email).
		Order("created_at ASC").
		First(&c).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCaseNotFound
		}
		zap.S().Errorf("[CaseRepository] Database error finding case by email: %v", err)
		return nil, errors.New("database error fetching case")
	}
	return &c, nil
}

func (r *gormCaseRepository) FindByUserEmail(ctx context.Context, email string) ([]domain.Case, error) {
	if email == "" {
		return nil, errors.New("invalid user email")
	}

	var cases []domain.Case
	err := r.db.WithContext(ctx).
		Where("user_email = ?", email).
		Order("created_at DESC").
		Find(&cases).Error
	if err != nil {
		zap.S().Errorf("[CaseRepository] Database error finding cases by email: %v", err)
		return nil, errors.New("database error fetching cases")
	}
	return cases, nil
}

func (r *gormCaseRepository) FindAll(ctx context.Context) ([]domain.Case, error) {
	var cases []domain.Case
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&cases).Error
	if err != nil {
		zap.S().Errorf("[CaseRepository] Database error fetching all cases: %v", err)
		return nil, errors.New("database error fetching cases")
	}
	return cases, nil
}

// UpdateStatus overwrites the status unconditionally. The status value is not
// validated: admins may write arbitrary text.
func (r *gormCaseRepository) UpdateStatus(ctx context.Context, caseID, status string) error {
	if caseID == "" {
		return errors.New("invalid case ID")
	}

	result := r.db.WithContext(ctx).
		Model(&domain.Case{}).
		Where("id = ?", caseID).
		Update("status", status)

	if result.Error != nil {
		zap.S().Errorf("[CaseRepository] Database error updating status for case ID %s: %v", caseID, result.Error)
		return errors.New("database error updating case status")
	}
	if result.RowsAffected == 0 {
		return ErrCaseNotFound
	}

	zap.S().Infof("[CaseRepository] Status updated for case ID %s", caseID)
	return nil
}

func (r *gormCaseRepository) validateCaseInput(c *domain.Case) error {
	if c == nil {
		return errors.New("case cannot be nil")
	}
	if strings.TrimSpace(c.UserEmail) == "" {
		return errors.New("user email cannot be empty")
	}
	if strings.TrimSpace(c.Title) == "" {
		return errors.New("case title cannot be empty")
	}
	return nil
}
