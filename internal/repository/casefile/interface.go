// File: internal/repository/casefile/interface.go
package casefile

import (
	"context"

	"github.com/iyunix/go-counsel/internal/domain"
)

// CaseRepository defines data access for intake cases.
type CaseRepository interface {
	Create(ctx context.Context, c *domain.Case) (*domain.Case, error)
	FindByID(ctx context.Context, caseID string) (*domain.Case, error)
	FirstByUserEmail(ctx context.Context, email string) (*domain.Case, error)
	FindByUserEmail(ctx context.Context, email string) ([]domain.Case, error)
	FindAll(ctx context.Context) ([]domain.Case, error)
	UpdateStatus(ctx context.Context, caseID, status string) error
}
