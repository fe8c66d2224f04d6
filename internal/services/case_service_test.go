package services

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/iyunix/go-counsel/internal/domain"
	"github.com/iyunix/go-counsel/internal/repository/casefile"
	"github.com/iyunix/go-counsel/internal/services/portal"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	// A fresh pool connection would see an empty in-memory database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&domain.Case{}, &domain.Message{}))
	return db
}

func newCaseService(t *testing.T) (*CaseService, casefile.CaseRepository) {
	t.Helper()
	repo := casefile.NewCaseRepository(newTestDB(t))
	svc, err := NewCaseService(repo, &NoOpLogger{})
	require.NoError(t, err)
	return svc, repo
}

func TestOpenOrResumeNormalizesEmail(t *testing.T) {
	svc, _ := newCaseService(t)
	ctx := context.Background()

	c, created, err := svc.OpenOrResume(ctx, " Jane@Law.com ", "Divorce")
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "jane@law.com", c.UserEmail)
	assert.Equal(t, "Divorce", c.Title)
	assert.Equal(t, domain.StatusReviewing, c.Status)
	assert.NotEmpty(t, c.ID)
}

func TestOpenOrResumeIsIdempotent(t *testing.T) {
	svc, _ := newCaseService(t)
	ctx := context.Background()

	first, created, err := svc.OpenOrResume(ctx, "jane@law.com", "Divorce")
	require.NoError(t, err)
	require.True(t, created)

	// Same email in different casing, different title: resume, don't touch.
	second, created, err := svc.OpenOrResume(ctx, "JANE@LAW.COM", "Something Else")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "Divorce", second.Title)
	assert.Equal(t, domain.StatusReviewing, second.Status)

	cases, err := svc.CasesForUser(ctx, "jane@law.com")
	require.NoError(t, err)
	assert.Len(t, cases, 1)
}

func TestOpenOrResumeDefaultsTitle(t *testing.T) {
	svc, _ := newCaseService(t)

	c, _, err := svc.OpenOrResume(context.Background(), "jane@law.com", "   ")
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultCaseTitle, c.Title)
}

func TestOpenOrResumeRejectsEmptyEmail(t *testing.T) {
	svc, _ := newCaseService(t)

	_, _, err := svc.OpenOrResume(context.Background(), "   ", "Divorce")
	require.Error(t, err)
	assert.Equal(t, portal.ErrTypeValidation, portal.TypeOf(err))
}

func TestGetCaseNotFound(t *testing.T) {
	svc, _ := newCaseService(t)

	_, err := svc.GetCase(context.Background(), "3f1a0f6e-0000-0000-0000-000000000000")
	require.Error(t, err)
	assert.Equal(t, portal.ErrTypeNotFound, portal.TypeOf(err))
}

func TestCasesForUserScopedToEmail(t *testing.T) {
	svc, _ := newCaseService(t)
	ctx := context.Background()

	_, _, err := svc.OpenOrResume(ctx, "jane@law.com", "Divorce")
	require.NoError(t, err)
	_, _, err = svc.OpenOrResume(ctx, "john@law.com", "Contract Dispute")
	require.NoError(t, err)

	cases, err := svc.CasesForUser(ctx, "Jane@Law.com")
	require.NoError(t, err)
	require.Len(t, cases, 1)
	assert.Equal(t, "jane@law.com", cases[0].UserEmail)
}

func TestNewCaseServiceRequiresRepository(t *testing.T) {
	_, err := NewCaseService(nil, &NoOpLogger{})
	assert.Error(t, err)
}
