package service

import (
	"testing"

	"commons/internal/models"
	"commons/internal/repository"
	"commons/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type repos struct {
	db          *gorm.DB
	users       repository.UserRepository
	videos      repository.VideoRepository
	events      repository.LiveEventRepository
	discussions repository.DiscussionRepository
	activities  repository.ActivityRepository
	reminders   repository.ReminderRepository
	answers     repository.GuideAnswerRepository
}

func newRepos(t *testing.T) repos {
	db := testutil.NewSQLiteDB(t)
	return repos{
		db:          db,
		users:       repository.NewUserRepository(db),
		videos:      repository.NewVideoRepository(db),
		events:      repository.NewLiveEventRepository(db),
		discussions: repository.NewDiscussionRepository(db),
		activities:  repository.NewActivityRepository(db),
		reminders:   repository.NewReminderRepository(db),
		answers:     repository.NewGuideAnswerRepository(db),
	}
}

// requireAppError asserts err is an *models.AppError with the given code.
func requireAppError(t *testing.T, err error, code string) *models.AppError {
	t.Helper()
	require.Error(t, err)
	appErr, ok := err.(*models.AppError)
	require.True(t, ok, "expected *models.AppError, got %T: %v", err, err)
	assert.Equal(t, code, appErr.Code)
	return appErr
}

func fieldPaths(appErr *models.AppError) []string {
	paths := make([]string, 0, len(appErr.Fields))
	for _, f := range appErr.Fields {
		paths = append(paths, f.Path)
	}
	return paths
}
