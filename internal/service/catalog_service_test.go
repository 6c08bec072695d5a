package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"commons/internal/models"
	"commons/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validVideoInput() models.CreateVideoInput {
	return models.CreateVideoInput{
		Title:           "Renaissance Masters",
		Description:     "Paintings of the period",
		YoutubeURL:      "https://www.youtube.com/embed/s5lsyGF7Us0",
		DiscussionGuide: "1. Which painting stayed with you?",
	}
}

func TestVideoService_CreateDefaults(t *testing.T) {
	r := newRepos(t)
	svc := NewVideoService(r.videos)
	ctx := context.Background()

	video, err := svc.Create(ctx, validVideoInput())
	require.NoError(t, err)
	assert.NotZero(t, video.ID)
	assert.True(t, video.Active)
	assert.Nil(t, video.Duration)
	assert.Nil(t, video.ThumbnailURL)

	stored, err := svc.Get(ctx, video.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.Duration)
	assert.Equal(t, "Renaissance Masters", stored.Title)
}

func TestVideoService_CreateValidation(t *testing.T) {
	r := newRepos(t)
	svc := NewVideoService(r.videos)

	_, err := svc.Create(context.Background(), models.CreateVideoInput{
		Title:    "  ",
		Duration: testutil.IntPtr(-5),
	})
	appErr := requireAppError(t, err, models.CodeValidation)
	assert.Equal(t, "Validation failed", appErr.Message)
	assert.ElementsMatch(t,
		[]string{"title", "description", "youtubeUrl", "duration", "discussionGuide"},
		fieldPaths(appErr))

	n, err := r.videos.Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestVideoService_PartialUpdate(t *testing.T) {
	r := newRepos(t)
	svc := NewVideoService(r.videos)
	ctx := context.Background()

	in := validVideoInput()
	in.Duration = testutil.IntPtr(45)
	video, err := svc.Create(ctx, in)
	require.NoError(t, err)

	updated, err := svc.Update(ctx, video.ID, models.UpdateVideoInput{Active: testutil.BoolPtr(false)})
	require.NoError(t, err)
	assert.False(t, updated.Active)
	assert.Equal(t, in.Title, updated.Title)
	assert.Equal(t, 45, *updated.Duration)

	public, err := svc.ListPublic(ctx)
	require.NoError(t, err)
	assert.Empty(t, public)

	all, err := svc.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	_, err = svc.Update(ctx, 999, models.UpdateVideoInput{Title: testutil.StringPtr("x")})
	requireAppError(t, err, models.CodeNotFound)

	_, err = svc.Update(ctx, video.ID, models.UpdateVideoInput{Duration: testutil.IntPtr(-1)})
	requireAppError(t, err, models.CodeValidation)
}

func TestVideoService_Delete(t *testing.T) {
	r := newRepos(t)
	svc := NewVideoService(r.videos)
	ctx := context.Background()

	video, err := svc.Create(ctx, validVideoInput())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, video.ID))
	requireAppError(t, svc.Delete(ctx, video.ID), models.CodeNotFound)

	_, err = svc.Get(ctx, video.ID)
	requireAppError(t, err, models.CodeNotFound)
}

// videoRepoStub is a stub for repository.VideoRepository.
type videoRepoStub struct {
	err error
}

func (s *videoRepoStub) ListAll(context.Context) ([]models.Video, error)    { return nil, s.err }
func (s *videoRepoStub) ListActive(context.Context) ([]models.Video, error) { return nil, s.err }
func (s *videoRepoStub) GetByID(context.Context, uint) (*models.Video, error) {
	return nil, s.err
}
func (s *videoRepoStub) Create(context.Context, *models.Video) error { return s.err }
func (s *videoRepoStub) Update(context.Context, uint, map[string]interface{}) (*models.Video, error) {
	return nil, s.err
}
func (s *videoRepoStub) Delete(context.Context, uint) (bool, error) { return false, s.err }
func (s *videoRepoStub) Count(context.Context) (int64, error)       { return 0, s.err }

func TestVideoService_StoreErrorsAreNotAppErrors(t *testing.T) {
	storeErr := errors.New("connection refused")
	svc := NewVideoService(&videoRepoStub{err: storeErr})

	_, err := svc.Get(context.Background(), 1)
	assert.ErrorIs(t, err, storeErr)
	assert.Equal(t, 500, models.StatusFor(err))

	err = svc.Delete(context.Background(), 1)
	assert.ErrorIs(t, err, storeErr)
}

func TestLiveEventService(t *testing.T) {
	r := newRepos(t)
	svc := NewLiveEventService(r.events, r.activities)
	ctx := context.Background()

	_, err := svc.Current(ctx)
	appErr := requireAppError(t, err, models.CodeNotFound)
	assert.Equal(t, "No live event found", appErr.Message)

	event, err := svc.Create(ctx, models.CreateLiveEventInput{
		Title:           "Metropolitan Museum Virtual Tour",
		Description:     "Renaissance art",
		YoutubeURL:      "https://www.youtube.com/embed/Z1XU5ZGqzeI",
		EventDate:       "2023-12-31T15:00:00",
		DiscussionGuide: "1. What surprised you?",
	})
	require.NoError(t, err)
	assert.True(t, event.EventDate.Equal(time.Date(2023, 12, 31, 15, 0, 0, 0, time.UTC)))

	current, err := svc.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, event.ID, current.ID)

	_, err = svc.Create(ctx, models.CreateLiveEventInput{Title: "x", Description: "y", YoutubeURL: "z", DiscussionGuide: "g", EventDate: "next tuesday"})
	appErr = requireAppError(t, err, models.CodeValidation)
	assert.Equal(t, []string{"eventDate"}, fieldPaths(appErr))

	updated, err := svc.Update(ctx, event.ID, models.UpdateLiveEventInput{EventDate: testutil.StringPtr("2024-01-07T15:00:00Z")})
	require.NoError(t, err)
	assert.Equal(t, event.Title, updated.Title)
	assert.Equal(t, 2024, updated.EventDate.Year())

	_, err = svc.Update(ctx, 77, models.UpdateLiveEventInput{Title: testutil.StringPtr("x")})
	requireAppError(t, err, models.CodeNotFound)
}

func TestLiveEventService_RSVPs(t *testing.T) {
	r := newRepos(t)
	svc := NewLiveEventService(r.events, r.activities)
	ctx := context.Background()

	_, err := svc.RSVPs(ctx, 1)
	requireAppError(t, err, models.CodeNotFound)

	event, err := svc.Create(ctx, models.CreateLiveEventInput{
		Title: "Tour", Description: "d", YoutubeURL: "u", EventDate: "2024-02-01", DiscussionGuide: "g",
	})
	require.NoError(t, err)

	for _, name := range []string{"alice", "bob"} {
		user := testutil.CreateUser(t, r.db, name, false)
		require.NoError(t, r.activities.Create(ctx, &models.UserActivity{
			UserID: user.ID, EventID: event.ID, EventType: models.EventTypeLive, ActivityType: models.ActivityRSVP,
		}))
	}

	count, err := svc.RSVPs(ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, event.ID, count.EventID)
	assert.Equal(t, int64(2), count.Count)
}
