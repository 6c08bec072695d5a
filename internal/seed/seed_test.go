package seed

import (
	"context"
	"testing"
	"time"

	"commons/internal/auth"
	"commons/internal/models"
	"commons/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFixtures(t *testing.T) {
	f, err := LoadFixtures()
	require.NoError(t, err)

	assert.Equal(t, "admin", f.Admin.Username)
	require.Len(t, f.LiveEvents, 1)
	require.Len(t, f.Videos, 3)
	for _, v := range f.Videos {
		assert.NotEmpty(t, models.ParseGuideQuestions(v.DiscussionGuide), v.Title)
	}
	assert.Len(t, models.ParseGuideQuestions(f.LiveEvents[0].DiscussionGuide), 4)
}

func TestParseFixtures_Rejects(t *testing.T) {
	_, err := ParseFixtures([]byte("admin:\n  username: root\n"))
	assert.Error(t, err)

	_, err = ParseFixtures([]byte(`
admin: {username: root, password: pw}
live_events:
  - title: Broken
    event_date: someday
`))
	assert.Error(t, err)
}

func TestApply_Idempotent(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	ctx := context.Background()

	res, err := Apply(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, &Result{Users: 1, LiveEvents: 1, Videos: 3}, res)

	res, err = Apply(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, &Result{}, res)

	var admin models.User
	require.NoError(t, db.Where("username = ?", "admin").First(&admin).Error)
	assert.True(t, admin.IsAdmin)
	ok, err := auth.VerifyPassword("admin123", admin.Password)
	require.NoError(t, err)
	assert.True(t, ok)

	var videos []models.Video
	require.NoError(t, db.Order("id").Find(&videos).Error)
	require.Len(t, videos, 3)
	for _, v := range videos {
		assert.True(t, v.Active)
		require.NotNil(t, v.Duration)
	}
	assert.Nil(t, videos[0].ThumbnailURL)
	require.NotNil(t, videos[2].ThumbnailURL)
}

func TestApply_PromotesExistingAdminAccount(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	testutil.CreateUser(t, db, "admin", false)

	res, err := Apply(context.Background(), db)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Users)

	var admin models.User
	require.NoError(t, db.Where("username = ?", "admin").First(&admin).Error)
	assert.True(t, admin.IsAdmin)
}

func TestFactory_SeedDiscussions(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	ctx := context.Background()

	f := NewFactory(db, Options{MaxDays: 10, BatchSize: 4})
	_, err := f.SeedDiscussions(ctx, 3)
	assert.Error(t, err, "needs a catalog to attach to")

	_, err = Apply(ctx, db)
	require.NoError(t, err)

	discussions, err := f.SeedDiscussions(ctx, 10)
	require.NoError(t, err)
	require.Len(t, discussions, 10)

	var n int64
	require.NoError(t, db.Model(&models.Discussion{}).Count(&n).Error)
	assert.Equal(t, int64(10), n)

	for _, d := range discussions {
		assert.True(t, (d.VideoID == nil) != (d.LiveEventID == nil), "exactly one parent")
		assert.NotEmpty(t, d.Title)
		assert.NotEmpty(t, d.Transcription)
		assert.GreaterOrEqual(t, d.Participants, 2)
	}
}

func TestBuildDiscussion_DateWithinWindow(t *testing.T) {
	f := NewFactory(nil, Options{MaxDays: 5})
	d := f.BuildDiscussion(&models.Video{ID: 7}, nil)

	require.NotNil(t, d.VideoID)
	assert.Equal(t, uint(7), *d.VideoID)
	assert.Nil(t, d.LiveEventID)
	assert.True(t, time.Since(d.Date) <= 6*24*time.Hour, "date %v older than window", d.Date)
	assert.False(t, d.Date.After(time.Now()))
}
