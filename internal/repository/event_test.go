package repository

import (
	"context"
	"testing"
	"time"

	"commons/internal/models"
	"commons/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLiveEventRepository_GetCurrent(t *testing.T) {
	repo := NewLiveEventRepository(testutil.NewSQLiteDB(t))
	ctx := context.Background()

	none, err := repo.GetCurrent(ctx)
	require.NoError(t, err)
	assert.Nil(t, none)

	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	events := []struct {
		title  string
		offset time.Duration
	}{
		{"Earlier", 0},
		{"Latest", 48 * time.Hour},
		{"Middle", 24 * time.Hour},
	}
	for _, e := range events {
		require.NoError(t, repo.Create(ctx, &models.LiveEvent{
			Title:           e.title,
			Description:     "d",
			YoutubeURL:      "https://youtube.com/embed/x",
			EventDate:       base.Add(e.offset),
			DiscussionGuide: "1. Why?",
		}))
	}

	current, err := repo.GetCurrent(ctx)
	require.NoError(t, err)
	require.NotNil(t, current)
	assert.Equal(t, "Latest", current.Title)

	updated, err := repo.Update(ctx, current.ID, map[string]interface{}{"title": "Latest (moved)"})
	require.NoError(t, err)
	assert.Equal(t, "Latest (moved)", updated.Title)
	assert.True(t, updated.EventDate.Equal(base.Add(48*time.Hour)))

	missing, err := repo.Update(ctx, 404, map[string]interface{}{"title": "x"})
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestDiscussionRepository_Filters(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	videos := NewVideoRepository(db)
	repo := NewDiscussionRepository(db)
	ctx := context.Background()

	v := newVideo("Tour", true)
	require.NoError(t, videos.Create(ctx, v))

	now := time.Now().UTC()
	linked := &models.Discussion{Title: "About the tour", VideoID: &v.ID, Date: now, Transcription: "We talked."}
	loose := &models.Discussion{Title: "Unlinked", Date: now.Add(-time.Hour), Transcription: "Other."}
	require.NoError(t, repo.Create(ctx, linked))
	require.NoError(t, repo.Create(ctx, loose))

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "About the tour", all[0].Title)

	byVideo, err := repo.ListByVideo(ctx, v.ID)
	require.NoError(t, err)
	require.Len(t, byVideo, 1)
	assert.Equal(t, linked.ID, byVideo[0].ID)

	byEvent, err := repo.ListByLiveEvent(ctx, 1)
	require.NoError(t, err)
	assert.NotNil(t, byEvent)
	assert.Empty(t, byEvent)

	got, err := repo.GetByID(ctx, loose.ID)
	require.NoError(t, err)
	assert.Nil(t, got.VideoID)
	assert.Nil(t, got.AudioURL)

	ok, err := repo.Delete(ctx, loose.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	gone, err := repo.GetByID(ctx, loose.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestActivityRepository_RSVPUniqueness(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	repo := NewActivityRepository(db)
	ctx := context.Background()
	user := testutil.CreateUser(t, db, "alice", false)

	rsvp := &models.UserActivity{UserID: user.ID, EventID: 1, EventType: models.EventTypeLive, ActivityType: models.ActivityRSVP}
	require.NoError(t, repo.Create(ctx, rsvp))

	err := repo.Create(ctx, &models.UserActivity{UserID: user.ID, EventID: 1, EventType: models.EventTypeLive, ActivityType: models.ActivityRSVP})
	assert.ErrorIs(t, err, ErrDuplicate)

	for i := 0; i < 2; i++ {
		require.NoError(t, repo.Create(ctx, &models.UserActivity{UserID: user.ID, EventID: 1, EventType: models.EventTypeLive, ActivityType: models.ActivityReminder}))
	}

	found, err := repo.Find(ctx, user.ID, 1, models.EventTypeLive, models.ActivityRSVP)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, rsvp.ID, found.ID)

	missing, err := repo.Find(ctx, user.ID, 1, models.EventTypeVideo, models.ActivityRSVP)
	require.NoError(t, err)
	assert.Nil(t, missing)

	count, err := repo.CountRSVPs(ctx, 1, models.EventTypeLive)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	mine, err := repo.ListByUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, mine, 3)

	forEvent, err := repo.ListByEvent(ctx, 1, models.EventTypeLive)
	require.NoError(t, err)
	assert.Len(t, forEvent, 3)
}

func TestEngagementRepositories(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	reminders := NewReminderRepository(db)
	answers := NewGuideAnswerRepository(db)
	ctx := context.Background()
	alice := testutil.CreateUser(t, db, "alice", false)
	bob := testutil.CreateUser(t, db, "bob", false)

	at := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	require.NoError(t, reminders.Create(ctx, &models.Reminder{UserID: alice.ID, EventID: 2, EventType: models.EventTypeVideo, ReminderTime: at.Add(time.Hour)}))
	require.NoError(t, reminders.Create(ctx, &models.Reminder{UserID: alice.ID, EventID: 2, EventType: models.EventTypeVideo, ReminderTime: at}))

	mine, err := reminders.ListByUser(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.True(t, mine[0].ReminderTime.Before(mine[1].ReminderTime))

	none, err := reminders.ListByEvent(ctx, 2, models.EventTypeLive)
	require.NoError(t, err)
	assert.Empty(t, none)

	require.NoError(t, answers.Create(ctx, &models.DiscussionGuideAnswer{UserID: alice.ID, EventID: 2, EventType: models.EventTypeVideo, QuestionIndex: 1, Answer: "The light."}))
	require.NoError(t, answers.Create(ctx, &models.DiscussionGuideAnswer{UserID: bob.ID, EventID: 2, EventType: models.EventTypeVideo, QuestionIndex: 0, Answer: "The scale."}))

	forEvent, err := answers.ListByEvent(ctx, 2, models.EventTypeVideo)
	require.NoError(t, err)
	require.Len(t, forEvent, 2)
	assert.Equal(t, 0, forEvent[0].QuestionIndex)

	alices, err := answers.ListByUserForEvent(ctx, alice.ID, 2, models.EventTypeVideo)
	require.NoError(t, err)
	require.Len(t, alices, 1)
	assert.Equal(t, "The light.", alices[0].Answer)

	bobs, err := answers.ListByUser(ctx, bob.ID)
	require.NoError(t, err)
	assert.Len(t, bobs, 1)
}
