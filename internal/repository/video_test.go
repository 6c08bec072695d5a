package repository

import (
	"context"
	"testing"

	"commons/internal/models"
	"commons/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newVideo(title string, active bool) *models.Video {
	return &models.Video{
		Title:           title,
		Description:     "A look at " + title,
		YoutubeURL:      "https://youtube.com/embed/abc",
		DiscussionGuide: "1. What stood out?",
		Active:          active,
	}
}

func TestVideoRepository_ListActiveHidesInactive(t *testing.T) {
	repo := NewVideoRepository(testutil.NewSQLiteDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newVideo("Shown", true)))
	hidden := newVideo("Hidden", false)
	require.NoError(t, repo.Create(ctx, hidden))

	active, err := repo.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "Shown", active[0].Title)

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	got, err := repo.GetByID(ctx, hidden.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.False(t, got.Active)
}

func TestVideoRepository_NullableColumns(t *testing.T) {
	repo := NewVideoRepository(testutil.NewSQLiteDB(t))
	ctx := context.Background()

	v := newVideo("No duration", true)
	require.NoError(t, repo.Create(ctx, v))

	got, err := repo.GetByID(ctx, v.ID)
	require.NoError(t, err)
	assert.Nil(t, got.Duration)
	assert.Nil(t, got.ThumbnailURL)
}

func TestVideoRepository_UpdateAndDelete(t *testing.T) {
	repo := NewVideoRepository(testutil.NewSQLiteDB(t))
	ctx := context.Background()

	v := newVideo("Original", true)
	v.Duration = testutil.IntPtr(45)
	require.NoError(t, repo.Create(ctx, v))

	updated, err := repo.Update(ctx, v.ID, map[string]interface{}{"title": "Renamed", "active": false})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "Renamed", updated.Title)
	assert.False(t, updated.Active)
	assert.Equal(t, "A look at Original", updated.Description)
	require.NotNil(t, updated.Duration)
	assert.Equal(t, 45, *updated.Duration)

	unchanged, err := repo.Update(ctx, v.ID, map[string]interface{}{})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", unchanged.Title)

	missing, err := repo.Update(ctx, 999, map[string]interface{}{"title": "Ghost"})
	require.NoError(t, err)
	assert.Nil(t, missing)

	deleted, err := repo.Delete(ctx, v.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = repo.Delete(ctx, v.ID)
	require.NoError(t, err)
	assert.False(t, deleted)

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}
