package repository

import (
	"context"
	"errors"
	"fmt"

	"commons/internal/models"
	"commons/internal/observability"

	"gorm.io/gorm"
)

// DiscussionRepository defines data access for recorded discussions.
type DiscussionRepository interface {
	ListAll(ctx context.Context) ([]models.Discussion, error)
	GetByID(ctx context.Context, id uint) (*models.Discussion, error)
	ListByVideo(ctx context.Context, videoID uint) ([]models.Discussion, error)
	ListByLiveEvent(ctx context.Context, liveEventID uint) ([]models.Discussion, error)
	Create(ctx context.Context, discussion *models.Discussion) error
	Delete(ctx context.Context, id uint) (bool, error)
}

type discussionRepository struct {
	db *gorm.DB
}

func NewDiscussionRepository(db *gorm.DB) DiscussionRepository {
	return &discussionRepository{db: db}
}

func (r *discussionRepository) list(ctx context.Context, query string, args ...interface{}) ([]models.Discussion, error) {
	defer observability.TrackQuery("list", "discussions")()

	discussions := []models.Discussion{}
	q := r.db.WithContext(ctx)
	if query != "" {
		q = q.Where(query, args...)
	}
	if err := q.Order("date DESC").Order("id DESC").Find(&discussions).Error; err != nil {
		return nil, err
	}
	return discussions, nil
}

func (r *discussionRepository) ListAll(ctx context.Context) ([]models.Discussion, error) {
	discussions, err := r.list(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("list discussions: %w", err)
	}
	return discussions, nil
}

func (r *discussionRepository) ListByVideo(ctx context.Context, videoID uint) ([]models.Discussion, error) {
	discussions, err := r.list(ctx, "video_id = ?", videoID)
	if err != nil {
		return nil, fmt.Errorf("list discussions for video %d: %w", videoID, err)
	}
	return discussions, nil
}

func (r *discussionRepository) ListByLiveEvent(ctx context.Context, liveEventID uint) ([]models.Discussion, error) {
	discussions, err := r.list(ctx, "live_event_id = ?", liveEventID)
	if err != nil {
		return nil, fmt.Errorf("list discussions for live event %d: %w", liveEventID, err)
	}
	return discussions, nil
}

func (r *discussionRepository) GetByID(ctx context.Context, id uint) (*models.Discussion, error) {
	defer observability.TrackQuery("get", "discussions")()

	var discussion models.Discussion
	if err := r.db.WithContext(ctx).First(&discussion, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get discussion %d: %w", id, err)
	}
	return &discussion, nil
}

func (r *discussionRepository) Create(ctx context.Context, discussion *models.Discussion) error {
	defer observability.TrackQuery("create", "discussions")()

	if err := r.db.WithContext(ctx).Create(discussion).Error; err != nil {
		return fmt.Errorf("create discussion: %w", err)
	}
	return nil
}

func (r *discussionRepository) Delete(ctx context.Context, id uint) (bool, error) {
	defer observability.TrackQuery("delete", "discussions")()

	res := r.db.WithContext(ctx).Delete(&models.Discussion{}, id)
	if res.Error != nil {
		return false, fmt.Errorf("delete discussion %d: %w", id, res.Error)
	}
	return res.RowsAffected > 0, nil
}
