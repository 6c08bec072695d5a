package repository

import (
	"context"
	"errors"
	"fmt"

	"commons/internal/models"
	"commons/internal/observability"

	"gorm.io/gorm"
)

// VideoRepository defines data access for on-demand videos.
type VideoRepository interface {
	ListAll(ctx context.Context) ([]models.Video, error)
	ListActive(ctx context.Context) ([]models.Video, error)
	GetByID(ctx context.Context, id uint) (*models.Video, error)
	Create(ctx context.Context, video *models.Video) error
	Update(ctx context.Context, id uint, columns map[string]interface{}) (*models.Video, error)
	Delete(ctx context.Context, id uint) (bool, error)
	Count(ctx context.Context) (int64, error)
}

type videoRepository struct {
	db *gorm.DB
}

func NewVideoRepository(db *gorm.DB) VideoRepository {
	return &videoRepository{db: db}
}

func (r *videoRepository) ListAll(ctx context.Context) ([]models.Video, error) {
	defer observability.TrackQuery("list", "videos")()

	videos := []models.Video{}
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&videos).Error; err != nil {
		return nil, fmt.Errorf("list videos: %w", err)
	}
	return videos, nil
}

func (r *videoRepository) ListActive(ctx context.Context) ([]models.Video, error) {
	defer observability.TrackQuery("list", "videos")()

	videos := []models.Video{}
	if err := r.db.WithContext(ctx).Where("active = ?", true).Order("id ASC").Find(&videos).Error; err != nil {
		return nil, fmt.Errorf("list active videos: %w", err)
	}
	return videos, nil
}

// GetByID ignores the active flag.
func (r *videoRepository) GetByID(ctx context.Context, id uint) (*models.Video, error) {
	defer observability.TrackQuery("get", "videos")()

	var video models.Video
	if err := r.db.WithContext(ctx).First(&video, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get video %d: %w", id, err)
	}
	return &video, nil
}

func (r *videoRepository) Create(ctx context.Context, video *models.Video) error {
	defer observability.TrackQuery("create", "videos")()

	if err := r.db.WithContext(ctx).Create(video).Error; err != nil {
		return fmt.Errorf("create video: %w", err)
	}
	return nil
}

// Update merges columns into the row and returns the result, or nil when id is unknown.
func (r *videoRepository) Update(ctx context.Context, id uint, columns map[string]interface{}) (*models.Video, error) {
	if len(columns) > 0 {
		done := observability.TrackQuery("update", "videos")
		res := r.db.WithContext(ctx).Model(&models.Video{ID: id}).Updates(columns)
		done()
		if res.Error != nil {
			return nil, fmt.Errorf("update video %d: %w", id, res.Error)
		}
		if res.RowsAffected == 0 {
			return nil, nil
		}
	}
	return r.GetByID(ctx, id)
}

func (r *videoRepository) Delete(ctx context.Context, id uint) (bool, error) {
	defer observability.TrackQuery("delete", "videos")()

	res := r.db.WithContext(ctx).Delete(&models.Video{}, id)
	if res.Error != nil {
		return false, fmt.Errorf("delete video %d: %w", id, res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *videoRepository) Count(ctx context.Context) (int64, error) {
	defer observability.TrackQuery("count", "videos")()

	var n int64
	if err := r.db.WithContext(ctx).Model(&models.Video{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count videos: %w", err)
	}
	return n, nil
}
