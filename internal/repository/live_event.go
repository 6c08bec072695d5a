package repository

import (
	"context"
	"errors"
	"fmt"

	"commons/internal/models"
	"commons/internal/observability"

	"gorm.io/gorm"
)

// LiveEventRepository defines data access for live events.
type LiveEventRepository interface {
	GetCurrent(ctx context.Context) (*models.LiveEvent, error)
	GetByID(ctx context.Context, id uint) (*models.LiveEvent, error)
	Create(ctx context.Context, event *models.LiveEvent) error
	Update(ctx context.Context, id uint, columns map[string]interface{}) (*models.LiveEvent, error)
}

type liveEventRepository struct {
	db *gorm.DB
}

func NewLiveEventRepository(db *gorm.DB) LiveEventRepository {
	return &liveEventRepository{db: db}
}

// GetCurrent returns the most recently dated event.
func (r *liveEventRepository) GetCurrent(ctx context.Context) (*models.LiveEvent, error) {
	defer observability.TrackQuery("get", "live_events")()

	var event models.LiveEvent
	err := r.db.WithContext(ctx).Order("event_date DESC").Order("id DESC").First(&event).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get current live event: %w", err)
	}
	return &event, nil
}

func (r *liveEventRepository) GetByID(ctx context.Context, id uint) (*models.LiveEvent, error) {
	defer observability.TrackQuery("get", "live_events")()

	var event models.LiveEvent
	if err := r.db.WithContext(ctx).First(&event, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get live event %d: %w", id, err)
	}
	return &event, nil
}

func (r *liveEventRepository) Create(ctx context.Context, event *models.LiveEvent) error {
	defer observability.TrackQuery("create", "live_events")()

	if err := r.db.WithContext(ctx).Create(event).Error; err != nil {
		return fmt.Errorf("create live event: %w", err)
	}
	return nil
}

// Update merges columns into the row and returns the result, or nil when id is unknown.
func (r *liveEventRepository) Update(ctx context.Context, id uint, columns map[string]interface{}) (*models.LiveEvent, error) {
	if len(columns) > 0 {
		done := observability.TrackQuery("update", "live_events")
		res := r.db.WithContext(ctx).Model(&models.LiveEvent{ID: id}).Updates(columns)
		done()
		if res.Error != nil {
			return nil, fmt.Errorf("update live event %d: %w", id, res.Error)
		}
		if res.RowsAffected == 0 {
			return nil, nil
		}
	}
	return r.GetByID(ctx, id)
}
