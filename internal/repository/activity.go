package repository

import (
	"context"
	"errors"
	"fmt"

	"commons/internal/models"
	"commons/internal/observability"

	"gorm.io/gorm"
)

// ActivityRepository defines data access for reminders/RSVPs recorded as user activities.
type ActivityRepository interface {
	Create(ctx context.Context, activity *models.UserActivity) error
	Find(ctx context.Context, userID, eventID uint, eventType, activityType string) (*models.UserActivity, error)
	ListByUser(ctx context.Context, userID uint) ([]models.UserActivity, error)
	ListByEvent(ctx context.Context, eventID uint, eventType string) ([]models.UserActivity, error)
	CountRSVPs(ctx context.Context, eventID uint, eventType string) (int64, error)
}

type activityRepository struct {
	db *gorm.DB
}

func NewActivityRepository(db *gorm.DB) ActivityRepository {
	return &activityRepository{db: db}
}

// Create inserts activity. A second RSVP for the same user and event yields ErrDuplicate.
func (r *activityRepository) Create(ctx context.Context, activity *models.UserActivity) error {
	defer observability.TrackQuery("create", "user_activities")()

	if err := r.db.WithContext(ctx).Create(activity).Error; err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("create activity: %w", ErrDuplicate)
		}
		return fmt.Errorf("create activity: %w", err)
	}
	return nil
}

// Find returns the earliest matching activity, or nil.
func (r *activityRepository) Find(ctx context.Context, userID, eventID uint, eventType, activityType string) (*models.UserActivity, error) {
	defer observability.TrackQuery("get", "user_activities")()

	var activity models.UserActivity
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND event_id = ? AND event_type = ? AND activity_type = ?", userID, eventID, eventType, activityType).
		Order("id ASC").
		First(&activity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("find activity: %w", err)
	}
	return &activity, nil
}

func (r *activityRepository) ListByUser(ctx context.Context, userID uint) ([]models.UserActivity, error) {
	defer observability.TrackQuery("list", "user_activities")()

	activities := []models.UserActivity{}
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC").Order("id DESC").Find(&activities).Error; err != nil {
		return nil, fmt.Errorf("list activities for user %d: %w", userID, err)
	}
	return activities, nil
}

func (r *activityRepository) ListByEvent(ctx context.Context, eventID uint, eventType string) ([]models.UserActivity, error) {
	defer observability.TrackQuery("list", "user_activities")()

	activities := []models.UserActivity{}
	if err := r.db.WithContext(ctx).Where("event_id = ? AND event_type = ?", eventID, eventType).Order("id ASC").Find(&activities).Error; err != nil {
		return nil, fmt.Errorf("list activities for %s event %d: %w", eventType, eventID, err)
	}
	return activities, nil
}

// CountRSVPs counts RSVP activities for an event.
func (r *activityRepository) CountRSVPs(ctx context.Context, eventID uint, eventType string) (int64, error) {
	defer observability.TrackQuery("count", "user_activities")()

	var n int64
	err := r.db.WithContext(ctx).Model(&models.UserActivity{}).
		Where("event_id = ? AND event_type = ? AND activity_type = ?", eventID, eventType, models.ActivityRSVP).
		Count(&n).Error
	if err != nil {
		return 0, fmt.Errorf("count rsvps for %s event %d: %w", eventType, eventID, err)
	}
	return n, nil
}
