package repository

import (
	"context"
	"fmt"

	"commons/internal/models"
	"commons/internal/observability"

	"gorm.io/gorm"
)

// ReminderRepository defines data access for event reminders.
type ReminderRepository interface {
	Create(ctx context.Context, reminder *models.Reminder) error
	ListByUser(ctx context.Context, userID uint) ([]models.Reminder, error)
	ListByEvent(ctx context.Context, eventID uint, eventType string) ([]models.Reminder, error)
}

type reminderRepository struct {
	db *gorm.DB
}

func NewReminderRepository(db *gorm.DB) ReminderRepository {
	return &reminderRepository{db: db}
}

func (r *reminderRepository) Create(ctx context.Context, reminder *models.Reminder) error {
	defer observability.TrackQuery("create", "reminders")()

	if err := r.db.WithContext(ctx).Create(reminder).Error; err != nil {
		return fmt.Errorf("create reminder: %w", err)
	}
	return nil
}

func (r *reminderRepository) ListByUser(ctx context.Context, userID uint) ([]models.Reminder, error) {
	defer observability.TrackQuery("list", "reminders")()

	reminders := []models.Reminder{}
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("reminder_time ASC").Find(&reminders).Error; err != nil {
		return nil, fmt.Errorf("list reminders for user %d: %w", userID, err)
	}
	return reminders, nil
}

func (r *reminderRepository) ListByEvent(ctx context.Context, eventID uint, eventType string) ([]models.Reminder, error) {
	defer observability.TrackQuery("list", "reminders")()

	reminders := []models.Reminder{}
	if err := r.db.WithContext(ctx).Where("event_id = ? AND event_type = ?", eventID, eventType).Order("reminder_time ASC").Find(&reminders).Error; err != nil {
		return nil, fmt.Errorf("list reminders for %s event %d: %w", eventType, eventID, err)
	}
	return reminders, nil
}

// GuideAnswerRepository defines data access for discussion guide answers.
type GuideAnswerRepository interface {
	Create(ctx context.Context, answer *models.DiscussionGuideAnswer) error
	ListByUser(ctx context.Context, userID uint) ([]models.DiscussionGuideAnswer, error)
	ListByEvent(ctx context.Context, eventID uint, eventType string) ([]models.DiscussionGuideAnswer, error)
	ListByUserForEvent(ctx context.Context, userID, eventID uint, eventType string) ([]models.DiscussionGuideAnswer, error)
}

type guideAnswerRepository struct {
	db *gorm.DB
}

func NewGuideAnswerRepository(db *gorm.DB) GuideAnswerRepository {
	return &guideAnswerRepository{db: db}
}

func (r *guideAnswerRepository) Create(ctx context.Context, answer *models.DiscussionGuideAnswer) error {
	defer observability.TrackQuery("create", "discussion_guide_answers")()

	if err := r.db.WithContext(ctx).Create(answer).Error; err != nil {
		return fmt.Errorf("create guide answer: %w", err)
	}
	return nil
}

func (r *guideAnswerRepository) find(ctx context.Context, query string, args ...interface{}) ([]models.DiscussionGuideAnswer, error) {
	defer observability.TrackQuery("list", "discussion_guide_answers")()

	answers := []models.DiscussionGuideAnswer{}
	if err := r.db.WithContext(ctx).Where(query, args...).Order("question_index ASC").Order("id ASC").Find(&answers).Error; err != nil {
		return nil, err
	}
	return answers, nil
}

func (r *guideAnswerRepository) ListByUser(ctx context.Context, userID uint) ([]models.DiscussionGuideAnswer, error) {
	answers, err := r.find(ctx, "user_id = ?", userID)
	if err != nil {
		return nil, fmt.Errorf("list guide answers for user %d: %w", userID, err)
	}
	return answers, nil
}

func (r *guideAnswerRepository) ListByEvent(ctx context.Context, eventID uint, eventType string) ([]models.DiscussionGuideAnswer, error) {
	answers, err := r.find(ctx, "event_id = ? AND event_type = ?", eventID, eventType)
	if err != nil {
		return nil, fmt.Errorf("list guide answers for %s event %d: %w", eventType, eventID, err)
	}
	return answers, nil
}

func (r *guideAnswerRepository) ListByUserForEvent(ctx context.Context, userID, eventID uint, eventType string) ([]models.DiscussionGuideAnswer, error) {
	answers, err := r.find(ctx, "user_id = ? AND event_id = ? AND event_type = ?", userID, eventID, eventType)
	if err != nil {
		return nil, fmt.Errorf("list guide answers for user %d: %w", userID, err)
	}
	return answers, nil
}
