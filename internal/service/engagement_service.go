package service

import (
	"context"
	"errors"
	"fmt"

	"commons/internal/models"
	"commons/internal/repository"
	"commons/internal/validation"
)

// EngagementService records what users do around events: reminders, RSVPs
// and answers to discussion guide questions.
type EngagementService struct {
	activities repository.ActivityRepository
	reminders  repository.ReminderRepository
	answers    repository.GuideAnswerRepository
	videos     repository.VideoRepository
	events     repository.LiveEventRepository
}

func NewEngagementService(
	activities repository.ActivityRepository,
	reminders repository.ReminderRepository,
	answers repository.GuideAnswerRepository,
	videos repository.VideoRepository,
	events repository.LiveEventRepository,
) *EngagementService {
	return &EngagementService{
		activities: activities,
		reminders:  reminders,
		answers:    answers,
		videos:     videos,
		events:     events,
	}
}

// eventRef is the shared view of a live event or video.
type eventRef struct {
	summary *models.EventSummary
	guide   string
}

// lookupEvent returns nil when the event does not exist.
func (s *EngagementService) lookupEvent(ctx context.Context, eventID uint, eventType string) (*eventRef, error) {
	switch eventType {
	case models.EventTypeLive:
		event, err := s.events.GetByID(ctx, eventID)
		if err != nil || event == nil {
			return nil, err
		}
		date := event.EventDate
		return &eventRef{
			summary: &models.EventSummary{ID: event.ID, Title: event.Title, Description: event.Description, YoutubeURL: event.YoutubeURL, EventDate: &date},
			guide:   event.DiscussionGuide,
		}, nil
	case models.EventTypeVideo:
		video, err := s.videos.GetByID(ctx, eventID)
		if err != nil || video == nil {
			return nil, err
		}
		return &eventRef{
			summary: &models.EventSummary{ID: video.ID, Title: video.Title, Description: video.Description, YoutubeURL: video.YoutubeURL},
			guide:   video.DiscussionGuide,
		}, nil
	default:
		return nil, fmt.Errorf("unknown event type %q", eventType)
	}
}

func (s *EngagementService) requireEvent(ctx context.Context, eventID uint, eventType string) (*eventRef, error) {
	ref, err := s.lookupEvent(ctx, eventID, eventType)
	if err != nil {
		return nil, err
	}
	if ref == nil {
		return nil, models.NewFieldValidationError([]models.FieldError{{
			Path:    "eventId",
			Message: fmt.Sprintf("%s event %d does not exist", eventType, eventID),
		}})
	}
	return ref, nil
}

// RecordActivity stores a reminder or RSVP. RSVPs are idempotent: a repeat
// returns the existing activity with created=false.
func (s *EngagementService) RecordActivity(ctx context.Context, userID uint, in models.CreateUserActivityInput) (*models.UserActivity, bool, error) {
	if appErr := validation.ValidateStruct(in); appErr != nil {
		return nil, false, appErr
	}
	if _, err := s.requireEvent(ctx, in.EventID, in.EventType); err != nil {
		return nil, false, err
	}

	if in.ActivityType == models.ActivityRSVP {
		existing, err := s.activities.Find(ctx, userID, in.EventID, in.EventType, models.ActivityRSVP)
		if err != nil {
			return nil, false, err
		}
		if existing != nil {
			return existing, false, nil
		}
	}

	activity := &models.UserActivity{
		UserID:       userID,
		EventID:      in.EventID,
		EventType:    in.EventType,
		ActivityType: in.ActivityType,
	}
	if err := s.activities.Create(ctx, activity); err != nil {
		if !errors.Is(err, repository.ErrDuplicate) {
			return nil, false, err
		}
		// Lost a race with a concurrent RSVP from the same user.
		existing, findErr := s.activities.Find(ctx, userID, in.EventID, in.EventType, models.ActivityRSVP)
		if findErr != nil || existing == nil {
			return nil, false, err
		}
		return existing, false, nil
	}
	return activity, true, nil
}

// ListActivities returns the user's activities, newest first, each with its
// event attached when the event still exists.
func (s *EngagementService) ListActivities(ctx context.Context, userID uint) ([]models.UserActivity, error) {
	activities, err := s.activities.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	type key struct {
		id  uint
		typ string
	}
	seen := make(map[key]*models.EventSummary)
	for i := range activities {
		k := key{activities[i].EventID, activities[i].EventType}
		summary, ok := seen[k]
		if !ok {
			ref, err := s.lookupEvent(ctx, k.id, k.typ)
			if err != nil {
				return nil, err
			}
			if ref != nil {
				summary = ref.summary
			}
			seen[k] = summary
		}
		activities[i].Event = summary
	}
	return activities, nil
}

func (s *EngagementService) CreateReminder(ctx context.Context, userID uint, in models.CreateReminderInput) (*models.Reminder, error) {
	if appErr := validation.ValidateStruct(in); appErr != nil {
		return nil, appErr
	}
	if _, err := s.requireEvent(ctx, in.EventID, in.EventType); err != nil {
		return nil, err
	}

	at, _ := models.ParseInstant(in.ReminderTime)
	reminder := &models.Reminder{
		UserID:       userID,
		EventID:      in.EventID,
		EventType:    in.EventType,
		ReminderTime: at,
	}
	if err := s.reminders.Create(ctx, reminder); err != nil {
		return nil, err
	}
	return reminder, nil
}

func (s *EngagementService) ListReminders(ctx context.Context, userID uint) ([]models.Reminder, error) {
	return s.reminders.ListByUser(ctx, userID)
}

// AnswerGuideQuestion stores an answer. questionIndex is zero-based over the
// numbered questions of the event's discussion guide.
func (s *EngagementService) AnswerGuideQuestion(ctx context.Context, userID uint, in models.CreateGuideAnswerInput) (*models.DiscussionGuideAnswer, error) {
	if appErr := validation.ValidateStruct(in); appErr != nil {
		return nil, appErr
	}
	ref, err := s.requireEvent(ctx, in.EventID, in.EventType)
	if err != nil {
		return nil, err
	}

	questions := models.ParseGuideQuestions(ref.guide)
	if *in.QuestionIndex >= len(questions) {
		return nil, models.NewFieldValidationError([]models.FieldError{{
			Path:    "questionIndex",
			Message: fmt.Sprintf("questionIndex must be less than %d", len(questions)),
		}})
	}

	answer := &models.DiscussionGuideAnswer{
		UserID:        userID,
		EventID:       in.EventID,
		EventType:     in.EventType,
		QuestionIndex: *in.QuestionIndex,
		Answer:        in.Answer,
	}
	if err := s.answers.Create(ctx, answer); err != nil {
		return nil, err
	}
	return answer, nil
}

// ListAnswers returns the user's answers for one event.
func (s *EngagementService) ListAnswers(ctx context.Context, userID, eventID uint, eventType string) ([]models.DiscussionGuideAnswer, error) {
	if eventType != models.EventTypeLive && eventType != models.EventTypeVideo {
		return nil, models.NewFieldValidationError([]models.FieldError{{
			Path:    "eventType",
			Message: "eventType must be one of: live, video",
		}})
	}
	return s.answers.ListByUserForEvent(ctx, userID, eventID, eventType)
}
