package service

import (
	"context"
	"fmt"
	"time"

	"commons/internal/models"
	"commons/internal/repository"
	"commons/internal/validation"
)

type DiscussionService struct {
	discussions repository.DiscussionRepository
	videos      repository.VideoRepository
	events      repository.LiveEventRepository
	now         func() time.Time
}

func NewDiscussionService(
	discussions repository.DiscussionRepository,
	videos repository.VideoRepository,
	events repository.LiveEventRepository,
) *DiscussionService {
	return &DiscussionService{
		discussions: discussions,
		videos:      videos,
		events:      events,
		now:         time.Now,
	}
}

func (s *DiscussionService) List(ctx context.Context) ([]models.Discussion, error) {
	return s.discussions.ListAll(ctx)
}

func (s *DiscussionService) ListForVideo(ctx context.Context, videoID uint) ([]models.Discussion, error) {
	return s.discussions.ListByVideo(ctx, videoID)
}

func (s *DiscussionService) ListForLiveEvent(ctx context.Context, liveEventID uint) ([]models.Discussion, error) {
	return s.discussions.ListByLiveEvent(ctx, liveEventID)
}

func (s *DiscussionService) Get(ctx context.Context, id uint) (*models.Discussion, error) {
	discussion, err := s.discussions.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if discussion == nil {
		return nil, models.NewNotFoundError("Discussion", id)
	}
	return discussion, nil
}

// Create inserts a discussion. A referenced video or live event must exist.
func (s *DiscussionService) Create(ctx context.Context, in models.CreateDiscussionInput) (*models.Discussion, error) {
	if appErr := validation.ValidateStruct(in); appErr != nil {
		return nil, appErr
	}

	var missing []models.FieldError
	if in.VideoID != nil {
		video, err := s.videos.GetByID(ctx, *in.VideoID)
		if err != nil {
			return nil, err
		}
		if video == nil {
			missing = append(missing, models.FieldError{Path: "videoId", Message: fmt.Sprintf("video %d does not exist", *in.VideoID)})
		}
	}
	if in.LiveEventID != nil {
		event, err := s.events.GetByID(ctx, *in.LiveEventID)
		if err != nil {
			return nil, err
		}
		if event == nil {
			missing = append(missing, models.FieldError{Path: "liveEventId", Message: fmt.Sprintf("live event %d does not exist", *in.LiveEventID)})
		}
	}
	if len(missing) > 0 {
		return nil, models.NewFieldValidationError(missing)
	}

	discussion := in.ToModel(s.now().UTC())
	if err := s.discussions.Create(ctx, discussion); err != nil {
		return nil, err
	}
	return discussion, nil
}

func (s *DiscussionService) Delete(ctx context.Context, id uint) error {
	found, err := s.discussions.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !found {
		return models.NewNotFoundError("Discussion", id)
	}
	return nil
}
