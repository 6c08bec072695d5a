// Package service implements the application's use cases on top of the
// repositories. Errors meant for clients are *models.AppError; anything else
// is an internal failure.
package service

import (
	"context"

	"commons/internal/models"
	"commons/internal/repository"
	"commons/internal/validation"
)

type VideoService struct {
	videos repository.VideoRepository
}

func NewVideoService(videos repository.VideoRepository) *VideoService {
	return &VideoService{videos: videos}
}

// ListPublic returns active videos only.
func (s *VideoService) ListPublic(ctx context.Context) ([]models.Video, error) {
	return s.videos.ListActive(ctx)
}

// ListAll includes inactive videos.
func (s *VideoService) ListAll(ctx context.Context) ([]models.Video, error) {
	return s.videos.ListAll(ctx)
}

// Get returns the video regardless of its active flag.
func (s *VideoService) Get(ctx context.Context, id uint) (*models.Video, error) {
	video, err := s.videos.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if video == nil {
		return nil, models.NewNotFoundError("Video", id)
	}
	return video, nil
}

func (s *VideoService) Create(ctx context.Context, in models.CreateVideoInput) (*models.Video, error) {
	if appErr := validation.ValidateStruct(in); appErr != nil {
		return nil, appErr
	}
	video := in.ToModel()
	if err := s.videos.Create(ctx, video); err != nil {
		return nil, err
	}
	return video, nil
}

// Update applies the fields present in in and returns the merged video.
func (s *VideoService) Update(ctx context.Context, id uint, in models.UpdateVideoInput) (*models.Video, error) {
	if appErr := validation.ValidateStruct(in); appErr != nil {
		return nil, appErr
	}
	video, err := s.videos.Update(ctx, id, in.Columns())
	if err != nil {
		return nil, err
	}
	if video == nil {
		return nil, models.NewNotFoundError("Video", id)
	}
	return video, nil
}

func (s *VideoService) Delete(ctx context.Context, id uint) error {
	found, err := s.videos.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !found {
		return models.NewNotFoundError("Video", id)
	}
	return nil
}

type LiveEventService struct {
	events     repository.LiveEventRepository
	activities repository.ActivityRepository
}

func NewLiveEventService(events repository.LiveEventRepository, activities repository.ActivityRepository) *LiveEventService {
	return &LiveEventService{events: events, activities: activities}
}

// Current returns the live event with the latest date.
func (s *LiveEventService) Current(ctx context.Context) (*models.LiveEvent, error) {
	event, err := s.events.GetCurrent(ctx)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, &models.AppError{Code: models.CodeNotFound, Message: "No live event found"}
	}
	return event, nil
}

func (s *LiveEventService) Get(ctx context.Context, id uint) (*models.LiveEvent, error) {
	event, err := s.events.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, models.NewNotFoundError("Live event", id)
	}
	return event, nil
}

func (s *LiveEventService) Create(ctx context.Context, in models.CreateLiveEventInput) (*models.LiveEvent, error) {
	if appErr := validation.ValidateStruct(in); appErr != nil {
		return nil, appErr
	}
	event := in.ToModel()
	if err := s.events.Create(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

func (s *LiveEventService) Update(ctx context.Context, id uint, in models.UpdateLiveEventInput) (*models.LiveEvent, error) {
	if appErr := validation.ValidateStruct(in); appErr != nil {
		return nil, appErr
	}
	event, err := s.events.Update(ctx, id, in.Columns())
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, models.NewNotFoundError("Live event", id)
	}
	return event, nil
}

// RSVPCount is the number of distinct users who RSVP'd to the event.
type RSVPCount struct {
	EventID uint  `json:"eventId"`
	Count   int64 `json:"count"`
}

func (s *LiveEventService) RSVPs(ctx context.Context, id uint) (*RSVPCount, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	n, err := s.activities.CountRSVPs(ctx, id, models.EventTypeLive)
	if err != nil {
		return nil, err
	}
	return &RSVPCount{EventID: id, Count: n}, nil
}
