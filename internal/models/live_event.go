package models

import "time"

// LiveEvent is a scheduled streamed session. The most recently dated one is current.
type LiveEvent struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Title           string    `gorm:"size:255;not null" json:"title"`
	Description     string    `gorm:"type:text;not null" json:"description"`
	YoutubeURL      string    `gorm:"column:youtube_url;size:255;not null" json:"youtubeUrl"`
	EventDate       time.Time `gorm:"not null;index" json:"eventDate"`
	DiscussionGuide string    `gorm:"type:text;not null" json:"discussionGuide"`
	CreatedAt       time.Time `json:"-"`
	UpdatedAt       time.Time `json:"-"`
}

// CreateLiveEventInput is the accepted payload for inserting a live event.
type CreateLiveEventInput struct {
	Title           string `json:"title" validate:"required,notblank"`
	Description     string `json:"description" validate:"required,notblank"`
	YoutubeURL      string `json:"youtubeUrl" validate:"required,notblank"`
	EventDate       string `json:"eventDate" validate:"required,instant"`
	DiscussionGuide string `json:"discussionGuide" validate:"required,notblank"`
}

// ToModel builds the row to insert. Call only after validation.
func (in CreateLiveEventInput) ToModel() *LiveEvent {
	eventDate, _ := ParseInstant(in.EventDate)
	return &LiveEvent{
		Title:           in.Title,
		Description:     in.Description,
		YoutubeURL:      in.YoutubeURL,
		EventDate:       eventDate,
		DiscussionGuide: in.DiscussionGuide,
	}
}

// UpdateLiveEventInput is a partial update. Nil fields keep their stored value.
type UpdateLiveEventInput struct {
	Title           *string `json:"title" validate:"omitempty,notblank"`
	Description     *string `json:"description" validate:"omitempty,notblank"`
	YoutubeURL      *string `json:"youtubeUrl" validate:"omitempty,notblank"`
	EventDate       *string `json:"eventDate" validate:"omitempty,instant"`
	DiscussionGuide *string `json:"discussionGuide" validate:"omitempty,notblank"`
}

// Columns returns only the columns present in the update.
func (in UpdateLiveEventInput) Columns() map[string]interface{} {
	cols := make(map[string]interface{})
	if in.Title != nil {
		cols["title"] = *in.Title
	}
	if in.Description != nil {
		cols["description"] = *in.Description
	}
	if in.YoutubeURL != nil {
		cols["youtube_url"] = *in.YoutubeURL
	}
	if in.EventDate != nil {
		if t, err := ParseInstant(*in.EventDate); err == nil {
			cols["event_date"] = t
		}
	}
	if in.DiscussionGuide != nil {
		cols["discussion_guide"] = *in.DiscussionGuide
	}
	return cols
}
