package models

import "time"

// Discussion is a transcribed group conversation, optionally tied to a video
// or a live event.
type Discussion struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Title         string    `gorm:"size:255;not null" json:"title"`
	VideoID       *uint     `gorm:"index" json:"videoId"`
	LiveEventID   *uint     `gorm:"index" json:"liveEventId"`
	Date          time.Time `gorm:"not null" json:"date"`
	Participants  int       `gorm:"not null;default:0" json:"participants"`
	Duration      int       `gorm:"not null;default:0" json:"duration"`
	Transcription string    `gorm:"type:text;not null" json:"transcription"`
	AudioURL      *string   `gorm:"size:500" json:"audioUrl"`
}

// CreateDiscussionInput is the accepted payload for inserting a discussion.
type CreateDiscussionInput struct {
	Title         string  `json:"title" validate:"required,notblank"`
	VideoID       *uint   `json:"videoId" validate:"omitempty,gt=0"`
	LiveEventID   *uint   `json:"liveEventId" validate:"omitempty,gt=0"`
	Date          *string `json:"date" validate:"omitempty,instant"`
	Participants  *int    `json:"participants" validate:"omitempty,min=0"`
	Duration      *int    `json:"duration" validate:"omitempty,min=0"`
	Transcription string  `json:"transcription" validate:"required,notblank"`
	AudioURL      *string `json:"audioUrl"`
}

// ToModel builds the row to insert, applying defaults for omitted fields.
// now is used when no date was supplied.
func (in CreateDiscussionInput) ToModel(now time.Time) *Discussion {
	d := &Discussion{
		Title:         in.Title,
		VideoID:       in.VideoID,
		LiveEventID:   in.LiveEventID,
		Date:          now,
		Transcription: in.Transcription,
		AudioURL:      in.AudioURL,
	}
	if in.Date != nil {
		if t, err := ParseInstant(*in.Date); err == nil {
			d.Date = t
		}
	}
	if in.Participants != nil {
		d.Participants = *in.Participants
	}
	if in.Duration != nil {
		d.Duration = *in.Duration
	}
	return d
}
