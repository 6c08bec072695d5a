package models

import "time"

// Video is an on-demand video with its discussion guide. Inactive videos are
// hidden from the public listing only.
type Video struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Title           string    `gorm:"size:255;not null" json:"title"`
	Description     string    `gorm:"type:text;not null" json:"description"`
	YoutubeURL      string    `gorm:"column:youtube_url;size:255;not null" json:"youtubeUrl"`
	Duration        *int      `json:"duration"`
	ThumbnailURL    *string   `gorm:"size:500" json:"thumbnailUrl"`
	DiscussionGuide string    `gorm:"type:text;not null" json:"discussionGuide"`
	Active          bool      `gorm:"not null;index" json:"active"`
	CreatedAt       time.Time `json:"-"`
	UpdatedAt       time.Time `json:"-"`
}

// CreateVideoInput is the accepted payload for inserting a video.
type CreateVideoInput struct {
	Title           string  `json:"title" validate:"required,notblank"`
	Description     string  `json:"description" validate:"required,notblank"`
	YoutubeURL      string  `json:"youtubeUrl" validate:"required,notblank"`
	Duration        *int    `json:"duration" validate:"omitempty,min=0"`
	ThumbnailURL    *string `json:"thumbnailUrl"`
	DiscussionGuide string  `json:"discussionGuide" validate:"required,notblank"`
	Active          *bool   `json:"active"`
}

// ToModel builds the row to insert. Duration and thumbnail stay nil when omitted.
func (in CreateVideoInput) ToModel() *Video {
	v := &Video{
		Title:           in.Title,
		Description:     in.Description,
		YoutubeURL:      in.YoutubeURL,
		Duration:        in.Duration,
		ThumbnailURL:    in.ThumbnailURL,
		DiscussionGuide: in.DiscussionGuide,
		Active:          true,
	}
	if in.Active != nil {
		v.Active = *in.Active
	}
	return v
}

// UpdateVideoInput is a partial update. Nil fields keep their stored value.
type UpdateVideoInput struct {
	Title           *string `json:"title" validate:"omitempty,notblank"`
	Description     *string `json:"description" validate:"omitempty,notblank"`
	YoutubeURL      *string `json:"youtubeUrl" validate:"omitempty,notblank"`
	Duration        *int    `json:"duration" validate:"omitempty,min=0"`
	ThumbnailURL    *string `json:"thumbnailUrl"`
	DiscussionGuide *string `json:"discussionGuide" validate:"omitempty,notblank"`
	Active          *bool   `json:"active"`
}

// Columns returns only the columns present in the update.
func (in UpdateVideoInput) Columns() map[string]interface{} {
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
	if in.Duration != nil {
		cols["duration"] = *in.Duration
	}
	if in.ThumbnailURL != nil {
		cols["thumbnail_url"] = *in.ThumbnailURL
	}
	if in.DiscussionGuide != nil {
		cols["discussion_guide"] = *in.DiscussionGuide
	}
	if in.Active != nil {
		cols["active"] = *in.Active
	}
	return cols
}
