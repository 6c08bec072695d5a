package models

import "time"

// Event type discriminators.
const (
	EventTypeLive  = "live"
	EventTypeVideo = "video"
)

// Activity types.
const (
	ActivityReminder = "reminder"
	ActivityRSVP     = "rsvp"
)

// EventSummary is the slice of a live event or video attached to a user's
// activity listing.
type EventSummary struct {
	ID          uint       `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	YoutubeURL  string     `json:"youtubeUrl"`
	EventDate   *time.Time `json:"eventDate,omitempty"`
}

// UserActivity records a reminder or RSVP a user set on an event.
type UserActivity struct {
	ID           uint          `gorm:"primaryKey" json:"id"`
	UserID       uint          `gorm:"not null;index:idx_user_activities_user" json:"userId"`
	EventID      uint          `gorm:"not null;index:idx_user_activities_event,priority:1" json:"eventId"`
	EventType    string        `gorm:"size:10;not null;index:idx_user_activities_event,priority:2" json:"eventType"`
	ActivityType string        `gorm:"size:20;not null" json:"activityType"`
	CreatedAt    time.Time     `json:"createdAt"`
	Event        *EventSummary `gorm:"-" json:"event,omitempty"`
}

// TableName pins the table name used by the SQL migrations.
func (UserActivity) TableName() string { return "user_activities" }

// CreateUserActivityInput is the accepted payload for recording an activity.
type CreateUserActivityInput struct {
	EventID      uint   `json:"eventId" validate:"required,gt=0"`
	EventType    string `json:"eventType" validate:"required,oneof=live video"`
	ActivityType string `json:"activityType" validate:"required,oneof=reminder rsvp"`
}

// Reminder is a user's request to be reminded about an event.
type Reminder struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UserID       uint      `gorm:"not null;index" json:"userId"`
	EventID      uint      `gorm:"not null;index:idx_reminders_event,priority:1" json:"eventId"`
	EventType    string    `gorm:"size:10;not null;index:idx_reminders_event,priority:2" json:"eventType"`
	ReminderTime time.Time `gorm:"not null" json:"reminderTime"`
	CreatedAt    time.Time `json:"createdAt"`
}

// CreateReminderInput is the accepted payload for setting a reminder.
type CreateReminderInput struct {
	EventID      uint   `json:"eventId" validate:"required,gt=0"`
	EventType    string `json:"eventType" validate:"required,oneof=live video"`
	ReminderTime string `json:"reminderTime" validate:"required,instant"`
}

// DiscussionGuideAnswer is a user's answer to one numbered guide question.
type DiscussionGuideAnswer struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	UserID        uint      `gorm:"not null;index" json:"userId"`
	EventID       uint      `gorm:"not null;index:idx_guide_answers_event,priority:1" json:"eventId"`
	EventType     string    `gorm:"size:10;not null;index:idx_guide_answers_event,priority:2" json:"eventType"`
	QuestionIndex int       `gorm:"not null" json:"questionIndex"`
	Answer        string    `gorm:"type:text;not null" json:"answer"`
	CreatedAt     time.Time `json:"createdAt"`
}

// CreateGuideAnswerInput is the accepted payload for answering a guide question.
type CreateGuideAnswerInput struct {
	EventID       uint   `json:"eventId" validate:"required,gt=0"`
	EventType     string `json:"eventType" validate:"required,oneof=live video"`
	QuestionIndex *int   `json:"questionIndex" validate:"required,min=0"`
	Answer        string `json:"answer" validate:"required,notblank"`
}

// CredentialsInput is the login/registration payload.
type CredentialsInput struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required,min=6,max=128"`
}
