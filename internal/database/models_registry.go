package database

import "commons/internal/models"

// PersistentModels returns the authoritative set of schema-managed GORM models.
func PersistentModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Session{},
		&models.LiveEvent{},
		&models.Video{},
		&models.Discussion{},
		&models.Reminder{},
		&models.DiscussionGuideAnswer{},
		&models.UserActivity{},
	}
}
