// Package seed loads the built-in catalog and admin account, and generates
// demo discussions for development databases.
package seed

import (
	"context"
	_ "embed"
	"errors"
	"fmt"

	"commons/internal/auth"
	"commons/internal/middleware"
	"commons/internal/models"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

//go:embed fixtures.yml
var fixturesYAML []byte

// Fixtures is the built-in data set.
type Fixtures struct {
	Admin      AdminFixture       `yaml:"admin"`
	LiveEvents []LiveEventFixture `yaml:"live_events"`
	Videos     []VideoFixture     `yaml:"videos"`
}

type AdminFixture struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

type LiveEventFixture struct {
	Title           string `yaml:"title"`
	Description     string `yaml:"description"`
	YoutubeURL      string `yaml:"youtube_url"`
	EventDate       string `yaml:"event_date"`
	DiscussionGuide string `yaml:"discussion_guide"`
}

type VideoFixture struct {
	Title           string  `yaml:"title"`
	Description     string  `yaml:"description"`
	YoutubeURL      string  `yaml:"youtube_url"`
	Duration        *int    `yaml:"duration"`
	ThumbnailURL    *string `yaml:"thumbnail_url"`
	DiscussionGuide string  `yaml:"discussion_guide"`
	Active          *bool   `yaml:"active"`
}

// LoadFixtures parses the embedded fixture file.
func LoadFixtures() (*Fixtures, error) {
	return ParseFixtures(fixturesYAML)
}

// ParseFixtures parses fixture YAML.
func ParseFixtures(data []byte) (*Fixtures, error) {
	var f Fixtures
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse fixtures: %w", err)
	}
	if f.Admin.Username == "" || f.Admin.Password == "" {
		return nil, errors.New("fixtures: admin username and password are required")
	}
	for _, e := range f.LiveEvents {
		if _, err := models.ParseInstant(e.EventDate); err != nil {
			return nil, fmt.Errorf("fixtures: live event %q: %w", e.Title, err)
		}
	}
	return &f, nil
}

// Result counts the rows a seed run inserted.
type Result struct {
	Users      int
	LiveEvents int
	Videos     int
}

// Apply inserts the built-in admin, live events and videos. Rows are matched
// by username or title, so running it again inserts nothing.
func Apply(ctx context.Context, db *gorm.DB) (*Result, error) {
	fixtures, err := LoadFixtures()
	if err != nil {
		return nil, err
	}
	return ApplyFixtures(ctx, db, fixtures)
}

// ApplyFixtures is Apply for an explicit fixture set.
func ApplyFixtures(ctx context.Context, db *gorm.DB, f *Fixtures) (*Result, error) {
	res := &Result{}

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		created, err := ensureAdmin(tx, f.Admin)
		if err != nil {
			return err
		}
		if created {
			res.Users++
		}

		for _, item := range f.LiveEvents {
			exists, err := titleExists(tx, &models.LiveEvent{}, item.Title)
			if err != nil {
				return err
			}
			if exists {
				continue
			}
			eventDate, _ := models.ParseInstant(item.EventDate)
			event := &models.LiveEvent{
				Title:           item.Title,
				Description:     item.Description,
				YoutubeURL:      item.YoutubeURL,
				EventDate:       eventDate,
				DiscussionGuide: item.DiscussionGuide,
			}
			if err := tx.Create(event).Error; err != nil {
				return fmt.Errorf("seed live event %q: %w", item.Title, err)
			}
			res.LiveEvents++
		}

		for _, item := range f.Videos {
			exists, err := titleExists(tx, &models.Video{}, item.Title)
			if err != nil {
				return err
			}
			if exists {
				continue
			}
			video := &models.Video{
				Title:           item.Title,
				Description:     item.Description,
				YoutubeURL:      item.YoutubeURL,
				Duration:        item.Duration,
				ThumbnailURL:    item.ThumbnailURL,
				DiscussionGuide: item.DiscussionGuide,
				Active:          item.Active == nil || *item.Active,
			}
			if err := tx.Create(video).Error; err != nil {
				return fmt.Errorf("seed video %q: %w", item.Title, err)
			}
			res.Videos++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	middleware.Logger.InfoContext(ctx, "seed applied",
		"users", res.Users, "live_events", res.LiveEvents, "videos", res.Videos)
	return res, nil
}

func ensureAdmin(tx *gorm.DB, admin AdminFixture) (bool, error) {
	var existing models.User
	err := tx.Where("username = ?", admin.Username).First(&existing).Error
	switch {
	case err == nil:
		if !existing.IsAdmin {
			return false, tx.Model(&existing).Update("is_admin", true).Error
		}
		return false, nil
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return false, fmt.Errorf("find admin: %w", err)
	}

	hash, err := auth.HashPassword(admin.Password)
	if err != nil {
		return false, fmt.Errorf("hash admin password: %w", err)
	}
	user := &models.User{Username: admin.Username, Password: hash, IsAdmin: true}
	if err := tx.Create(user).Error; err != nil {
		return false, fmt.Errorf("seed admin: %w", err)
	}
	return true, nil
}

func titleExists(tx *gorm.DB, model interface{}, title string) (bool, error) {
	var n int64
	if err := tx.Model(model).Where("title = ?", title).Count(&n).Error; err != nil {
		return false, fmt.Errorf("check seeded title %q: %w", title, err)
	}
	return n > 0, nil
}
