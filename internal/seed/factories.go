package seed

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"commons/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

// Options tune demo data generation.
type Options struct {
	// MaxDays bounds how far back generated discussion dates go.
	MaxDays int
	// BatchSize is the insert batch size.
	BatchSize int
}

// Factory builds demo discussions attached to the seeded catalog.
type Factory struct {
	db   *gorm.DB
	opts Options
	rng  *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB, opts Options) *Factory {
	if opts.MaxDays <= 0 {
		opts.MaxDays = 90
	}
	if opts.BatchSize <= 0 {
		opts.BatchSize = 50
	}
	seed := time.Now().UnixNano()
	gofakeit.Seed(seed)
	return &Factory{db: db, opts: opts, rng: rand.New(rand.NewSource(seed))}
}

// BuildDiscussion returns an unsaved discussion tied to video or event
// (either may be nil).
func (f *Factory) BuildDiscussion(video *models.Video, event *models.LiveEvent) *models.Discussion {
	participants := gofakeit.Number(2, 12)
	lines := make([]string, 0, participants)
	for i := 0; i < participants; i++ {
		lines = append(lines, gofakeit.Sentence(12))
	}

	d := &models.Discussion{
		Title:         strings.TrimSuffix(gofakeit.Sentence(4), "."),
		Participants:  participants,
		Duration:      gofakeit.Number(10, 90),
		Transcription: strings.Join(lines, "\n") + "\n\n" + gofakeit.Paragraph(1, 3, 10, " "),
		Date: time.Now().UTC().
			Add(-time.Duration(f.rng.Intn(f.opts.MaxDays)) * 24 * time.Hour).
			Add(-time.Duration(f.rng.Intn(24*60)) * time.Minute),
	}
	if video != nil {
		id := video.ID
		d.VideoID = &id
	}
	if event != nil {
		id := event.ID
		d.LiveEventID = &id
	}
	return d
}

// SeedDiscussions inserts n demo discussions spread across the existing
// videos and live events.
func (f *Factory) SeedDiscussions(ctx context.Context, n int) ([]models.Discussion, error) {
	if n <= 0 {
		return nil, nil
	}

	var videos []models.Video
	if err := f.db.WithContext(ctx).Find(&videos).Error; err != nil {
		return nil, fmt.Errorf("load videos: %w", err)
	}
	var events []models.LiveEvent
	if err := f.db.WithContext(ctx).Find(&events).Error; err != nil {
		return nil, fmt.Errorf("load live events: %w", err)
	}
	if len(videos)+len(events) == 0 {
		return nil, errors.New("no videos or live events to attach discussions to; run the base seed first")
	}

	discussions := make([]models.Discussion, 0, n)
	for i := 0; i < n; i++ {
		pick := f.rng.Intn(len(videos) + len(events))
		if pick < len(videos) {
			discussions = append(discussions, *f.BuildDiscussion(&videos[pick], nil))
		} else {
			discussions = append(discussions, *f.BuildDiscussion(nil, &events[pick-len(videos)]))
		}
	}

	if err := f.db.WithContext(ctx).CreateInBatches(&discussions, f.opts.BatchSize).Error; err != nil {
		return nil, fmt.Errorf("insert demo discussions: %w", err)
	}
	return discussions, nil
}
