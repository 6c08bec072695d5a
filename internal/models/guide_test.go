package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGuideQuestions(t *testing.T) {
	guide := `# Discussion Guide: Ocean Life

## Key Themes
- Marine ecosystems

## Questions
1. What surprised you most about deep sea life?
2. How do you think humans impact ocean ecosystems?
3. Not a question line.
 4. Which creature would you like to learn more about?
10. Does double-digit numbering work?`

	questions := ParseGuideQuestions(guide)
	require.Len(t, questions, 4)
	assert.Equal(t, "1. What surprised you most about deep sea life?", questions[0])
	assert.Equal(t, "4. Which creature would you like to learn more about?", questions[2])
	assert.Equal(t, "10. Does double-digit numbering work?", questions[3])
}

func TestParseGuideQuestions_Empty(t *testing.T) {
	assert.Empty(t, ParseGuideQuestions(""))
	assert.Empty(t, ParseGuideQuestions("## Questions\n- just bullets?"))
}

func TestParseInstant(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Time
		wantErr bool
	}{
		{"2023-12-31T15:00:00Z", time.Date(2023, 12, 31, 15, 0, 0, 0, time.UTC), false},
		{"2023-12-31T15:00:00+02:00", time.Date(2023, 12, 31, 13, 0, 0, 0, time.UTC), false},
		{"2023-12-31T15:00:00", time.Date(2023, 12, 31, 15, 0, 0, 0, time.UTC), false},
		{"2023-12-31T15:00", time.Date(2023, 12, 31, 15, 0, 0, 0, time.UTC), false},
		{"2023-12-31", time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC), false},
		{"next tuesday", time.Time{}, true},
		{"", time.Time{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseInstant(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %s", got)
		})
	}
}

func TestCreateDiscussionInput_ToModelDefaults(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	d := CreateDiscussionInput{Title: "Group chat", Transcription: "hello"}.ToModel(now)

	assert.Equal(t, now, d.Date)
	assert.Zero(t, d.Participants)
	assert.Zero(t, d.Duration)
	assert.Nil(t, d.AudioURL)
	assert.Nil(t, d.VideoID)
}

func TestUpdateVideoInput_ColumnsOnlyPresent(t *testing.T) {
	title := "New title"
	cols := UpdateVideoInput{Title: &title}.Columns()
	assert.Equal(t, map[string]interface{}{"title": "New title"}, cols)

	active := false
	cols = UpdateVideoInput{Active: &active}.Columns()
	assert.Equal(t, false, cols["active"])
}
