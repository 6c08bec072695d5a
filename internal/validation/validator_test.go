package validation

import (
	"testing"

	"commons/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pathsOf(err *models.AppError) []string {
	paths := make([]string, 0, len(err.Fields))
	for _, f := range err.Fields {
		paths = append(paths, f.Path)
	}
	return paths
}

func TestValidateStruct_ReportsEveryField(t *testing.T) {
	err := ValidateStruct(&models.CreateLiveEventInput{
		Title:     "",
		EventDate: "not a date",
	})
	require.NotNil(t, err)
	assert.Equal(t, models.CodeValidation, err.Code)
	assert.ElementsMatch(t,
		[]string{"title", "description", "youtubeUrl", "eventDate", "discussionGuide"},
		pathsOf(err))
}

func TestValidateStruct_ValidLiveEvent(t *testing.T) {
	err := ValidateStruct(&models.CreateLiveEventInput{
		Title:           "Museum tour",
		Description:     "A walk through the galleries",
		YoutubeURL:      "Z1XU5ZGqzeI",
		EventDate:       "2023-12-31T15:00:00",
		DiscussionGuide: "1. What did you see?",
	})
	assert.Nil(t, err)
}

func TestValidateStruct_VideoDurationNonNegative(t *testing.T) {
	neg := -5
	err := ValidateStruct(&models.CreateVideoInput{
		Title:           "t",
		Description:     "d",
		YoutubeURL:      "abc",
		DiscussionGuide: "g",
		Duration:        &neg,
	})
	require.NotNil(t, err)
	assert.Equal(t, []string{"duration"}, pathsOf(err))
	assert.Equal(t, "duration must be at least 0", err.Fields[0].Message)
}

func TestValidateStruct_BlankStringsRejected(t *testing.T) {
	err := ValidateStruct(&models.CreateDiscussionInput{Title: "   ", Transcription: "text"})
	require.NotNil(t, err)
	assert.Equal(t, []string{"title"}, pathsOf(err))
}

func TestValidateStruct_PartialUpdateAcceptsSubset(t *testing.T) {
	title := "Only the title"
	assert.Nil(t, ValidateStruct(&models.UpdateVideoInput{Title: &title}))
	assert.Nil(t, ValidateStruct(&models.UpdateVideoInput{}))

	bad := "tomorrow-ish"
	err := ValidateStruct(&models.UpdateLiveEventInput{EventDate: &bad})
	require.NotNil(t, err)
	assert.Equal(t, []string{"eventDate"}, pathsOf(err))
}

func TestValidateStruct_ActivityEnums(t *testing.T) {
	err := ValidateStruct(&models.CreateUserActivityInput{EventID: 1, EventType: "concert", ActivityType: "like"})
	require.NotNil(t, err)
	assert.ElementsMatch(t, []string{"eventType", "activityType"}, pathsOf(err))

	assert.Nil(t, ValidateStruct(&models.CreateUserActivityInput{EventID: 1, EventType: "live", ActivityType: "rsvp"}))
}

func TestValidateStruct_GuideAnswerRequiresIndex(t *testing.T) {
	err := ValidateStruct(&models.CreateGuideAnswerInput{EventID: 1, EventType: "video", Answer: "yes"})
	require.NotNil(t, err)
	assert.Equal(t, []string{"questionIndex"}, pathsOf(err))

	zero := 0
	assert.Nil(t, ValidateStruct(&models.CreateGuideAnswerInput{EventID: 1, EventType: "video", QuestionIndex: &zero, Answer: "yes"}))
}

func TestValidateStruct_Credentials(t *testing.T) {
	err := ValidateStruct(&models.CredentialsInput{Username: "al", Password: "123"})
	require.NotNil(t, err)
	assert.ElementsMatch(t, []string{"username", "password"}, pathsOf(err))
	assert.Nil(t, ValidateStruct(&models.CredentialsInput{Username: "alice", Password: "secret1"}))
}
