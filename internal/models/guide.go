package models

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var guideQuestionPattern = regexp.MustCompile(`^\d+\.\s+.+\?$`)

// ParseGuideQuestions returns the numbered question lines ("1. ...?") of a
// discussion guide, in order.
func ParseGuideQuestions(guide string) []string {
	var questions []string
	for _, line := range strings.Split(guide, "\n") {
		line = strings.TrimSpace(line)
		if guideQuestionPattern.MatchString(line) {
			questions = append(questions, line)
		}
	}
	return questions
}

var instantLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseInstant parses a client-supplied timestamp. Values without a zone are UTC.
func ParseInstant(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range instantLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q", s)
}
