package server

import (
	"commons/internal/models"

	"github.com/gofiber/fiber/v2"
)

// CreateUserActivity handles POST /api/user-activities
// An RSVP the user already holds is returned with 200 instead of 201.
// @Summary Record reminder or RSVP
// @Tags engagement
// @Accept json
// @Produce json
// @Param request body models.CreateUserActivityInput true "Activity"
// @Success 201 {object} models.UserActivity
// @Success 200 {object} models.UserActivity
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /user-activities [post]
func (s *Server) CreateUserActivity(c *fiber.Ctx) error {
	var req models.CreateUserActivityInput
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	activity, created, err := s.engagementService.RecordActivity(c.UserContext(), principal(c).UserID, req)
	if err != nil {
		return respondError(c, err)
	}
	if !created {
		return c.JSON(activity)
	}
	return c.Status(fiber.StatusCreated).JSON(activity)
}

// GetUserActivities handles GET /api/user-activities
// @Summary List my activities
// @Tags engagement
// @Produce json
// @Success 200 {array} models.UserActivity
// @Failure 401 {object} models.ErrorResponse
// @Router /user-activities [get]
func (s *Server) GetUserActivities(c *fiber.Ctx) error {
	activities, err := s.engagementService.ListActivities(c.UserContext(), principal(c).UserID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(activities)
}

// CreateReminder handles POST /api/reminders
// @Summary Set reminder
// @Tags engagement
// @Accept json
// @Produce json
// @Param request body models.CreateReminderInput true "Reminder"
// @Success 201 {object} models.Reminder
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /reminders [post]
func (s *Server) CreateReminder(c *fiber.Ctx) error {
	var req models.CreateReminderInput
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	reminder, err := s.engagementService.CreateReminder(c.UserContext(), principal(c).UserID, req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(reminder)
}

// GetReminders handles GET /api/reminders
// @Summary List my reminders
// @Tags engagement
// @Produce json
// @Success 200 {array} models.Reminder
// @Failure 401 {object} models.ErrorResponse
// @Router /reminders [get]
func (s *Server) GetReminders(c *fiber.Ctx) error {
	reminders, err := s.engagementService.ListReminders(c.UserContext(), principal(c).UserID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(reminders)
}

// CreateGuideAnswer handles POST /api/guide-answers
// @Summary Answer a guide question
// @Tags engagement
// @Accept json
// @Produce json
// @Param request body models.CreateGuideAnswerInput true "Answer"
// @Success 201 {object} models.DiscussionGuideAnswer
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /guide-answers [post]
func (s *Server) CreateGuideAnswer(c *fiber.Ctx) error {
	var req models.CreateGuideAnswerInput
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	answer, err := s.engagementService.AnswerGuideQuestion(c.UserContext(), principal(c).UserID, req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(answer)
}

// GetGuideAnswers handles GET /api/guide-answers
// @Summary List my answers for an event
// @Tags engagement
// @Produce json
// @Param eventId query int true "Event ID"
// @Param eventType query string true "live or video"
// @Success 200 {array} models.DiscussionGuideAnswer
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /guide-answers [get]
func (s *Server) GetGuideAnswers(c *fiber.Ctx) error {
	eventID := c.QueryInt("eventId", 0)
	if eventID <= 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid "+humanizeParam("eventId")))
	}

	answers, err := s.engagementService.ListAnswers(c.UserContext(), principal(c).UserID, uint(eventID), c.Query("eventType"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(answers)
}
