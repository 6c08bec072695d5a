package server

import (
	"commons/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetCurrentLiveEvent handles GET /api/live-events
// @Summary Current live event
// @Description The live event with the latest date
// @Tags live-events
// @Produce json
// @Success 200 {object} models.LiveEvent
// @Failure 404 {object} models.ErrorResponse
// @Router /live-events [get]
func (s *Server) GetCurrentLiveEvent(c *fiber.Ctx) error {
	event, err := s.liveEventService.Current(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(event)
}

// GetLiveEvent handles GET /api/live-events/:id
// @Summary Get live event
// @Tags live-events
// @Produce json
// @Param id path int true "Live event ID"
// @Success 200 {object} models.LiveEvent
// @Failure 404 {object} models.ErrorResponse
// @Router /live-events/{id} [get]
func (s *Server) GetLiveEvent(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	event, err := s.liveEventService.Get(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(event)
}

// CreateLiveEvent handles POST /api/live-events
// @Summary Create live event
// @Tags live-events
// @Accept json
// @Produce json
// @Param request body models.CreateLiveEventInput true "Live event"
// @Success 201 {object} models.LiveEvent
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Router /live-events [post]
func (s *Server) CreateLiveEvent(c *fiber.Ctx) error {
	var req models.CreateLiveEventInput
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	event, err := s.liveEventService.Create(c.UserContext(), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(event)
}

// UpdateLiveEvent handles PUT /api/live-events/:id
// @Summary Update live event
// @Tags live-events
// @Accept json
// @Produce json
// @Param id path int true "Live event ID"
// @Param request body models.UpdateLiveEventInput true "Changed fields"
// @Success 200 {object} models.LiveEvent
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /live-events/{id} [put]
func (s *Server) UpdateLiveEvent(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req models.UpdateLiveEventInput
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	event, err := s.liveEventService.Update(c.UserContext(), id, req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(event)
}

// GetLiveEventRSVPs handles GET /api/live-events/:id/rsvps
// @Summary RSVP count
// @Tags live-events
// @Produce json
// @Param id path int true "Live event ID"
// @Success 200 {object} service.RSVPCount
// @Failure 404 {object} models.ErrorResponse
// @Router /live-events/{id}/rsvps [get]
func (s *Server) GetLiveEventRSVPs(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	count, err := s.liveEventService.RSVPs(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(count)
}

// GetLiveEventDiscussions handles GET /api/live-events/:id/discussions
// @Summary List discussions for a live event
// @Tags discussions
// @Produce json
// @Param id path int true "Live event ID"
// @Success 200 {array} models.Discussion
// @Router /live-events/{id}/discussions [get]
func (s *Server) GetLiveEventDiscussions(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	discussions, err := s.discussionService.ListForLiveEvent(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(discussions)
}
