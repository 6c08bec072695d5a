package server

import (
	"commons/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetDiscussions handles GET /api/discussions
// @Summary List discussions
// @Tags discussions
// @Produce json
// @Success 200 {array} models.Discussion
// @Router /discussions [get]
func (s *Server) GetDiscussions(c *fiber.Ctx) error {
	discussions, err := s.discussionService.List(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(discussions)
}

// GetDiscussion handles GET /api/discussions/:id
// @Summary Get discussion
// @Tags discussions
// @Produce json
// @Param id path int true "Discussion ID"
// @Success 200 {object} models.Discussion
// @Failure 404 {object} models.ErrorResponse
// @Router /discussions/{id} [get]
func (s *Server) GetDiscussion(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	discussion, err := s.discussionService.Get(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(discussion)
}

// CreateDiscussion handles POST /api/discussions
// @Summary Save discussion
// @Description Referenced video or live event must exist
// @Tags discussions
// @Accept json
// @Produce json
// @Param request body models.CreateDiscussionInput true "Discussion"
// @Success 201 {object} models.Discussion
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /discussions [post]
func (s *Server) CreateDiscussion(c *fiber.Ctx) error {
	var req models.CreateDiscussionInput
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	discussion, err := s.discussionService.Create(c.UserContext(), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(discussion)
}

// DeleteDiscussion handles DELETE /api/discussions/:id
// @Summary Delete discussion
// @Tags discussions
// @Param id path int true "Discussion ID"
// @Success 204
// @Failure 404 {object} models.ErrorResponse
// @Router /discussions/{id} [delete]
func (s *Server) DeleteDiscussion(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.discussionService.Delete(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
