package server

import (
	"commons/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetVideos handles GET /api/videos
// @Summary List active videos
// @Tags videos
// @Produce json
// @Success 200 {array} models.Video
// @Router /videos [get]
func (s *Server) GetVideos(c *fiber.Ctx) error {
	videos, err := s.videoService.ListPublic(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(videos)
}

// GetAllVideos handles GET /api/admin/videos
// @Summary List all videos
// @Description Includes inactive videos
// @Tags admin
// @Produce json
// @Success 200 {array} models.Video
// @Failure 401 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Router /admin/videos [get]
func (s *Server) GetAllVideos(c *fiber.Ctx) error {
	videos, err := s.videoService.ListAll(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(videos)
}

// GetVideo handles GET /api/videos/:id
// @Summary Get video
// @Tags videos
// @Produce json
// @Param id path int true "Video ID"
// @Success 200 {object} models.Video
// @Failure 404 {object} models.ErrorResponse
// @Router /videos/{id} [get]
func (s *Server) GetVideo(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	video, err := s.videoService.Get(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(video)
}

// CreateVideo handles POST /api/videos
// @Summary Create video
// @Tags videos
// @Accept json
// @Produce json
// @Param request body models.CreateVideoInput true "Video"
// @Success 201 {object} models.Video
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Router /videos [post]
func (s *Server) CreateVideo(c *fiber.Ctx) error {
	var req models.CreateVideoInput
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	video, err := s.videoService.Create(c.UserContext(), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(video)
}

// UpdateVideo handles PUT /api/videos/:id
// @Summary Update video
// @Description Fields that are absent or null keep their stored value
// @Tags videos
// @Accept json
// @Produce json
// @Param id path int true "Video ID"
// @Param request body models.UpdateVideoInput true "Changed fields"
// @Success 200 {object} models.Video
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /videos/{id} [put]
func (s *Server) UpdateVideo(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req models.UpdateVideoInput
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	video, err := s.videoService.Update(c.UserContext(), id, req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(video)
}

// DeleteVideo handles DELETE /api/videos/:id
// @Summary Delete video
// @Tags videos
// @Param id path int true "Video ID"
// @Success 204
// @Failure 404 {object} models.ErrorResponse
// @Router /videos/{id} [delete]
func (s *Server) DeleteVideo(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.videoService.Delete(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetVideoDiscussions handles GET /api/videos/:id/discussions
// @Summary List discussions for a video
// @Tags discussions
// @Produce json
// @Param id path int true "Video ID"
// @Success 200 {array} models.Discussion
// @Router /videos/{id}/discussions [get]
func (s *Server) GetVideoDiscussions(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	discussions, err := s.discussionService.ListForVideo(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(discussions)
}
