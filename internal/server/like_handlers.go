package server

import (
	"codemmunity/internal/models"
	"codemmunity/internal/service"

	"github.com/gofiber/fiber/v2"
)

// PatchLikes handles PATCH /api/likes?post_id=&mode=increment|decrement
// and returns the post with its updated counter.
func (s *Server) PatchLikes(c *fiber.Ctx) error {
	postID := c.Query("post_id")
	if postID == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("post_id query parameter is required"))
	}

	mode := service.LikeMode(c.Query("mode"))

	post, err := s.postService.AdjustLikes(c.Context(), postID, mode)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(post)
}
