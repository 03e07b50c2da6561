package server

import (
	"codemmunity/internal/models"
	"codemmunity/internal/service"

	"github.com/gofiber/fiber/v2"
)

// UpsertUser handles POST /api/users. The target identifier is the bearer
// token subject; the body only carries the display name, so a member can
// never register or rename anyone else.
func (s *Server) UpsertUser(c *fiber.Ctx) error {
	var req struct {
		Name string `json:"name"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.UpsertUser(c.Context(), service.UpsertUserInput{
		ID:   currentUserID(c),
		Name: req.Name,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(user)
}

// GetUser handles GET /api/users/:id
func (s *Server) GetUser(c *fiber.Ctx) error {
	user, err := s.userService.GetUser(c.Context(), c.Params("id"))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(user)
}

// DeleteUser handles DELETE /api/users/:id (self only).
func (s *Server) DeleteUser(c *fiber.Ctx) error {
	id := c.Params("id")
	if id != currentUserID(c) {
		return models.RespondWithError(c, fiber.StatusForbidden,
			models.NewForbiddenError("You can only delete your own account"))
	}

	if err := s.userService.DeleteUser(c.Context(), id); err != nil {
		return respondServiceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
