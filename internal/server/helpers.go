package server

import (
	"errors"

	"codemmunity/internal/models"
	"codemmunity/internal/service"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper. Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

// respondServiceError maps a service/repository failure onto the HTTP
// status taxonomy and writes the JSON error body.
func respondServiceError(c *fiber.Ctx, err error) error {
	return models.RespondWithError(c, models.StatusForError(err), err)
}

// currentUserID returns the authenticated member identifier set by the auth
// middleware. Handlers behind AuthRequired can rely on it being present.
func currentUserID(c *fiber.Ctx) string {
	if uid, ok := c.Locals("userID").(string); ok {
		return uid
	}
	return ""
}

// parsePage extracts page/page_size query parameters. Clamping to the
// server-side maximum happens in the service layer.
func parsePage(c *fiber.Ctx) service.ListPostsInput {
	return service.ListPostsInput{
		Page:     c.QueryInt("page", 1),
		PageSize: c.QueryInt("page_size", 0),
	}
}

// parseCommentID extracts the commentId route parameter as a positive uint.
// On failure it writes a 400 JSON response and returns errResponseWritten;
// callers should check: if err != nil { return nil }.
func parseCommentID(c *fiber.Ctx) (uint, error) {
	id, err := c.ParamsInt("commentId")
	if err != nil || id <= 0 {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid comment ID"))
		return 0, errResponseWritten
	}
	return uint(id), nil
}
