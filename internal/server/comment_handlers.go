package server

import (
	"codemmunity/internal/models"
	"codemmunity/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateComment handles POST /api/posts/:id/comments
func (s *Server) CreateComment(c *fiber.Ctx) error {
	var req struct {
		Content  string `json:"content"`
		ParentID *uint  `json:"parent_id,omitempty"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	comment, err := s.commentService.CreateComment(c.Context(), service.CreateCommentInput{
		UserID:   currentUserID(c),
		PostID:   c.Params("id"),
		ParentID: req.ParentID,
		Content:  req.Content,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(comment)
}

// GetComments handles GET /api/posts/:id/comments?order=asc|desc
func (s *Server) GetComments(c *fiber.Ctx) error {
	order := service.ThreadOrder(c.Query("order", string(service.ThreadOrderAsc)))

	thread, err := s.commentService.ListThread(c.Context(), c.Params("id"), order)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(thread)
}

// GetComment handles GET /api/comments/:commentId
func (s *Server) GetComment(c *fiber.Ctx) error {
	id, err := parseCommentID(c)
	if err != nil {
		return nil
	}

	comment, err := s.commentService.GetComment(c.Context(), id)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(comment)
}

// UpdateComment handles PUT /api/comments/:commentId
func (s *Server) UpdateComment(c *fiber.Ctx) error {
	id, err := parseCommentID(c)
	if err != nil {
		return nil
	}

	var req struct {
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	comment, err := s.commentService.UpdateComment(c.Context(), service.UpdateCommentInput{
		UserID:    currentUserID(c),
		CommentID: id,
		Content:   req.Content,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(comment)
}

// DeleteComment handles DELETE /api/comments/:commentId
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	id, err := parseCommentID(c)
	if err != nil {
		return nil
	}

	err = s.commentService.DeleteComment(c.Context(), service.DeleteCommentInput{
		UserID:    currentUserID(c),
		CommentID: id,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
