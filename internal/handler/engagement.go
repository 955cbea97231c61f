package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/clipdeck/clipdeck-go/internal/middleware"
	"github.com/clipdeck/clipdeck-go/internal/model"
	"github.com/clipdeck/clipdeck-go/internal/service"
)

type EngagementHandler struct {
	feed *service.FeedService
}

func NewEngagementHandler(feed *service.FeedService) *EngagementHandler {
	return &EngagementHandler{feed: feed}
}

// ToggleLike handles POST /api/clips/:id/like
func (h *EngagementHandler) ToggleLike(c fiber.Ctx) error {
	clipID, errMsg := middleware.ValidateClipID(c.Params("id"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	resp, err := h.feed.ToggleLike(c.Context(), middleware.UserID(c), clipID)
	if err != nil {
		return clipErrorResponse(c, err, "Failed to toggle like")
	}

	action := "unlike"
	if resp.IsLiked {
		action = "like"
	}
	Metrics.LikesToggled.WithLabelValues(action).Inc()

	return c.JSON(resp)
}

// AddComment handles POST /api/clips/:id/comments
func (h *EngagementHandler) AddComment(c fiber.Ctx) error {
	clipID, errMsg := middleware.ValidateClipID(c.Params("id"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	var req model.CreateCommentRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
	}

	content, errMsg := middleware.ValidateCommentContent(req.Content)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	comment, err := h.feed.AddComment(c.Context(), middleware.UserID(c), clipID, content)
	if err != nil {
		return clipErrorResponse(c, err, "Failed to create comment")
	}

	Metrics.CommentsCreated.Inc()
	return c.Status(fiber.StatusCreated).JSON(comment)
}

// ListComments handles GET /api/clips/:id/comments
func (h *EngagementHandler) ListComments(c fiber.Ctx) error {
	clipID, errMsg := middleware.ValidateClipID(c.Params("id"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	comments, err := h.feed.ListComments(c.Context(), clipID, middleware.UserID(c))
	if err != nil {
		return clipErrorResponse(c, err, "Failed to fetch comments")
	}

	return c.JSON(comments)
}
