package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/clipdeck/clipdeck-go/internal/apperr"
	"github.com/clipdeck/clipdeck-go/internal/middleware"
	"github.com/clipdeck/clipdeck-go/internal/model"
	"github.com/clipdeck/clipdeck-go/internal/service"
)

type ClipHandler struct {
	clips *service.ClipService
	feed  *service.FeedService
}

func NewClipHandler(clips *service.ClipService, feed *service.FeedService) *ClipHandler {
	return &ClipHandler{clips: clips, feed: feed}
}

// Create handles POST /api/clips
func (h *ClipHandler) Create(c fiber.Ctx) error {
	var req model.CreateClipRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
	}

	title, errMsg := middleware.ValidateTitle(req.Title)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}
	req.Title = title

	desc, errMsg := middleware.ValidateDescription(req.Description)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}
	req.Description = desc

	if req.YoutubeURL == "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "MISSING_FIELDS", "youtubeUrl and title are required")
	}

	clip, err := h.clips.Create(c.Context(), middleware.UserID(c), req)
	if err != nil {
		return clipErrorResponse(c, err, "Failed to create clip")
	}

	Metrics.ClipsCreated.Inc()
	return c.Status(fiber.StatusCreated).JSON(clip)
}

// Feed handles GET /api/clips
func (h *ClipHandler) Feed(c fiber.Ctx) error {
	page := fiber.Query[int](c, "page", 1)
	limit := fiber.Query[int](c, "limit", middleware.DefaultPageSize)

	page, limit, errMsg := middleware.ValidatePagination(page, limit)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	feed, err := h.feed.ListPage(c.Context(), page, limit, middleware.UserID(c))
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch feed")
	}

	return c.JSON(feed)
}

// GetOne handles GET /api/clips/:id
func (h *ClipHandler) GetOne(c fiber.Ctx) error {
	clipID, errMsg := middleware.ValidateClipID(c.Params("id"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	clip, err := h.feed.GetOne(c.Context(), clipID, middleware.UserID(c))
	if err != nil {
		return clipErrorResponse(c, err, "Failed to fetch clip")
	}

	return c.JSON(clip)
}

// ByAuthor handles GET /api/clips/user/:userId
func (h *ClipHandler) ByAuthor(c fiber.Ctx) error {
	userID, errMsg := middleware.ValidateUserID(c.Params("userId"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	clips, err := h.feed.ListByAuthor(c.Context(), userID)
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch clips")
	}

	return c.JSON(clips)
}

// Delete handles DELETE /api/clips/:id
func (h *ClipHandler) Delete(c fiber.Ctx) error {
	clipID, errMsg := middleware.ValidateClipID(c.Params("id"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	if err := h.feed.DeleteClip(c.Context(), middleware.UserID(c), clipID); err != nil {
		return clipErrorResponse(c, err, "Failed to delete clip")
	}

	return c.JSON(fiber.Map{"success": true})
}

// clipErrorResponse maps domain errors onto the API error envelope.
func clipErrorResponse(c fiber.Ctx, err error, fallback string) error {
	var ve *apperr.ValidationError
	switch {
	case errors.As(err, &ve):
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "VALIDATION_ERROR", ve.Msg)
	case errors.Is(err, apperr.ErrInvalidReference):
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_REFERENCE", "Could not extract a video ID from the given URL")
	case errors.Is(err, apperr.ErrExtractionFailed):
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "EXTRACTION_FAILED", "Failed to extract video metadata")
	case errors.Is(err, apperr.ErrNotFound):
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND", "Clip not found")
	case errors.Is(err, apperr.ErrForbidden):
		return middleware.ErrorResponse(c, fiber.StatusForbidden, "FORBIDDEN", "Only the owner may perform this action")
	default:
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", fallback)
	}
}
