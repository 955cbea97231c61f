package middleware

import (
	"regexp"
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

// Field length limits matching database schema constraints.
const (
	MaxTitleLen       = 100 // clips.title VARCHAR(100)
	MaxDescriptionLen = 500 // clips.description VARCHAR(500)
	MaxCommentLen     = 500 // comments.content VARCHAR(500)
	MaxUserIDLen      = 64  // clips.owner_id VARCHAR(64)
	MaxPageSize       = 100
	DefaultPageSize   = 20
)

// userIDRe matches opaque user identifiers issued by the identity
// provider: URL-safe token characters only.
var userIDRe = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// ErrorResponse is a helper that returns a standard API error response.
func ErrorResponse(c fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": fiber.Map{
			"code":    code,
			"message": message,
		},
	})
}

// ValidateTitle checks that a clip title is present and within limits.
func ValidateTitle(title string) (string, string) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", "title is required"
	}
	if len(title) > MaxTitleLen {
		return "", "title must be at most 100 characters"
	}
	return title, ""
}

// ValidateDescription checks the optional clip description length.
func ValidateDescription(desc string) (string, string) {
	desc = strings.TrimSpace(desc)
	if len(desc) > MaxDescriptionLen {
		return "", "description must be at most 500 characters"
	}
	return desc, ""
}

// ValidateCommentContent checks that comment content is present and
// within limits.
func ValidateCommentContent(content string) (string, string) {
	content = strings.TrimSpace(content)
	if content == "" {
		return "", "content is required"
	}
	if len(content) > MaxCommentLen {
		return "", "content must be at most 500 characters"
	}
	return content, ""
}

// ValidateClipID parses a clip ID path parameter.
func ValidateClipID(id string) (uuid.UUID, string) {
	parsed, err := uuid.Parse(strings.TrimSpace(id))
	if err != nil {
		return uuid.Nil, "clip id must be a valid UUID"
	}
	return parsed, ""
}

// ValidateUserID checks that a user ID is a well-formed opaque
// identifier.
func ValidateUserID(id string) (string, string) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", "userId is required"
	}
	if len(id) > MaxUserIDLen {
		return "", "userId must be at most 64 characters"
	}
	if !userIDRe.MatchString(id) {
		return "", "userId contains invalid characters"
	}
	return id, ""
}

// ValidatePagination checks page/limit query values.
func ValidatePagination(page, limit int) (int, int, string) {
	if page < 1 {
		return 0, 0, "page must be at least 1"
	}
	if limit < 1 {
		return 0, 0, "limit must be at least 1"
	}
	if limit > MaxPageSize {
		return 0, 0, "limit must be at most 100"
	}
	return page, limit, ""
}
