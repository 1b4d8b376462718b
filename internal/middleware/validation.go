package middleware

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

// Field length limits matching database schema constraints.
const (
	MaxOwnerIDLen     = 64
	MaxTitleLen       = 200
	MaxDescriptionLen = 5000
	MaxSearchLen      = 100
)

// ownerIDRe matches account ids: alphanumeric, dash, underscore.
var ownerIDRe = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// ErrorResponse is a helper that returns a standard API error response.
func ErrorResponse(c fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": fiber.Map{
			"code":    code,
			"message": message,
		},
	})
}

// ValidateVideoID checks that a video ID is a UUID and returns its canonical form.
func ValidateVideoID(id string) (string, string) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", "videoId is required"
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		return "", "videoId must be a UUID"
	}
	return parsed.String(), ""
}

// ValidateOwnerID checks that an owner ID is well-formed.
func ValidateOwnerID(id string) (string, string) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", "ownerId is required"
	}
	if len(id) > MaxOwnerIDLen {
		return "", "ownerId must be at most 64 characters"
	}
	if !ownerIDRe.MatchString(id) {
		return "", "ownerId contains invalid characters"
	}
	return id, ""
}

// ParsePositiveInt parses an optional query integer. Empty input yields
// fallback; anything else must be a positive integer.
func ParsePositiveInt(raw string, fallback int, name string) (int, string) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback, ""
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, name + " must be a positive integer"
	}
	return n, ""
}

// ParseOptionalBool parses an optional "true"/"false" query value.
func ParseOptionalBool(raw, name string) (*bool, string) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "":
		return nil, ""
	case "true":
		v := true
		return &v, ""
	case "false":
		v := false
		return &v, ""
	default:
		return nil, name + ` must be "true" or "false"`
	}
}

// ValidateSearch trims the search term and bounds its length.
func ValidateSearch(q string) (string, string) {
	q = strings.TrimSpace(q)
	if len(q) > MaxSearchLen {
		return "", "query must be at most 100 characters"
	}
	return q, ""
}

// ValidateVideoText trims title and description and enforces their limits.
func ValidateVideoText(title, description string) (string, string, string) {
	title = strings.TrimSpace(title)
	description = strings.TrimSpace(description)
	if title == "" {
		return "", "", "title is required"
	}
	if len(title) > MaxTitleLen {
		return "", "", "title must be at most 200 characters"
	}
	if len(description) > MaxDescriptionLen {
		return "", "", "description must be at most 5000 characters"
	}
	return title, description, ""
}
