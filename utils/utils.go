package utils

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

var ErrInvalidID = errors.New("invalid id")

// ErrorResponse writes the standard error body
func ErrorResponse(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": message,
	})
}

// ParseID parses a positive numeric path id
func ParseID(s string) (uint, error) {
	i, err := strconv.ParseUint(s, 10, 32)
	if err != nil || i == 0 {
		return 0, ErrInvalidID
	}
	return uint(i), nil
}

// ParseDueDate accepts RFC 3339 timestamps or plain YYYY-MM-DD dates.
// An empty string yields nil.
func ParseDueDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t, nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return nil, errors.New("dueDate must be RFC 3339 or YYYY-MM-DD")
	}
	return &t, nil
}
