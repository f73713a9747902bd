package utility

import (
	"fmt"
	"strconv"

	"github.com/labstack/echo/v4"
)

// GetUserIDFromContext safely retrieves the user id set by the JWT middleware.
func GetUserIDFromContext(c echo.Context) (int64, error) {
	userID, ok := c.Get("user_id").(int64)
	if !ok || userID < 1 {
		return 0, fmt.Errorf("user ID not found in context")
	}
	return userID, nil
}

// ParseIntParam parses a numeric query/path parameter, falling back to a
// default for empty or malformed input.
func ParseIntParam(value string, fallback int64) int64 {
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return fallback
	}
	return parsed
}
