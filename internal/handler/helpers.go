package handler

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

func parseUintParam(c *fiber.Ctx, key string) (uint, error) {
	value := c.Params(key)
	parsed, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return 0, errors.New("invalid " + key)
	}

	return uint(parsed), nil
}

func parseQueryUint(c *fiber.Ctx, key string) (*uint, error) {
	value := c.Query(key)
	if value == "" {
		return nil, nil
	}
	parsed, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return nil, errors.New("invalid " + key)
	}

	result := uint(parsed)
	return &result, nil
}

// currentUserID reads the authenticated subject placed in Locals by the
// JWT middleware.
func currentUserID(c *fiber.Ctx) (uint, bool) {
	if value := c.Locals("user_id"); value != nil {
		if id, ok := value.(uint); ok && id > 0 {
			return id, true
		}
	}

	return 0, false
}
