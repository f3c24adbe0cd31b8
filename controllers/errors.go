package controller

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"teamhub/middleware"
	"teamhub/repository"
	"teamhub/utils"
)

var errUnauthenticated = errors.New("authentication required")

// writeError maps domain errors onto distinct status codes.
// Anything unrecognised is an internal failure and is reported, not echoed.
func writeError(c *fiber.Ctx, log logrus.FieldLogger, err error) error {
	switch {
	case errors.Is(err, errUnauthenticated),
		errors.Is(err, utils.ErrExpiredToken),
		errors.Is(err, utils.ErrMalformedToken):
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Invalid or expired token")
	case errors.Is(err, repository.ErrInvalidArgument),
		errors.Is(err, utils.ErrInvalidID),
		errors.Is(err, utils.ErrPasswordTooLong):
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, repository.ErrEmailTaken):
		return utils.ErrorResponse(c, fiber.StatusConflict, "Email already registered")
	case errors.Is(err, repository.ErrForbidden):
		return utils.ErrorResponse(c, fiber.StatusForbidden, err.Error())
	case errors.Is(err, repository.ErrNotFound):
		return utils.ErrorResponse(c, fiber.StatusNotFound, err.Error())
	}

	userID, _ := middleware.UserID(c)
	utils.LogError(log, "internal", err, map[string]interface{}{
		"method":  c.Method(),
		"path":    c.Path(),
		"user_id": userID,
	})
	return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Internal server error")
}

func badRequest(c *fiber.Ctx, message string) error {
	return utils.ErrorResponse(c, fiber.StatusBadRequest, message)
}

// currentUser returns the caller attached by middleware.Protected
func currentUser(c *fiber.Ctx) (uint, error) {
	identity, ok := middleware.IdentityFromContext(c.UserContext())
	if !ok || identity.UserID == 0 {
		return 0, errUnauthenticated
	}
	return identity.UserID, nil
}

// parseBody decodes and validates a JSON request body
func parseBody(c *fiber.Ctx, out interface{}) error {
	if err := c.BodyParser(out); err != nil {
		return errors.New("Invalid request body")
	}
	return utils.ValidateStruct(out)
}

// paramID parses a numeric route parameter
func paramID(c *fiber.Ctx, name string) (uint, error) {
	id, err := utils.ParseID(c.Params(name))
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be a positive integer", repository.ErrInvalidArgument, name)
	}
	return id, nil
}
