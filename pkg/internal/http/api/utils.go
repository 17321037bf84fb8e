package api

import (
	"errors"
	"strconv"

	"git.solsynth.dev/hypernet/threads/pkg/internal/http/exts"
	"git.solsynth.dev/hypernet/threads/pkg/internal/services"
	"github.com/gofiber/fiber/v2"
)

func getIDParam(c *fiber.Ctx, key string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(key), 10, 0)
	if err != nil {
		return 0, fiber.NewError(fiber.StatusBadRequest, "invalid "+key)
	}
	return uint(id), nil
}

// mustViewer also rejects tokens whose subject the directory does not know.
func (v *Controller) mustViewer(c *fiber.Ctx) (uint, error) {
	if err := exts.EnsureAuthenticated(c); err != nil {
		return 0, err
	}
	viewer, _ := exts.GetViewer(c)
	if v.stack.Users.User(viewer) == nil {
		return 0, fiber.NewError(fiber.StatusNotFound, "viewer not found")
	}
	return viewer, nil
}

func toHttpError(err error) error {
	switch {
	case errors.Is(err, services.ErrBlankContent),
		errors.Is(err, services.ErrContentTooLong),
		errors.Is(err, services.ErrInvalidUser):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	default:
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
}
