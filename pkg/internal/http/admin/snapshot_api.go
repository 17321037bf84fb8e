package admin

import (
	"git.solsynth.dev/hypernet/threads/pkg/internal/http/exts"
	"git.solsynth.dev/hypernet/threads/pkg/internal/seed"
	"github.com/gofiber/fiber/v2"
)

func (v *Controller) ensureAdmin(c *fiber.Ctx) error {
	if err := exts.EnsureAuthenticated(c); err != nil {
		return err
	}
	viewer, _ := exts.GetViewer(c)
	if !v.admins[viewer] {
		return fiber.NewError(fiber.StatusForbidden, "admin permission required")
	}
	return nil
}

func (v *Controller) adminTriggerDeliveryFlush(c *fiber.Ctx) error {
	if err := v.ensureAdmin(c); err != nil {
		return err
	}
	if v.stack.Delivery == nil {
		return fiber.NewError(fiber.StatusServiceUnavailable, "notification delivery is disabled")
	}

	delivered, err := v.stack.Delivery.Flush(c.Context())
	if err != nil {
		return fiber.NewError(fiber.StatusBadGateway, err.Error())
	}
	return c.JSON(fiber.Map{
		"delivered": delivered,
		"pending":   v.stack.Delivery.Pending(),
	})
}

func (v *Controller) adminExportSnapshot(c *fiber.Ctx) error {
	if err := v.ensureAdmin(c); err != nil {
		return err
	}
	return c.JSON(v.stack.Snapshot())
}

func (v *Controller) adminImportSnapshot(c *fiber.Ctx) error {
	if err := v.ensureAdmin(c); err != nil {
		return err
	}

	var data seed.Snapshot
	if err := c.BodyParser(&data); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	v.stack.Hydrate(data)
	return c.SendStatus(fiber.StatusOK)
}
