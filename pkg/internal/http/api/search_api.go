package api

import (
	"github.com/gofiber/fiber/v2"
)

func (v *Controller) search(c *fiber.Ctx) error {
	probe := c.Query("probe")
	if len(probe) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "probe is required")
	}

	items := v.stack.Search(probe)
	return c.JSON(fiber.Map{
		"count": len(items),
		"data":  items,
	})
}
