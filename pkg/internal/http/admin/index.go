package admin

import (
	"git.solsynth.dev/hypernet/threads/pkg/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"
)

type Controller struct {
	stack  *services.Stack
	admins map[uint]bool
}

func MapControllers(app *fiber.App, stack *services.Stack, admins []uint, baseURL string) {
	ctrl := &Controller{
		stack: stack,
		admins: lo.SliceToMap(admins, func(id uint) (uint, bool) {
			return id, true
		}),
	}

	admin := app.Group(baseURL)
	{
		admin.Post("/deliveries", ctrl.adminTriggerDeliveryFlush)
		admin.Get("/snapshot", ctrl.adminExportSnapshot)
		admin.Put("/snapshot", ctrl.adminImportSnapshot)
	}
}
