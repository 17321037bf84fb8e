package api

import (
	"github.com/gofiber/fiber/v2"
)

func (v *Controller) listNotification(c *fiber.Ctx) error {
	viewer, err := v.mustViewer(c)
	if err != nil {
		return err
	}

	items := v.stack.Notifications.List(viewer)
	return c.JSON(fiber.Map{
		"count":  len(items),
		"unread": v.stack.Notifications.UnreadCount(viewer),
		"data":   items,
	})
}

func (v *Controller) markNotificationRead(c *fiber.Ctx) error {
	viewer, err := v.mustViewer(c)
	if err != nil {
		return err
	}
	id, err := getIDParam(c, "notificationId")
	if err != nil {
		return err
	}

	owned := false
	for _, item := range v.stack.Notifications.List(viewer) {
		if item.ID == id {
			owned = true
			break
		}
	}
	if !owned {
		return fiber.NewError(fiber.StatusNotFound, "notification not found")
	}

	v.stack.Notifications.MarkRead(id)
	return c.SendStatus(fiber.StatusOK)
}

func (v *Controller) markAllNotificationRead(c *fiber.Ctx) error {
	viewer, err := v.mustViewer(c)
	if err != nil {
		return err
	}

	count := v.stack.Notifications.MarkAllRead(viewer)
	return c.JSON(fiber.Map{"count": count})
}
