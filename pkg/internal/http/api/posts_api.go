package api

import (
	"git.solsynth.dev/hypernet/threads/pkg/internal/http/exts"
	"git.solsynth.dev/hypernet/threads/pkg/internal/models"
	"git.solsynth.dev/hypernet/threads/pkg/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"
)

func paginate[T any](c *fiber.Ctx, items []T) error {
	take := c.QueryInt("take", 0)
	offset := max(0, c.QueryInt("offset", 0))

	count := len(items)
	items = items[min(offset, count):]
	if take > 0 {
		items = items[:min(take, len(items))]
	}

	return c.JSON(fiber.Map{
		"count": count,
		"data":  items,
	})
}

func (v *Controller) getFeed(c *fiber.Ctx) error {
	viewer, err := v.mustViewer(c)
	if err != nil {
		return err
	}
	return paginate(c, v.stack.Timeline(viewer))
}

func (v *Controller) listPost(c *fiber.Ctx) error {
	items := v.stack.Feed.Posts()
	if c.QueryBool("noRepost", false) {
		items = lo.Filter(items, func(item models.Post, _ int) bool {
			return item.RepostID == nil
		})
	}
	return paginate(c, items)
}

func (v *Controller) listFeaturedPost(c *fiber.Ctx) error {
	take := max(1, min(c.QueryInt("take", 10), 100))
	return c.JSON(services.FeaturedPosts(v.stack.Feed.Posts(), take))
}

func (v *Controller) getPost(c *fiber.Ctx) error {
	id, err := getIDParam(c, "postId")
	if err != nil {
		return err
	}
	item := v.stack.Feed.Post(id)
	if item == nil {
		return fiber.NewError(fiber.StatusNotFound, "post not found")
	}
	return c.JSON(item)
}

func (v *Controller) getDetailPost(c *fiber.Ctx) error {
	item := v.stack.Feed.Detail()
	if item == nil {
		return fiber.NewError(fiber.StatusNotFound, "no post selected")
	}
	return c.JSON(item)
}

func (v *Controller) selectPost(c *fiber.Ctx) error {
	id, err := getIDParam(c, "postId")
	if err != nil {
		return err
	}
	item := v.stack.Feed.SelectPost(id)
	if item == nil {
		return fiber.NewError(fiber.StatusNotFound, "post not found")
	}
	return c.JSON(item)
}

func (v *Controller) createPost(c *fiber.Ctx) error {
	viewer, err := v.mustViewer(c)
	if err != nil {
		return err
	}

	var data struct {
		Content string  `json:"content" validate:"required,max=4096"`
		Image   *string `json:"image" validate:"omitempty,url"`
	}
	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	item, err := v.stack.Feed.AddPost(viewer, data.Content, data.Image)
	if err != nil {
		return toHttpError(err)
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

func (v *Controller) likePost(c *fiber.Ctx) error {
	viewer, err := v.mustViewer(c)
	if err != nil {
		return err
	}
	id, err := getIDParam(c, "postId")
	if err != nil {
		return err
	}

	item := v.stack.Feed.ToggleLike(id, viewer)
	if item == nil {
		return fiber.NewError(fiber.StatusNotFound, "post not found")
	}
	return c.JSON(item)
}

func (v *Controller) repostPost(c *fiber.Ctx) error {
	viewer, err := v.mustViewer(c)
	if err != nil {
		return err
	}
	id, err := getIDParam(c, "postId")
	if err != nil {
		return err
	}

	item, err := v.stack.Feed.Repost(id, viewer)
	if err != nil {
		return toHttpError(err)
	} else if item == nil {
		return fiber.NewError(fiber.StatusNotFound, "post not found")
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}
