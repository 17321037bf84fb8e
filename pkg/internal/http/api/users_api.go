package api

import (
	"git.solsynth.dev/hypernet/threads/pkg/internal/http/exts"
	"git.solsynth.dev/hypernet/threads/pkg/internal/models"
	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"
)

type userProfile struct {
	models.User
	FollowerCount  int  `json:"follower_count"`
	FollowingCount int  `json:"following_count"`
	IsFollowing    bool `json:"is_following"`
}

func (v *Controller) listUser(c *fiber.Ctx) error {
	return paginate(c, v.stack.Users.Users())
}

func (v *Controller) getUser(c *fiber.Ctx) error {
	id, err := getIDParam(c, "userId")
	if err != nil {
		return err
	}
	user := v.stack.Users.User(id)
	if user == nil {
		return fiber.NewError(fiber.StatusNotFound, "user not found")
	}

	profile := userProfile{User: *user}
	profile.FollowerCount, profile.FollowingCount = v.stack.Graph.Counts(id)
	if viewer, ok := exts.GetViewer(c); ok {
		profile.IsFollowing = v.stack.Graph.IsFollowing(viewer, id)
	}
	return c.JSON(profile)
}

func (v *Controller) registerUser(c *fiber.Ctx) error {
	var data struct {
		Username string  `json:"username" validate:"required,max=64"`
		Bio      *string `json:"bio" validate:"omitempty,max=4096"`
		Avatar   *string `json:"avatar" validate:"omitempty,url"`
	}
	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	user, err := v.stack.Users.Register(data.Username, data.Bio, data.Avatar)
	if err != nil {
		return toHttpError(err)
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

func (v *Controller) listUserPost(c *fiber.Ctx) error {
	id, err := getIDParam(c, "userId")
	if err != nil {
		return err
	}
	return paginate(c, v.stack.Feed.AuthorPosts(id))
}

func (v *Controller) resolveUsers(ids []uint) []models.User {
	return lo.Map(ids, func(id uint, _ int) models.User {
		if user := v.stack.Users.User(id); user != nil {
			return *user
		}
		return models.User{ID: id}
	})
}

func (v *Controller) listUserFollower(c *fiber.Ctx) error {
	id, err := getIDParam(c, "userId")
	if err != nil {
		return err
	}
	return paginate(c, v.resolveUsers(v.stack.Graph.FollowersOf(id)))
}

func (v *Controller) listUserFollowing(c *fiber.Ctx) error {
	id, err := getIDParam(c, "userId")
	if err != nil {
		return err
	}
	return paginate(c, v.resolveUsers(v.stack.Graph.FollowingOf(id)))
}

func (v *Controller) followUser(c *fiber.Ctx) error {
	viewer, err := v.mustViewer(c)
	if err != nil {
		return err
	}
	id, err := getIDParam(c, "userId")
	if err != nil {
		return err
	}
	if v.stack.Users.User(id) == nil {
		return fiber.NewError(fiber.StatusNotFound, "user not found")
	}

	created := v.stack.Graph.Follow(viewer, id)
	return c.JSON(fiber.Map{
		"created":      created,
		"is_following": v.stack.Graph.IsFollowing(viewer, id),
	})
}

func (v *Controller) unfollowUser(c *fiber.Ctx) error {
	viewer, err := v.mustViewer(c)
	if err != nil {
		return err
	}
	id, err := getIDParam(c, "userId")
	if err != nil {
		return err
	}

	removed := v.stack.Graph.Unfollow(viewer, id)
	return c.JSON(fiber.Map{
		"removed":      removed,
		"is_following": false,
	})
}
