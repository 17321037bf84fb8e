package api

import (
	"git.solsynth.dev/hypernet/threads/pkg/internal/http/exts"
	"github.com/gofiber/fiber/v2"
)

type replyRequest struct {
	Content string `json:"content" validate:"required,max=4096"`
}

func (v *Controller) replyPost(c *fiber.Ctx) error {
	viewer, err := v.mustViewer(c)
	if err != nil {
		return err
	}
	id, err := getIDParam(c, "postId")
	if err != nil {
		return err
	}

	var data replyRequest
	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	item, err := v.stack.Feed.ReplyToPost(id, viewer, data.Content)
	if err != nil {
		return toHttpError(err)
	} else if item == nil {
		return fiber.NewError(fiber.StatusConflict, "no post selected")
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

func (v *Controller) createComment(c *fiber.Ctx) error {
	viewer, err := v.mustViewer(c)
	if err != nil {
		return err
	}
	id, err := getIDParam(c, "postId")
	if err != nil {
		return err
	}

	var data replyRequest
	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	item, err := v.stack.Feed.AddComment(id, viewer, data.Content)
	if err != nil {
		return toHttpError(err)
	} else if item == nil {
		return fiber.NewError(fiber.StatusConflict, "post is not selected")
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

func (v *Controller) replyComment(c *fiber.Ctx) error {
	viewer, err := v.mustViewer(c)
	if err != nil {
		return err
	}
	postID, err := getIDParam(c, "postId")
	if err != nil {
		return err
	}
	commentID, err := getIDParam(c, "commentId")
	if err != nil {
		return err
	}

	var data replyRequest
	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	item, err := v.stack.Feed.AddReply(postID, commentID, viewer, data.Content)
	if err != nil {
		return toHttpError(err)
	} else if item == nil {
		return fiber.NewError(fiber.StatusNotFound, "comment not found on the selected post")
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

func (v *Controller) likeComment(c *fiber.Ctx) error {
	if _, err := v.mustViewer(c); err != nil {
		return err
	}
	postID, err := getIDParam(c, "postId")
	if err != nil {
		return err
	}
	commentID, err := getIDParam(c, "commentId")
	if err != nil {
		return err
	}

	item := v.stack.Feed.ToggleCommentLike(postID, commentID, c.QueryBool("reply", false))
	if item == nil {
		return fiber.NewError(fiber.StatusNotFound, "comment not found")
	}
	return c.JSON(item)
}
