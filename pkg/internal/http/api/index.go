package api

import (
	"git.solsynth.dev/hypernet/threads/pkg/internal/services"
	"github.com/gofiber/fiber/v2"
)

type Controller struct {
	stack *services.Stack
}

func MapAPIs(app *fiber.App, stack *services.Stack, baseURL string) {
	ctrl := &Controller{stack: stack}

	api := app.Group(baseURL)
	{
		api.Get("/feed", ctrl.getFeed)
		api.Get("/search", ctrl.search)

		posts := api.Group("/posts").Name("Posts API")
		{
			posts.Get("/", ctrl.listPost)
			posts.Post("/", ctrl.createPost)
			posts.Get("/detail", ctrl.getDetailPost)
			posts.Get("/featured", ctrl.listFeaturedPost)
			posts.Get("/:postId", ctrl.getPost)
			posts.Post("/:postId/select", ctrl.selectPost)
			posts.Post("/:postId/like", ctrl.likePost)
			posts.Post("/:postId/repost", ctrl.repostPost)
			posts.Post("/:postId/replies", ctrl.replyPost)

			comments := posts.Group("/:postId/comments").Name("Comments API")
			{
				comments.Post("/", ctrl.createComment)
				comments.Post("/:commentId/replies", ctrl.replyComment)
				comments.Post("/:commentId/like", ctrl.likeComment)
			}
		}

		users := api.Group("/users").Name("Users API")
		{
			users.Get("/", ctrl.listUser)
			users.Post("/", ctrl.registerUser)
			users.Get("/:userId", ctrl.getUser)
			users.Get("/:userId/posts", ctrl.listUserPost)
			users.Get("/:userId/followers", ctrl.listUserFollower)
			users.Get("/:userId/following", ctrl.listUserFollowing)
			users.Post("/:userId/follow", ctrl.followUser)
			users.Delete("/:userId/follow", ctrl.unfollowUser)
		}

		notifications := api.Group("/notifications").Name("Notifications API")
		{
			notifications.Get("/", ctrl.listNotification)
			notifications.Put("/read", ctrl.markAllNotificationRead)
			notifications.Put("/:notificationId/read", ctrl.markNotificationRead)
		}
	}
}
