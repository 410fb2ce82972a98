package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/taskboard-api/internal/middleware"
)

// Handlers groups every HTTP handler the API exposes.
type Handlers struct {
	Auth    *AuthHandler
	Project *ProjectHandler
	Board   *BoardHandler
	Task    *TaskHandler
	Comment *CommentHandler
}

// RegisterRoutes mounts the API under the given group. Session middleware
// must already be installed on the engine.
func RegisterRoutes(api *gin.RouterGroup, h Handlers) {
	id := middleware.RequireIDParams("id")

	// Auth routes (public)
	auth := api.Group("/auth")
	{
		auth.POST("/signup", h.Auth.Signup)
		auth.POST("/login", h.Auth.Login)
		auth.POST("/logout", h.Auth.Logout)
		auth.GET("/me", middleware.RequireAuth(), h.Auth.GetCurrentUser)
	}

	projects := api.Group("/projects")
	projects.Use(middleware.RequireAuth())
	{
		projects.POST("", h.Project.CreateProject)
		projects.GET("", h.Project.ListProjects)
		projects.GET("/:id", id, h.Project.GetProject)
		projects.PATCH("/:id", id, h.Project.UpdateProject)
		projects.POST("/:id/archive", id, h.Project.ArchiveProject)
		projects.POST("/:id/members", id, h.Project.AddMember)
		projects.PATCH("/:id/members/:userId", middleware.RequireIDParams("id", "userId"), h.Project.UpdateMember)
		projects.DELETE("/:id/members/:userId", middleware.RequireIDParams("id", "userId"), h.Project.RemoveMember)
		projects.POST("/:id/boards", id, h.Project.CreateBoard)
		projects.GET("/:id/activities", id, h.Project.ListActivities)
	}

	boards := api.Group("/boards")
	boards.Use(middleware.RequireAuth())
	{
		boards.GET("/:id", id, h.Board.GetBoard)
		boards.PATCH("/:id", id, h.Board.UpdateBoard)
		boards.POST("/:id/archive", id, h.Board.ArchiveBoard)
		boards.POST("/:id/restore", id, h.Board.RestoreBoard)
		boards.POST("/:id/columns", id, h.Board.AddColumn)
		boards.PATCH("/:id/columns/:columnId", middleware.RequireIDParams("id", "columnId"), h.Board.UpdateColumn)
		boards.POST("/:id/columns/:columnId/tasks/generate", middleware.RequireIDParams("id", "columnId"), h.Board.GenerateTasks)
		boards.POST("/:id/members", id, h.Board.AddMember)
		boards.DELETE("/:id/members/:userId", middleware.RequireIDParams("id", "userId"), h.Board.RemoveMember)
		boards.POST("/:id/tasks", id, h.Board.CreateTask)
		boards.POST("/:id/tasks/:taskId/move", middleware.RequireIDParams("id", "taskId"), h.Board.MoveTask)
		boards.GET("/:id/activities", id, h.Board.ListActivities)
	}

	tasks := api.Group("/tasks")
	tasks.Use(middleware.RequireAuth())
	{
		tasks.GET("/:id", id, h.Task.GetTask)
		tasks.PATCH("/:id", id, h.Task.UpdateTask)
		tasks.PUT("/:id/assignee", id, h.Task.AssignTask)
		tasks.PUT("/:id/position", id, h.Task.SetPosition)
		tasks.POST("/:id/archive", id, h.Task.ArchiveTask)
		tasks.POST("/:id/restore", id, h.Task.RestoreTask)
		tasks.GET("/:id/activities", id, h.Task.ListActivities)

		comment := middleware.RequireIDParams("id", "commentId")
		tasks.POST("/:id/comments", id, h.Comment.AddComment)
		tasks.PATCH("/:id/comments/:commentId", comment, h.Comment.UpdateComment)
		tasks.DELETE("/:id/comments/:commentId", comment, h.Comment.DeleteComment)
		tasks.POST("/:id/comments/:commentId/restore", comment, h.Comment.RestoreComment)
	}
}
