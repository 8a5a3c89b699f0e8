// Package routes defines the API routes and URL structure
package routes

import (
	"fmt"

	fiber "github.com/gofiber/fiber/v2"

	"github.com/stackplan/stackplan/internal/api/v1/handlers"
)

// API base configuration
const (
	// DefaultPort is the default port for the API
	DefaultPort = "8080"
	// APIv1Prefix is the prefix for all API endpoints
	APIv1Prefix = "/api/v1"
)

// DefaultBaseURL is the default base URL for the API
var DefaultBaseURL = fmt.Sprintf("http://localhost:%s", DefaultPort)

// Route names for lookup
const (
	// Health check
	HealthCheck = "HealthCheck"

	// Category routes
	GetCategories  = "GetCategories"
	CreateCategory = "CreateCategory"
	DeleteCategory = "DeleteCategory"

	// Project routes
	GetProjects     = "GetProjects"
	GetProject      = "GetProject"
	GetProjectTree  = "GetProjectTree"
	GetProjectTasks = "GetProjectTasks"
	CreateProject   = "CreateProject"
	UpdateProject   = "UpdateProject"
	DeleteProject   = "DeleteProject"

	// Task routes
	GetTask    = "GetTask"
	CreateTask = "CreateTask"
	UpdateTask = "UpdateTask"
	DeleteTask = "DeleteTask"

	// Conversation routes
	GetConversations        = "GetConversations"
	GetConversationMessages = "GetConversationMessages"
	DeleteConversation      = "DeleteConversation"

	// Chat route
	Chat = "Chat"
)

// RegisterRoutes configures all the v1 routes
//
// NOTE: route ordering is important because routes will try and match in
// the order they are registered; literal segments must come before
// parameterized ones.
func RegisterRoutes(
	app *fiber.App,
	categoryHandler *handlers.CategoryHandler,
	projectHandler *handlers.ProjectHandler,
	taskHandler *handlers.TaskHandler,
	conversationHandler *handlers.ConversationHandler,
	chatHandler *handlers.ChatHandler,
) {
	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "healthy"})
	}).Name(HealthCheck)

	// API v1 routes
	v1 := app.Group(APIv1Prefix)

	// Category endpoints
	categories := v1.Group("/categories")
	categories.Get("/", categoryHandler.ListCategories).Name(GetCategories)
	categories.Post("/", categoryHandler.CreateCategory).Name(CreateCategory)
	categories.Delete("/:id", categoryHandler.DeleteCategory).Name(DeleteCategory)

	// Project endpoints
	projects := v1.Group("/projects")
	projects.Get("/", projectHandler.ListProjects).Name(GetProjects)
	projects.Get("/:id", projectHandler.GetProject).Name(GetProject)
	projects.Get("/:id/tasks", taskHandler.ListProjectTasks).Name(GetProjectTasks)
	projects.Get("/:id/tree", projectHandler.GetProjectTree).Name(GetProjectTree)
	projects.Post("/", projectHandler.CreateProject).Name(CreateProject)
	projects.Put("/:id", projectHandler.UpdateProject).Name(UpdateProject)
	projects.Delete("/:id", projectHandler.DeleteProject).Name(DeleteProject)

	// Task endpoints
	tasks := v1.Group("/tasks")
	tasks.Get("/:id", taskHandler.GetTask).Name(GetTask)
	tasks.Post("/", taskHandler.CreateTask).Name(CreateTask)
	tasks.Put("/:id", taskHandler.UpdateTask).Name(UpdateTask)
	tasks.Delete("/:id", taskHandler.DeleteTask).Name(DeleteTask)

	// Conversation endpoints
	conversations := v1.Group("/conversations")
	conversations.Get("/", conversationHandler.ListConversations).Name(GetConversations)
	conversations.Get("/:id/messages", conversationHandler.GetConversationMessages).Name(GetConversationMessages)
	conversations.Delete("/:id", conversationHandler.DeleteConversation).Name(DeleteConversation)

	// Chat endpoint
	v1.Post("/chat", chatHandler.Chat).Name(Chat)
}
