package main

import (
	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"

	"github.com/stackplan/stackplan/config"
	"github.com/stackplan/stackplan/internal/api/middleware"
	"github.com/stackplan/stackplan/internal/api/v1/handlers"
	"github.com/stackplan/stackplan/internal/api/v1/routes"
	"github.com/stackplan/stackplan/internal/assistant"
	"github.com/stackplan/stackplan/internal/db"
	"github.com/stackplan/stackplan/internal/db/repos"
	"github.com/stackplan/stackplan/internal/logger"
	"github.com/stackplan/stackplan/internal/services"
)

func main() {
	// .env is optional; environment variables win either way
	_ = godotenv.Load()

	logger.InitializeAndConfigure()

	database, err := db.New(db.Options{
		Host:     config.GetEnv("DB_HOST", ""),
		User:     config.GetEnv("DB_USER", ""),
		Password: config.GetEnv("DB_PASSWORD", ""),
		DBName:   config.GetEnv("DB_NAME", ""),
		Port:     config.GetEnvInt("DB_PORT", 0),
	})
	if err != nil {
		logger.Fatalf("failed to connect to database: %v", err)
	}

	// Repositories
	categoryRepo := repos.NewCategoryRepository(database)
	projectRepo := repos.NewProjectRepository(database)
	taskRepo := repos.NewTaskRepository(database)
	conversationRepo := repos.NewConversationRepository(database)

	// Services
	progress := services.NewProgressService(taskRepo, projectRepo)
	categoryService := services.NewCategoryService(categoryRepo)
	projectService := services.NewProjectService(projectRepo, taskRepo)
	taskService := services.NewTaskService(taskRepo, progress)
	conversationService := services.NewConversationService(conversationRepo)

	// Assistant
	completer := assistant.NewOpenAIClient(config.LoadAssistant())
	interpreter := assistant.NewInterpreter(projectService, taskService, progress)
	chatService := assistant.NewChatService(completer, interpreter,
		projectService, taskService, categoryService, conversationService)

	app := fiber.New(fiber.Config{
		ErrorHandler: customErrorHandler,
	})
	app.Use(middleware.Logger())

	routes.RegisterRoutes(app,
		handlers.NewCategoryHandler(categoryService),
		handlers.NewProjectHandler(projectService, taskService, progress),
		handlers.NewTaskHandler(taskService),
		handlers.NewConversationHandler(conversationService),
		handlers.NewChatHandler(chatService),
	)

	port := config.GetEnv("PORT", routes.DefaultPort)
	logger.Infof("stackplan API listening on :%s", port)
	logger.Fatal(app.Listen(":" + port))
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
	})
}
