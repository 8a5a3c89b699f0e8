package assistant

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/stackplan/stackplan/internal/db/models"
	"github.com/stackplan/stackplan/internal/db/repos"
	"github.com/stackplan/stackplan/internal/services"
)

// stubCompleter returns a canned model response and records the messages
// it was called with.
type stubCompleter struct {
	response string
	err      error
	messages []ChatMessage
}

func (c *stubCompleter) Complete(_ context.Context, messages []ChatMessage) (string, error) {
	c.messages = messages
	return c.response, c.err
}

type ChatTestSuite struct {
	suite.Suite
	db  *gorm.DB
	ctx context.Context

	completer   *stubCompleter
	chatService *Chat

	projectRepo      *repos.ProjectRepository
	conversationRepo *repos.ConversationRepository
}

func (s *ChatTestSuite) SetupTest() {
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		Logger:                                   logger.Default.LogMode(logger.Silent),
	})
	require.NoError(s.T(), err, "Failed to create in-memory database")

	err = db.AutoMigrate(
		&models.Category{},
		&models.Project{},
		&models.Task{},
		&models.Conversation{},
		&models.Message{},
	)
	require.NoError(s.T(), err, "Failed to run database migrations")

	s.db = db
	categoryRepo := repos.NewCategoryRepository(db)
	s.projectRepo = repos.NewProjectRepository(db)
	taskRepo := repos.NewTaskRepository(db)
	s.conversationRepo = repos.NewConversationRepository(db)

	progress := services.NewProgressService(taskRepo, s.projectRepo)
	projectService := services.NewProjectService(s.projectRepo, taskRepo)
	taskService := services.NewTaskService(taskRepo, progress)
	categoryService := services.NewCategoryService(categoryRepo)
	conversationService := services.NewConversationService(s.conversationRepo)

	interpreter := NewInterpreter(projectService, taskService, progress)
	s.completer = &stubCompleter{}
	s.chatService = NewChatService(
		s.completer, interpreter,
		projectService, taskService, categoryService, conversationService,
	)
	s.ctx = context.Background()
}

func (s *ChatTestSuite) TearDownTest() {
	sqlDB, err := s.db.DB()
	if err == nil && sqlDB != nil {
		_ = sqlDB.Close()
	}
}

func (s *ChatTestSuite) TestRespondExecutesPlan() {
	s.completer.response = `{
		"actions": [
			{"type": "create_project", "name": "Garden"},
			{"type": "create_task", "projectId": "NEW_PROJECT", "name": "Buy seeds"}
		],
		"responseMessage": "Set up the garden project for you."
	}`

	result, err := s.chatService.Respond(s.ctx, nil, "set up a garden project with a task to buy seeds")
	s.Require().NoError(err)
	s.Require().Equal(2, result.ActionsExecuted)
	s.Require().NotNil(result.NewProjectID)
	s.Require().Contains(result.Reply, "Here's what I did:")
	s.Require().Contains(result.Reply, `Created project "Garden"`)
	s.Require().Contains(result.Reply, `Created task "Buy seeds"`)
	s.Require().Contains(result.Reply, "Set up the garden project for you.")

	// The project was actually persisted
	project, err := s.projectRepo.Get(s.ctx, *result.NewProjectID)
	s.Require().NoError(err)
	s.Require().Equal("Garden", project.Name)

	// Both sides of the exchange are stored, oldest first
	messages, err := s.conversationRepo.ListMessages(s.ctx, result.ConversationID)
	s.Require().NoError(err)
	s.Require().Len(messages, 2)
	s.Require().Equal(models.MessageRoleUser, messages[0].Role)
	s.Require().Equal(models.MessageRoleAssistant, messages[1].Role)
	s.Require().Equal(result.Reply, messages[1].Content)
}

func (s *ChatTestSuite) TestRespondReusesConversation() {
	s.completer.response = `{"actions": [], "responseMessage": "Hi."}`

	first, err := s.chatService.Respond(s.ctx, nil, "hello")
	s.Require().NoError(err)

	second, err := s.chatService.Respond(s.ctx, &first.ConversationID, "hello again")
	s.Require().NoError(err)
	s.Require().Equal(first.ConversationID, second.ConversationID)

	messages, err := s.conversationRepo.ListMessages(s.ctx, first.ConversationID)
	s.Require().NoError(err)
	s.Require().Len(messages, 4)

	// The second call carried the first exchange as history after the
	// system prompt.
	s.Require().GreaterOrEqual(len(s.completer.messages), 4)
	s.Require().Equal("system", s.completer.messages[0].Role)
	s.Require().Equal("hello", s.completer.messages[1].Content)
	s.Require().Equal("hello again", s.completer.messages[len(s.completer.messages)-1].Content)
}

func (s *ChatTestSuite) TestRespondFallsBackOnCompletionError() {
	s.completer.err = errors.New("upstream unavailable")

	result, err := s.chatService.Respond(s.ctx, nil, "do something")
	s.Require().NoError(err)
	s.Require().Equal(0, result.ActionsExecuted)
	s.Require().Equal(FallbackMessage, result.Reply)
}

func (s *ChatTestSuite) TestRespondFallsBackOnGarbageOutput() {
	s.completer.response = "I am not JSON"

	result, err := s.chatService.Respond(s.ctx, nil, "do something")
	s.Require().NoError(err)
	s.Require().Equal(0, result.ActionsExecuted)
	s.Require().Equal(FallbackMessage, result.Reply)
}

func (s *ChatTestSuite) TestRespondRejectsEmptyMessage() {
	_, err := s.chatService.Respond(s.ctx, nil, "   ")
	s.Require().Error(err)
}

func TestChat(t *testing.T) {
	suite.Run(t, new(ChatTestSuite))
}
