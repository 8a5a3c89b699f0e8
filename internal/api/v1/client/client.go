// Package client provides a typed client for the stackplan API
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	fiber "github.com/gofiber/fiber/v2"

	"github.com/stackplan/stackplan/internal/api/v1/routes"
	"github.com/stackplan/stackplan/internal/db/models"
	"github.com/stackplan/stackplan/internal/services"
)

// DefaultTimeout is the default timeout for API requests
const DefaultTimeout = 30 * time.Second

// Client defines the interface for interacting with the stackplan API
type Client interface {
	// Category methods
	ListCategories(ctx context.Context) ([]models.Category, error)
	CreateCategory(ctx context.Context, name, color string) (*models.Category, error)
	DeleteCategory(ctx context.Context, id uint) error

	// Project methods
	ListProjects(ctx context.Context, page int) ([]models.Project, error)
	GetProject(ctx context.Context, id uint) (*models.Project, error)
	GetProjectTree(ctx context.Context, id uint) ([]*services.TaskNode, error)
	CreateProject(ctx context.Context, name, description string, categoryID *uint) (*models.Project, error)
	DeleteProject(ctx context.Context, id uint) error

	// Task methods
	ListProjectTasks(ctx context.Context, projectID uint) ([]models.Task, error)
	CreateTask(ctx context.Context, task models.Task) (*models.Task, error)
	UpdateTask(ctx context.Context, id uint, fields map[string]interface{}) (*models.Task, error)
	DeleteTask(ctx context.Context, id uint) error

	// Chat sends one message to the assistant and returns the assembled reply
	Chat(ctx context.Context, conversationID, message string) (string, error)

	// Health check
	HealthCheck(ctx context.Context) error
}

// Options contains configuration options for the API client
type Options struct {
	// BaseURL is the base URL of the API
	BaseURL string

	// Timeout is the request timeout
	Timeout time.Duration
}

// DefaultOptions returns the default client options
func DefaultOptions() *Options {
	return &Options{
		BaseURL: routes.DefaultBaseURL,
		Timeout: DefaultTimeout,
	}
}

// APIClient implements the Client interface
type APIClient struct {
	baseURL string
	timeout time.Duration
}

// NewClient creates a new API client with the given options
func NewClient(opts *Options) (Client, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	if _, err := url.Parse(opts.BaseURL); err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	return &APIClient{
		baseURL: opts.BaseURL,
		timeout: opts.Timeout,
	}, nil
}

// envelope mirrors the API's response wrapper
type envelope struct {
	Slug  string          `json:"slug"`
	Error string          `json:"error"`
	Data  json.RawMessage `json:"data"`
}

func (c *APIClient) agent(method, endpoint string, body interface{}) *fiber.Agent {
	fullURL := c.baseURL + routes.APIv1Prefix + endpoint

	var agent *fiber.Agent
	switch method {
	case http.MethodGet:
		agent = fiber.Get(fullURL)
	case http.MethodPost:
		agent = fiber.Post(fullURL)
	case http.MethodPut:
		agent = fiber.Put(fullURL)
	case http.MethodDelete:
		agent = fiber.Delete(fullURL)
	default:
		agent = fiber.Get(fullURL)
	}

	agent.Timeout(c.timeout)
	if body != nil {
		agent.JSON(body)
	}
	return agent
}

func (c *APIClient) do(method, endpoint string, body, out interface{}) error {
	statusCode, respBody, errs := c.agent(method, endpoint, body).Bytes()
	if len(errs) > 0 {
		return fmt.Errorf("request failed: %w", errs[0])
	}
	if statusCode == fiber.StatusNoContent {
		return nil
	}

	var env envelope
	if err := json.Unmarshal(respBody, &env); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	if statusCode >= 400 {
		return fmt.Errorf("API error (%d): %s", statusCode, env.Error)
	}
	if out != nil && env.Data != nil {
		return json.Unmarshal(env.Data, out)
	}
	return nil
}

// ListCategories retrieves all categories
func (c *APIClient) ListCategories(_ context.Context) ([]models.Category, error) {
	var categories []models.Category
	err := c.do(http.MethodGet, "/categories/", nil, &categories)
	return categories, err
}

// CreateCategory creates a new category
func (c *APIClient) CreateCategory(_ context.Context, name, color string) (*models.Category, error) {
	var category models.Category
	body := map[string]string{"name": name, "color": color}
	if err := c.do(http.MethodPost, "/categories/", body, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

// DeleteCategory deletes a category by ID
func (c *APIClient) DeleteCategory(_ context.Context, id uint) error {
	return c.do(http.MethodDelete, fmt.Sprintf("/categories/%d", id), nil, nil)
}

// ListProjects retrieves projects with pagination
func (c *APIClient) ListProjects(_ context.Context, page int) ([]models.Project, error) {
	var data struct {
		Projects []models.Project `json:"projects"`
	}
	endpoint := fmt.Sprintf("/projects/?page=%d", page)
	if err := c.do(http.MethodGet, endpoint, nil, &data); err != nil {
		return nil, err
	}
	return data.Projects, nil
}

// GetProject retrieves a project by ID
func (c *APIClient) GetProject(_ context.Context, id uint) (*models.Project, error) {
	var project models.Project
	if err := c.do(http.MethodGet, fmt.Sprintf("/projects/%d", id), nil, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

// GetProjectTree retrieves a project's task forest
func (c *APIClient) GetProjectTree(_ context.Context, id uint) ([]*services.TaskNode, error) {
	var tree []*services.TaskNode
	err := c.do(http.MethodGet, fmt.Sprintf("/projects/%d/tree", id), nil, &tree)
	return tree, err
}

// CreateProject creates a new project
func (c *APIClient) CreateProject(_ context.Context, name, description string, categoryID *uint) (*models.Project, error) {
	var project models.Project
	body := map[string]interface{}{"name": name, "description": description}
	if categoryID != nil {
		body["categoryId"] = *categoryID
	}
	if err := c.do(http.MethodPost, "/projects/", body, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

// DeleteProject deletes a project by ID
func (c *APIClient) DeleteProject(_ context.Context, id uint) error {
	return c.do(http.MethodDelete, fmt.Sprintf("/projects/%d", id), nil, nil)
}

// ListProjectTasks retrieves the flat task list of a project
func (c *APIClient) ListProjectTasks(_ context.Context, projectID uint) ([]models.Task, error) {
	var tasks []models.Task
	err := c.do(http.MethodGet, fmt.Sprintf("/projects/%d/tasks", projectID), nil, &tasks)
	return tasks, err
}

// CreateTask creates a new task
func (c *APIClient) CreateTask(_ context.Context, task models.Task) (*models.Task, error) {
	var created models.Task
	if err := c.do(http.MethodPost, "/tasks/", task, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateTask applies a partial update to a task
func (c *APIClient) UpdateTask(_ context.Context, id uint, fields map[string]interface{}) (*models.Task, error) {
	var updated models.Task
	if err := c.do(http.MethodPut, fmt.Sprintf("/tasks/%d", id), fields, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteTask deletes a task and its subtree by ID
func (c *APIClient) DeleteTask(_ context.Context, id uint) error {
	return c.do(http.MethodDelete, fmt.Sprintf("/tasks/%d", id), nil, nil)
}

// Chat sends one message to the assistant, reads the whole event stream
// and reassembles the reply text.
func (c *APIClient) Chat(_ context.Context, conversationID, message string) (string, error) {
	body := map[string]interface{}{"message": message}
	if conversationID != "" {
		body["conversationId"] = conversationID
	}

	statusCode, respBody, errs := c.agent(http.MethodPost, "/chat", body).Bytes()
	if len(errs) > 0 {
		return "", fmt.Errorf("request failed: %w", errs[0])
	}
	if statusCode >= 400 {
		return "", fmt.Errorf("API error (%d)", statusCode)
	}
	return decodeEventStream(string(respBody)), nil
}

// decodeEventStream flattens data frames back into the reply text
func decodeEventStream(stream string) string {
	var b strings.Builder
	for _, line := range strings.Split(stream, "\n") {
		if !strings.HasPrefix(line, "data: ") {
			continue
		}
		payload := strings.TrimPrefix(line, "data: ")
		if payload == "[DONE]" {
			break
		}
		if strings.HasPrefix(payload, "{") {
			// meta frame
			continue
		}
		if payload == "" {
			b.WriteString("\n")
			continue
		}
		b.WriteString(payload)
	}
	return strings.TrimSpace(b.String())
}

// HealthCheck verifies the API is reachable
func (c *APIClient) HealthCheck(_ context.Context) error {
	agent := fiber.Get(c.baseURL + "/health")
	agent.Timeout(c.timeout)
	statusCode, _, errs := agent.Bytes()
	if len(errs) > 0 {
		return fmt.Errorf("health check failed: %w", errs[0])
	}
	if statusCode != fiber.StatusOK {
		return fmt.Errorf("health check returned %d", statusCode)
	}
	return nil
}
