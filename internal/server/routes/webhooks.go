package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fr0stylo/ghevents/internal/app/services"
	githubwebhook "github.com/fr0stylo/ghevents/internal/webhooks/github"
)

// WebhookInfo describes the webhook endpoint for GET callers.
type WebhookInfo struct {
	Endpoint        string         `json:"endpoint"`
	Method          string         `json:"method"`
	Description     string         `json:"description"`
	SupportedEvents []string       `json:"supported_events"`
	Headers         WebhookHeaders `json:"headers"`
}

// WebhookHeaders lists the headers a sender must set.
type WebhookHeaders struct {
	Required []string `json:"required"`
}

// WebhookRoutes registers webhook endpoints.
type WebhookRoutes struct {
	github *githubwebhook.Handler
}

// NewWebhookRoutes constructs webhook routes. observer may be nil.
func NewWebhookRoutes(intake *services.WebhookIntakeService, observer githubwebhook.OutcomeObserver) *WebhookRoutes {
	return &WebhookRoutes{
		github: githubwebhook.NewHandler(intake, observer),
	}
}

// RegisterRoutes registers webhook endpoints.
func (w *WebhookRoutes) RegisterRoutes(s *echo.Echo) {
	s.POST("/webhook", w.handleGitHubWebhook)
	s.GET("/webhook", w.handleWebhookInfo)
}

func (w *WebhookRoutes) handleGitHubWebhook(c echo.Context) error {
	return w.github.Handle(c.Response(), c.Request())
}

func (w *WebhookRoutes) handleWebhookInfo(c echo.Context) error {
	return c.JSON(http.StatusOK, WebhookInfo{
		Endpoint:        "/webhook",
		Method:          http.MethodPost,
		Description:     "GitHub webhook receiver",
		SupportedEvents: []string{"push", "pull_request"},
		Headers: WebhookHeaders{
			Required: []string{"X-GitHub-Event", "Content-Type: application/json"},
		},
	})
}
