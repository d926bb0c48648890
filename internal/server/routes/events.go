package routes

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fr0stylo/ghevents/internal/app/domain"
	"github.com/fr0stylo/ghevents/internal/app/services"
)

// EventsResponse is the GET /events body.
type EventsResponse struct {
	Status        string                 `json:"status"`
	Events        []domain.EventDocument `json:"events"`
	Count         int                    `json:"count"`
	LastTimestamp *string                `json:"last_timestamp"`
	TotalInDB     int64                  `json:"total_in_db"`
}

// StatsResponse is the GET /events/stats body.
type StatsResponse struct {
	Status      string `json:"status"`
	TotalEvents int64  `json:"total_events"`
}

type errorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// EventRoutes registers polling read endpoints.
type EventRoutes struct {
	query *services.EventQueryService
}

// NewEventRoutes constructs event read routes.
func NewEventRoutes(query *services.EventQueryService) *EventRoutes {
	return &EventRoutes{query: query}
}

// RegisterRoutes registers event read endpoints.
func (r *EventRoutes) RegisterRoutes(s *echo.Echo) {
	s.GET("/events", r.handleListEvents)
	s.GET("/events/stats", r.handleEventStats)
}

func (r *EventRoutes) handleListEvents(c echo.Context) error {
	since := c.QueryParam("since")
	query, err := services.ParseEventQuery(since, c.QueryParam("all"), c.QueryParam("limit"))
	if err != nil {
		if errors.Is(err, services.ErrInvalidSince) {
			return c.JSON(http.StatusBadRequest, errorResponse{Status: "error", Message: "Invalid timestamp format: " + since})
		}
		return err
	}

	ctx := c.Request().Context()
	page, err := r.query.List(ctx, query)
	if err != nil {
		slog.ErrorContext(ctx, "events_list_failed", "error", err)
		return c.JSON(http.StatusInternalServerError, errorResponse{Status: "error", Message: "Failed to fetch events"})
	}

	docs := make([]domain.EventDocument, 0, len(page.Events))
	for _, event := range page.Events {
		docs = append(docs, event.Document())
	}
	var last *string
	if page.LastTimestamp != nil {
		formatted := domain.FormatTimestamp(*page.LastTimestamp)
		last = &formatted
	}

	return c.JSON(http.StatusOK, EventsResponse{
		Status:        "success",
		Events:        docs,
		Count:         page.Count,
		LastTimestamp: last,
		TotalInDB:     page.TotalInDB,
	})
}

func (r *EventRoutes) handleEventStats(c echo.Context) error {
	ctx := c.Request().Context()
	stats, err := r.query.Stats(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "events_stats_failed", "error", err)
		return c.JSON(http.StatusInternalServerError, errorResponse{Status: "error", Message: "Failed to fetch statistics"})
	}
	return c.JSON(http.StatusOK, StatsResponse{Status: "success", TotalEvents: stats.TotalEvents})
}
