package cli

import (
	"context"
	"log/slog"
	"math"
	"net/http"
	"time"

	"github.com/fr0stylo/ghevents/internal/adapters/sqlite"
	"github.com/fr0stylo/ghevents/internal/app/services"
	"github.com/fr0stylo/ghevents/internal/config"
	"github.com/fr0stylo/ghevents/internal/db"
	"github.com/fr0stylo/ghevents/internal/githubbridge"
	"github.com/fr0stylo/ghevents/internal/observability"
	"github.com/fr0stylo/ghevents/internal/server"
	"github.com/fr0stylo/ghevents/internal/server/routes"
	githubwebhook "github.com/fr0stylo/ghevents/internal/webhooks/github"
)

const statsGaugeTimeout = 2 * time.Second

// app is the assembled receiver: one shared database handle behind the
// intake and query services, plus the HTTP server that exposes them.
type app struct {
	handle  *db.Handle
	intake  *services.WebhookIntakeService
	query   *services.EventQueryService
	metrics *observability.PrometheusMetrics
	server  *server.Server
}

func buildApp(cfg config.Config, log *slog.Logger) *app {
	handle := db.NewHandle(cfg.Database.Path)
	factory := sqlite.NewSharedEventStoreFactory(handle, cfg.Events.RecentWindow)

	a := &app{
		handle: handle,
		intake: services.NewWebhookIntakeService(githubbridge.NewNormalizer(), factory),
		query:  services.NewEventQueryService(factory),
	}

	var (
		observer       githubwebhook.OutcomeObserver
		metricsHandler http.Handler
	)
	if cfg.Metrics.Enabled {
		a.metrics = observability.NewPrometheusMetrics(a.storedEvents)
		handle.OnOpen(func(database *db.Database) {
			database.ObserveQueries(a.metrics.ObserveQuery)
		})
		observer = a.metrics
		metricsHandler = a.metrics.Handler()
	}

	a.server = server.New(log, server.Options{CORSOrigins: cfg.Server.CORSOrigins})
	a.server.RegisterRouter(routes.NewWebhookRoutes(a.intake, observer))
	a.server.RegisterRouter(routes.NewEventRoutes(a.query))
	a.server.RegisterRouter(routes.NewSystemRoutes(metricsHandler))
	return a
}

// storedEvents feeds the stored-events gauge. It reports NaN until the
// database has been opened so a scrape never creates the database file.
func (a *app) storedEvents() float64 {
	if !a.handle.Opened() {
		return math.NaN()
	}
	ctx, cancel := context.WithTimeout(context.Background(), statsGaugeTimeout)
	defer cancel()
	stats, err := a.query.Stats(ctx)
	if err != nil {
		return math.NaN()
	}
	return float64(stats.TotalEvents)
}

func (a *app) close() error {
	return a.handle.Close()
}
