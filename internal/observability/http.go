package observability

import (
	"strings"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"
)

// untracedPaths are polled by health checks and scrapers, not by GitHub.
var untracedPaths = map[string]struct{}{
	"/health":      {},
	"/metrics":     {},
	"/favicon.ico": {},
}

// TraceMiddleware starts a server span for every webhook and events request.
func TraceMiddleware() echo.MiddlewareFunc {
	return otelecho.Middleware(DefaultServiceName, otelecho.WithSkipper(skipTrace))
}

// RequestContextMiddleware copies the echo request id and matched route into
// the request context so logs and DB spans can carry them.
func RequestContextMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			ctx := WithRequestMetadata(req.Context(), c.Response().Header().Get(echo.HeaderXRequestID), routeOf(c))
			c.SetRequest(req.WithContext(ctx))
			return next(c)
		}
	}
}

func skipTrace(c echo.Context) bool {
	_, skip := untracedPaths[strings.TrimSpace(c.Request().URL.Path)]
	return skip
}

// routeOf prefers the registered pattern so unmatched paths do not fan out.
func routeOf(c echo.Context) string {
	if route := strings.TrimSpace(c.Path()); route != "" {
		return route
	}
	return strings.TrimSpace(c.Request().URL.Path)
}
