package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/smazurov/statusled/internal/logging"
	"github.com/smazurov/statusled/internal/metrics"
)

// HTTPLoggingMiddleware logs each request at a level chosen from its status
// code and records it in the request metrics.
func HTTPLoggingMiddleware(ctx huma.Context, next func(huma.Context)) {
	start := time.Now()
	logger := logging.GetLogger("http")

	method := ctx.Method()
	path := ctx.URL().Path

	logAttrs := []slog.Attr{
		slog.String("method", method),
		slog.String("path", path),
		slog.String("remote_addr", ctx.RemoteAddr()),
	}
	if query := ctx.URL().RawQuery; query != "" {
		logAttrs = append(logAttrs, slog.String("query", query))
	}
	if userAgent := ctx.Header("User-Agent"); userAgent != "" {
		logAttrs = append(logAttrs, slog.String("user_agent", userAgent))
	}

	next(ctx)

	duration := time.Since(start)
	status := ctx.Status()
	if status == 0 {
		status = http.StatusOK
	}
	logAttrs = append(logAttrs,
		slog.Int("status", status),
		slog.Duration("duration", duration),
	)

	route := path
	if op := ctx.Operation(); op != nil {
		route = op.Path
	}
	metrics.ObserveHTTPRequest(route, status, duration)

	level := slog.LevelInfo
	switch {
	case method == http.MethodOptions, path == "/health" && status < 400:
		// Preflights and supervisor health probes
		level = slog.LevelDebug
	case status >= 500:
		level = slog.LevelError
	case status >= 400:
		level = slog.LevelWarn
	}
	logger.LogAttrs(ctx.Context(), level, "HTTP request completed", logAttrs...)
}
