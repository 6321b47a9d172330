package httpapi

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/alexanderramin/cmcplan/internal/logging"
)

// RequestRecorder counts served requests; *metrics.Metrics implements it.
type RequestRecorder interface {
	IncrementHTTPRequest(route, method string, code int)
}

// Middleware returns the standard stack for the API in the order NewRouter
// applies it. Recovery runs inside RequestLogger so a recovered panic is
// still logged and counted as a 500.
func Middleware(logger *slog.Logger, rec RequestRecorder) []func(http.Handler) http.Handler {
	return []func(http.Handler) http.Handler{
		middleware.RequestID,
		RequestLogger(logger, rec),
		Recovery(logger),
	}
}

// Recovery turns handler panics into a logged 500 JSON response.
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			defer func() {
				if v := recover(); v != nil {
					logging.FromContextOr(r.Context(), logger).ErrorContext(r.Context(), "panic recovered",
						slog.String("panic", fmt.Sprint(v)),
						slog.String("stack", string(debug.Stack())),
						slog.String("method", r.Method),
						slog.String("path", r.URL.Path),
					)
					if ww.Status() == 0 {
						writeError(ww, r, errors.New("internal server error"))
					}
				}
			}()
			next.ServeHTTP(ww, r)
		})
	}
}

// RequestLogger logs each request once it completes and reports it to rec.
// The request-scoped logger carries the chi request id.
func RequestLogger(logger *slog.Logger, rec RequestRecorder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			reqLogger := logger.With(slog.String("request_id", middleware.GetReqID(r.Context())))
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r.WithContext(logging.WithLogger(r.Context(), reqLogger)))

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			route := r.URL.Path
			if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
				route = rctx.RoutePattern()
			}
			if rec != nil {
				rec.IncrementHTTPRequest(route, r.Method, status)
			}
			reqLogger.InfoContext(r.Context(), "http_request",
				slog.String("method", r.Method),
				slog.String("route", route),
				slog.Int("status", status),
				slog.Int("bytes", ww.BytesWritten()),
				slog.Int64("duration_ms", time.Since(start).Milliseconds()),
			)
		})
	}
}
