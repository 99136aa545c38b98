package server

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
)

// RequestIDHeader is the header used to correlate client and server logs.
const RequestIDHeader = "X-Request-ID"

// RequestID echoes the caller's X-Request-ID, generating one when absent.
func RequestID() Middleware {
	return func(next http.Handler) http.Handler {
		echo := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set(RequestIDHeader, middleware.GetReqID(r.Context()))
			next.ServeHTTP(w, r)
		})
		return middleware.RequestID(echo)
	}
}

// RequestLogger logs one line per request with status, size and latency.
//
// Panics recovered by an inner [Recover] are reported through the same logger.
func RequestLogger(logger *log.Logger) Middleware {
	return middleware.RequestLogger(&logFormatter{logger: logger})
}

// Recover turns a handler panic into a 500 response. Install it inside [RequestLogger].
func Recover() Middleware {
	return middleware.Recoverer
}

// CORS allows browser front ends on any origin to call GET endpoints.
func CORS() Middleware {
	return cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", RequestIDHeader},
		ExposedHeaders: []string{RequestIDHeader},
	}).Handler
}

type logFormatter struct {
	logger *log.Logger
}

func (f *logFormatter) NewLogEntry(r *http.Request) middleware.LogEntry {
	return &logEntry{
		logger: f.logger.With(
			"method", r.Method,
			"path", r.URL.Path,
			"query", r.URL.RawQuery,
			"request_id", middleware.GetReqID(r.Context()),
		),
	}
}

type logEntry struct {
	logger *log.Logger
}

func (e *logEntry) Write(status, bytes int, header http.Header, elapsed time.Duration, extra any) {
	if status == 0 {
		status = http.StatusOK
	}
	e.logger.Info("request", "status", status, "bytes", bytes, "duration", elapsed)
}

func (e *logEntry) Panic(v any, stack []byte) {
	e.logger.Error("handler panic", "panic", v, "stack", string(stack))
}
