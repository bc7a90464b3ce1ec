package api

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

type contextKey int

const correlationIDKey contextKey = iota

// CorrelationIDHeader carries the request's correlation id in responses.
const CorrelationIDHeader = "X-Correlation-Id"

// CorrelationID returns the correlation ID from the request context.
func CorrelationID(ctx context.Context) string {
	if id, ok := ctx.Value(correlationIDKey).(string); ok {
		return id
	}
	return ""
}

// Recovery returns middleware that recovers from panics and returns a 500
// error envelope.
func Recovery() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					if rec == http.ErrAbortHandler {
						panic(rec)
					}
					slog.Error("panic recovered",
						"error", rec,
						"method", r.Method,
						"path", r.URL.Path,
						"correlation_id", CorrelationID(r.Context()),
					)
					WriteError(w, http.StatusInternalServerError, NewInternalError(CorrelationID(r.Context())))
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// RequestID returns middleware that generates a UUID v4 correlation ID, stores
// it in the request context, and adds it to the response headers.
func RequestID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := uuid.NewString()
			ctx := context.WithValue(r.Context(), correlationIDKey, id)
			w.Header().Set(CorrelationIDHeader, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Auth returns middleware that validates the Bearer token if authToken is
// non-empty. If authToken is empty, all requests pass through.
func Auth(authToken string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if authToken == "" {
				next.ServeHTTP(w, r)
				return
			}

			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token != authToken {
				WriteError(w, http.StatusUnauthorized, &Error{
					Status:        "error",
					Message:       "Missing or invalid bearer token",
					CorrelationID: CorrelationID(r.Context()),
					Category:      CategoryUnauthorized,
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// JSONContentType returns middleware that defaults the Content-Type header to
// application/json. Handlers may still override it.
func JSONContentType() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			next.ServeHTTP(w, r)
		})
	}
}

// statusWriter wraps http.ResponseWriter to capture the status code.
type statusWriter struct {
	http.ResponseWriter
	code int
}

// WriteHeader captures the status code and delegates to the wrapped writer.
func (sw *statusWriter) WriteHeader(code int) {
	sw.code = code
	sw.ResponseWriter.WriteHeader(code)
}

// Unwrap exposes the wrapped writer to http.ResponseController.
func (sw *statusWriter) Unwrap() http.ResponseWriter {
	return sw.ResponseWriter
}

// Logging returns middleware that logs each request with slog.
func Logging() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w, code: http.StatusOK}
			next.ServeHTTP(sw, r)
			slog.Info("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", sw.code,
				"duration", time.Since(start).String(),
				"correlation_id", CorrelationID(r.Context()),
			)
		})
	}
}

// Chain applies middleware in order so that the first middleware is the
// outermost handler.
func Chain(handler http.Handler, middlewares ...func(http.Handler) http.Handler) http.Handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		handler = middlewares[i](handler)
	}
	return handler
}
