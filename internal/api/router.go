package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter returns a chi router carrying the middleware every route shares:
// real client IPs, correlation ids, request logs, panic recovery and gzip.
func NewRouter() *chi.Mux {
	r := chi.NewRouter()
	r.Use(
		middleware.RealIP,
		RequestID(),
		Logging(),
		Recovery(),
		middleware.Compress(5, "application/json", GeoJSONContentType, "text/html", "text/css", "application/javascript", "image/svg+xml"),
	)
	r.Get("/healthz", Healthz)
	return r
}

// APIOptions configures the JSON API group.
type APIOptions struct {
	AllowedOrigins []string
	AuthToken      string
}

// APIMiddleware returns the middleware stack for routes under /api/v1.
func APIMiddleware(opts APIOptions) []func(http.Handler) http.Handler {
	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return []func(http.Handler) http.Handler{
		cors.Handler(cors.Options{
			AllowedOrigins: origins,
			AllowedMethods: []string{http.MethodGet, http.MethodHead, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
			ExposedHeaders: []string{CorrelationIDHeader},
			MaxAge:         300,
		}),
		Auth(opts.AuthToken),
		JSONContentType(),
	}
}

// Healthz reports liveness.
func Healthz(w http.ResponseWriter, _ *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
