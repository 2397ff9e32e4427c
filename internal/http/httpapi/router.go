package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"cleancity/internal/http/handlers"
	"cleancity/internal/middleware"
)

// Options configures the router's middleware chain.
type Options struct {
	Logger         zerolog.Logger
	JWTSecret      string
	DefaultLocale  string
	AllowedOrigins []string
	CountryLookup  middleware.CountryLookup
}

// NewRouter wires the gateway's routes and middleware.
func NewRouter(app *handlers.App, opts Options) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RealIP, chimw.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(opts.Logger))
	r.Use(middleware.CORS(opts.AllowedOrigins))
	r.Use(middleware.Locale(opts.DefaultLocale, opts.CountryLookup))
	r.Use(middleware.Identity(opts.JWTSecret))

	r.Get("/v1/healthz", app.Health)

	r.Route("/v1/issues", func(r chi.Router) {
		r.Get("/", app.IssuesList)
		r.Post("/", app.IssueCreate)
		r.Get("/{id}", app.IssueDetail)
		r.Put("/{id}", app.IssueUpdate)
		r.Delete("/{id}", app.IssueDelete)
	})

	r.Route("/v1/views/my", func(r chi.Router) {
		r.Get("/issues", app.MyIssues)
		r.Get("/contributions", app.MyContributions)
	})

	r.Post("/v1/contributions", app.ContributionCreate)

	return r
}
