// Package httpapi exposes the application over HTTP: a JSEND JSON API under /api,
// form-bound server actions under /app/actions and the gated static pages under /app.
package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mmynk/nutritrack/internal/app"
	"github.com/mmynk/nutritrack/internal/jsend"
	"github.com/mmynk/nutritrack/internal/middleware"
)

// Server holds the handlers' dependencies.
type Server struct {
	app       *app.Application
	metrics   *middleware.Metrics
	limiter   *middleware.RateLimiter
	staticDir string
	imagesDir string
}

// Options configures NewServer. Zero values fall back to the application config.
type Options struct {
	Metrics   *middleware.Metrics
	Limiter   *middleware.RateLimiter
	StaticDir string
	ImagesDir string
}

// NewServer creates the HTTP layer over a.
func NewServer(a *app.Application, opts Options) *Server {
	s := &Server{
		app:       a,
		metrics:   opts.Metrics,
		limiter:   opts.Limiter,
		staticDir: opts.StaticDir,
		imagesDir: opts.ImagesDir,
	}
	if s.metrics == nil {
		s.metrics = middleware.NewMetrics()
	}
	if s.limiter == nil {
		s.limiter = middleware.NewRateLimiter(a.Config.Auth.RateLimitRPS, a.Config.Auth.RateLimitBurst)
	}
	if s.staticDir == "" {
		s.staticDir = a.Config.Server.StaticPath
	}
	if s.imagesDir == "" {
		s.imagesDir = a.Config.Server.ImagesPath
	}
	return s
}

// Limiter returns the auth rate limiter so the caller can schedule cleanups.
func (s *Server) Limiter() *middleware.RateLimiter {
	return s.limiter
}

// Handler builds the full route tree.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.Use(middleware.Session(s.app.Tokens), middleware.Logging, s.metrics.Instrument)

	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	r.Handle("/metrics", s.metrics.Handler()).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()

	authAPI := api.PathPrefix("/auth").Subrouter()
	authAPI.Use(s.limiter.Handler)
	authAPI.HandleFunc("/register", s.handleRegister).Methods(http.MethodPost)
	authAPI.HandleFunc("/login", s.handleLogin).Methods(http.MethodPost)
	authAPI.HandleFunc("/logout", s.handleLogout).Methods(http.MethodPost)

	protected := api.NewRoute().Subrouter()
	protected.Use(middleware.RequireAPIAuth)
	protected.HandleFunc("/auth/me", s.handleMe).Methods(http.MethodGet)
	protected.HandleFunc("/days", s.handleGetDays).Methods(http.MethodGet)
	protected.HandleFunc("/days/meals", s.handleAddMealsToDays).Methods(http.MethodPost)
	protected.HandleFunc("/days/{date}", s.handleGetDay).Methods(http.MethodGet)
	protected.HandleFunc("/days/{date}/meals", s.handleAddMealToDay).Methods(http.MethodPost)
	protected.HandleFunc("/days/{date}/meals/batch", s.handleAddMealsToDay).Methods(http.MethodPost)
	protected.HandleFunc("/ingredients/barcode/{barcode}", s.handleIngredientByBarcode).Methods(http.MethodGet)
	protected.HandleFunc("/ingredients/search", s.handleIngredientSearch).Methods(http.MethodGet)
	protected.HandleFunc("/recipes", s.handleListRecipes).Methods(http.MethodGet)
	protected.HandleFunc("/images/{filename}", s.handleImage).Methods(http.MethodGet)

	actions := r.PathPrefix("/app/actions").Subrouter()
	actions.Use(middleware.RequirePageSession)
	actions.HandleFunc("/recipes", s.actionCreateRecipe).Methods(http.MethodPost)
	actions.HandleFunc("/recipes/{id}/duplicate", s.actionDuplicateRecipe).Methods(http.MethodPost)
	actions.HandleFunc("/recipes/{id}/delete", s.actionDeleteRecipe).Methods(http.MethodPost)
	actions.HandleFunc("/recipes/{id}/rename", s.actionRenameRecipe).Methods(http.MethodPost)
	actions.HandleFunc("/recipes/{id}/lines", s.actionAddRecipeLine).Methods(http.MethodPost)
	actions.HandleFunc("/recipes/{id}/lines/remove", s.actionRemoveRecipeLine).Methods(http.MethodPost)
	actions.HandleFunc("/meals/{id}/lines", s.actionAddMealLine).Methods(http.MethodPost)
	actions.HandleFunc("/meals/{id}/lines/remove", s.actionRemoveMealLine).Methods(http.MethodPost)
	actions.HandleFunc("/days/{date}/meals/{mealId}/remove", s.actionRemoveMealFromDay).Methods(http.MethodPost)

	r.HandleFunc(middleware.LoginPath, s.handleLoginPage).Methods(http.MethodGet)
	r.Handle("/", http.RedirectHandler("/app/", http.StatusFound)).Methods(http.MethodGet)

	pages := r.PathPrefix("/app").Subrouter()
	pages.Use(middleware.RequirePageSession)
	pages.PathPrefix("/").HandlerFunc(s.handlePage).Methods(http.MethodGet)

	api.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		jsend.Fail(w, http.StatusNotFound, "route not found")
	})

	return middleware.CORS(s.app.Config.Server.AllowedOrigins)(r)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	jsend.Success(w, map[string]string{"status": "ok"})
}
