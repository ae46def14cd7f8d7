package router

import (
	"net/http"

	"cafe-site/internal/auth"
	"cafe-site/internal/handler"
	"cafe-site/internal/media"
	"cafe-site/internal/metrics"
	"cafe-site/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// Handlers groups the HTTP handlers served by the router.
type Handlers struct {
	Menu      *handler.MenuHandler
	Category  *handler.CategoryHandler
	Promotion *handler.PromotionHandler
	Gallery   *handler.GalleryHandler
	Settings  *handler.SettingsHandler
	Order     *handler.OrderHandler
	Auth      *handler.AuthHandler
}

// Options configures the router.
type Options struct {
	CORSOrigin string
	// MediaDir is served under /media/ when set; it is empty for remote media
	// backends.
	MediaDir string
	Sessions *auth.Sessions
	Metrics  *metrics.Metrics
}

// New creates a new HTTP router with all routes and middleware configured.
func New(h Handlers, opts Options, logger zerolog.Logger) http.Handler {
	r := chi.NewRouter()

	// Apply middleware in order: Recovery -> Logging -> Metrics -> CORS
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logging(logger))
	if opts.Metrics != nil {
		r.Use(middleware.Metrics(opts.Metrics))
	}
	r.Use(middleware.CORS(opts.CORSOrigin))

	// Health check endpoint (no authentication required)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	if opts.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", opts.Metrics.Handler())
	}

	if opts.MediaDir != "" {
		files := http.StripPrefix(media.LocalURLPrefix, http.FileServer(http.Dir(opts.MediaDir)))
		r.Method(http.MethodGet, media.LocalURLPrefix+"*", uploadedMedia(files))
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/menu", h.Menu.List)
		r.Get("/menu/{id}", h.Menu.Get)
		r.Get("/categories", h.Category.List)
		r.Get("/gallery", h.Gallery.List)
		r.Get("/promotions/active", h.Promotion.Active)
		r.Get("/settings", h.Settings.Get)
		r.Post("/orders", h.Order.Create)
		r.Get("/orders/{id}", h.Order.GetByID)

		r.Route("/admin", func(r chi.Router) {
			r.Post("/login", h.Auth.Login)
			r.Post("/logout", h.Auth.Logout)

			r.Group(func(r chi.Router) {
				r.Use(middleware.AdminSession(opts.Sessions, logger))

				r.Post("/menu", h.Menu.Create)
				r.Put("/menu/{id}", h.Menu.Update)
				r.Delete("/menu/{id}", h.Menu.Delete)

				r.Post("/categories", h.Category.Create)
				r.Put("/categories/{id}", h.Category.Update)
				r.Delete("/categories/{id}", h.Category.Delete)

				r.Get("/promotions", h.Promotion.List)
				r.Get("/promotions/{id}", h.Promotion.Get)
				r.Post("/promotions", h.Promotion.Create)
				r.Put("/promotions/{id}", h.Promotion.Update)
				r.Delete("/promotions/{id}", h.Promotion.Delete)

				r.Post("/gallery", h.Gallery.Upload)
				r.Put("/gallery/{id}", h.Gallery.Update)
				r.Delete("/gallery/{id}", h.Gallery.Delete)

				r.Put("/settings", h.Settings.Save)

				r.Get("/orders", h.Order.List)
			})
		})
	})

	return r
}

// uploadedMedia serves user uploads so that a file opened directly in the
// browser can never run script in the site's origin.
func uploadedMedia(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("Content-Security-Policy", "sandbox")
		next.ServeHTTP(w, r)
	})
}
