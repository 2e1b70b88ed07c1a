package rest

import (
	"context"
	"fmt"
	"net/http"
	"time"

	core_port "rentwise-portal-service/internal/core/port"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Handlers - все обработчики API портала.
type Handlers struct {
	Home     *HomeHandler
	Listing  *ListingHandler
	Property *PropertyHandler
	Account  *AccountHandler
	Events   *EventsHandler
}

// ServerOptions - сетевые настройки сервера.
type ServerOptions struct {
	Port              string
	AllowedOrigins    []string
	ContactRatePerMin int
}

type Server struct {
	httpServer     *http.Server
	contactLimiter *IPRateLimiter
	logger         core_port.LoggerPort
}

func NewServer(opts ServerOptions, handlers Handlers, tokens TokenParser, baseLogger core_port.LoggerPort) *Server {
	contactLimiter := NewPerMinuteLimiter(opts.ContactRatePerMin)
	return &Server{
		httpServer: &http.Server{
			Addr:              ":" + opts.Port,
			Handler:           NewRouter(opts, handlers, tokens, contactLimiter, baseLogger),
			ReadHeaderTimeout: 10 * time.Second,
		},
		contactLimiter: contactLimiter,
		logger:         baseLogger,
	}
}

// NewRouter собирает маршруты. Вынесен отдельно, чтобы тесты работали через httptest.
func NewRouter(opts ServerOptions, handlers Handlers, tokens TokenParser, contactLimiter *IPRateLimiter, baseLogger core_port.LoggerPort) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP, LoggerMiddleware(baseLogger), middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", headerSessionID, headerTraceID},
		ExposedHeaders:   []string{headerTraceID, "Location"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(IdentityMiddleware(tokens))

	r.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(middleware.SetHeader("Content-Type", "application/json"))

			r.Get("/home/featured", handlers.Home.GetFeatured)
			r.Get("/home/search", handlers.Home.Search)

			r.Route("/listings", func(r chi.Router) {
				r.Get("/options", handlers.Listing.GetFilterOptions)
				r.Post("/sessions", handlers.Listing.OpenSession)
				r.Route("/sessions/{sessionID}", func(r chi.Router) {
					r.Get("/", handlers.Listing.GetSession)
					r.Patch("/filters", handlers.Listing.UpdateFilter)
					r.Put("/page", handlers.Listing.ChangePage)
					r.Delete("/", handlers.Listing.CloseSession)
				})
			})

			r.Route("/properties/{propertyID}", func(r chi.Router) {
				r.Get("/", handlers.Property.GetDetail)
				r.Get("/images", handlers.Property.GetImages)
				r.Post("/images/error", handlers.Property.ReportImageError)
				r.Post("/carousel/{direction}", handlers.Property.Navigate)
				r.Get("/favorite", handlers.Property.GetFavoriteStatus)
				r.Post("/favorite/toggle", handlers.Property.ToggleFavorite)
				r.With(contactLimiter.Middleware).Post("/contact", handlers.Property.SubmitContact)
			})

			r.Get("/account", handlers.Account.GetAccount)
			r.Delete("/account/favorites/{propertyID}", handlers.Account.UnsaveProperty)
			r.Get("/me", handlers.Account.GetMe)
		})

		r.Get("/events/subscribe", handlers.Events.Subscribe)
	})

	return r
}

// Start запускает HTTP-сервер.
func (s *Server) Start() error {
	s.logger.Info("Starting REST API server", core_port.Fields{"address": s.httpServer.Addr})
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		s.logger.Error("Could not start server", err, nil)
		return fmt.Errorf("could not start server: %w", err)
	}
	return nil
}

// Stop корректно останавливает сервер.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping REST API server...", nil)
	defer s.contactLimiter.Stop()
	return s.httpServer.Shutdown(ctx)
}
