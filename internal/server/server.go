package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/blood-heros/apiserver/config"
	"github.com/blood-heros/apiserver/internal/handlers"
	"github.com/blood-heros/apiserver/internal/mq"
	"github.com/blood-heros/apiserver/internal/repository"
	"github.com/blood-heros/apiserver/internal/services"
	"github.com/blood-heros/apiserver/internal/storage"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/sirupsen/logrus"
)

const (
	defaultPort     = 5000
	requestTimeout  = 60 * time.Second
	shutdownTimeout = 10 * time.Second
)

// Server wraps the HTTP server and router.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	repos      *repository.Set
	objects    *storage.Storage
	queue      *mq.MQ
	logger     logrus.FieldLogger
}

// Dependencies are the collaborators the router is built from. Storage and
// Events are optional.
type Dependencies struct {
	Repositories *repository.Set
	Storage      *storage.Storage
	Events       services.EventPublisher
}

// New opens the configured data store, object storage and message queue and
// constructs a Server around them.
func New(ctx context.Context, cfg config.Config, logger logrus.FieldLogger) (*Server, error) {
	if cfg.TokenSecret == "" {
		return nil, errors.New("ACCESS_TOKEN_SECRET is required")
	}

	repos, err := repository.Open(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", cfg.Database.Backend, err)
	}

	objects, err := storage.Open(ctx, cfg.Storage)
	if err != nil {
		_ = repos.Close()
		return nil, fmt.Errorf("open object storage: %w", err)
	}

	queue, err := mq.Open(ctx, cfg.MQ)
	if err != nil {
		closeBackends(repos, objects, nil)
		return nil, fmt.Errorf("open message queue: %w", err)
	}

	deps := Dependencies{Repositories: repos, Storage: objects}
	if queue != nil {
		deps.Events = mq.NewEventPublisher(queue, cfg.MQ.Channel)
	}

	router := NewRouter(cfg, logger, deps)

	return &Server{
		httpServer: newHTTPServer(cfg.ServerPort, router),
		router:     router,
		repos:      repos,
		objects:    objects,
		queue:      queue,
		logger:     logger,
	}, nil
}

// newHTTPServer leaves WriteTimeout above requestTimeout so the timeout
// middleware can still write its 503.
func newHTTPServer(port int, handler http.Handler) *http.Server {
	if port == 0 {
		port = defaultPort
	}
	return &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: requestTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

// NewRouter builds the router with the canonical route table.
func NewRouter(cfg config.Config, logger logrus.FieldLogger, deps Dependencies) *chi.Mux {
	repos := deps.Repositories

	userService := services.NewUserService(repos.Users)
	donationService := services.NewDonationService(repos.Donations, deps.Events, logger)
	blogService := services.NewBlogService(repos.Blogs)
	locationService := services.NewLocationService(repos.Locations)

	auth := handlers.NewAuthHandler(userService, cfg.TokenSecret, cfg.TokenTTL, logger)

	var routes []handlers.Route
	routes = append(routes, handlers.NewHealthHandler(repos.Ping).Routes()...)
	routes = append(routes, auth.Routes()...)
	routes = append(routes, handlers.NewUserHandler(userService, logger).Routes()...)
	routes = append(routes, handlers.NewLocationHandler(locationService, logger).Routes()...)
	routes = append(routes, handlers.NewDonationHandler(donationService, logger).Routes()...)
	routes = append(routes, handlers.NewBlogHandler(blogService, logger).Routes()...)
	if deps.Storage != nil {
		routes = append(routes, handlers.NewMediaHandler(deps.Storage, logger).Routes()...)
	}

	router := chi.NewRouter()
	router.Use(
		middleware.RequestID,
		middleware.RealIP,
		requestLogger(logger),
		middleware.Recoverer,
		cors.Handler(cors.Options{
			AllowedOrigins:   cfg.AllowedOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
			AllowCredentials: false,
			MaxAge:           300,
		}),
		middleware.Timeout(requestTimeout),
	)
	handlers.Mount(router, routes, auth.Gates())
	return router
}

// Router exposes the chi router.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// Start runs the HTTP server until Shutdown is called.
func (s *Server) Start() error {
	s.logger.WithField("addr", s.httpServer.Addr).Info("Blood Heros is running")
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests, then closes the queue, object storage
// and store.
func (s *Server) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	err := s.httpServer.Shutdown(ctx)
	closeBackends(s.repos, s.objects, s.queue)
	return err
}

func closeBackends(repos *repository.Set, objects *storage.Storage, queue *mq.MQ) {
	if queue != nil {
		_ = queue.Close()
	}
	if objects != nil {
		_ = objects.Close()
	}
	if repos != nil && repos.Close != nil {
		_ = repos.Close()
	}
}
