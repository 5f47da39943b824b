package app

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/contact-service/internal/api/http"
	"github.com/spec-kit/contact-service/internal/api/http/handlers"
	"github.com/spec-kit/contact-service/internal/auth"
	"github.com/spec-kit/contact-service/internal/cache"
	"github.com/spec-kit/contact-service/internal/config"
	"github.com/spec-kit/contact-service/internal/events"
	"github.com/spec-kit/contact-service/internal/observability"
	"github.com/spec-kit/contact-service/internal/persistence"
	"github.com/spec-kit/contact-service/internal/service"
	"github.com/spec-kit/contact-service/internal/validation"
	"github.com/spec-kit/contact-service/internal/worker"
)

const eventBuffer = 256

// Services are the application services built on top of a Store.
type Services struct {
	Auth     *service.AuthService
	Contacts *service.ContactService
	Seeder   *service.Seeder
}

// NewServices wires the services for store. dispatcher may be nil.
func NewServices(cfg *config.Config, store *Store, dispatcher events.Dispatcher, logger *zap.Logger) *Services {
	v := validation.New()
	authSvc := service.NewAuthService(cfg.Auth, store.Users, v)
	contactSvc := service.NewContactService(store.Contacts, v, dispatcher, logger)
	return &Services{
		Auth:     authSvc,
		Contacts: contactSvc,
		Seeder:   service.NewSeeder(authSvc, contactSvc),
	}
}

// Server is the assembled HTTP service and everything it owns.
type Server struct {
	App      *fiber.App
	Metrics  *observability.Metrics
	Services *Services

	cfg    *config.Config
	logger *zap.Logger
	store  *Store
	redis  *persistence.Redis
	events *worker.EventWorker
}

// NewServer opens the store, builds services and registers routes.
func NewServer(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Server, error) {
	store, err := OpenStore(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	metrics := observability.NewMetrics()
	eventWorker := worker.NewEventWorker(events.NewInMemoryDispatcher(), eventBuffer, logger)
	service.NewActivityService(eventWorker, logger, metrics).RegisterHandlers()
	eventWorker.Start()

	services := NewServices(cfg, store, eventWorker, logger)

	pingers := make(map[string]handlers.Pinger, len(store.Pingers)+1)
	for name, p := range store.Pingers {
		pingers[name] = p
	}

	var (
		identities auth.IdentityLookup = services.Auth
		redis      *persistence.Redis
	)
	if cfg.Redis.Enabled {
		redis = persistence.NewRedis(ctx, cfg.Redis, logger)
		identities = cache.NewIdentityCache(redis.Client, services.Auth, cfg.Redis.IdentityTTL(), logger)
		pingers["redis"] = redis.Ping
	}

	app := httptransport.NewApp(cfg.App, logger, metrics)
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:   handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pingers),
		Auth:     handlers.NewAuthHandler(services.Auth),
		Contacts: handlers.NewContactsHandler(services.Contacts),
		Metrics:  handlers.NewMetricsHandler(metrics),
		Gate:     auth.NewGate(services.Auth.TokenManager(), identities),
	})

	return &Server{
		App:      app,
		Metrics:  metrics,
		Services: services,
		cfg:      cfg,
		logger:   logger,
		store:    store,
		redis:    redis,
		events:   eventWorker,
	}, nil
}

// Listen serves HTTP until the app is shut down.
func (s *Server) Listen() error {
	s.logger.Info("listening",
		zap.String("addr", s.cfg.App.Addr()),
		zap.String("store", s.store.Driver))
	return s.App.Listen(s.cfg.App.Addr())
}

// Shutdown stops accepting requests, drains pending events and closes connections.
func (s *Server) Shutdown(ctx context.Context) error {
	var errs []error
	if err := s.App.ShutdownWithContext(ctx); err != nil {
		errs = append(errs, err)
	}
	s.events.Stop()
	s.redis.Close()
	if err := s.store.Close(ctx); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
