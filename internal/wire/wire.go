package wire

import (
	"net/http"

	"healthhive/internal/adaptor"
	"healthhive/internal/authz"
	"healthhive/internal/data/repository"
	"healthhive/internal/gateway"
	"healthhive/internal/usecase"
	"healthhive/pkg/middleware"
	"healthhive/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// External holds the collaborators that live outside the process.
type External struct {
	Verifier authz.IdentityVerifier
	Payments gateway.PaymentGateway
	Events   gateway.EventPublisher
}

type App struct {
	Router  *chi.Mux
	Service *usecase.Service
}

func Wiring(repo *repository.Repository, ext External, config *utils.Config, logger *zap.Logger) *App {
	policy := authz.NewPolicy(ext.Verifier, repo.User, logger)

	service := usecase.NewService(usecase.Dependencies{
		Repo:     repo,
		Policy:   policy,
		Payments: ext.Payments,
		Events:   ext.Events,
		Config:   config,
		Log:      logger,
	})
	handler := adaptor.NewHandler(service, logger)

	return &App{
		Router:  setupRouter(handler, policy, config, logger),
		Service: service,
	}
}

func setupRouter(handler *adaptor.Handler, policy *authz.Policy, config *utils.Config, logger *zap.Logger) *chi.Mux {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := middleware.NewMetrics(registry)

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS(config.CORS.AllowedOrigins))
	r.Use(metrics.Handler)

	auth := routeAuth{
		authenticated: middleware.Authenticated(policy, logger),
		identify:      middleware.Identify(policy, logger),
		self:          middleware.SelfOnly(policy, "email", logger),
	}

	wireUser(r, handler.User, auth)
	wireMedicine(r, handler.Medicine, auth)
	wireOrder(r, handler.Order, auth)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte("HealthHive server is running"))
	})
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		utils.ResponseSuccess(w, "OK", nil)
	})
	r.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	return r
}

// routeAuth bundles the middleware built from the single policy.
type routeAuth struct {
	authenticated func(http.Handler) http.Handler
	identify      func(http.Handler) http.Handler
	self          func(http.Handler) http.Handler
}
