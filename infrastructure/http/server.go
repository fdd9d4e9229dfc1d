// Package http assembles the router: public auth endpoints, the protected
// API surface, and the health and metrics probes.
package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/fleetora/fleetora/application/port/outbound"
	"github.com/fleetora/fleetora/infrastructure/http/handler"
	"github.com/fleetora/fleetora/infrastructure/http/middleware"
	"github.com/fleetora/fleetora/infrastructure/metrics"
	"github.com/fleetora/fleetora/infrastructure/service/jwt"
	"github.com/fleetora/fleetora/infrastructure/service/logger"
	"github.com/fleetora/fleetora/infrastructure/service/password"
	"github.com/fleetora/fleetora/infrastructure/service/ratelimit"
)

type ServerConfig struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// Repositories groups the data-layer ports the server wires into handlers.
type Repositories struct {
	Clients      outbound.ClientRepository
	Vehicles     outbound.VehicleRepository
	Documents    outbound.DocumentRepository
	Trips        outbound.TripRepository
	Expenses     outbound.ExpenseRepository
	Invoices     outbound.InvoiceRepository
	Weighbridges outbound.WeighbridgeRepository
	Users        outbound.UserRepository
	Audit        outbound.AuditReader
	Stats        outbound.StatsRepository
}

// Services groups the cross-cutting services handlers depend on.
type Services struct {
	Passwords password.Service
	Tokens    *jwt.Service
	Limiter   ratelimit.Limiter
	Metrics   *metrics.Metrics
	Log       logger.Logger
}

type Server struct {
	addr   string
	log    logger.Logger
	server *http.Server
}

func NewServer(config ServerConfig, repos Repositories, services Services) *Server {
	router := mux.NewRouter()
	router.Use(
		middleware.Recovery(services.Log),
		middleware.Logging(services.Log),
		middleware.CORS,
		services.Metrics.Middleware,
	)

	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods(http.MethodGet)
	router.Handle("/metrics", services.Metrics.Handler()).Methods(http.MethodGet)

	handler.NewAuthHandler(repos.Users, services.Passwords, services.Tokens, services.Limiter, services.Log).
		RegisterRoutes(router)

	// Everything below requires a valid access token.
	auth := middleware.NewAuthMiddleware(services.Tokens)
	api := router.NewRoute().Subrouter()
	api.Use(auth.Require)

	handler.NewClientHandler(repos.Clients, services.Log).RegisterRoutes(api)
	handler.NewVehicleHandler(repos.Vehicles, services.Log).RegisterRoutes(api)
	handler.NewDocumentHandler(repos.Documents, services.Log).RegisterRoutes(api)
	handler.NewTripHandler(repos.Trips, services.Log).RegisterRoutes(api)
	handler.NewExpenseHandler(repos.Expenses, services.Log).RegisterRoutes(api)
	handler.NewInvoiceHandler(repos.Invoices, services.Log).RegisterRoutes(api)
	handler.NewWeighbridgeHandler(repos.Weighbridges, services.Log).RegisterRoutes(api)
	handler.NewUserHandler(repos.Users, services.Passwords, services.Log).RegisterRoutes(api)
	handler.NewLogHandler(repos.Audit, services.Log).RegisterRoutes(api)
	handler.NewStatsHandler(repos.Stats, services.Log).RegisterRoutes(api)

	return &Server{
		addr: config.Addr,
		log:  services.Log,
		server: &http.Server{
			Addr:         config.Addr,
			Handler:      router,
			ReadTimeout:  config.ReadTimeout,
			WriteTimeout: config.WriteTimeout,
			IdleTimeout:  config.IdleTimeout,
		},
	}
}

func (s *Server) Start() error {
	s.log.Info("starting HTTP server", logger.Fields{"addr": s.addr})
	return s.server.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info("shutting down HTTP server", nil)
	return s.server.Shutdown(ctx)
}
