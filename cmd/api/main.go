package main

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/mbms-project/mbms-gateway/docs"
	"github.com/mbms-project/mbms-gateway/internal/card"
	"github.com/mbms-project/mbms-gateway/internal/config"
	"github.com/mbms-project/mbms-gateway/internal/hisab"
	"github.com/mbms-project/mbms-gateway/internal/logger"
	"github.com/mbms-project/mbms-gateway/internal/metrics"
	"github.com/mbms-project/mbms-gateway/internal/order"
	"github.com/mbms-project/mbms-gateway/internal/payment"
	"github.com/mbms-project/mbms-gateway/internal/session"
	"github.com/mbms-project/mbms-gateway/internal/store"
	"github.com/mbms-project/mbms-gateway/internal/user"
	mw "github.com/mbms-project/mbms-gateway/pkg/middleware"
)

// @title        MBMS Gateway API
// @version      1.0
// @description  Bookkeeping dashboard gateway: settlement engine and metrics over the remote store.
// @BasePath     /api/v1
func main() {
	log := logger.Get()

	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Info("No .env file found, using environment variables")
	}

	// Load configuration
	cfg := config.Load()

	// Remote bookkeeping store client; the only place state persists
	storeClient := store.NewClient(cfg.StoreBaseURL, cfg.StoreTimeout)

	// Session registry
	sessions := session.NewStore(cfg.SessionTTL)
	sessions.StartJanitor(5 * time.Minute)
	defer sessions.Close()

	authMW := mw.Auth(sessions)
	optionalAuthMW := mw.OptionalAuth(sessions)

	// User feature
	userRepo := user.NewRepository(storeClient)
	userService := user.NewService(userRepo, sessions)
	userHandler := user.NewHandler(userService)

	// Order feature
	orderRepo := order.NewRepository(storeClient)
	orderService := order.NewService(orderRepo)
	orderHandler := order.NewHandler(orderService)

	// Payment feature
	paymentRepo := payment.NewRepository(storeClient)
	paymentService := payment.NewService(paymentRepo)
	paymentHandler := payment.NewHandler(paymentService)

	// Card feature
	cardRepo := card.NewRepository(storeClient)
	cardService := card.NewService(cardRepo)
	cardHandler := card.NewHandler(cardService)

	// Hisab feature (settlement engine)
	hisabRepo := hisab.NewRepository(storeClient)
	hisabService := hisab.NewService(hisabRepo, orderRepo, paymentRepo)
	hisabHandler := hisab.NewHandler(hisabService)

	// Metrics feature
	metricsService := metrics.NewService(orderRepo, paymentRepo, cardRepo, hisabRepo, cfg.InitialBalance, cfg.SavingsKeyword)
	metricsHandler := metrics.NewHandler(metricsService)

	r := chi.NewRouter()

	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.RequestID)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Get("/swagger/*", httpSwagger.WrapHandler)

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Mount("/users", userHandler.Routes(authMW))
		r.Mount("/payments", paymentHandler.Routes(authMW, optionalAuthMW))

		r.Group(func(r chi.Router) {
			r.Use(authMW)
			r.Mount("/orders", orderHandler.Routes())
			r.Mount("/cards", cardHandler.Routes())
			r.Mount("/hisabs", hisabHandler.Routes())
			r.Mount("/metrics", metricsHandler.Routes())
		})
	})

	// Start server
	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	log.WithFields(logrus.Fields{"port": port, "store": cfg.StoreBaseURL}).Info("Server starting")
	if err := http.ListenAndServe(":"+port, r); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
