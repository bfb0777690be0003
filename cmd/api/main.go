package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/time/rate"

	"github.com/gestorpi/gestor-api/config"
	"github.com/gestorpi/gestor-api/internal/email"
	"github.com/gestorpi/gestor-api/internal/handler"
	accessHandler "github.com/gestorpi/gestor-api/internal/handler/access"
	appointmentHandler "github.com/gestorpi/gestor-api/internal/handler/appointment"
	authHandler "github.com/gestorpi/gestor-api/internal/handler/auth"
	catalogHandler "github.com/gestorpi/gestor-api/internal/handler/catalog"
	"github.com/gestorpi/gestor-api/internal/middleware"
	"github.com/gestorpi/gestor-api/internal/repository/postgres"
	redisrepo "github.com/gestorpi/gestor-api/internal/repository/redis"
	"github.com/gestorpi/gestor-api/internal/router"
	"github.com/gestorpi/gestor-api/internal/service/access"
	"github.com/gestorpi/gestor-api/internal/service/appointment"
	"github.com/gestorpi/gestor-api/internal/service/audit"
	authService "github.com/gestorpi/gestor-api/internal/service/auth"
	"github.com/gestorpi/gestor-api/internal/service/catalog"
	pkgauth "github.com/gestorpi/gestor-api/pkg/auth"
	"github.com/gestorpi/gestor-api/pkg/logger"
	"github.com/gestorpi/gestor-api/pkg/security"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Local convenience only; in containers the environment is injected.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.New(&logger.Config{
		Level:  logger.ParseLevel(cfg.Log.Level),
		Pretty: cfg.Log.Pretty,
	})
	log.Logger = appLogger

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	redisClient, err := redisrepo.NewClient(cfg.Redis.URL, cfg.Redis.PoolSize, cfg.Redis.MinIdleConns)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()

	// Repositories
	base := postgres.NewBaseRepository(db)
	accountRepo := postgres.NewAccountRepository(base)
	serviceRepo := postgres.NewServiceRepository(base)
	methodRepo := postgres.NewPaymentMethodRepository(base)
	appointmentRepo := postgres.NewAppointmentRepository(base)
	auditRepo := postgres.NewAuditRepository(base)
	sessionRepo := redisrepo.NewSessionRepository(redisClient)

	// Services
	jwtSvc := pkgauth.NewJWTService(cfg.Session.Secret, cfg.SessionExpiry())
	hasher := security.NewBcryptHasher(bcrypt.DefaultCost)
	auditor := audit.NewService(auditRepo)
	emailSvc := email.NewService(cfg.SMTP)

	authSvc := authService.NewService(accountRepo, sessionRepo, jwtSvc, hasher, cfg.SessionExpiry())
	accessSvc := access.NewService(accountRepo, emailSvc, auditor)
	catalogSvc := catalog.NewService(serviceRepo, methodRepo, auditor, cfg.Catalog.CacheTTL)
	appointmentSvc := appointment.NewService(
		appointmentRepo,
		serviceRepo,
		methodRepo,
		auditor,
		cfg.Appointment.StrictServices,
	)

	// Handlers
	authMiddleware := middleware.NewAuthMiddleware(authSvc)
	authH := authHandler.NewHandler(authSvc)
	accessH := accessHandler.NewHandler(accessSvc)
	catalogH := catalogHandler.NewHandler(catalogSvc)
	appointmentH := appointmentHandler.NewHandler(appointmentSvc)
	healthH := handler.NewHandler(db, redisClient)

	r := router.New(authMiddleware, authH, accessH, catalogH, appointmentH, healthH, router.Config{
		RateLimit:      rate.Limit(cfg.RateLimit.RPS),
		RateBurst:      cfg.RateLimit.Burst,
		RequestTimeout: cfg.Server.RequestTimeout,
		CORSConfig:     middleware.DefaultCORSConfig(),
		MetricsPrefix:  "gestor_api",
	})
	r.Setup()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}

	log.Info().Msg("server stopped")
}
