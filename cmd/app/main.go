package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"engagesphere/internal/config"
	"engagesphere/internal/infra/api"
	pg "engagesphere/internal/infra/db/postgres"
	"engagesphere/internal/infra/logging"
	"engagesphere/internal/infra/mail"
	"engagesphere/internal/infra/metrics"
	"engagesphere/internal/infra/payment"
	"engagesphere/internal/infra/pdf"
	red "engagesphere/internal/infra/redis"
	"engagesphere/internal/usecase"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ---- CLI flags ----
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	devMode := flag.Bool("dev", false, "enable developer mode (console logs, relaxed CORS)")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath, *devMode)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.Log, cfg.Runtime.Dev)
	if cfg.Runtime.Dev {
		logger.Warn().Msg("dev mode enabled")
	}

	metrics.MustRegister()

	// ---- Postgres ----
	pool, err := pg.NewPgxPool(ctx, cfg.Database.URL, cfg.Database.MaxConns)
	if err != nil {
		logger.Fatal().Err(err).Msg("postgres")
	}
	defer pool.Close()

	// ---- Redis ----
	redisClient, err := red.NewClient(ctx, &cfg.Redis)
	if err != nil {
		logger.Fatal().Err(err).Msg("redis")
	}
	defer redisClient.Close()
	otpStore := red.NewOTPStore(redisClient)
	rateLimiter := red.NewRateLimiter(redisClient)

	// ---- Repositories ----
	userRepo := pg.NewUserRepo(pool)
	adminRepo := pg.NewAdminRepo(pool)
	planRepo := pg.NewPlanRepo(pool)
	payRepo := pg.NewPaymentRepo(pool)
	subRepo := pg.NewSubscriptionRepo(pool)
	receiptRepo := pg.NewReceiptRepo(pool)
	serviceRepo := pg.NewServiceRepo(pool)
	contactRepo := pg.NewContactRepo(pool)
	countryRepo := pg.NewCountryRepo(pool)
	tm := pg.NewTxManager(pool)

	// ---- Adapters ----
	gateway := payment.NewRazorpayGateway(&cfg.Payment.Razorpay)
	mailer := mail.NewSMTPMailer(&cfg.SMTP)
	renderer := pdf.NewRenderer("EngageSphere")

	// ---- Use cases ----
	userUC := usecase.NewUserUseCase(userRepo, countryRepo, otpStore, mailer, rateLimiter)
	adminUC := usecase.NewAdminUseCase(adminRepo, otpStore, mailer, rateLimiter)
	planUC := usecase.NewPlanUseCase(planRepo)
	orderUC := usecase.NewOrderUseCase(userRepo, planRepo, payRepo, subRepo, gateway, tm)
	subUC := usecase.NewSubscriptionUseCase(subRepo, planRepo)
	receiptUC := usecase.NewReceiptUseCase(receiptRepo, payRepo, userRepo, planRepo, renderer)
	serviceUC := usecase.NewServiceUseCase(serviceRepo)
	contactUC := usecase.NewContactUseCase(contactRepo)
	countryUC := usecase.NewCountryUseCase(countryRepo)

	// ---- HTTP ----
	auth := api.NewAuthManager(cfg.Auth)
	srv := api.NewServer(userUC, adminUC, planUC, orderUC, subUC, receiptUC, serviceUC, contactUC, countryUC, auth, logger)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler: srv.Router(cfg.HTTP),
	}
	go func() {
		logger.Info().Str("addr", server.Addr).Msg("http listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("http server")
		}
	}()

	// ---- Graceful shutdown ----
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	<-sigc
	logger.Info().Msg("shutdown requested")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("http shutdown")
	}
	cancel()
}
