// Package main is the entry point for the API server. It wires
// configuration, storage, the rate oracle, the wallet core and the HTTP
// transport together, then serves.
package main

import (
	"strings"
	"time"

	"kudi/internal/config"
	"kudi/internal/events"
	"kudi/internal/logger"
	"kudi/internal/metrics"
	"kudi/internal/repositories"
	"kudi/internal/routes"
	"kudi/internal/services/auth"
	"kudi/internal/services/deposit"
	"kudi/internal/services/rates"
	"kudi/internal/services/transaction"
	"kudi/internal/services/wallet"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/redis/go-redis/v9"
)

func main() {
	config.LoadEnv()
	log := logger.New(config.GetEnv("LOG_LEVEL", "info"))

	db, err := repositories.InitDB()
	if err != nil {
		log.Fatalf("database init failed: %v", err)
	}

	// Rate oracle: provider + explicitly owned cache. Redis when
	// configured, in-process otherwise.
	cacheTTL := config.GetDurationEnv("RATES_CACHE_TTL", rates.DefaultCacheTTL)
	var rateCache rates.Cache
	if addr := config.GetEnv("REDIS_ADDR", ""); addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: config.GetEnv("REDIS_PASSWORD", ""),
			DB:       config.GetIntEnv("REDIS_DB", 0),
		})
		rateCache = rates.NewRedisCache(client, cacheTTL, log)
	} else {
		rateCache = rates.NewMemoryCache(cacheTTL)
	}

	provider := rates.NewExchangeRateProvider(
		config.GetEnv("FX_API_URL", "https://v6.exchangerate-api.com/v6"),
		config.GetEnv("FX_API_KEY", ""),
		config.GetDurationEnv("FX_TIMEOUT", 5*time.Second),
	)
	rateOracle := rates.NewService(provider, rateCache, log)

	walletRepo := repositories.NewWalletRepository(db)
	txRepo := repositories.NewTransactionRepository(db)
	userRepo := repositories.NewUserRepository(db)

	var publisher wallet.EventPublisher
	if brokers := config.GetEnv("KAFKA_BROKERS", ""); brokers != "" {
		producer := events.NewProducer(
			strings.Split(brokers, ","),
			config.GetEnv("KAFKA_TOPIC", "wallet.transactions"),
			log,
		)
		defer producer.Close()
		publisher = producer
	}

	walletMetrics := metrics.NewWalletMetrics()
	metrics.Serve(config.GetEnv("METRICS_ADDR", ":9100"), log)

	walletService := wallet.NewService(walletRepo, txRepo, rateOracle, publisher, walletMetrics, log)
	txService := transaction.NewService(txRepo)
	depositService := deposit.NewService(config.GetEnv("STRIPE_SECRET_KEY", ""), walletService, log)

	var mailer auth.Mailer
	if host := config.GetEnv("SMTP_HOST", ""); host != "" {
		mailer = auth.NewSMTPMailer(
			host,
			config.GetEnv("SMTP_PORT", "587"),
			config.GetEnv("SMTP_USER", ""),
			config.GetEnv("SMTP_PASSWORD", ""),
			config.GetEnv("SMTP_FROM", "no-reply@kudi.app"),
		)
	} else {
		mailer = &auth.LogMailer{Logger: log}
	}
	authService := auth.NewService(userRepo, mailer, log)

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: config.GetEnv("CORS_ORIGINS", "http://localhost:5173"),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH",
	}))
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use("/api/register", limiter.New(limiter.Config{
		Max:        5,
		Expiration: time.Minute,
	}))
	app.Use("/api/login", limiter.New(limiter.Config{
		Max:        5,
		Expiration: time.Minute,
	}))

	routes.Setup(app, routes.Deps{
		Auth:         authService,
		Wallets:      walletService,
		Deposits:     depositService,
		Transactions: txService,
		Rates:        rateOracle,
	})

	if err := app.Listen(":" + config.GetEnv("PORT", "3000")); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
