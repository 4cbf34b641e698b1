// Package routes wires services to HTTP endpoints.
package routes

import (
	"kudi/internal/handlers"
	"kudi/internal/middleware"
	"kudi/internal/services/auth"
	"kudi/internal/services/deposit"
	"kudi/internal/services/rates"
	"kudi/internal/services/transaction"
	"kudi/internal/services/wallet"

	"github.com/gofiber/fiber/v2"
)

type Deps struct {
	Auth         auth.Service
	Wallets      wallet.Service
	Deposits     deposit.Service
	Transactions transaction.Service
	Rates        rates.Service
}

func Setup(app *fiber.App, deps Deps) {
	authHandler := handlers.NewAuthHandler(deps.Auth)
	walletHandler := handlers.NewWalletHandler(deps.Wallets, deps.Deposits)
	txHandler := handlers.NewTransactionHandler(deps.Transactions)
	ratesHandler := handlers.NewRatesHandler(deps.Rates)

	app.Get("/health", handlers.Health)

	api := app.Group("/api")
	api.Post("/register", authHandler.Register)
	api.Post("/verify-otp", authHandler.VerifyOTP)
	api.Post("/resend-otp", authHandler.ResendOTP)
	api.Post("/login", authHandler.Login)

	protected := api.Group("", middleware.Auth())

	protected.Get("/wallet", walletHandler.ListWallets)
	protected.Post("/wallet/fund", walletHandler.Fund)
	protected.Post("/wallet/trade", walletHandler.Trade)
	protected.Post("/wallet/convert", ratesHandler.Quote)
	protected.Post("/wallet/deposit/card", walletHandler.DepositCard)
	protected.Get("/wallet/:currency", walletHandler.GetWallet)

	protected.Get("/transactions", txHandler.ListTransactions)
	protected.Get("/fx/rates", ratesHandler.GetRates)
}
