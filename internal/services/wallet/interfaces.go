// Package wallet implements the ledger core: per-user per-currency
// balances, atomic funding and conversion, and the append-only audit trail
// around both.
package wallet

import (
	"context"

	"kudi/internal/models"
)

// Service is the external surface of the wallet core. Callers supply a
// trusted userID; authentication happens upstream. Amounts cross this
// boundary in minor units only.
type Service interface {
	Fund(ctx context.Context, req FundRequest) (*FundResult, error)
	Trade(ctx context.Context, req TradeRequest) (*TradeResult, error)

	ListWallets(ctx context.Context, userID string) ([]models.Wallet, error)
	GetWallet(ctx context.Context, userID string, currency models.Currency) (*models.Wallet, error)

	// GetBalance reads as 0 when no wallet exists; the read never creates
	// one.
	GetBalance(ctx context.Context, userID string, currency models.Currency) (int64, error)
}

// EventPublisher receives successful and failed ledger entries for the
// notification collaborator. Publishing is best-effort: failures are
// logged by the implementation and never surface to the caller.
type EventPublisher interface {
	PublishTransaction(ctx context.Context, entry *models.Transaction)
}
