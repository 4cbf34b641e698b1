package repositories

import (
	"context"
	"errors"

	"kudi/internal/models"
)

var (
	ErrWalletNotFound      = errors.New("wallet not found")
	ErrTransactionNotFound = errors.New("transaction not found")
)

// WalletRepository owns the (user, currency) balance records. Balance
// mutation happens only through Save inside ExecuteInTransaction; there is
// no standalone public mutation path.
type WalletRepository interface {
	// FindOrCreate returns the unique wallet for the pair, creating it with
	// balance 0 on first access. Safe under concurrent calls for the same
	// pair: creation races resolve on the unique index and re-fetch the
	// winner instead of inserting a duplicate.
	FindOrCreate(ctx context.Context, userID string, currency models.Currency) (*models.Wallet, error)

	// Get returns the wallet for the pair or ErrWalletNotFound. A read
	// never creates a wallet.
	Get(ctx context.Context, userID string, currency models.Currency) (*models.Wallet, error)

	// GetForUpdate locks the wallet row (SELECT ... FOR UPDATE) for the
	// lifetime of the enclosing transaction. Only meaningful on the
	// repository handed to an ExecuteInTransaction callback.
	GetForUpdate(ctx context.Context, userID string, currency models.Currency) (*models.Wallet, error)

	ListByUser(ctx context.Context, userID string) ([]models.Wallet, error)

	Save(ctx context.Context, wallet *models.Wallet) error

	// AppendLedger writes one immutable ledger entry.
	AppendLedger(ctx context.Context, entry *models.Transaction) error

	// ExecuteInTransaction runs fn inside a single database transaction.
	// Every write made through the repository passed to fn commits or rolls
	// back as one unit.
	ExecuteInTransaction(fn func(tx WalletRepository) error) error
}

// TransactionRepository is the read side of the ledger plus the
// non-transactional append used for best-effort FAILED audit records.
type TransactionRepository interface {
	Create(ctx context.Context, entry *models.Transaction) error
	ListByUser(ctx context.Context, userID string) ([]models.Transaction, error)
	GetByReference(ctx context.Context, reference string) (*models.Transaction, error)
}
