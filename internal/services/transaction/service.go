// Package transaction exposes the read side of the ledger. Entries are
// written only by the wallet core; this service never mutates them.
package transaction

import (
	"context"

	"kudi/internal/models"
	"kudi/internal/repositories"
)

type Service interface {
	// ListForUser returns the user's ledger entries newest-first.
	ListForUser(ctx context.Context, userID string) ([]models.Transaction, error)
	GetByReference(ctx context.Context, reference string) (*models.Transaction, error)
}

type service struct {
	ledger repositories.TransactionRepository
}

func NewService(ledger repositories.TransactionRepository) Service {
	return &service{ledger: ledger}
}

func (s *service) ListForUser(ctx context.Context, userID string) ([]models.Transaction, error) {
	return s.ledger.ListByUser(ctx, userID)
}

func (s *service) GetByReference(ctx context.Context, reference string) (*models.Transaction, error) {
	return s.ledger.GetByReference(ctx, reference)
}
