// Package deposit charges a card through Stripe and credits the wallet via
// the funding operation. The charge id becomes the ledger reference so the
// external payment and the ledger entry stay correlated.
package deposit

import (
	"context"
	"errors"
	"strings"

	apperr "kudi/internal/errors"
	"kudi/internal/models"
	"kudi/internal/services/wallet"

	"github.com/sirupsen/logrus"
	"github.com/stripe/stripe-go/v72"
	"github.com/stripe/stripe-go/v72/charge"
)

var ErrChargeFailed = errors.New("card charge failed")

type Service interface {
	// DepositCard charges amountMinor on the card token and funds the
	// user's wallet with the charged amount.
	DepositCard(ctx context.Context, userID string, currency models.Currency, amountMinor int64, cardToken string) (*wallet.FundResult, error)
}

type service struct {
	wallets wallet.Service
	logger  *logrus.Logger
}

func NewService(apiKey string, wallets wallet.Service, logger *logrus.Logger) Service {
	stripe.Key = apiKey
	return &service{wallets: wallets, logger: logger}
}

func (s *service) DepositCard(ctx context.Context, userID string, currency models.Currency, amountMinor int64, cardToken string) (*wallet.FundResult, error) {
	if amountMinor <= 0 {
		return nil, apperr.ErrInvalidAmount
	}
	if !currency.Supported() {
		return nil, apperr.ErrUnsupportedCurrency
	}

	params := &stripe.ChargeParams{
		Amount:      stripe.Int64(amountMinor),
		Currency:    stripe.String(strings.ToLower(string(currency))),
		Description: stripe.String("wallet deposit"),
	}
	if err := params.SetSource(cardToken); err != nil {
		return nil, ErrChargeFailed
	}

	ch, err := charge.New(params)
	if err != nil {
		s.logger.WithError(err).WithField("user_id", userID).Error("stripe charge failed")
		return nil, ErrChargeFailed
	}

	return s.wallets.Fund(ctx, wallet.FundRequest{
		UserID:    userID,
		Currency:  currency,
		Amount:    amountMinor,
		Reference: ch.ID,
	})
}
