package wallet

import (
	"context"
	"fmt"
	"time"

	apperr "kudi/internal/errors"
	"kudi/internal/models"
	"kudi/internal/repositories"
	"kudi/internal/services/rates"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// minorUnitScale converts between minor units (kobo, cents) at the API
// boundary and the major units FX rates are quoted in. Wallet balances are
// always minor; the engine is the only place the scale changes.
const minorUnitScale = 2

type service struct {
	wallets repositories.WalletRepository
	ledger  repositories.TransactionRepository
	rates   rates.Service
	events  EventPublisher
	metrics MetricsCollector
	logger  *logrus.Logger
}

// NewService builds the wallet core. events may be nil when no broker is
// configured; metrics may be nil and falls back to a no-op collector.
func NewService(
	wallets repositories.WalletRepository,
	ledger repositories.TransactionRepository,
	rateOracle rates.Service,
	events EventPublisher,
	metrics MetricsCollector,
	logger *logrus.Logger,
) Service {
	if wallets == nil {
		panic("wallet repository is required")
	}
	if ledger == nil {
		panic("transaction repository is required")
	}
	if rateOracle == nil {
		panic("rate oracle is required")
	}
	if metrics == nil {
		metrics = &NoopMetricsCollector{}
	}
	return &service{
		wallets: wallets,
		ledger:  ledger,
		rates:   rateOracle,
		events:  events,
		metrics: metrics,
		logger:  logger,
	}
}

func (s *service) Fund(ctx context.Context, req FundRequest) (*FundResult, error) {
	start := time.Now()
	defer func() { s.metrics.RecordOperationDuration("fund", time.Since(start)) }()

	if req.Amount <= 0 {
		s.metrics.RecordError("fund", apperr.CodeInvalidAmount)
		return nil, apperr.ErrInvalidAmount
	}
	if !req.Currency.Supported() {
		s.metrics.RecordError("fund", apperr.CodeUnsupportedCurrency)
		return nil, apperr.ErrUnsupportedCurrency
	}

	if _, err := s.wallets.FindOrCreate(ctx, req.UserID, req.Currency); err != nil {
		s.logger.WithError(err).Error("fund: wallet resolution failed")
		s.metrics.RecordError("fund", apperr.CodePersistenceFailure)
		return nil, apperr.ErrPersistenceFailure
	}

	reference := req.Reference
	if reference == "" {
		reference = newReference("FUND")
	}

	var (
		newBalance int64
		entry      *models.Transaction
	)
	err := s.wallets.ExecuteInTransaction(func(tx repositories.WalletRepository) error {
		locked, err := tx.GetForUpdate(ctx, req.UserID, req.Currency)
		if err != nil {
			return err
		}

		locked.Balance += req.Amount
		if err := tx.Save(ctx, locked); err != nil {
			return err
		}

		entry = &models.Transaction{
			UserID:     req.UserID,
			Type:       models.TransactionTypeFund,
			Reference:  reference,
			ToCurrency: req.Currency,
			Amount:     req.Amount,
			Rate:       decimal.NewFromInt(1),
			Status:     models.TransactionStatusSuccess,
		}
		if err := tx.AppendLedger(ctx, entry); err != nil {
			return err
		}

		newBalance = locked.Balance
		return nil
	})
	if err != nil {
		s.logger.WithError(err).WithFields(logrus.Fields{
			"user_id":  req.UserID,
			"currency": req.Currency,
		}).Error("fund: atomic unit failed")
		s.recordFailedAttempt(ctx, req.UserID, models.TransactionTypeFund, reference, nil, req.Currency, req.Amount)
		s.metrics.RecordError("fund", apperr.CodePersistenceFailure)
		return nil, apperr.ErrPersistenceFailure
	}

	s.publish(ctx, entry)
	s.metrics.RecordOperation("fund", "success")
	s.metrics.RecordVolume("fund", string(req.Currency), req.Amount)

	return &FundResult{
		Balance:   newBalance,
		Currency:  req.Currency,
		Reference: reference,
	}, nil
}

func (s *service) Trade(ctx context.Context, req TradeRequest) (*TradeResult, error) {
	start := time.Now()
	defer func() { s.metrics.RecordOperationDuration("trade", time.Since(start)) }()

	if req.Amount <= 0 {
		s.metrics.RecordError("trade", apperr.CodeInvalidAmount)
		return nil, apperr.ErrInvalidAmount
	}
	if !req.FromCurrency.Supported() || !req.ToCurrency.Supported() {
		s.metrics.RecordError("trade", apperr.CodeUnsupportedCurrency)
		return nil, apperr.ErrUnsupportedCurrency
	}
	if req.FromCurrency == req.ToCurrency {
		s.metrics.RecordError("trade", apperr.CodeSameCurrency)
		return nil, apperr.ErrSameCurrency
	}

	source, err := s.wallets.FindOrCreate(ctx, req.UserID, req.FromCurrency)
	if err != nil {
		s.logger.WithError(err).Error("trade: source wallet resolution failed")
		s.metrics.RecordError("trade", apperr.CodePersistenceFailure)
		return nil, apperr.ErrPersistenceFailure
	}
	if source.Balance < req.Amount {
		s.metrics.RecordError("trade", apperr.CodeInsufficientFunds)
		return nil, apperr.InsufficientFunds(string(req.FromCurrency), source.Balance)
	}
	if _, err := s.wallets.FindOrCreate(ctx, req.UserID, req.ToCurrency); err != nil {
		s.logger.WithError(err).Error("trade: destination wallet resolution failed")
		s.metrics.RecordError("trade", apperr.CodePersistenceFailure)
		return nil, apperr.ErrPersistenceFailure
	}

	reference := newReference("CONVERT")

	// Rates are quoted in major units; scale down before asking the
	// oracle and scale its answer back up. Getting either direction wrong
	// creates or destroys money.
	amountMajor := decimal.NewFromInt(req.Amount).Shift(-minorUnitScale)
	convertedMajor, rate, err := s.rates.Convert(ctx, amountMajor, req.FromCurrency, req.ToCurrency)
	if err != nil {
		s.recordFailedAttempt(ctx, req.UserID, models.TransactionTypeConvert, reference, &req.FromCurrency, req.ToCurrency, req.Amount)
		s.metrics.RecordError("trade", apperr.CodeRateUnavailable)
		return nil, apperr.ErrRateUnavailable
	}
	convertedMinor := convertedMajor.Shift(minorUnitScale).Round(0).IntPart()

	var (
		entry         *models.Transaction
		sourceBalance int64
		destBalance   int64
	)
	err = s.wallets.ExecuteInTransaction(func(tx repositories.WalletRepository) error {
		src, dst, err := lockPair(ctx, tx, req.UserID, req.FromCurrency, req.ToCurrency)
		if err != nil {
			return err
		}

		// Re-check under the row lock; the earlier read may be stale.
		if src.Balance < req.Amount {
			return apperr.InsufficientFunds(string(req.FromCurrency), src.Balance)
		}

		src.Balance -= req.Amount
		dst.Balance += convertedMinor
		if err := tx.Save(ctx, src); err != nil {
			return err
		}
		if err := tx.Save(ctx, dst); err != nil {
			return err
		}

		from := req.FromCurrency
		entry = &models.Transaction{
			UserID:       req.UserID,
			Type:         models.TransactionTypeConvert,
			Reference:    reference,
			FromCurrency: &from,
			ToCurrency:   req.ToCurrency,
			Amount:       req.Amount,
			Rate:         rate,
			Status:       models.TransactionStatusSuccess,
		}
		if err := tx.AppendLedger(ctx, entry); err != nil {
			return err
		}

		sourceBalance = src.Balance
		destBalance = dst.Balance
		return nil
	})
	if err != nil {
		if de, ok := err.(*apperr.DomainError); ok && de.Code == apperr.CodeInsufficientFunds {
			// Validation failure, not an attempted state change: no audit
			// record.
			s.metrics.RecordError("trade", apperr.CodeInsufficientFunds)
			return nil, de
		}
		s.logger.WithError(err).WithFields(logrus.Fields{
			"user_id": req.UserID,
			"from":    req.FromCurrency,
			"to":      req.ToCurrency,
		}).Error("trade: atomic unit failed")
		s.recordFailedAttempt(ctx, req.UserID, models.TransactionTypeConvert, reference, &req.FromCurrency, req.ToCurrency, req.Amount)
		s.metrics.RecordError("trade", apperr.CodePersistenceFailure)
		return nil, apperr.ErrPersistenceFailure
	}

	s.publish(ctx, entry)
	s.metrics.RecordOperation("trade", "success")
	s.metrics.RecordVolume("trade", string(req.FromCurrency), req.Amount)

	return &TradeResult{
		FromCurrency:    req.FromCurrency,
		ToCurrency:      req.ToCurrency,
		AmountConverted: req.Amount,
		AmountReceived:  convertedMinor,
		Rate:            rate,
		SourceBalance:   fmt.Sprintf("%d", sourceBalance),
		DestBalance:     fmt.Sprintf("%d", destBalance),
		Transaction:     entry,
	}, nil
}

func (s *service) ListWallets(ctx context.Context, userID string) ([]models.Wallet, error) {
	return s.wallets.ListByUser(ctx, userID)
}

func (s *service) GetWallet(ctx context.Context, userID string, currency models.Currency) (*models.Wallet, error) {
	if !currency.Supported() {
		return nil, apperr.ErrUnsupportedCurrency
	}
	return s.wallets.Get(ctx, userID, currency)
}

func (s *service) GetBalance(ctx context.Context, userID string, currency models.Currency) (int64, error) {
	if !currency.Supported() {
		return 0, apperr.ErrUnsupportedCurrency
	}
	w, err := s.wallets.Get(ctx, userID, currency)
	if err != nil {
		if err == repositories.ErrWalletNotFound {
			return 0, nil
		}
		return 0, err
	}
	return w.Balance, nil
}

// lockPair acquires both wallet row locks in currency order so two
// opposing trades on the same pair cannot deadlock.
func lockPair(ctx context.Context, tx repositories.WalletRepository, userID string, from, to models.Currency) (src, dst *models.Wallet, err error) {
	first, second := from, to
	if second < first {
		first, second = second, first
	}

	a, err := tx.GetForUpdate(ctx, userID, first)
	if err != nil {
		return nil, nil, err
	}
	b, err := tx.GetForUpdate(ctx, userID, second)
	if err != nil {
		return nil, nil, err
	}

	if first == from {
		return a, b, nil
	}
	return b, a, nil
}

// recordFailedAttempt appends a FAILED ledger entry after a rolled-back or
// aborted attempt. The original transaction is gone, so this write is
// deliberately non-transactional; its own failure is logged and swallowed
// so it never masks the error already headed to the caller.
func (s *service) recordFailedAttempt(ctx context.Context, userID, txType, reference string, from *models.Currency, to models.Currency, amount int64) {
	entry := &models.Transaction{
		UserID:       userID,
		Type:         txType,
		Reference:    reference,
		FromCurrency: from,
		ToCurrency:   to,
		Amount:       amount,
		// Placeholder: the true rate may never have been resolved.
		Rate:   decimal.NewFromInt(1),
		Status: models.TransactionStatusFailed,
	}
	if err := s.ledger.Create(ctx, entry); err != nil {
		s.logger.WithError(err).WithField("reference", reference).
			Warn("failed to record FAILED ledger entry")
		return
	}
	s.publish(ctx, entry)
}

func (s *service) publish(ctx context.Context, entry *models.Transaction) {
	if s.events == nil || entry == nil {
		return
	}
	s.events.PublishTransaction(ctx, entry)
}

func newReference(kind string) string {
	return fmt.Sprintf("%s-%d-%s", kind, time.Now().UnixMilli(), uuid.NewString()[:8])
}
