package wallet

import (
	"kudi/internal/models"

	"github.com/shopspring/decimal"
)

// FundRequest credits a wallet. Reference is optional; one is generated
// when absent. Amount is in minor units.
type FundRequest struct {
	UserID    string
	Currency  models.Currency
	Amount    int64
	Reference string
}

type FundResult struct {
	Balance   int64           `json:"balance"`
	Currency  models.Currency `json:"currency"`
	Reference string          `json:"reference"`
}

// TradeRequest converts value between two of the user's own wallets at the
// live rate. Amount is the minor-unit quantity debited from the source
// wallet.
type TradeRequest struct {
	UserID       string
	FromCurrency models.Currency
	ToCurrency   models.Currency
	Amount       int64
}

// TradeResult reports both post-operation balances as strings so no
// precision is lost across the transport boundary.
type TradeResult struct {
	FromCurrency    models.Currency     `json:"fromCurrency"`
	ToCurrency      models.Currency     `json:"toCurrency"`
	AmountConverted int64               `json:"amountConverted"`
	AmountReceived  int64               `json:"amountReceived"`
	Rate            decimal.Decimal     `json:"rate"`
	SourceBalance   string              `json:"sourceBalance"`
	DestBalance     string              `json:"destBalance"`
	Transaction     *models.Transaction `json:"transaction"`
}
