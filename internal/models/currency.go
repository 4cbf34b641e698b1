package models

// Currency is an ISO 4217 code from the fixed set the platform supports.
// Amounts are always handled in the currency's minor units (kobo, cents).
type Currency string

const (
	CurrencyNGN Currency = "NGN"
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
	CurrencyGBP Currency = "GBP"
	CurrencyGHS Currency = "GHS"
	CurrencyKES Currency = "KES"
)

var supportedCurrencies = []Currency{
	CurrencyNGN,
	CurrencyUSD,
	CurrencyEUR,
	CurrencyGBP,
	CurrencyGHS,
	CurrencyKES,
}

// SupportedCurrencies returns the fixed currency enumeration.
func SupportedCurrencies() []Currency {
	out := make([]Currency, len(supportedCurrencies))
	copy(out, supportedCurrencies)
	return out
}

// Supported reports whether the currency is part of the platform set.
func (c Currency) Supported() bool {
	for _, cur := range supportedCurrencies {
		if c == cur {
			return true
		}
	}
	return false
}

func (c Currency) String() string {
	return string(c)
}
