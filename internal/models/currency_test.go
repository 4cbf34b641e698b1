package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCurrencySupported(t *testing.T) {
	assert.True(t, CurrencyNGN.Supported())
	assert.True(t, CurrencyUSD.Supported())
	assert.False(t, Currency("JPY").Supported())
	assert.False(t, Currency("").Supported())
	assert.False(t, Currency("usd").Supported())
}

func TestSupportedCurrenciesIsACopy(t *testing.T) {
	list := SupportedCurrencies()
	list[0] = Currency("XXX")
	assert.True(t, CurrencyNGN.Supported())
}
