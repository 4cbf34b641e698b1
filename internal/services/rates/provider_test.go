package rates

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"kudi/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPairRate_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/test-key/pair/NGN/USD", r.URL.Path)
		w.Write([]byte(`{"result":"success","conversion_rate":0.00065}`))
	}))
	defer srv.Close()

	p := NewExchangeRateProvider(srv.URL, "test-key", time.Second)
	rate, err := p.PairRate(context.Background(), models.CurrencyNGN, models.CurrencyUSD)
	require.NoError(t, err)
	assert.True(t, rate.Equal(decimal.RequireFromString("0.00065")))
}

func TestPairRate_ProviderReportsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"result":"error"}`))
	}))
	defer srv.Close()

	p := NewExchangeRateProvider(srv.URL, "test-key", time.Second)
	_, err := p.PairRate(context.Background(), models.CurrencyNGN, models.CurrencyUSD)
	assert.Error(t, err)
}

func TestPairRate_BadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	p := NewExchangeRateProvider(srv.URL, "test-key", time.Second)
	_, err := p.PairRate(context.Background(), models.CurrencyNGN, models.CurrencyUSD)
	assert.Error(t, err)
}

func TestLatestRates_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/test-key/latest/NGN", r.URL.Path)
		w.Write([]byte(`{"result":"success","conversion_rates":{"USD":0.00065,"JPY":0.098}}`))
	}))
	defer srv.Close()

	p := NewExchangeRateProvider(srv.URL, "test-key", time.Second)
	table, err := p.LatestRates(context.Background(), models.CurrencyNGN)
	require.NoError(t, err)
	assert.Len(t, table, 2)
	assert.True(t, table["USD"].Equal(decimal.RequireFromString("0.00065")))
}
