package rates

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"kudi/internal/models"

	"github.com/shopspring/decimal"
)

const defaultProviderTimeout = 5 * time.Second

type exchangeRateProvider struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewExchangeRateProvider builds a client for the exchangerate-api.com v6
// API. The HTTP client timeout bounds every lookup so a slow provider
// cannot hang an enclosing wallet operation.
func NewExchangeRateProvider(baseURL, apiKey string, timeout time.Duration) Provider {
	if timeout == 0 {
		timeout = defaultProviderTimeout
	}
	return &exchangeRateProvider{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: timeout},
	}
}

type pairConversionResponse struct {
	Result         string          `json:"result"`
	ConversionRate decimal.Decimal `json:"conversion_rate"`
}

type latestRatesResponse struct {
	Result          string                     `json:"result"`
	ConversionRates map[string]decimal.Decimal `json:"conversion_rates"`
}

func (p *exchangeRateProvider) PairRate(ctx context.Context, from, to models.Currency) (decimal.Decimal, error) {
	url := fmt.Sprintf("%s/%s/pair/%s/%s", p.baseURL, p.apiKey, from, to)

	var out pairConversionResponse
	if err := p.get(ctx, url, &out); err != nil {
		return decimal.Zero, err
	}
	if out.Result != "success" {
		return decimal.Zero, fmt.Errorf("provider returned result %q", out.Result)
	}
	if out.ConversionRate.Sign() <= 0 {
		return decimal.Zero, fmt.Errorf("provider returned non-positive rate %s", out.ConversionRate)
	}
	return out.ConversionRate, nil
}

func (p *exchangeRateProvider) LatestRates(ctx context.Context, base models.Currency) (map[string]decimal.Decimal, error) {
	url := fmt.Sprintf("%s/%s/latest/%s", p.baseURL, p.apiKey, base)

	var out latestRatesResponse
	if err := p.get(ctx, url, &out); err != nil {
		return nil, err
	}
	if out.Result != "success" {
		return nil, fmt.Errorf("provider returned result %q", out.Result)
	}
	return out.ConversionRates, nil
}

func (p *exchangeRateProvider) get(ctx context.Context, url string, dest interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch rates: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("provider returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}
	if err := json.Unmarshal(body, dest); err != nil {
		return fmt.Errorf("failed to parse provider response: %w", err)
	}
	return nil
}
