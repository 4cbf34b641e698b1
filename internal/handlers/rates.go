package handlers

import (
	"kudi/internal/models"
	"kudi/internal/services/rates"
	"kudi/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type RatesHandler struct {
	rates rates.Service
}

func NewRatesHandler(ratesService rates.Service) *RatesHandler {
	return &RatesHandler{rates: ratesService}
}

// GetRates returns the rate table for a base currency, filtered to the
// supported set.
func (h *RatesHandler) GetRates(c *fiber.Ctx) error {
	base := models.Currency(c.Query("base", string(models.CurrencyNGN)))
	if !base.Supported() {
		return utils.BadRequest(c, "unsupported base currency")
	}

	table, err := h.rates.ListRates(c.Context(), base)
	if err != nil {
		return failure(c, err)
	}
	return utils.Success(c, "Exchange rates", table)
}

// Quote previews a conversion without moving money. Amount here is in
// major units, matching how rates are quoted.
func (h *RatesHandler) Quote(c *fiber.Ctx) error {
	var input struct {
		Amount       decimal.Decimal `json:"amount"`
		FromCurrency models.Currency `json:"fromCurrency"`
		ToCurrency   models.Currency `json:"toCurrency"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request format")
	}
	if !input.FromCurrency.Supported() || !input.ToCurrency.Supported() {
		return utils.BadRequest(c, "unsupported currency")
	}
	if input.Amount.Sign() <= 0 {
		return utils.BadRequest(c, "amount must be positive")
	}

	converted, rate, err := h.rates.Convert(c.Context(), input.Amount, input.FromCurrency, input.ToCurrency)
	if err != nil {
		return failure(c, err)
	}
	return utils.Success(c, "Conversion quote", fiber.Map{
		"convertedAmount": converted,
		"rate":            rate,
	})
}
