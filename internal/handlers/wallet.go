package handlers

import (
	apperr "kudi/internal/errors"
	"kudi/internal/models"
	"kudi/internal/repositories"
	"kudi/internal/services/deposit"
	"kudi/internal/services/wallet"
	"kudi/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type WalletHandler struct {
	wallets  wallet.Service
	deposits deposit.Service
}

func NewWalletHandler(wallets wallet.Service, deposits deposit.Service) *WalletHandler {
	return &WalletHandler{wallets: wallets, deposits: deposits}
}

// extractUserClaims pulls the authenticated claims set by the auth
// middleware.
func extractUserClaims(c *fiber.Ctx) (*models.UserClaims, error) {
	claims, ok := c.Locals("claims").(*models.UserClaims)
	if !ok || claims == nil {
		return nil, fiber.ErrUnauthorized
	}
	return claims, nil
}

// failure renders a domain error, falling back to a generic 500 for
// anything unclassified.
func failure(c *fiber.Ctx, err error) error {
	if de, ok := err.(*apperr.DomainError); ok {
		return utils.DomainFailure(c, de)
	}
	return utils.ServerError(c, "something went wrong")
}

func (h *WalletHandler) ListWallets(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	wallets, err := h.wallets.ListWallets(c.Context(), claims.UserID)
	if err != nil {
		return failure(c, err)
	}
	return utils.Success(c, "User wallets", wallets)
}

func (h *WalletHandler) GetWallet(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	currency := models.Currency(c.Params("currency"))
	w, err := h.wallets.GetWallet(c.Context(), claims.UserID, currency)
	if err != nil {
		if err == repositories.ErrWalletNotFound {
			// A non-existent wallet reads as an empty one.
			return utils.Success(c, "User wallet", fiber.Map{
				"currency": currency,
				"balance":  0,
			})
		}
		return failure(c, err)
	}
	return utils.Success(c, "User wallet", w)
}

func (h *WalletHandler) Fund(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	var input struct {
		Currency  models.Currency `json:"currency"`
		Amount    int64           `json:"amount"`
		Reference string          `json:"reference"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request format")
	}

	result, err := h.wallets.Fund(c.Context(), wallet.FundRequest{
		UserID:    claims.UserID,
		Currency:  input.Currency,
		Amount:    input.Amount,
		Reference: input.Reference,
	})
	if err != nil {
		return failure(c, err)
	}
	return utils.Success(c, "Wallet funded", result)
}

func (h *WalletHandler) Trade(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	var input struct {
		FromCurrency models.Currency `json:"fromCurrency"`
		ToCurrency   models.Currency `json:"toCurrency"`
		Amount       int64           `json:"amount"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request format")
	}

	result, err := h.wallets.Trade(c.Context(), wallet.TradeRequest{
		UserID:       claims.UserID,
		FromCurrency: input.FromCurrency,
		ToCurrency:   input.ToCurrency,
		Amount:       input.Amount,
	})
	if err != nil {
		return failure(c, err)
	}
	return utils.Success(c, "Currency converted successfully", result)
}

func (h *WalletHandler) DepositCard(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	var input struct {
		Currency  models.Currency `json:"currency"`
		Amount    int64           `json:"amount"`
		CardToken string          `json:"cardToken"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request format")
	}
	if input.CardToken == "" {
		return utils.BadRequest(c, "Card token is required")
	}

	result, err := h.deposits.DepositCard(c.Context(), claims.UserID, input.Currency, input.Amount, input.CardToken)
	if err != nil {
		if err == deposit.ErrChargeFailed {
			return utils.BadRequest(c, "Card could not be charged")
		}
		return failure(c, err)
	}
	return utils.Success(c, "Deposit successful", result)
}
