package handlers

import (
	"kudi/internal/services/transaction"
	"kudi/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type TransactionHandler struct {
	transactions transaction.Service
}

func NewTransactionHandler(transactions transaction.Service) *TransactionHandler {
	return &TransactionHandler{transactions: transactions}
}

// ListTransactions returns the user's ledger entries newest-first.
func (h *TransactionHandler) ListTransactions(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	entries, err := h.transactions.ListForUser(c.Context(), claims.UserID)
	if err != nil {
		return failure(c, err)
	}
	return utils.Success(c, "User transactions", entries)
}
