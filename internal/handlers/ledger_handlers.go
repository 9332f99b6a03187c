package handlers

import (
	"errors"
	"net/http"

	"xero_backend/internal/middleware"
	"xero_backend/internal/services"
	"xero_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// LedgerHandler holds the ledger service.
type LedgerHandler struct {
	ledgerService services.LedgerService
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(ls services.LedgerService) *LedgerHandler {
	return &LedgerHandler{ledgerService: ls}
}

// RecordTransaction appends a transaction to the ledger.
func (h *LedgerHandler) RecordTransaction(c *gin.Context) {
	var req services.RecordTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "RecordTransaction: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	tx, err := h.ledgerService.Record(req, middleware.ActorID(c))
	if err != nil {
		utils.LogError(err, "RecordTransaction: Error from ledgerService.Record")
		if errors.Is(err, services.ErrDuplicateTransaction) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Transaction ID already exists.", err.Error()))
		} else if errors.Is(err, services.ErrLedgerValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to record transaction.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusCreated, tx)
}

// GetTransaction fetches one transaction by its ID.
func (h *LedgerHandler) GetTransaction(c *gin.Context) {
	tx, err := h.ledgerService.Get(c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrTransactionNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Transaction not found.", err.Error()))
			return
		}
		utils.LogError(err, "GetTransaction: Error from ledgerService.Get")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch transaction.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, tx)
}

// ListTransactions returns all transactions in append order.
func (h *LedgerHandler) ListTransactions(c *gin.Context) {
	transactions, err := h.ledgerService.ListAll()
	if err != nil {
		utils.LogError(err, "ListTransactions: Error from ledgerService.ListAll")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to list transactions.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, transactions)
}
