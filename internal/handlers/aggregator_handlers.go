package handlers

import (
	"errors"
	"io"
	"net/http"

	"xero_backend/internal/middleware"
	"xero_backend/internal/services"
	"xero_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// uploadSizeLimit bounds accepted inventory files.
const uploadSizeLimit = 10 << 20 // 10 MiB

// AggregatorHandler accepts inventory data uploads.
type AggregatorHandler struct {
	aggregatorService services.AggregatorService
}

// NewAggregatorHandler creates a new AggregatorHandler.
func NewAggregatorHandler(as services.AggregatorService) *AggregatorHandler {
	return &AggregatorHandler{aggregatorService: as}
}

// UploadInventoryData receives a raw inventory file and feeds parsed items
// into the store.
func (h *AggregatorHandler) UploadInventoryData(c *gin.Context) {
	data, err := io.ReadAll(io.LimitReader(c.Request.Body, uploadSizeLimit))
	if err != nil {
		utils.LogError(err, "UploadInventoryData: Failed to read request body")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Failed to read upload.", err.Error()))
		return
	}

	result, err := h.aggregatorService.UploadInventoryData(data, middleware.ActorID(c))
	if err != nil {
		utils.LogError(err, "UploadInventoryData: Error from aggregatorService.UploadInventoryData")
		if errors.Is(err, services.ErrParse) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Could not parse uploaded data.", err.Error()))
		} else if errors.Is(err, services.ErrItemValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Parsed item failed validation: "+err.Error(), err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to process upload.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, result)
}
