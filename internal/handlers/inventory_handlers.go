package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"xero_backend/internal/middleware"
	"xero_backend/internal/models"
	"xero_backend/internal/services"
	"xero_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// InventoryHandler holds the inventory service.
type InventoryHandler struct {
	inventoryService services.InventoryService
}

// NewInventoryHandler creates a new InventoryHandler.
func NewInventoryHandler(is services.InventoryService) *InventoryHandler {
	return &InventoryHandler{inventoryService: is}
}

// AddOrUpdateItem handles creating a new item or overwriting an existing one.
func (h *InventoryHandler) AddOrUpdateItem(c *gin.Context) {
	var req services.AddOrUpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "AddOrUpdateItem: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	resp, err := h.inventoryService.AddOrUpdateItem(req, middleware.ActorID(c))
	if err != nil {
		utils.LogError(err, "AddOrUpdateItem: Error from inventoryService.AddOrUpdateItem")
		if errors.Is(err, services.ErrItemValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		} else if errors.Is(err, services.ErrBarcodeConflict) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Barcode already in use.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to store item.", "Internal error"))
		}
		return
	}

	if resp.Created {
		c.JSON(http.StatusCreated, resp)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetItem handles fetching a single item by its ID.
func (h *InventoryHandler) GetItem(c *gin.Context) {
	item, err := h.inventoryService.GetItem(c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrItemNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Inventory item not found.", err.Error()))
			return
		}
		utils.LogError(err, "GetItem: Error from inventoryService.GetItem")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch item.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, item)
}

// GetItemByBarcode resolves a barcode through the index and returns the item.
func (h *InventoryHandler) GetItemByBarcode(c *gin.Context) {
	item, err := h.inventoryService.GetItemByBarcode(c.Param("barcode"))
	if err != nil {
		if errors.Is(err, services.ErrItemNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "No item holds this barcode.", err.Error()))
			return
		}
		utils.LogError(err, "GetItemByBarcode: Error from inventoryService.GetItemByBarcode")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch item.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, item)
}

// RemoveItem deletes an item and its barcode index entry.
func (h *InventoryHandler) RemoveItem(c *gin.Context) {
	if err := h.inventoryService.RemoveItem(c.Param("id")); err != nil {
		if errors.Is(err, services.ErrItemNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Inventory item not found.", err.Error()))
			return
		}
		utils.LogError(err, "RemoveItem: Error from inventoryService.RemoveItem")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to remove item.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Item removed."})
}

// SearchItems handles filtered item search.
func (h *InventoryHandler) SearchItems(c *gin.Context) {
	filter := models.ItemFilter{Keyword: c.Query("keyword")}

	if categoryStr := c.Query("category"); categoryStr != "" {
		category := models.ItemCategory(categoryStr)
		if !category.IsValid() {
			utils.RespondValidationFailed(c, "Unknown category: "+categoryStr)
			return
		}
		filter.Category = &category
	}
	if statusStr := c.Query("status"); statusStr != "" {
		status := models.ItemStatus(statusStr)
		if !status.IsValid() {
			utils.RespondValidationFailed(c, "Unknown status: "+statusStr)
			return
		}
		filter.Status = &status
	}
	if minQtyStr := c.Query("min_quantity"); minQtyStr != "" {
		minQty, err := strconv.Atoi(minQtyStr)
		if err != nil {
			utils.RespondValidationFailed(c, "Invalid min_quantity: "+minQtyStr)
			return
		}
		filter.MinQuantity = &minQty
	}
	if maxPriceStr := c.Query("max_price"); maxPriceStr != "" {
		maxPrice, err := strconv.ParseFloat(maxPriceStr, 64)
		if err != nil {
			utils.RespondValidationFailed(c, "Invalid max_price: "+maxPriceStr)
			return
		}
		filter.MaxPrice = &maxPrice
	}

	c.JSON(http.StatusOK, h.inventoryService.SearchItems(filter))
}

// ListItems returns one page of the item table.
func (h *InventoryHandler) ListItems(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "50"))

	c.JSON(http.StatusOK, h.inventoryService.ListItemsPaged(page, perPage))
}

// ListExpiring returns items expiring within the given number of days.
func (h *InventoryHandler) ListExpiring(c *gin.Context) {
	days, err := strconv.Atoi(c.DefaultQuery("days", "7"))
	if err != nil || days < 0 {
		utils.RespondValidationFailed(c, "Invalid days threshold")
		return
	}
	c.JSON(http.StatusOK, h.inventoryService.ListExpiringWithin(days))
}

// ListLowStock returns items at or below the low-stock threshold.
func (h *InventoryHandler) ListLowStock(c *gin.Context) {
	c.JSON(http.StatusOK, h.inventoryService.ListLowStock())
}
