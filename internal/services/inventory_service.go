package services

import (
	"errors"
	"fmt"
	"time"

	"xero_backend/internal/models"
	"xero_backend/internal/repositories"
	"xero_backend/pkg/utils"
)

// --- Custom Service Errors for Inventory ---
var (
	ErrItemValidation  = errors.New("validation error")
	ErrItemNotFound    = errors.New("inventory item not found")
	ErrBarcodeConflict = errors.New("barcode already held by another item")
)

// --- DTOs ---
type AddOrUpdateItemRequest struct {
	ItemID         string              `json:"item_id" binding:"required"`
	Barcode        string              `json:"barcode"`
	Name           string              `json:"name"`
	Category       models.ItemCategory `json:"category"`
	Quantity       int                 `json:"quantity"`
	ExpirationDate time.Time           `json:"expiration_date"`
	Price          float64             `json:"price"`
}

type AddOrUpdateItemResponse struct {
	Item    models.InventoryItem `json:"item"`
	Created bool                 `json:"created"`
}

// --- InventoryService Interface ---
type InventoryService interface {
	AddOrUpdateItem(req AddOrUpdateItemRequest, actor string) (*AddOrUpdateItemResponse, error)
	GetItem(itemID string) (*models.InventoryItem, error)
	GetItemByBarcode(barcode string) (*models.InventoryItem, error)
	RemoveItem(itemID string) error
	SearchItems(filter models.ItemFilter) []models.InventoryItem
	ListItemsPaged(page, perPage int) models.PaginatedItems
	ListExpiringWithin(days int) []models.InventoryItem
	ListLowStock() []models.InventoryItem
}

type inventoryService struct {
	inventoryRepo repositories.InventoryRepository
	statusCfg     StatusConfig
}

// NewInventoryService creates a new InventoryService over the in-memory store.
func NewInventoryService(repo repositories.InventoryRepository, statusCfg StatusConfig) InventoryService {
	return &inventoryService{
		inventoryRepo: repo,
		statusCfg:     statusCfg,
	}
}

func (s *inventoryService) AddOrUpdateItem(req AddOrUpdateItemRequest, actor string) (*AddOrUpdateItemResponse, error) {
	if utils.IsEmpty(req.ItemID) {
		return nil, fmt.Errorf("%w: item_id must not be blank", ErrItemValidation)
	}
	if utils.IsEmpty(req.Name) {
		return nil, fmt.Errorf("%w: name must not be blank", ErrItemValidation)
	}
	if utils.IsEmpty(req.Barcode) {
		return nil, fmt.Errorf("%w: barcode must not be blank", ErrItemValidation)
	}
	if req.Price <= 0 {
		return nil, fmt.Errorf("%w: price must be greater than zero", ErrItemValidation)
	}
	if req.Quantity < 0 {
		return nil, fmt.Errorf("%w: quantity must not be negative", ErrItemValidation)
	}
	if !req.Category.IsValid() {
		return nil, fmt.Errorf("%w: unknown category '%s'", ErrItemValidation, req.Category)
	}

	now := time.Now()
	item := models.InventoryItem{
		ItemID:         req.ItemID,
		Barcode:        req.Barcode,
		Name:           req.Name,
		Category:       req.Category,
		Quantity:       req.Quantity,
		ExpirationDate: req.ExpirationDate,
		Price:          req.Price,
		Status:         DeriveStatus(req.Quantity, req.ExpirationDate, now, s.statusCfg),
	}

	created, err := s.inventoryRepo.AddOrUpdate(item, actor, now)
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, fmt.Errorf("%w: %s", ErrBarcodeConflict, err.Error())
		}
		return nil, fmt.Errorf("failed to add or update item: %w", err)
	}

	stored, err := s.inventoryRepo.GetByID(req.ItemID)
	if err != nil {
		return nil, fmt.Errorf("failed to read back item: %w", err)
	}
	return &AddOrUpdateItemResponse{Item: *stored, Created: created}, nil
}

func (s *inventoryService) GetItem(itemID string) (*models.InventoryItem, error) {
	item, err := s.inventoryRepo.GetByID(itemID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: '%s'", ErrItemNotFound, itemID)
		}
		return nil, fmt.Errorf("failed to get item: %w", err)
	}
	return item, nil
}

func (s *inventoryService) GetItemByBarcode(barcode string) (*models.InventoryItem, error) {
	item, err := s.inventoryRepo.GetByBarcode(barcode)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: barcode '%s'", ErrItemNotFound, barcode)
		}
		return nil, fmt.Errorf("failed to get item by barcode: %w", err)
	}
	return item, nil
}

func (s *inventoryService) RemoveItem(itemID string) error {
	if err := s.inventoryRepo.Remove(itemID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return fmt.Errorf("%w: '%s'", ErrItemNotFound, itemID)
		}
		return fmt.Errorf("failed to remove item: %w", err)
	}
	return nil
}

func (s *inventoryService) SearchItems(filter models.ItemFilter) []models.InventoryItem {
	return s.inventoryRepo.Search(filter)
}

func (s *inventoryService) ListItemsPaged(page, perPage int) models.PaginatedItems {
	if page <= 0 {
		page = 1
	}
	if perPage <= 0 {
		perPage = 50
	}
	items, total := s.inventoryRepo.ListPaged(page, perPage)
	return models.PaginatedItems{
		Items:   items,
		Total:   total,
		Page:    page,
		PerPage: perPage,
	}
}

func (s *inventoryService) ListExpiringWithin(days int) []models.InventoryItem {
	return s.inventoryRepo.ListExpiringWithin(days, time.Now())
}

func (s *inventoryService) ListLowStock() []models.InventoryItem {
	return s.inventoryRepo.ListLowStock(s.statusCfg.LowStockThreshold)
}
