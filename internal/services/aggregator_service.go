package services

import (
	"errors"
	"fmt"
	"time"

	"xero_backend/internal/models"
	"xero_backend/pkg/utils"
)

// ErrParse is returned when an uploaded payload cannot be decoded.
var ErrParse = errors.New("parse error")

// ParsedItem is one item extracted from an uploaded inventory file.
type ParsedItem struct {
	ItemID         string
	Barcode        string
	Name           string
	Category       models.ItemCategory
	Quantity       int
	ExpirationDate time.Time
	Price          float64
}

// ItemParser decodes an uploaded file into inventory items. Format-specific
// decoding (CSV, Excel) belongs to dedicated implementations of this
// interface.
type ItemParser interface {
	Parse(data []byte) ([]ParsedItem, error)
}

// NoopParser is the placeholder parser: it accepts any payload and produces
// no records. TODO: replace with the CSV decoder once the upload format from
// the storefront is finalized.
type NoopParser struct{}

func (NoopParser) Parse(data []byte) ([]ParsedItem, error) {
	return nil, nil
}

// --- DTOs ---
type UploadResult struct {
	BytesReceived int `json:"bytes_received"`
	ItemsParsed   int `json:"items_parsed"`
	ItemsStored   int `json:"items_stored"`
}

// --- AggregatorService Interface ---
type AggregatorService interface {
	// UploadInventoryData parses the payload and feeds every parsed item
	// through the inventory store's add-or-update path.
	UploadInventoryData(data []byte, actor string) (*UploadResult, error)
}

type aggregatorService struct {
	parser    ItemParser
	inventory InventoryService
}

// NewAggregatorService creates an AggregatorService with the given parser.
func NewAggregatorService(parser ItemParser, inventory InventoryService) AggregatorService {
	return &aggregatorService{
		parser:    parser,
		inventory: inventory,
	}
}

func (s *aggregatorService) UploadInventoryData(data []byte, actor string) (*UploadResult, error) {
	utils.LogInfo("Received inventory data upload", map[string]interface{}{"size_bytes": len(data)})

	parsed, err := s.parser.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}

	result := &UploadResult{BytesReceived: len(data), ItemsParsed: len(parsed)}
	for _, item := range parsed {
		req := AddOrUpdateItemRequest{
			ItemID:         item.ItemID,
			Barcode:        item.Barcode,
			Name:           item.Name,
			Category:       item.Category,
			Quantity:       item.Quantity,
			ExpirationDate: item.ExpirationDate,
			Price:          item.Price,
		}
		if _, err := s.inventory.AddOrUpdateItem(req, actor); err != nil {
			return nil, err
		}
		result.ItemsStored++
	}
	return result, nil
}
