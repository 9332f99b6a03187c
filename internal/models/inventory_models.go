package models

import "time"

// ItemCategory is the closed set of categories an inventory item may carry.
type ItemCategory string

const (
	CategoryProduce ItemCategory = "Produce"
	CategoryDairy   ItemCategory = "Dairy"
	CategoryMeat    ItemCategory = "Meat"
	CategoryBakery  ItemCategory = "Bakery"
	CategoryGrocery ItemCategory = "Grocery"
	CategoryOther   ItemCategory = "Other"
)

// IsValid reports whether c is one of the known categories.
// The empty string is also valid: category is an optional field.
func (c ItemCategory) IsValid() bool {
	switch c {
	case "", CategoryProduce, CategoryDairy, CategoryMeat, CategoryBakery, CategoryGrocery, CategoryOther:
		return true
	}
	return false
}

// ItemStatus is derived from quantity and expiration at write time and is
// never set directly by callers.
type ItemStatus string

const (
	StatusActive       ItemStatus = "Active"
	StatusExpiringSoon ItemStatus = "ExpiringSoon"
	StatusExpired      ItemStatus = "Expired"
	StatusLowStock     ItemStatus = "LowStock"
	StatusOutOfStock   ItemStatus = "OutOfStock"
)

// IsValid reports whether s is one of the known statuses.
func (s ItemStatus) IsValid() bool {
	switch s {
	case StatusActive, StatusExpiringSoon, StatusExpired, StatusLowStock, StatusOutOfStock:
		return true
	}
	return false
}

// AuditLog is one entry in an item's append-only mutation history.
type AuditLog struct {
	Timestamp time.Time `json:"timestamp"`
	Action    string    `json:"action"`
	Details   string    `json:"details"`
	Actor     string    `json:"actor"`
}

// InventoryItem is one inventory record keyed by ItemID. Barcode is a unique
// secondary key maintained by the store's barcode index.
type InventoryItem struct {
	ItemID         string       `json:"item_id"`
	Barcode        string       `json:"barcode"`
	Name           string       `json:"name"`
	Category       ItemCategory `json:"category,omitempty"`
	Quantity       int          `json:"quantity"`
	ExpirationDate time.Time    `json:"expiration_date"`
	Price          float64      `json:"price"`
	LastUpdated    time.Time    `json:"last_updated"`
	Status         ItemStatus   `json:"status"`
	AuditTrail     []AuditLog   `json:"audit_trail"`
}

// ItemFilter holds the optional, ANDed search criteria. Nil/zero fields
// match everything.
type ItemFilter struct {
	Keyword     string
	Category    *ItemCategory
	Status      *ItemStatus
	MinQuantity *int
	MaxPrice    *float64
}

// PaginatedItems is one page of the unfiltered item table. Total is the full
// table count, not the page length.
type PaginatedItems struct {
	Items   []InventoryItem `json:"items"`
	Total   int             `json:"total"`
	Page    int             `json:"page"`
	PerPage int             `json:"per_page"`
}

// SnapshotItemEntry is one item-table entry in a snapshot, in insertion order.
type SnapshotItemEntry struct {
	ItemID string        `json:"item_id"`
	Item   InventoryItem `json:"item"`
}

// SnapshotBarcodeEntry is one barcode-index entry in a snapshot.
type SnapshotBarcodeEntry struct {
	Barcode string `json:"barcode"`
	ItemID  string `json:"item_id"`
}

// InventorySnapshot captures the full item table and barcode index as a pair
// of ordered key-value sequences. It is the unit the persistence gateway
// writes out before a restart-class event and reads back afterwards.
type InventorySnapshot struct {
	TakenAt  time.Time              `json:"taken_at"`
	Items    []SnapshotItemEntry    `json:"items"`
	Barcodes []SnapshotBarcodeEntry `json:"barcodes"`
}
