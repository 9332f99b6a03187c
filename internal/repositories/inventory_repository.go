package repositories

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"xero_backend/internal/models"
)

// AuditActionAddOrUpdate labels every mutation recorded through AddOrUpdate.
const AuditActionAddOrUpdate = "add_or_update"

// InventoryRepository owns the in-memory item table, the barcode index and
// the per-item audit trails. The table and index are only ever mutated
// together, inside one critical section per call.
type InventoryRepository interface {
	AddOrUpdate(item models.InventoryItem, actor string, now time.Time) (created bool, err error)
	GetByID(itemID string) (*models.InventoryItem, error)
	GetByBarcode(barcode string) (*models.InventoryItem, error)
	Remove(itemID string) error
	Search(filter models.ItemFilter) []models.InventoryItem
	ListPaged(page, perPage int) ([]models.InventoryItem, int)
	ListExpiringWithin(days int, now time.Time) []models.InventoryItem
	ListLowStock(threshold int) []models.InventoryItem
	Snapshot(now time.Time) *models.InventorySnapshot
	Restore(snapshot *models.InventorySnapshot) error
}

type inventoryRepository struct {
	mu       sync.Mutex
	items    map[string]*models.InventoryItem
	order    []string // item IDs in insertion order; queries iterate this
	barcodes map[string]string
}

// NewInventoryRepository creates an empty in-memory inventory store.
func NewInventoryRepository() InventoryRepository {
	return &inventoryRepository{
		items:    make(map[string]*models.InventoryItem),
		barcodes: make(map[string]string),
	}
}

func (r *inventoryRepository) AddOrUpdate(item models.InventoryItem, actor string, now time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item.LastUpdated = now

	existing, ok := r.items[item.ItemID]
	if !ok {
		if holder, taken := r.barcodes[item.Barcode]; taken {
			return false, fmt.Errorf("%w: barcode '%s' already held by item '%s'", ErrDuplicateKey, item.Barcode, holder)
		}
		item.AuditTrail = []models.AuditLog{{
			Timestamp: now,
			Action:    AuditActionAddOrUpdate,
			Details:   "item created",
			Actor:     actor,
		}}
		r.items[item.ItemID] = &item
		r.order = append(r.order, item.ItemID)
		r.barcodes[item.Barcode] = item.ItemID
		return true, nil
	}

	if item.Barcode != existing.Barcode {
		if holder, taken := r.barcodes[item.Barcode]; taken && holder != item.ItemID {
			return false, fmt.Errorf("%w: barcode '%s' already held by item '%s'", ErrDuplicateKey, item.Barcode, holder)
		}
		delete(r.barcodes, existing.Barcode)
		r.barcodes[item.Barcode] = item.ItemID
	}

	item.AuditTrail = append(existing.AuditTrail, models.AuditLog{
		Timestamp: now,
		Action:    AuditActionAddOrUpdate,
		Details: fmt.Sprintf("item updated: quantity=%d, price=%.2f, status=%s",
			item.Quantity, item.Price, item.Status),
		Actor: actor,
	})
	r.items[item.ItemID] = &item
	return false, nil
}

func (r *inventoryRepository) GetByID(itemID string) (*models.InventoryItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[itemID]
	if !ok {
		return nil, fmt.Errorf("%w: item '%s'", ErrNotFound, itemID)
	}
	return copyItem(item), nil
}

func (r *inventoryRepository) GetByBarcode(barcode string) (*models.InventoryItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// The index is authoritative: an unindexed barcode is a miss even if a
	// table scan could have found it.
	itemID, ok := r.barcodes[barcode]
	if !ok {
		return nil, fmt.Errorf("%w: barcode '%s'", ErrNotFound, barcode)
	}
	item, ok := r.items[itemID]
	if !ok {
		return nil, fmt.Errorf("%w: barcode '%s'", ErrNotFound, barcode)
	}
	return copyItem(item), nil
}

func (r *inventoryRepository) Remove(itemID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[itemID]
	if !ok {
		return fmt.Errorf("%w: item '%s'", ErrNotFound, itemID)
	}

	delete(r.barcodes, item.Barcode)
	delete(r.items, itemID)
	for i, id := range r.order {
		if id == itemID {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *inventoryRepository) Search(filter models.ItemFilter) []models.InventoryItem {
	r.mu.Lock()
	defer r.mu.Unlock()

	keyword := strings.ToLower(strings.TrimSpace(filter.Keyword))

	results := []models.InventoryItem{}
	for _, id := range r.order {
		item := r.items[id]
		if keyword != "" &&
			!strings.Contains(strings.ToLower(item.Name), keyword) &&
			!strings.Contains(item.Barcode, filter.Keyword) {
			continue
		}
		if filter.Category != nil && item.Category != *filter.Category {
			continue
		}
		if filter.Status != nil && item.Status != *filter.Status {
			continue
		}
		if filter.MinQuantity != nil && item.Quantity < *filter.MinQuantity {
			continue
		}
		if filter.MaxPrice != nil && item.Price > *filter.MaxPrice {
			continue
		}
		results = append(results, *copyItem(item))
	}
	return results
}

func (r *inventoryRepository) ListPaged(page, perPage int) ([]models.InventoryItem, int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	total := len(r.order)
	start := (page - 1) * perPage
	if start >= total {
		return []models.InventoryItem{}, total
	}
	end := start + perPage
	if end > total {
		end = total
	}

	items := make([]models.InventoryItem, 0, end-start)
	for _, id := range r.order[start:end] {
		items = append(items, *copyItem(r.items[id]))
	}
	return items, total
}

func (r *inventoryRepository) ListExpiringWithin(days int, now time.Time) []models.InventoryItem {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Recomputed against the supplied threshold, independent of the stored
	// status field.
	cutoff := now.Add(time.Duration(days) * 86400 * time.Second)

	results := []models.InventoryItem{}
	for _, id := range r.order {
		item := r.items[id]
		if !item.ExpirationDate.After(cutoff) {
			results = append(results, *copyItem(item))
		}
	}
	return results
}

func (r *inventoryRepository) ListLowStock(threshold int) []models.InventoryItem {
	r.mu.Lock()
	defer r.mu.Unlock()

	results := []models.InventoryItem{}
	for _, id := range r.order {
		item := r.items[id]
		if item.Quantity <= threshold {
			results = append(results, *copyItem(item))
		}
	}
	return results
}

func (r *inventoryRepository) Snapshot(now time.Time) *models.InventorySnapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	snapshot := &models.InventorySnapshot{
		TakenAt:  now,
		Items:    make([]models.SnapshotItemEntry, 0, len(r.order)),
		Barcodes: make([]models.SnapshotBarcodeEntry, 0, len(r.order)),
	}
	for _, id := range r.order {
		item := r.items[id]
		snapshot.Items = append(snapshot.Items, models.SnapshotItemEntry{
			ItemID: id,
			Item:   *copyItem(item),
		})
		snapshot.Barcodes = append(snapshot.Barcodes, models.SnapshotBarcodeEntry{
			Barcode: item.Barcode,
			ItemID:  id,
		})
	}
	return snapshot
}

func (r *inventoryRepository) Restore(snapshot *models.InventorySnapshot) error {
	items := make(map[string]*models.InventoryItem, len(snapshot.Items))
	order := make([]string, 0, len(snapshot.Items))
	barcodes := make(map[string]string, len(snapshot.Barcodes))

	for _, entry := range snapshot.Items {
		if entry.ItemID != entry.Item.ItemID {
			return fmt.Errorf("%w: entry key '%s' does not match item id '%s'", ErrIntegrity, entry.ItemID, entry.Item.ItemID)
		}
		if _, dup := items[entry.ItemID]; dup {
			return fmt.Errorf("%w: duplicate item id '%s'", ErrIntegrity, entry.ItemID)
		}
		items[entry.ItemID] = copyItem(&entry.Item)
		order = append(order, entry.ItemID)
	}

	if len(snapshot.Barcodes) != len(snapshot.Items) {
		return fmt.Errorf("%w: %d index entries for %d items", ErrIntegrity, len(snapshot.Barcodes), len(snapshot.Items))
	}
	for _, entry := range snapshot.Barcodes {
		item, ok := items[entry.ItemID]
		if !ok {
			return fmt.Errorf("%w: barcode '%s' points at unknown item '%s'", ErrIntegrity, entry.Barcode, entry.ItemID)
		}
		if item.Barcode != entry.Barcode {
			return fmt.Errorf("%w: barcode '%s' indexed for item '%s' which holds '%s'", ErrIntegrity, entry.Barcode, entry.ItemID, item.Barcode)
		}
		if _, dup := barcodes[entry.Barcode]; dup {
			return fmt.Errorf("%w: duplicate barcode '%s'", ErrIntegrity, entry.Barcode)
		}
		barcodes[entry.Barcode] = entry.ItemID
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = items
	r.order = order
	r.barcodes = barcodes
	return nil
}

// copyItem returns a deep copy so callers never alias the stored record or
// its audit trail.
func copyItem(item *models.InventoryItem) *models.InventoryItem {
	cp := *item
	cp.AuditTrail = make([]models.AuditLog, len(item.AuditTrail))
	copy(cp.AuditTrail, item.AuditTrail)
	return &cp
}
