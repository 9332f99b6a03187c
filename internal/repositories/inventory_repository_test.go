package repositories

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"xero_backend/internal/models"
)

func testItem(id, barcode, name string) models.InventoryItem {
	return models.InventoryItem{
		ItemID:         id,
		Barcode:        barcode,
		Name:           name,
		Category:       models.CategoryDairy,
		Quantity:       5,
		ExpirationDate: time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
		Price:          2.50,
		Status:         models.StatusLowStock,
	}
}

func TestAddOrUpdate_CreateAndGet(t *testing.T) {
	repo := NewInventoryRepository()
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	created, err := repo.AddOrUpdate(testItem("A1", "123", "Milk"), "alice", now)
	if err != nil {
		t.Fatalf("AddOrUpdate failed: %v", err)
	}
	if !created {
		t.Error("expected created=true for a new item")
	}

	got, err := repo.GetByID("A1")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Name != "Milk" || got.Barcode != "123" {
		t.Errorf("unexpected item: %+v", got)
	}
	if len(got.AuditTrail) != 1 {
		t.Fatalf("expected 1 audit entry, got %d", len(got.AuditTrail))
	}
	if got.AuditTrail[0].Actor != "alice" || got.AuditTrail[0].Action != AuditActionAddOrUpdate {
		t.Errorf("unexpected audit entry: %+v", got.AuditTrail[0])
	}

	byBarcode, err := repo.GetByBarcode("123")
	if err != nil {
		t.Fatalf("GetByBarcode failed: %v", err)
	}
	if byBarcode.ItemID != "A1" {
		t.Errorf("barcode lookup returned item %s", byBarcode.ItemID)
	}
}

func TestAddOrUpdate_UpdateAppendsAudit(t *testing.T) {
	repo := NewInventoryRepository()
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	if _, err := repo.AddOrUpdate(testItem("A1", "123", "Milk"), "alice", now); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	updated := testItem("A1", "123", "Milk")
	updated.Quantity = 20
	created, err := repo.AddOrUpdate(updated, "bob", now.Add(time.Hour))
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if created {
		t.Error("expected created=false for an existing item")
	}

	got, _ := repo.GetByID("A1")
	if got.Quantity != 20 {
		t.Errorf("quantity not updated: %d", got.Quantity)
	}
	if len(got.AuditTrail) != 2 {
		t.Fatalf("expected 2 audit entries, got %d", len(got.AuditTrail))
	}
	if got.AuditTrail[1].Actor != "bob" {
		t.Errorf("second audit entry actor = %s", got.AuditTrail[1].Actor)
	}
}

func TestAddOrUpdate_BarcodeConflict(t *testing.T) {
	repo := NewInventoryRepository()
	now := time.Now()

	repo.AddOrUpdate(testItem("A1", "123", "Milk"), "alice", now)

	if _, err := repo.AddOrUpdate(testItem("B2", "123", "Cheese"), "alice", now); !errors.Is(err, ErrDuplicateKey) {
		t.Errorf("expected ErrDuplicateKey for new item with taken barcode, got %v", err)
	}
	if _, err := repo.GetByID("B2"); !errors.Is(err, ErrNotFound) {
		t.Error("conflicting item must not be stored")
	}

	repo.AddOrUpdate(testItem("B2", "456", "Cheese"), "alice", now)
	moved := testItem("B2", "123", "Cheese")
	if _, err := repo.AddOrUpdate(moved, "alice", now); !errors.Is(err, ErrDuplicateKey) {
		t.Errorf("expected ErrDuplicateKey when update steals a barcode, got %v", err)
	}
}

func TestAddOrUpdate_BarcodeChangeReindexes(t *testing.T) {
	repo := NewInventoryRepository()
	now := time.Now()

	repo.AddOrUpdate(testItem("A1", "123", "Milk"), "alice", now)

	changed := testItem("A1", "999", "Milk")
	if _, err := repo.AddOrUpdate(changed, "alice", now); err != nil {
		t.Fatalf("barcode change failed: %v", err)
	}

	if _, err := repo.GetByBarcode("123"); !errors.Is(err, ErrNotFound) {
		t.Error("old barcode should no longer resolve")
	}
	got, err := repo.GetByBarcode("999")
	if err != nil || got.ItemID != "A1" {
		t.Errorf("new barcode lookup: item=%v err=%v", got, err)
	}
}

func TestRemove(t *testing.T) {
	repo := NewInventoryRepository()
	now := time.Now()

	repo.AddOrUpdate(testItem("A1", "123", "Milk"), "alice", now)

	if err := repo.Remove("A1"); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if _, err := repo.GetByID("A1"); !errors.Is(err, ErrNotFound) {
		t.Error("removed item should not resolve by id")
	}
	if _, err := repo.GetByBarcode("123"); !errors.Is(err, ErrNotFound) {
		t.Error("removed item should not resolve by barcode")
	}
	if err := repo.Remove("A1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("removing a missing item should return ErrNotFound, got %v", err)
	}
}

func TestListPaged(t *testing.T) {
	repo := NewInventoryRepository()
	now := time.Now()
	for i := 1; i <= 5; i++ {
		id := fmt.Sprintf("I%d", i)
		repo.AddOrUpdate(testItem(id, "bc"+id, "Item "+id), "alice", now)
	}

	page1, total := repo.ListPaged(1, 2)
	if total != 5 || len(page1) != 2 || page1[0].ItemID != "I1" || page1[1].ItemID != "I2" {
		t.Errorf("page 1: total=%d items=%v", total, page1)
	}

	page3, _ := repo.ListPaged(3, 2)
	if len(page3) != 1 || page3[0].ItemID != "I5" {
		t.Errorf("page 3 should hold the single trailing item, got %v", page3)
	}

	page10, total := repo.ListPaged(10, 2)
	if len(page10) != 0 || total != 5 {
		t.Errorf("page past the end: items=%v total=%d", page10, total)
	}
}

func TestSearch(t *testing.T) {
	repo := NewInventoryRepository()
	now := time.Now()

	milk := testItem("A1", "123", "Whole Milk")
	milk.Category = models.CategoryDairy
	milk.Price = 2.00
	repo.AddOrUpdate(milk, "alice", now)

	bread := testItem("B2", "456", "Bread")
	bread.Category = models.CategoryBakery
	bread.Quantity = 40
	bread.Status = models.StatusActive
	bread.Price = 5.00
	repo.AddOrUpdate(bread, "alice", now)

	if got := repo.Search(models.ItemFilter{Keyword: "milk"}); len(got) != 1 || got[0].ItemID != "A1" {
		t.Errorf("case-insensitive name search: %v", got)
	}
	if got := repo.Search(models.ItemFilter{Keyword: "456"}); len(got) != 1 || got[0].ItemID != "B2" {
		t.Errorf("barcode keyword search: %v", got)
	}

	dairy := models.CategoryDairy
	if got := repo.Search(models.ItemFilter{Category: &dairy}); len(got) != 1 || got[0].ItemID != "A1" {
		t.Errorf("category filter: %v", got)
	}

	minQty := 10
	maxPrice := 6.0
	if got := repo.Search(models.ItemFilter{MinQuantity: &minQty, MaxPrice: &maxPrice}); len(got) != 1 || got[0].ItemID != "B2" {
		t.Errorf("combined quantity and price filter: %v", got)
	}

	if got := repo.Search(models.ItemFilter{Keyword: "nothing"}); len(got) != 0 {
		t.Errorf("no-match search should return empty, got %v", got)
	}
}

func TestListExpiringWithin(t *testing.T) {
	repo := NewInventoryRepository()
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	soon := testItem("A1", "123", "Yogurt")
	soon.ExpirationDate = now.Add(2 * 24 * time.Hour)
	repo.AddOrUpdate(soon, "alice", now)

	later := testItem("B2", "456", "Canned Beans")
	later.ExpirationDate = now.Add(30 * 24 * time.Hour)
	repo.AddOrUpdate(later, "alice", now)

	got := repo.ListExpiringWithin(7, now)
	if len(got) != 1 || got[0].ItemID != "A1" {
		t.Errorf("expected only the soon-expiring item, got %v", got)
	}
}

func TestListLowStock(t *testing.T) {
	repo := NewInventoryRepository()
	now := time.Now()

	low := testItem("A1", "123", "Milk")
	low.Quantity = 3
	repo.AddOrUpdate(low, "alice", now)

	high := testItem("B2", "456", "Bread")
	high.Quantity = 100
	repo.AddOrUpdate(high, "alice", now)

	got := repo.ListLowStock(10)
	if len(got) != 1 || got[0].ItemID != "A1" {
		t.Errorf("expected only the low item, got %v", got)
	}
}

func TestSnapshotRestore_RoundTrip(t *testing.T) {
	repo := NewInventoryRepository()
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	for i := 1; i <= 3; i++ {
		id := fmt.Sprintf("I%d", i)
		repo.AddOrUpdate(testItem(id, "bc"+id, "Item "+id), "alice", now)
	}

	snapshot := repo.Snapshot(now)
	if len(snapshot.Items) != 3 || len(snapshot.Barcodes) != 3 {
		t.Fatalf("snapshot sizes: %d items, %d barcodes", len(snapshot.Items), len(snapshot.Barcodes))
	}

	restored := NewInventoryRepository()
	if err := restored.Restore(snapshot); err != nil {
		t.Fatalf("Restore failed: %v", err)
	}

	items, total := restored.ListPaged(1, 10)
	if total != 3 {
		t.Fatalf("restored store holds %d items", total)
	}
	for i, item := range items {
		wantID := fmt.Sprintf("I%d", i+1)
		if item.ItemID != wantID {
			t.Errorf("insertion order lost: position %d holds %s", i, item.ItemID)
		}
	}

	got, err := restored.GetByBarcode("bcI2")
	if err != nil || got.ItemID != "I2" {
		t.Errorf("barcode index not rebuilt: item=%v err=%v", got, err)
	}
	if len(got.AuditTrail) != 1 {
		t.Errorf("audit trail not preserved across restore: %d entries", len(got.AuditTrail))
	}
}

func TestRestore_IntegrityViolations(t *testing.T) {
	repo := NewInventoryRepository()
	now := time.Now()
	repo.AddOrUpdate(testItem("A1", "123", "Milk"), "alice", now)
	repo.AddOrUpdate(testItem("B2", "456", "Bread"), "alice", now)
	good := repo.Snapshot(now)

	tamper := func(mutate func(s *models.InventorySnapshot)) *models.InventorySnapshot {
		cp := &models.InventorySnapshot{TakenAt: good.TakenAt}
		cp.Items = append([]models.SnapshotItemEntry(nil), good.Items...)
		cp.Barcodes = append([]models.SnapshotBarcodeEntry(nil), good.Barcodes...)
		mutate(cp)
		return cp
	}

	tests := []struct {
		name     string
		snapshot *models.InventorySnapshot
	}{
		{"entry key mismatch", tamper(func(s *models.InventorySnapshot) {
			s.Items[0].ItemID = "ZZ"
		})},
		{"duplicate item id", tamper(func(s *models.InventorySnapshot) {
			s.Items[1] = s.Items[0]
			s.Barcodes[1] = s.Barcodes[0]
		})},
		{"missing index entry", tamper(func(s *models.InventorySnapshot) {
			s.Barcodes = s.Barcodes[:1]
		})},
		{"barcode points at unknown item", tamper(func(s *models.InventorySnapshot) {
			s.Barcodes[0].ItemID = "ZZ"
		})},
		{"barcode does not match holder", tamper(func(s *models.InventorySnapshot) {
			s.Barcodes[0].Barcode = "999"
		})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target := NewInventoryRepository()
			target.AddOrUpdate(testItem("KEEP", "000", "Existing"), "alice", now)

			if err := target.Restore(tt.snapshot); !errors.Is(err, ErrIntegrity) {
				t.Fatalf("expected ErrIntegrity, got %v", err)
			}

			// A failed restore must leave the current state untouched.
			if _, err := target.GetByID("KEEP"); err != nil {
				t.Error("existing state lost after failed restore")
			}
		})
	}
}

func TestGetByID_ReturnsCopy(t *testing.T) {
	repo := NewInventoryRepository()
	now := time.Now()
	repo.AddOrUpdate(testItem("A1", "123", "Milk"), "alice", now)

	first, _ := repo.GetByID("A1")
	first.Name = "Tampered"
	first.AuditTrail[0].Actor = "mallory"

	second, _ := repo.GetByID("A1")
	if second.Name != "Milk" || second.AuditTrail[0].Actor != "alice" {
		t.Error("mutating a returned item leaked into the store")
	}
}
