package services

import (
	"errors"
	"testing"
	"time"

	"xero_backend/internal/models"
	"xero_backend/internal/repositories"
)

// Fake ItemParser
type fakeParser struct {
	items []ParsedItem
	err   error
}

func (f *fakeParser) Parse(data []byte) ([]ParsedItem, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.items, nil
}

func TestUploadInventoryData_StoresParsedItems(t *testing.T) {
	repo := repositories.NewInventoryRepository()
	inventory := NewInventoryService(repo, DefaultStatusConfig())
	parser := &fakeParser{items: []ParsedItem{
		{ItemID: "A1", Barcode: "123", Name: "Milk", Category: models.CategoryDairy, Quantity: 5, ExpirationDate: time.Now().AddDate(0, 1, 0), Price: 2.50},
		{ItemID: "B2", Barcode: "456", Name: "Bread", Category: models.CategoryBakery, Quantity: 40, ExpirationDate: time.Now().AddDate(0, 0, 4), Price: 1.80},
	}}
	svc := NewAggregatorService(parser, inventory)

	result, err := svc.UploadInventoryData([]byte("payload"), "uploader")
	if err != nil {
		t.Fatalf("UploadInventoryData failed: %v", err)
	}
	if result.BytesReceived != 7 || result.ItemsParsed != 2 || result.ItemsStored != 2 {
		t.Errorf("unexpected result: %+v", result)
	}

	item, err := inventory.GetItem("A1")
	if err != nil {
		t.Fatalf("stored item missing: %v", err)
	}
	if item.AuditTrail[0].Actor != "uploader" {
		t.Errorf("audit actor = %s", item.AuditTrail[0].Actor)
	}
}

func TestUploadInventoryData_ParseError(t *testing.T) {
	repo := repositories.NewInventoryRepository()
	inventory := NewInventoryService(repo, DefaultStatusConfig())
	svc := NewAggregatorService(&fakeParser{err: errors.New("bad header row")}, inventory)

	if _, err := svc.UploadInventoryData([]byte("junk"), "uploader"); !errors.Is(err, ErrParse) {
		t.Errorf("expected ErrParse, got %v", err)
	}
}

func TestUploadInventoryData_InvalidItemFailsUpload(t *testing.T) {
	repo := repositories.NewInventoryRepository()
	inventory := NewInventoryService(repo, DefaultStatusConfig())
	parser := &fakeParser{items: []ParsedItem{
		{ItemID: "A1", Barcode: "123", Name: "Milk", Quantity: 5, Price: 0},
	}}
	svc := NewAggregatorService(parser, inventory)

	if _, err := svc.UploadInventoryData([]byte("payload"), "uploader"); !errors.Is(err, ErrItemValidation) {
		t.Errorf("expected ErrItemValidation, got %v", err)
	}
}

func TestNoopParser(t *testing.T) {
	items, err := NoopParser{}.Parse([]byte("anything"))
	if err != nil || len(items) != 0 {
		t.Errorf("NoopParser should accept any payload and parse nothing: items=%v err=%v", items, err)
	}
}
