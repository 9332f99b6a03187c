package repositories

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"xero_backend/internal/models"
)

func getRedisClient(t *testing.T) *redis.Client {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(context.Background()).Err(); err != nil {
		t.Skipf("Redis not available: %v", err)
	}
	return client
}

func clearSnapshotKeys(ctx context.Context, client *redis.Client) {
	client.Del(ctx, snapshotMetaKey, snapshotItemsKey, snapshotBarcodesKey)
}

func TestRedisSnapshotStore_SaveLoad(t *testing.T) {
	client := getRedisClient(t)
	defer client.Close()

	ctx := context.Background()
	clearSnapshotKeys(ctx, client)
	defer clearSnapshotKeys(ctx, client)

	store := NewRedisSnapshotStore(client)

	takenAt := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	snapshot := &models.InventorySnapshot{
		TakenAt: takenAt,
		Items: []models.SnapshotItemEntry{
			{ItemID: "A1", Item: models.InventoryItem{ItemID: "A1", Barcode: "123", Name: "Milk", Quantity: 5, Price: 2.50}},
			{ItemID: "B2", Item: models.InventoryItem{ItemID: "B2", Barcode: "456", Name: "Bread", Quantity: 40, Price: 1.80}},
		},
		Barcodes: []models.SnapshotBarcodeEntry{
			{Barcode: "123", ItemID: "A1"},
			{Barcode: "456", ItemID: "B2"},
		},
	}

	if err := store.Save(ctx, snapshot); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !loaded.TakenAt.Equal(takenAt) {
		t.Errorf("taken_at = %v, want %v", loaded.TakenAt, takenAt)
	}
	if len(loaded.Items) != 2 || len(loaded.Barcodes) != 2 {
		t.Fatalf("loaded sizes: %d items, %d barcodes", len(loaded.Items), len(loaded.Barcodes))
	}
	if loaded.Items[0].ItemID != "A1" || loaded.Items[1].ItemID != "B2" {
		t.Errorf("item order lost: %v, %v", loaded.Items[0].ItemID, loaded.Items[1].ItemID)
	}
	if loaded.Items[0].Item.Name != "Milk" {
		t.Errorf("item payload not preserved: %+v", loaded.Items[0].Item)
	}
	if loaded.Barcodes[0].Barcode != "123" || loaded.Barcodes[0].ItemID != "A1" {
		t.Errorf("barcode entry not preserved: %+v", loaded.Barcodes[0])
	}
}

func TestRedisSnapshotStore_SaveOverwrites(t *testing.T) {
	client := getRedisClient(t)
	defer client.Close()

	ctx := context.Background()
	clearSnapshotKeys(ctx, client)
	defer clearSnapshotKeys(ctx, client)

	store := NewRedisSnapshotStore(client)

	first := &models.InventorySnapshot{
		TakenAt: time.Now(),
		Items: []models.SnapshotItemEntry{
			{ItemID: "A1", Item: models.InventoryItem{ItemID: "A1", Barcode: "123"}},
			{ItemID: "B2", Item: models.InventoryItem{ItemID: "B2", Barcode: "456"}},
		},
		Barcodes: []models.SnapshotBarcodeEntry{
			{Barcode: "123", ItemID: "A1"},
			{Barcode: "456", ItemID: "B2"},
		},
	}
	if err := store.Save(ctx, first); err != nil {
		t.Fatalf("first Save failed: %v", err)
	}

	second := &models.InventorySnapshot{
		TakenAt: time.Now(),
		Items: []models.SnapshotItemEntry{
			{ItemID: "C3", Item: models.InventoryItem{ItemID: "C3", Barcode: "789"}},
		},
		Barcodes: []models.SnapshotBarcodeEntry{
			{Barcode: "789", ItemID: "C3"},
		},
	}
	if err := store.Save(ctx, second); err != nil {
		t.Fatalf("second Save failed: %v", err)
	}

	loaded, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(loaded.Items) != 1 || loaded.Items[0].ItemID != "C3" {
		t.Errorf("second save should fully replace the first, got %+v", loaded.Items)
	}
}

func TestRedisSnapshotStore_LoadEmpty(t *testing.T) {
	client := getRedisClient(t)
	defer client.Close()

	ctx := context.Background()
	clearSnapshotKeys(ctx, client)

	store := NewRedisSnapshotStore(client)
	if _, err := store.Load(ctx); !errors.Is(err, ErrNoSnapshot) {
		t.Errorf("expected ErrNoSnapshot, got %v", err)
	}
}
