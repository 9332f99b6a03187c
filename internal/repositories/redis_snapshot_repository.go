package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"xero_backend/internal/models"
)

const (
	snapshotMetaKey     = "inventory:snapshot:taken_at"
	snapshotItemsKey    = "inventory:snapshot:items"
	snapshotBarcodesKey = "inventory:snapshot:barcodes"
)

// redisSnapshotStore keeps the snapshot's two ordered sequences as Redis
// lists of JSON entries, written in one pipeline per Save.
type redisSnapshotStore struct {
	client *redis.Client
}

// NewRedisSnapshotStore creates a SnapshotStore backed by Redis.
func NewRedisSnapshotStore(client *redis.Client) SnapshotStore {
	return &redisSnapshotStore{client: client}
}

func (s *redisSnapshotStore) Save(ctx context.Context, snapshot *models.InventorySnapshot) error {
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, snapshotMetaKey, snapshotItemsKey, snapshotBarcodesKey)
	pipe.Set(ctx, snapshotMetaKey, snapshot.TakenAt.Format(time.RFC3339Nano), 0)

	for _, entry := range snapshot.Items {
		payload, err := json.Marshal(entry)
		if err != nil {
			return fmt.Errorf("marshaling item '%s': %w", entry.ItemID, err)
		}
		pipe.RPush(ctx, snapshotItemsKey, payload)
	}
	for _, entry := range snapshot.Barcodes {
		payload, err := json.Marshal(entry)
		if err != nil {
			return fmt.Errorf("marshaling barcode '%s': %w", entry.Barcode, err)
		}
		pipe.RPush(ctx, snapshotBarcodesKey, payload)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("%w: writing snapshot to redis: %v", ErrDatabaseError, err)
	}
	return nil
}

func (s *redisSnapshotStore) Load(ctx context.Context) (*models.InventorySnapshot, error) {
	takenAt, err := s.client.Get(ctx, snapshotMetaKey).Result()
	if err == redis.Nil {
		return nil, ErrNoSnapshot
	}
	if err != nil {
		return nil, fmt.Errorf("%w: reading snapshot meta from redis: %v", ErrDatabaseError, err)
	}

	snapshot := &models.InventorySnapshot{}
	if snapshot.TakenAt, err = time.Parse(time.RFC3339Nano, takenAt); err != nil {
		return nil, fmt.Errorf("parsing snapshot timestamp: %w", err)
	}

	itemPayloads, err := s.client.LRange(ctx, snapshotItemsKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: reading snapshot items from redis: %v", ErrDatabaseError, err)
	}
	for _, payload := range itemPayloads {
		var entry models.SnapshotItemEntry
		if err := json.Unmarshal([]byte(payload), &entry); err != nil {
			return nil, fmt.Errorf("unmarshaling snapshot item: %w", err)
		}
		snapshot.Items = append(snapshot.Items, entry)
	}

	barcodePayloads, err := s.client.LRange(ctx, snapshotBarcodesKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: reading snapshot barcodes from redis: %v", ErrDatabaseError, err)
	}
	for _, payload := range barcodePayloads {
		var entry models.SnapshotBarcodeEntry
		if err := json.Unmarshal([]byte(payload), &entry); err != nil {
			return nil, fmt.Errorf("unmarshaling snapshot barcode: %w", err)
		}
		snapshot.Barcodes = append(snapshot.Barcodes, entry)
	}

	return snapshot, nil
}
