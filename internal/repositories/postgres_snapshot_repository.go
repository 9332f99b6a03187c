package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"xero_backend/internal/models"
)

// postgresSnapshotStore keeps the two ordered key-value sequences of a
// snapshot in position-indexed tables, replaced atomically in one
// transaction per Save.
type postgresSnapshotStore struct {
	db *sql.DB
}

// NewPostgresSnapshotStore creates a SnapshotStore backed by Postgres.
func NewPostgresSnapshotStore(db *sql.DB) SnapshotStore {
	return &postgresSnapshotStore{db: db}
}

func (s *postgresSnapshotStore) Save(ctx context.Context, snapshot *models.InventorySnapshot) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: beginning snapshot transaction: %v", ErrDatabaseError, err)
	}
	defer tx.Rollback()

	for _, table := range []string{"inventory_snapshot_meta", "inventory_snapshot_items", "inventory_snapshot_barcodes"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("%w: clearing %s: %v", ErrDatabaseError, table, err)
		}
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO inventory_snapshot_meta (taken_at) VALUES ($1)`, snapshot.TakenAt); err != nil {
		return fmt.Errorf("%w: writing snapshot meta: %v", ErrDatabaseError, err)
	}

	for pos, entry := range snapshot.Items {
		payload, err := json.Marshal(entry.Item)
		if err != nil {
			return fmt.Errorf("marshaling item '%s': %w", entry.ItemID, err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO inventory_snapshot_items (position, item_id, payload) VALUES ($1, $2, $3)`,
			pos, entry.ItemID, payload); err != nil {
			return fmt.Errorf("%w: writing snapshot item '%s': %v", ErrDatabaseError, entry.ItemID, err)
		}
	}

	for pos, entry := range snapshot.Barcodes {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO inventory_snapshot_barcodes (position, barcode, item_id) VALUES ($1, $2, $3)`,
			pos, entry.Barcode, entry.ItemID); err != nil {
			return fmt.Errorf("%w: writing snapshot barcode '%s': %v", ErrDatabaseError, entry.Barcode, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: committing snapshot: %v", ErrDatabaseError, err)
	}
	return nil
}

func (s *postgresSnapshotStore) Load(ctx context.Context) (*models.InventorySnapshot, error) {
	snapshot := &models.InventorySnapshot{}

	err := s.db.QueryRowContext(ctx, `SELECT taken_at FROM inventory_snapshot_meta`).Scan(&snapshot.TakenAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoSnapshot
	}
	if err != nil {
		return nil, fmt.Errorf("%w: reading snapshot meta: %v", ErrDatabaseError, err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT item_id, payload FROM inventory_snapshot_items ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("%w: reading snapshot items: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var entry models.SnapshotItemEntry
		var payload []byte
		if err := rows.Scan(&entry.ItemID, &payload); err != nil {
			return nil, fmt.Errorf("%w: scanning snapshot item: %v", ErrDatabaseError, err)
		}
		if err := json.Unmarshal(payload, &entry.Item); err != nil {
			return nil, fmt.Errorf("unmarshaling item '%s': %w", entry.ItemID, err)
		}
		snapshot.Items = append(snapshot.Items, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating snapshot items: %v", ErrDatabaseError, err)
	}

	barcodeRows, err := s.db.QueryContext(ctx,
		`SELECT barcode, item_id FROM inventory_snapshot_barcodes ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("%w: reading snapshot barcodes: %v", ErrDatabaseError, err)
	}
	defer barcodeRows.Close()

	for barcodeRows.Next() {
		var entry models.SnapshotBarcodeEntry
		if err := barcodeRows.Scan(&entry.Barcode, &entry.ItemID); err != nil {
			return nil, fmt.Errorf("%w: scanning snapshot barcode: %v", ErrDatabaseError, err)
		}
		snapshot.Barcodes = append(snapshot.Barcodes, entry)
	}
	if err := barcodeRows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating snapshot barcodes: %v", ErrDatabaseError, err)
	}

	return snapshot, nil
}
