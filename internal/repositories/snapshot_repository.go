package repositories

import (
	"context"

	"xero_backend/internal/models"
)

// SnapshotStore persists a full inventory snapshot out of process. A store
// holds at most one snapshot; Save replaces any previous one wholesale.
type SnapshotStore interface {
	// Save writes the snapshot, replacing the previously stored one.
	Save(ctx context.Context, snapshot *models.InventorySnapshot) error

	// Load reads the stored snapshot, or ErrNoSnapshot if none exists.
	Load(ctx context.Context) (*models.InventorySnapshot, error)
}
