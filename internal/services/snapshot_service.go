package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"xero_backend/internal/repositories"
)

// --- Custom Service Errors for the Persistence Gateway ---
var (
	// ErrSnapshotIntegrity means a loaded snapshot's barcode index does not
	// match its item table. Serving from such state is never safe; callers
	// at startup must treat this as fatal.
	ErrSnapshotIntegrity = errors.New("snapshot failed integrity check")

	// ErrSnapshotMissing means the store holds no snapshot yet.
	ErrSnapshotMissing = errors.New("no snapshot has been taken")
)

// SnapshotService is the persistence gateway: it serializes the full
// inventory state out before a restart-class event and restores it
// afterwards.
type SnapshotService interface {
	// TakeSnapshot captures the current table and index and writes them to
	// the snapshot store.
	TakeSnapshot(ctx context.Context) error

	// RestoreLatest loads the stored snapshot and replaces the in-memory
	// state wholesale. Returns ErrSnapshotMissing when nothing is stored.
	RestoreLatest(ctx context.Context) error
}

type snapshotService struct {
	inventoryRepo repositories.InventoryRepository
	store         repositories.SnapshotStore
}

// NewSnapshotService creates the persistence gateway for a store instance.
func NewSnapshotService(repo repositories.InventoryRepository, store repositories.SnapshotStore) SnapshotService {
	return &snapshotService{
		inventoryRepo: repo,
		store:         store,
	}
}

func (s *snapshotService) TakeSnapshot(ctx context.Context) error {
	snapshot := s.inventoryRepo.Snapshot(time.Now())
	if err := s.store.Save(ctx, snapshot); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	return nil
}

func (s *snapshotService) RestoreLatest(ctx context.Context) error {
	snapshot, err := s.store.Load(ctx)
	if err != nil {
		if errors.Is(err, repositories.ErrNoSnapshot) {
			return ErrSnapshotMissing
		}
		return fmt.Errorf("failed to load snapshot: %w", err)
	}

	if err := s.inventoryRepo.Restore(snapshot); err != nil {
		if errors.Is(err, repositories.ErrIntegrity) {
			// Drift between index and table must halt startup, never be
			// silently repaired.
			return fmt.Errorf("%w: %s", ErrSnapshotIntegrity, err.Error())
		}
		return fmt.Errorf("failed to restore snapshot: %w", err)
	}
	return nil
}
