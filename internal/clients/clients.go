// Package clients holds the HTTP clients the pricing service uses to reach
// its collaborators. Base URLs and the service token are resolved from
// configuration at startup and injected; nothing here hardcodes an address.
package clients

import (
	"context"
	"errors"

	"xero_backend/internal/models"
)

var (
	// ErrRemoteNotFound is returned when the remote service reports a miss.
	ErrRemoteNotFound = errors.New("remote record not found")

	// ErrRemoteConflict is returned when the remote service rejects a write
	// as a duplicate.
	ErrRemoteConflict = errors.New("remote duplicate record")
)

// InventoryClient reads item snapshots from the inventory service.
type InventoryClient interface {
	GetItem(ctx context.Context, itemID string) (*models.InventoryItem, error)
}

// LedgerClient appends transactions to the ledger service.
type LedgerClient interface {
	Record(ctx context.Context, transactionID, actionType, details string) error
}
