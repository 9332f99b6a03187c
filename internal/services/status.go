package services

import (
	"time"

	"xero_backend/internal/models"
)

// Default thresholds for status derivation.
const (
	DefaultLowStockThreshold = 10
	DefaultExpiringSoonDays  = 7
)

// StatusConfig carries the tunable thresholds for status derivation.
type StatusConfig struct {
	LowStockThreshold  int
	ExpiringSoonWindow time.Duration
}

// DefaultStatusConfig returns the standard thresholds.
func DefaultStatusConfig() StatusConfig {
	return StatusConfig{
		LowStockThreshold:  DefaultLowStockThreshold,
		ExpiringSoonWindow: DefaultExpiringSoonDays * 24 * time.Hour,
	}
}

// DeriveStatus maps (quantity, expiration, now) to an item status. Stock
// conditions are operationally more urgent than freshness, so they are
// checked first: the first matching rule wins.
func DeriveStatus(quantity int, expirationDate, now time.Time, cfg StatusConfig) models.ItemStatus {
	switch {
	case quantity == 0:
		return models.StatusOutOfStock
	case quantity <= cfg.LowStockThreshold:
		return models.StatusLowStock
	case !expirationDate.After(now):
		return models.StatusExpired
	case !expirationDate.After(now.Add(cfg.ExpiringSoonWindow)):
		return models.StatusExpiringSoon
	default:
		return models.StatusActive
	}
}
