package models

import "time"

// Transaction is one append-only ledger entry. TransactionID is assigned by
// the caller and must be unique across the ledger.
type Transaction struct {
	TransactionID string    `json:"transaction_id" db:"transaction_id" binding:"required"`
	Timestamp     time.Time `json:"timestamp" db:"timestamp"`
	ActionType    string    `json:"action_type" db:"action_type" binding:"required"`
	Details       string    `json:"details" db:"details"`
	ActorID       string    `json:"actor_id" db:"actor_id"`
}
