package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"xero_backend/internal/models"
)

// LedgerRepository defines the interface for ledger database operations.
// The ledger is append-only: transactions are never updated or deleted.
type LedgerRepository interface {
	Append(tx *models.Transaction) error
	GetByTransactionID(transactionID string) (*models.Transaction, error)
	ListAll() ([]models.Transaction, error)
}

type ledgerRepository struct {
	db *sql.DB
}

// NewLedgerRepository creates a new instance of LedgerRepository.
func NewLedgerRepository(db *sql.DB) LedgerRepository {
	return &ledgerRepository{db: db}
}

func (r *ledgerRepository) Append(tx *models.Transaction) error {
	query := `INSERT INTO ledger_transactions (transaction_id, timestamp, action_type, details, actor_id)
	          VALUES ($1, $2, $3, $4, $5)`
	if tx.Timestamp.IsZero() {
		tx.Timestamp = time.Now()
	}
	_, err := r.db.Exec(query, tx.TransactionID, tx.Timestamp, tx.ActionType, tx.Details, tx.ActorID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return fmt.Errorf("%w: transaction id '%s' already exists", ErrDuplicateKey, tx.TransactionID)
		}
		return fmt.Errorf("%w: appending transaction '%s': %v", ErrDatabaseError, tx.TransactionID, err)
	}
	return nil
}

func (r *ledgerRepository) GetByTransactionID(transactionID string) (*models.Transaction, error) {
	tx := &models.Transaction{}
	query := `SELECT transaction_id, timestamp, action_type, details, actor_id
	          FROM ledger_transactions WHERE transaction_id = $1`
	err := r.db.QueryRow(query, transactionID).
		Scan(&tx.TransactionID, &tx.Timestamp, &tx.ActionType, &tx.Details, &tx.ActorID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting transaction '%s': %v", ErrDatabaseError, transactionID, err)
	}
	return tx, nil
}

func (r *ledgerRepository) ListAll() ([]models.Transaction, error) {
	transactions := []models.Transaction{}
	query := `SELECT transaction_id, timestamp, action_type, details, actor_id
	          FROM ledger_transactions ORDER BY position`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("%w: listing transactions: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var tx models.Transaction
		if err := rows.Scan(&tx.TransactionID, &tx.Timestamp, &tx.ActionType, &tx.Details, &tx.ActorID); err != nil {
			return nil, fmt.Errorf("%w: scanning transaction: %v", ErrDatabaseError, err)
		}
		transactions = append(transactions, tx)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating transactions: %v", ErrDatabaseError, err)
	}
	return transactions, nil
}
