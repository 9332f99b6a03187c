package services

import (
	"errors"
	"fmt"
	"time"

	"xero_backend/internal/models"
	"xero_backend/internal/repositories"
	"xero_backend/pkg/utils"
)

// --- Custom Service Errors for the Ledger ---
var (
	ErrDuplicateTransaction = errors.New("transaction id already exists")
	ErrTransactionNotFound  = errors.New("transaction not found")
	ErrLedgerValidation     = errors.New("validation error")
)

// --- DTOs ---
type RecordTransactionRequest struct {
	TransactionID string `json:"transaction_id" binding:"required"`
	ActionType    string `json:"action_type" binding:"required"`
	Details       string `json:"details"`
}

// --- LedgerService Interface ---
type LedgerService interface {
	Record(req RecordTransactionRequest, actor string) (*models.Transaction, error)
	Get(transactionID string) (*models.Transaction, error)
	ListAll() ([]models.Transaction, error)
}

type ledgerService struct {
	ledgerRepo repositories.LedgerRepository
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(repo repositories.LedgerRepository) LedgerService {
	return &ledgerService{ledgerRepo: repo}
}

func (s *ledgerService) Record(req RecordTransactionRequest, actor string) (*models.Transaction, error) {
	if utils.IsEmpty(req.TransactionID) {
		return nil, fmt.Errorf("%w: transaction_id must not be blank", ErrLedgerValidation)
	}
	if utils.IsEmpty(req.ActionType) {
		return nil, fmt.Errorf("%w: action_type must not be blank", ErrLedgerValidation)
	}

	tx := &models.Transaction{
		TransactionID: req.TransactionID,
		Timestamp:     time.Now(),
		ActionType:    req.ActionType,
		Details:       req.Details,
		ActorID:       actor,
	}
	if err := s.ledgerRepo.Append(tx); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, fmt.Errorf("%w: '%s'", ErrDuplicateTransaction, req.TransactionID)
		}
		return nil, fmt.Errorf("failed to record transaction: %w", err)
	}
	return tx, nil
}

func (s *ledgerService) Get(transactionID string) (*models.Transaction, error) {
	tx, err := s.ledgerRepo.GetByTransactionID(transactionID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: '%s'", ErrTransactionNotFound, transactionID)
		}
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	return tx, nil
}

func (s *ledgerService) ListAll() ([]models.Transaction, error) {
	transactions, err := s.ledgerRepo.ListAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return transactions, nil
}
