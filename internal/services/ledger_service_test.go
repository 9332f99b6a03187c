package services

import (
	"errors"
	"fmt"
	"testing"

	"xero_backend/internal/models"
	"xero_backend/internal/repositories"
)

// Fake LedgerRepository
type fakeLedgerRepo struct {
	transactions []models.Transaction
	byID         map[string]int
}

func newFakeLedgerRepo() *fakeLedgerRepo {
	return &fakeLedgerRepo{byID: make(map[string]int)}
}

func (f *fakeLedgerRepo) Append(tx *models.Transaction) error {
	if _, exists := f.byID[tx.TransactionID]; exists {
		return fmt.Errorf("%w: transaction id '%s' already exists", repositories.ErrDuplicateKey, tx.TransactionID)
	}
	f.byID[tx.TransactionID] = len(f.transactions)
	f.transactions = append(f.transactions, *tx)
	return nil
}

func (f *fakeLedgerRepo) GetByTransactionID(transactionID string) (*models.Transaction, error) {
	idx, ok := f.byID[transactionID]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	tx := f.transactions[idx]
	return &tx, nil
}

func (f *fakeLedgerRepo) ListAll() ([]models.Transaction, error) {
	return append([]models.Transaction(nil), f.transactions...), nil
}

func TestLedgerRecord_AndGet(t *testing.T) {
	repo := newFakeLedgerRepo()
	svc := NewLedgerService(repo)

	tx, err := svc.Record(RecordTransactionRequest{
		TransactionID: "tx-1",
		ActionType:    "price_adjustment",
		Details:       "price adjusted for item 'A1'",
	}, "pricing-service")
	if err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	if tx.Timestamp.IsZero() {
		t.Error("recorded transaction should carry a timestamp")
	}
	if tx.ActorID != "pricing-service" {
		t.Errorf("actor = %s", tx.ActorID)
	}

	got, err := svc.Get("tx-1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.ActionType != "price_adjustment" {
		t.Errorf("unexpected transaction: %+v", got)
	}
}

func TestLedgerRecord_DuplicateID(t *testing.T) {
	repo := newFakeLedgerRepo()
	svc := NewLedgerService(repo)

	req := RecordTransactionRequest{TransactionID: "tx-1", ActionType: "restock"}
	if _, err := svc.Record(req, "alice"); err != nil {
		t.Fatalf("first record failed: %v", err)
	}
	if _, err := svc.Record(req, "alice"); !errors.Is(err, ErrDuplicateTransaction) {
		t.Errorf("expected ErrDuplicateTransaction, got %v", err)
	}
	if len(repo.transactions) != 1 {
		t.Errorf("ledger should hold 1 transaction, holds %d", len(repo.transactions))
	}
}

func TestLedgerRecord_Validation(t *testing.T) {
	svc := NewLedgerService(newFakeLedgerRepo())

	if _, err := svc.Record(RecordTransactionRequest{ActionType: "restock"}, "alice"); !errors.Is(err, ErrLedgerValidation) {
		t.Errorf("blank transaction_id: expected ErrLedgerValidation, got %v", err)
	}
	if _, err := svc.Record(RecordTransactionRequest{TransactionID: "tx-1"}, "alice"); !errors.Is(err, ErrLedgerValidation) {
		t.Errorf("blank action_type: expected ErrLedgerValidation, got %v", err)
	}
}

func TestLedgerListAll_PreservesAppendOrder(t *testing.T) {
	repo := newFakeLedgerRepo()
	svc := NewLedgerService(repo)

	for i := 1; i <= 4; i++ {
		req := RecordTransactionRequest{
			TransactionID: fmt.Sprintf("tx-%d", i),
			ActionType:    "restock",
		}
		if _, err := svc.Record(req, "alice"); err != nil {
			t.Fatalf("record %d failed: %v", i, err)
		}
	}

	all, err := svc.ListAll()
	if err != nil {
		t.Fatalf("ListAll failed: %v", err)
	}
	if len(all) != 4 {
		t.Fatalf("expected 4 transactions, got %d", len(all))
	}
	for i, tx := range all {
		want := fmt.Sprintf("tx-%d", i+1)
		if tx.TransactionID != want {
			t.Errorf("position %d holds %s, want %s", i, tx.TransactionID, want)
		}
	}
}

func TestLedgerGet_NotFound(t *testing.T) {
	svc := NewLedgerService(newFakeLedgerRepo())

	if _, err := svc.Get("missing"); !errors.Is(err, ErrTransactionNotFound) {
		t.Errorf("expected ErrTransactionNotFound, got %v", err)
	}
}
