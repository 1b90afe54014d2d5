package models_test

import (
	"testing"
	"time"

	"github.com/nusratfurniture/workshop_backend/models"
)

func payout(amount int64, txType *models.EmployeeTxType) models.Transaction {
	return models.Transaction{
		Type:           models.TransactionTypeOutgoing,
		Date:           time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		AmountPKR:      amount,
		EmployeeTxType: txType,
	}
}

func txTypePtr(t models.EmployeeTxType) *models.EmployeeTxType { return &t }

func TestBuildLedgerRunningBalance(t *testing.T) {
	entries := models.BuildLedger([]models.Transaction{
		payout(1500, txTypePtr(models.EmployeeTxTypeAdvance)),
		payout(9000, txTypePtr(models.EmployeeTxTypeSalary)),
		payout(2000, nil),
		payout(500, txTypePtr(models.EmployeeTxTypeAdvance)),
	})

	if len(entries) != 4 {
		t.Fatalf("expected 4 ledger entries, got %d", len(entries))
	}

	wantBalances := []int64{1500, -7500, -9500, -9000}
	for i, want := range wantBalances {
		if entries[i].Balance != want {
			t.Errorf("entry %d balance = %d, want %d", i, entries[i].Balance, want)
		}
	}

	if entries[0].Debit != 1500 || entries[0].Credit != 0 {
		t.Errorf("advance should debit: debit=%d credit=%d", entries[0].Debit, entries[0].Credit)
	}
	if entries[1].Debit != 0 || entries[1].Credit != 9000 {
		t.Errorf("salary should credit: debit=%d credit=%d", entries[1].Debit, entries[1].Credit)
	}
	// A payout without an explicit type counts as a wage, not an advance.
	if entries[2].Credit != 2000 {
		t.Errorf("untyped payout should credit: credit=%d", entries[2].Credit)
	}
}

func TestBuildLedgerEmpty(t *testing.T) {
	if got := models.BuildLedger(nil); len(got) != 0 {
		t.Fatalf("expected no entries, got %d", len(got))
	}
}
