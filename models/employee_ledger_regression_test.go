package models_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/nusratfurniture/workshop_backend/models"
)

func createTestEmployee(t *testing.T, ctx context.Context, name string) *models.Employee {
	t.Helper()
	employee, err := models.CreateEmployee(ctx, &models.NewEmployee{
		FullName: name,
		Status:   models.EmployeeStatusActive,
		Category: models.EmployeeCategories[0],
		WorkType: models.EmployeeWorkTypes[0],
	})
	if err != nil {
		t.Fatalf("CreateEmployee(%s): %v", name, err)
	}
	return employee
}

func TestEmployeeSummaryCountsLegacyNameRows(t *testing.T) {
	startIntegrationDB(t)
	ctx := context.Background()

	employee := createTestEmployee(t, ctx, "Waseem")

	// A legacy payout recorded before worker profiles existed: no
	// employee link, just a name that matches after trimming and
	// case folding.
	txType := models.EmployeeTxTypeSalary
	if _, err := models.CreateTransaction(ctx, &models.NewTransaction{
		Type:           models.TransactionTypeOutgoing,
		AmountPKR:      9000,
		Category:       "Employee",
		Name:           "  waseem ",
		EmployeeTxType: &txType,
	}); err != nil {
		t.Fatalf("legacy transaction: %v", err)
	}

	advance := models.EmployeeTxTypeAdvance
	if _, err := models.CreateTransaction(ctx, &models.NewTransaction{
		Type:           models.TransactionTypeOutgoing,
		AmountPKR:      1500,
		Category:       "Employee",
		EmployeeId:     &employee.ID,
		EmployeeTxType: &advance,
	}); err != nil {
		t.Fatalf("linked advance: %v", err)
	}

	summary, err := models.EmployeeFinancialSummary(ctx, employee.ID)
	if err != nil {
		t.Fatalf("EmployeeFinancialSummary: %v", err)
	}
	if summary.Advance != 1500 {
		t.Errorf("advance = %d, want 1500", summary.Advance)
	}
	if summary.Paid != 9000 {
		t.Errorf("paid = %d, want 9000 (legacy name row must count)", summary.Paid)
	}
	// More paid out than advanced: the outstanding advance floors at
	// zero instead of going negative.
	if summary.AdvanceBalance != 0 {
		t.Errorf("advance balance = %d, want 0", summary.AdvanceBalance)
	}
	if summary.Count != 2 {
		t.Errorf("count = %d, want 2", summary.Count)
	}

	transactions, err := models.EmployeeTransactions(ctx, employee.ID, 100)
	if err != nil {
		t.Fatalf("EmployeeTransactions: %v", err)
	}
	if len(transactions) != 2 {
		t.Fatalf("expected 2 rows in the worker ledger, got %d", len(transactions))
	}
	ledger := models.BuildLedger(transactions)
	if ledger[len(ledger)-1].Balance != 1500-9000 {
		t.Errorf("final ledger balance = %d", ledger[len(ledger)-1].Balance)
	}
}

func TestEmployeeResolutionFillsCategoryAndName(t *testing.T) {
	startIntegrationDB(t)
	ctx := context.Background()

	employee := createTestEmployee(t, ctx, "Murtaza")

	// No category on the form: the worker's profile decides it.
	transaction, err := models.CreateTransaction(ctx, &models.NewTransaction{
		Type:       models.TransactionTypeOutgoing,
		AmountPKR:  5000,
		EmployeeId: &employee.ID,
	})
	if err != nil {
		t.Fatalf("CreateTransaction: %v", err)
	}
	if transaction.Category != models.EmployeeOutgoingCategory(employee) {
		t.Errorf("category = %q, want %q", transaction.Category, models.EmployeeOutgoingCategory(employee))
	}
	if transaction.Name != "Murtaza" {
		t.Errorf("name = %q, want the worker's name", transaction.Name)
	}
}

func TestSoftDeletedTransactionsLeaveTotals(t *testing.T) {
	startIntegrationDB(t)
	ctx := context.Background()

	kept, err := models.CreateTransaction(ctx, &models.NewTransaction{
		Type:      models.TransactionTypeIncoming,
		AmountPKR: 20000,
		Category:  models.IncomingCategories[0],
		BillNo:    "B-100",
	})
	if err != nil {
		t.Fatalf("kept transaction: %v", err)
	}
	doomed, err := models.CreateTransaction(ctx, &models.NewTransaction{
		Type:      models.TransactionTypeOutgoing,
		AmountPKR: 7000,
		Category:  "Wood",
	})
	if err != nil {
		t.Fatalf("doomed transaction: %v", err)
	}

	if _, err := models.SoftDeleteTransaction(ctx, doomed.ID); err != nil {
		t.Fatalf("SoftDeleteTransaction: %v", err)
	}

	items, err := models.ListTransactions(ctx, models.TransactionFilter{}, 0)
	if err != nil {
		t.Fatalf("ListTransactions: %v", err)
	}
	for _, item := range items {
		if item.ID == doomed.ID {
			t.Fatal("soft-deleted row still listed")
		}
	}

	totals, err := models.TransactionTotals(ctx, models.TransactionFilter{})
	if err != nil {
		t.Fatalf("TransactionTotals: %v", err)
	}
	if totals.Outgoing != 0 {
		t.Errorf("outgoing total should exclude the deleted row, got %d", totals.Outgoing)
	}
	if totals.Incoming != 20000 || totals.Net != 20000 {
		t.Errorf("totals = %+v", totals)
	}

	// The edit screen can still open the deleted row directly.
	row, err := models.GetTransaction(ctx, doomed.ID)
	if err != nil {
		t.Fatalf("GetTransaction: %v", err)
	}
	if row.IsDeleted == nil || !*row.IsDeleted {
		t.Error("fetched row should carry its deleted flag")
	}
	if kept.ID == doomed.ID {
		t.Fatal("test rows collided")
	}
}

func TestSyncEmployeesFromLegacyTransactions(t *testing.T) {
	startIntegrationDB(t)
	ctx := context.Background()

	if _, err := models.CreateTransaction(ctx, &models.NewTransaction{
		Type:      models.TransactionTypeOutgoing,
		AmountPKR: 4000,
		Category:  "Polish Wala",
		Name:      "Razaq",
	}); err != nil {
		t.Fatalf("legacy transaction: %v", err)
	}

	created, err := models.SyncEmployeesFromTransactions(ctx)
	if err != nil {
		t.Fatalf("SyncEmployeesFromTransactions: %v", err)
	}
	if created != 1 {
		t.Fatalf("expected 1 created worker, got %d", created)
	}

	employees, err := models.ListEmployees(ctx, "")
	if err != nil {
		t.Fatalf("ListEmployees: %v", err)
	}
	var razaq *models.Employee
	for i := range employees {
		if employees[i].FullName == "Razaq" {
			razaq = &employees[i]
		}
	}
	if razaq == nil {
		t.Fatal("Razaq was not created")
	}

	// The legacy row is now linked, so the summary finds it by id.
	summary, err := models.EmployeeFinancialSummary(ctx, razaq.ID)
	if err != nil {
		t.Fatalf("EmployeeFinancialSummary: %v", err)
	}
	if summary.Paid != 4000 {
		t.Errorf("paid = %d, want 4000", summary.Paid)
	}

	// Running the sync again must not duplicate the worker.
	createdAgain, err := models.SyncEmployeesFromTransactions(ctx)
	if err != nil {
		t.Fatalf("second sync: %v", err)
	}
	if createdAgain != 0 {
		t.Errorf("second sync created %d workers", createdAgain)
	}
}

func TestUniqueNameCountsCollapseVariants(t *testing.T) {
	startIntegrationDB(t)
	ctx := context.Background()

	recordPayout := func(name, category string) *models.Transaction {
		t.Helper()
		tx, err := models.CreateTransaction(ctx, &models.NewTransaction{
			Type:      models.TransactionTypeOutgoing,
			AmountPKR: 1000,
			Category:  category,
			Name:      name,
		})
		if err != nil {
			t.Fatalf("CreateTransaction(%q, %q): %v", name, category, err)
		}
		return tx
	}

	// Whitespace variants of one payee in one category.
	recordPayout("Razzaq", "Wood")
	recordPayout("  Razzaq ", "Wood")
	recordPayout("Razzaq", "Wood")
	recordPayout("Razzaq", "Transport")
	recordPayout("BILAL", "Misc")
	recordPayout("bilal", "Misc")

	// Deleted rows must not count.
	doomed := recordPayout("Razzaq", "Wood")
	if _, err := models.SoftDeleteTransaction(ctx, doomed.ID); err != nil {
		t.Fatalf("SoftDeleteTransaction: %v", err)
	}

	rows, err := models.DistinctTransactionNameCounts(ctx, 100)
	if err != nil {
		t.Fatalf("DistinctTransactionNameCounts: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 grouped rows, got %d: %+v", len(rows), rows)
	}
	if rows[0].Name != "Razzaq" || rows[0].Category != "Wood" || rows[0].TxCount != 3 {
		t.Errorf("busiest row = %+v, want Razzaq/Wood/3", rows[0])
	}
	if rows[1].Category != "Misc" || rows[1].TxCount != 2 {
		t.Errorf("second row = %+v, want the case-folded bilal pair", rows[1])
	}
	if rows[2].Name != "Razzaq" || rows[2].Category != "Transport" || rows[2].TxCount != 1 {
		t.Errorf("third row = %+v, want Razzaq/Transport/1", rows[2])
	}

	var buf bytes.Buffer
	if err := models.ExportUniqueNamesCSV(ctx, &buf); err != nil {
		t.Fatalf("ExportUniqueNamesCSV: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header + 3 rows, got %d lines", len(lines))
	}
	if lines[0] != "name,category,tx_count" {
		t.Errorf("header = %q", lines[0])
	}
	if lines[1] != "Razzaq,Wood,3" {
		t.Errorf("first data row = %q, want Razzaq,Wood,3", lines[1])
	}
}
