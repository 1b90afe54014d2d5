package models

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/nusratfurniture/workshop_backend/config"
	"github.com/nusratfurniture/workshop_backend/utils"
	"github.com/xuri/excelize/v2"
)

var exportHeader = []string{"ID", "Date", "Type", "Category", "Name", "Bill No", "Amount (PKR)", "Notes"}

// exportTransactions pulls the filtered rows for an export, widening
// missing bounds to the default trailing window.
func exportTransactions(ctx context.Context, filter TransactionFilter) ([]Transaction, *TransactionTotalsResult, error) {

	from := time.Time{}
	to := time.Time{}
	if filter.FromDate != nil {
		from = *filter.FromDate
	}
	if filter.ToDate != nil {
		to = *filter.ToDate
	}
	from, to = utils.ClampDateRange(from, to)
	filter.FromDate = &from
	filter.ToDate = &to

	items, err := ListTransactions(ctx, filter, 3000)
	if err != nil {
		return nil, nil, err
	}
	totals, err := TransactionTotals(ctx, filter)
	if err != nil {
		return nil, nil, err
	}
	return items, totals, nil
}

// ExportTransactionsExcel writes the filtered ledger as a workbook with
// a totals block under the rows.
func ExportTransactionsExcel(ctx context.Context, w io.Writer, filter TransactionFilter) error {

	items, totals, err := exportTransactions(ctx, filter)
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	sheetName := "Transactions"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return err
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	// Add headers
	for i, heading := range exportHeader {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, heading)
	}

	// Add data
	for i, t := range items {
		row := strconv.Itoa(i + 2)
		f.SetCellValue(sheetName, "A"+row, t.ID)
		f.SetCellValue(sheetName, "B"+row, utils.FormatDate(t.Date))
		f.SetCellValue(sheetName, "C"+row, string(t.Type))
		f.SetCellValue(sheetName, "D"+row, t.Category)
		f.SetCellValue(sheetName, "E"+row, t.Name)
		f.SetCellValue(sheetName, "F"+row, t.BillNo)
		f.SetCellValue(sheetName, "G"+row, t.AmountPKR)
		f.SetCellValue(sheetName, "H"+row, t.Notes)
	}

	totalsRow := len(items) + 3
	f.SetCellValue(sheetName, "A"+strconv.Itoa(totalsRow), "Total Incoming")
	f.SetCellValue(sheetName, "B"+strconv.Itoa(totalsRow), totals.Incoming)
	f.SetCellValue(sheetName, "A"+strconv.Itoa(totalsRow+1), "Total Outgoing")
	f.SetCellValue(sheetName, "B"+strconv.Itoa(totalsRow+1), totals.Outgoing)
	f.SetCellValue(sheetName, "A"+strconv.Itoa(totalsRow+2), "Net")
	f.SetCellValue(sheetName, "B"+strconv.Itoa(totalsRow+2), totals.Net)

	return f.Write(w)
}

// ExportTransactionsCSV writes the same rows as the workbook export in
// plain CSV for tools that choke on xlsx.
func ExportTransactionsCSV(ctx context.Context, w io.Writer, filter TransactionFilter) error {

	items, _, err := exportTransactions(ctx, filter)
	if err != nil {
		return err
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(exportHeader); err != nil {
		return err
	}
	for _, t := range items {
		record := []string{
			strconv.Itoa(t.ID),
			utils.FormatDate(t.Date),
			string(t.Type),
			t.Category,
			t.Name,
			t.BillNo,
			fmt.Sprint(t.AmountPKR),
			t.Notes,
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// ExportUniqueNamesCSV writes one row per distinct payee name and
// category with the count of ledger rows carrying it. Case and
// whitespace variants of a name collapse onto one row.
func ExportUniqueNamesCSV(ctx context.Context, w io.Writer) error {

	rows, err := DistinctTransactionNameCounts(ctx, config.SearchLimit)
	if err != nil {
		return err
	}

	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"name", "category", "tx_count"}); err != nil {
		return err
	}
	for _, row := range rows {
		record := []string{row.Name, row.Category, strconv.Itoa(row.TxCount)}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
