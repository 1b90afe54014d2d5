package models

// LedgerEntry is one row of a worker's advance ledger. Advances debit
// the running balance, wage payouts credit it; an untyped payout counts
// as a wage. The balance may go negative mid-ledger even though the
// summary floors it at zero.
type LedgerEntry struct {
	Transaction Transaction `json:"transaction"`
	Debit       int64       `json:"debit"`
	Credit      int64       `json:"credit"`
	Balance     int64       `json:"balance"`
}

// BuildLedger walks transactions in the order given (callers pass them
// date ascending, id ascending) and emits one entry per row with the
// running balance after that row.
func BuildLedger(transactions []Transaction) []LedgerEntry {
	ledger := make([]LedgerEntry, 0, len(transactions))
	var running int64
	for _, transaction := range transactions {
		var debit, credit int64
		if transaction.EmployeeTxType != nil && *transaction.EmployeeTxType == EmployeeTxTypeAdvance {
			debit = transaction.AmountPKR
			running += debit
		} else {
			credit = transaction.AmountPKR
			running -= credit
		}
		ledger = append(ledger, LedgerEntry{
			Transaction: transaction,
			Debit:       debit,
			Credit:      credit,
			Balance:     running,
		})
	}
	return ledger
}
