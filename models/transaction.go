package models

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/nusratfurniture/workshop_backend/config"
	"github.com/nusratfurniture/workshop_backend/utils"
	"gorm.io/gorm"
)

type Transaction struct {
	ID             int             `gorm:"primary_key" json:"id"`
	Type           TransactionType `gorm:"type:enum('incoming','outgoing');not null;index" json:"type"`
	Date           time.Time       `gorm:"type:date;not null;index" json:"date"`
	AmountPKR      int64           `gorm:"not null" json:"amount_pkr"`
	Category       string          `gorm:"size:100;not null;index" json:"category"`
	Name           string          `gorm:"size:150" json:"name"`
	BillNo         string          `gorm:"size:50" json:"bill_no"`
	Notes          string          `gorm:"type:text" json:"notes"`
	EmployeeId     *int            `gorm:"index" json:"employee_id"`
	EmployeeTxType *EmployeeTxType `gorm:"type:enum('advance','salary','per_work')" json:"employee_tx_type"`
	PaymentMethod  string          `gorm:"size:50" json:"payment_method"`
	AssignmentId   *int            `json:"assignment_id"`
	Reference      string          `gorm:"size:100;index" json:"reference"`
	IsDeleted      *bool           `gorm:"not null;default:false;index" json:"is_deleted"`
	CreatedAt      time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewTransaction struct {
	Type           TransactionType `json:"type" binding:"required"`
	Date           string          `json:"date"`
	AmountPKR      int64           `json:"amount_pkr" binding:"required"`
	Category       string          `json:"category"`
	Name           string          `json:"name"`
	BillNo         string          `json:"bill_no"`
	Notes          string          `json:"notes"`
	EmployeeId     *int            `json:"employee_id"`
	EmployeeTxType *EmployeeTxType `json:"employee_tx_type"`
	PaymentMethod  string          `json:"payment_method"`
	AssignmentId   *int            `json:"assignment_id"`
	Reference      string          `json:"reference"`
}

// resolveEmployee fills category and name from the linked employee on
// outgoing payouts. The worker category on the employee profile decides
// which ledger column the money lands in; the clerk rarely retypes it.
func (input *NewTransaction) resolveEmployee(ctx context.Context) (*Employee, error) {
	if input.Type != TransactionTypeOutgoing || input.EmployeeId == nil {
		input.EmployeeId = nil
		return nil, nil
	}
	employee, err := utils.FetchModel[Employee](ctx, *input.EmployeeId)
	if err != nil {
		return nil, errors.New("employee not found")
	}
	input.Category = EmployeeOutgoingCategory(employee)
	if strings.TrimSpace(input.Name) == "" {
		input.Name = employee.FullName
	}
	return employee, nil
}

func (input *NewTransaction) validate(ctx context.Context) error {
	if !input.Type.Valid() {
		return errors.New("invalid transaction type")
	}
	if input.AmountPKR <= 0 {
		return errors.New("amount must be greater than 0")
	}
	if input.Type == TransactionTypeIncoming {
		if !InList(IncomingCategories, input.Category) {
			return errors.New("invalid incoming source")
		}
		if input.Category == "Client" && strings.TrimSpace(input.BillNo) == "" {
			return errors.New("bill number is required for client payments")
		}
	}
	if input.Type == TransactionTypeOutgoing {
		if !InList(OutgoingCategories, input.Category) {
			return errors.New("invalid outgoing category")
		}
	}
	if input.EmployeeTxType != nil && !input.EmployeeTxType.Valid() {
		return errors.New("invalid employee transaction type")
	}
	if input.AssignmentId != nil {
		if err := utils.ValidateResourceId[WeeklyAssignment](ctx, *input.AssignmentId); err != nil {
			return errors.New("assignment not found")
		}
	}
	return nil
}

// transactionDate falls back to today when the form sends a blank or
// unparseable date; a bad date never blocks a cash entry.
func (input *NewTransaction) transactionDate() time.Time {
	date, err := utils.ParseDate(input.Date)
	if err != nil {
		return utils.DateOnly(time.Now())
	}
	return date
}

func CreateTransaction(ctx context.Context, input *NewTransaction) (*Transaction, error) {

	if _, err := input.resolveEmployee(ctx); err != nil {
		return nil, err
	}
	if err := input.validate(ctx); err != nil {
		return nil, err
	}

	transaction := Transaction{
		Type:           input.Type,
		Date:           input.transactionDate(),
		AmountPKR:      input.AmountPKR,
		Category:       input.Category,
		Name:           strings.TrimSpace(input.Name),
		BillNo:         strings.TrimSpace(input.BillNo),
		Notes:          input.Notes,
		EmployeeId:     input.EmployeeId,
		EmployeeTxType: input.EmployeeTxType,
		PaymentMethod:  input.PaymentMethod,
		AssignmentId:   input.AssignmentId,
		Reference:      input.Reference,
		IsDeleted:      utils.NewFalse(),
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&transaction).Error; err != nil {
		return nil, err
	}

	return &transaction, nil
}

func UpdateTransaction(ctx context.Context, id int, input *NewTransaction) (*Transaction, error) {

	transaction, err := utils.FetchModel[Transaction](ctx, id)
	if err != nil {
		return nil, err
	}

	if _, err := input.resolveEmployee(ctx); err != nil {
		return nil, err
	}
	if err := input.validate(ctx); err != nil {
		return nil, err
	}

	db := config.GetDB()
	err = db.WithContext(ctx).Model(transaction).
		Updates(map[string]interface{}{
			"Type":           input.Type,
			"Date":           input.transactionDate(),
			"AmountPKR":      input.AmountPKR,
			"Category":       input.Category,
			"Name":           strings.TrimSpace(input.Name),
			"BillNo":         strings.TrimSpace(input.BillNo),
			"Notes":          input.Notes,
			"EmployeeId":     input.EmployeeId,
			"EmployeeTxType": input.EmployeeTxType,
			"PaymentMethod":  input.PaymentMethod,
			"AssignmentId":   input.AssignmentId,
			"Reference":      input.Reference,
		}).Error
	if err != nil {
		return nil, err
	}

	return transaction, nil
}

// GetTransaction returns the row regardless of its soft-delete flag so
// the edit screen can still open historical entries.
func GetTransaction(ctx context.Context, id int) (*Transaction, error) {
	return utils.FetchModel[Transaction](ctx, id)
}

func SoftDeleteTransaction(ctx context.Context, id int) (*Transaction, error) {

	transaction, err := utils.FetchModel[Transaction](ctx, id)
	if err != nil {
		return nil, err
	}

	db := config.GetDB()
	err = db.WithContext(ctx).Model(transaction).
		Update("is_deleted", true).Error
	if err != nil {
		return nil, err
	}

	return transaction, nil
}

type TransactionFilter struct {
	FromDate       *time.Time
	ToDate         *time.Time
	Type           string
	Category       string
	Name           string
	Q              string
	IncludeDeleted bool
}

// applyTransactionFilter ANDs every supplied criterion onto the query.
// An unknown type value is ignored rather than rejected, matching how
// the list screen treats a stale query string.
func applyTransactionFilter(query *gorm.DB, filter TransactionFilter) *gorm.DB {
	if !filter.IncludeDeleted {
		query = query.Where("is_deleted = ?", false)
	}
	if filter.FromDate != nil {
		query = query.Where("date >= ?", utils.DateOnly(*filter.FromDate))
	}
	if filter.ToDate != nil {
		query = query.Where("date <= ?", utils.DateOnly(*filter.ToDate))
	}
	if TransactionType(filter.Type).Valid() {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Name != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(filter.Name)+"%")
	}
	if filter.Q != "" {
		like := "%" + strings.ToLower(filter.Q) + "%"
		query = query.Where(
			"LOWER(notes) LIKE ? OR LOWER(bill_no) LIKE ? OR LOWER(category) LIKE ? OR LOWER(name) LIKE ?",
			like, like, like, like)
	}
	return query
}

func ListTransactions(ctx context.Context, filter TransactionFilter, limit int) ([]Transaction, error) {

	if limit <= 0 {
		limit = config.SearchLimit
	}

	db := config.GetDB()
	var transactions []Transaction
	query := db.WithContext(ctx).Model(&Transaction{})
	query = applyTransactionFilter(query, filter)
	err := query.Order("date DESC, id DESC").Limit(limit).Find(&transactions).Error
	if err != nil {
		return nil, err
	}
	return transactions, nil
}

type TransactionTotalsResult struct {
	Incoming int64 `json:"incoming"`
	Outgoing int64 `json:"outgoing"`
	Net      int64 `json:"net"`
}

func TransactionTotals(ctx context.Context, filter TransactionFilter) (*TransactionTotalsResult, error) {

	db := config.GetDB()
	var row struct {
		Incoming int64
		Outgoing int64
	}
	query := db.WithContext(ctx).Model(&Transaction{}).
		Select("COALESCE(SUM(CASE WHEN type = 'incoming' THEN amount_pkr ELSE 0 END), 0) AS incoming, " +
			"COALESCE(SUM(CASE WHEN type = 'outgoing' THEN amount_pkr ELSE 0 END), 0) AS outgoing")
	query = applyTransactionFilter(query, filter)
	if err := query.Scan(&row).Error; err != nil {
		return nil, err
	}
	return &TransactionTotalsResult{
		Incoming: row.Incoming,
		Outgoing: row.Outgoing,
		Net:      row.Incoming - row.Outgoing,
	}, nil
}

// DistinctTransactionNames collapses case duplicates ("Waseem" and
// "waseem") onto one suggestion, keeping the lexically smallest form.
func DistinctTransactionNames(ctx context.Context, limit int) ([]string, error) {

	if limit <= 0 || limit > config.SearchLimit {
		limit = 200
	}

	db := config.GetDB()
	var names []string
	err := db.WithContext(ctx).Model(&Transaction{}).
		Where("is_deleted = ?", false).
		Where("LENGTH(TRIM(name)) > 0").
		Group("LOWER(name)").
		Order("LOWER(name)").
		Limit(limit).
		Pluck("MIN(name)", &names).Error
	if err != nil {
		return nil, err
	}
	return names, nil
}

// TransactionNameCount is one row of the unique-names export: a payee
// plus how many non-deleted ledger rows carry that name and category.
type TransactionNameCount struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	TxCount  int    `json:"tx_count"`
}

// DistinctTransactionNameCounts groups non-deleted rows by trimmed,
// case-folded name and category, busiest names first.
func DistinctTransactionNameCounts(ctx context.Context, limit int) ([]TransactionNameCount, error) {

	if limit <= 0 || limit > config.SearchLimit {
		limit = config.SearchLimit
	}

	db := config.GetDB()
	var rows []TransactionNameCount
	err := db.WithContext(ctx).Model(&Transaction{}).
		Select("MIN(TRIM(name)) AS name, category, COUNT(id) AS tx_count").
		Where("is_deleted = ?", false).
		Where("LENGTH(TRIM(name)) > 0").
		Group("LOWER(TRIM(name)), category").
		Order("tx_count DESC, LOWER(TRIM(name)) ASC, category ASC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func DistinctTransactionCategories(ctx context.Context, limit int) ([]string, error) {

	if limit <= 0 || limit > config.SearchLimit {
		limit = 200
	}

	db := config.GetDB()
	var categories []string
	err := db.WithContext(ctx).Model(&Transaction{}).
		Where("is_deleted = ?", false).
		Where("LENGTH(TRIM(category)) > 0").
		Distinct("category").
		Order("category").
		Limit(limit).
		Pluck("category", &categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}
