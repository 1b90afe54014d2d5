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

type Employee struct {
	ID               int            `gorm:"primary_key" json:"id"`
	FullName         string         `gorm:"size:150;not null;index" json:"full_name"`
	FatherName       string         `gorm:"size:150" json:"father_name"`
	Cnic             string         `gorm:"size:20" json:"cnic"`
	MobileNumber     string         `gorm:"size:20" json:"mobile_number"`
	Address          string         `gorm:"type:text" json:"address"`
	EmergencyContact string         `gorm:"size:150" json:"emergency_contact"`
	JoiningDate      time.Time      `gorm:"type:date;not null" json:"joining_date"`
	Status           EmployeeStatus `gorm:"type:enum('active','inactive');not null;default:'active';index" json:"status"`
	Category         string         `gorm:"size:100;not null" json:"category"`
	WorkType         string         `gorm:"size:50;not null" json:"work_type"`
	RoleDescription  string         `gorm:"type:text" json:"role_description"`
	PaymentRate      *int64         `json:"payment_rate"`
	ProfileImageUrl  string         `gorm:"size:255" json:"profile_image_url"`
	CnicImageUrl     string         `gorm:"size:255" json:"cnic_image_url"`
	CreatedAt        time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewEmployee struct {
	FullName         string         `json:"full_name" binding:"required"`
	FatherName       string         `json:"father_name"`
	Cnic             string         `json:"cnic"`
	MobileNumber     string         `json:"mobile_number"`
	Address          string         `json:"address"`
	EmergencyContact string         `json:"emergency_contact"`
	JoiningDate      string         `json:"joining_date"`
	Status           EmployeeStatus `json:"status" binding:"required"`
	Category         string         `json:"category" binding:"required"`
	WorkType         string         `json:"work_type" binding:"required"`
	RoleDescription  string         `json:"role_description"`
	PaymentRate      *int64         `json:"payment_rate"`
	ProfileImageUrl  string         `json:"profile_image_url"`
	CnicImageUrl     string         `json:"cnic_image_url"`
}

func (input *NewEmployee) validate(ctx context.Context) error {
	if strings.TrimSpace(input.FullName) == "" {
		return errors.New("full name is required")
	}
	if !input.Status.Valid() {
		return errors.New("invalid status")
	}
	if !InList(EmployeeCategories, input.Category) {
		return errors.New("invalid employee category")
	}
	if !InList(EmployeeWorkTypes, input.WorkType) {
		return errors.New("invalid work type")
	}
	if input.PaymentRate != nil && *input.PaymentRate < 0 {
		return errors.New("payment rate cannot be negative")
	}
	return nil
}

func (input *NewEmployee) joiningDate() time.Time {
	date, err := utils.ParseDate(input.JoiningDate)
	if err != nil {
		return utils.DateOnly(time.Now())
	}
	return date
}

func CreateEmployee(ctx context.Context, input *NewEmployee) (*Employee, error) {

	if err := input.validate(ctx); err != nil {
		return nil, err
	}

	employee := Employee{
		FullName:         strings.TrimSpace(input.FullName),
		FatherName:       input.FatherName,
		Cnic:             input.Cnic,
		MobileNumber:     utils.NormalizePhoneNumber(input.MobileNumber),
		Address:          input.Address,
		EmergencyContact: input.EmergencyContact,
		JoiningDate:      input.joiningDate(),
		Status:           input.Status,
		Category:         input.Category,
		WorkType:         input.WorkType,
		RoleDescription:  input.RoleDescription,
		PaymentRate:      input.PaymentRate,
		ProfileImageUrl:  input.ProfileImageUrl,
		CnicImageUrl:     input.CnicImageUrl,
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&employee).Error; err != nil {
		return nil, err
	}

	return &employee, nil
}

func UpdateEmployee(ctx context.Context, id int, input *NewEmployee) (*Employee, error) {

	employee, err := utils.FetchModel[Employee](ctx, id)
	if err != nil {
		return nil, err
	}

	if err := input.validate(ctx); err != nil {
		return nil, err
	}

	db := config.GetDB()
	err = db.WithContext(ctx).Model(employee).
		Updates(map[string]interface{}{
			"FullName":         strings.TrimSpace(input.FullName),
			"FatherName":       input.FatherName,
			"Cnic":             input.Cnic,
			"MobileNumber":     utils.NormalizePhoneNumber(input.MobileNumber),
			"Address":          input.Address,
			"EmergencyContact": input.EmergencyContact,
			"JoiningDate":      input.joiningDate(),
			"Status":           input.Status,
			"Category":         input.Category,
			"WorkType":         input.WorkType,
			"RoleDescription":  input.RoleDescription,
			"PaymentRate":      input.PaymentRate,
			"ProfileImageUrl":  input.ProfileImageUrl,
			"CnicImageUrl":     input.CnicImageUrl,
		}).Error
	if err != nil {
		return nil, err
	}

	return employee, nil
}

func GetEmployee(ctx context.Context, id int) (*Employee, error) {
	return utils.FetchModel[Employee](ctx, id)
}

func ListEmployees(ctx context.Context, status EmployeeStatus) ([]Employee, error) {

	db := config.GetDB()
	var employees []Employee
	query := db.WithContext(ctx).Model(&Employee{})
	if status != "" {
		if !status.Valid() {
			return nil, errors.New("invalid status")
		}
		query = query.Where("status = ?", status)
	}
	err := query.Order("status ASC, full_name ASC").Find(&employees).Error
	if err != nil {
		return nil, err
	}
	return employees, nil
}

// EmployeeOutgoingCategory maps a worker's profile category onto the
// outgoing ledger column. Profiles predating the fixed category list
// carry free text, hence the substring matching.
func EmployeeOutgoingCategory(employee *Employee) string {
	category := strings.ToLower(employee.Category)
	if strings.Contains(category, "karkhan") || strings.Contains(category, "factory") {
		return "Karkhanay Wala"
	}
	if strings.Contains(category, "polish") {
		return "Polish Wala"
	}
	if strings.Contains(category, "poshish") || strings.Contains(category, "upholstery") {
		return "Poshish Wala"
	}
	return "Employee"
}

// legacy rows predate the employee_id column and link by name only
const legacyNameClause = "(employee_id IS NULL AND LENGTH(TRIM(name)) > 0 AND LOWER(TRIM(name)) = LOWER(TRIM(?)))"

// EmployeeTransactions returns the worker's outgoing payouts oldest
// first, matching by id or by the legacy trimmed-name fallback.
func EmployeeTransactions(ctx context.Context, employeeId int, limit int) ([]Transaction, error) {

	employee, err := utils.FetchModel[Employee](ctx, employeeId)
	if err != nil {
		return nil, err
	}

	if limit <= 0 || limit > config.SearchLimit {
		limit = config.SearchLimit
	}

	db := config.GetDB()
	var transactions []Transaction
	err = db.WithContext(ctx).Model(&Transaction{}).
		Where("is_deleted = ?", false).
		Where("type = ?", TransactionTypeOutgoing).
		Where("employee_id = ? OR "+legacyNameClause, employeeId, employee.FullName).
		Order("date ASC, id ASC").
		Limit(limit).
		Find(&transactions).Error
	if err != nil {
		return nil, err
	}
	return transactions, nil
}

type EmployeeFinancialSummaryResult struct {
	Advance        int64 `json:"advance"`
	Paid           int64 `json:"paid"`
	AdvanceBalance int64 `json:"advance_balance"`
	Count          int64 `json:"count"`
}

// EmployeeFinancialSummary sums the worker's advances against salary
// and per-work payouts. Untyped payouts count as paid. The advance
// balance is floored at zero: overpaying wages never shows the
// workshop owing the worker an advance.
func EmployeeFinancialSummary(ctx context.Context, employeeId int) (*EmployeeFinancialSummaryResult, error) {

	employee, err := utils.FetchModel[Employee](ctx, employeeId)
	if err != nil {
		return nil, err
	}

	db := config.GetDB()
	var row struct {
		Advance int64
		Paid    int64
		Count   int64
	}
	err = db.WithContext(ctx).Model(&Transaction{}).
		Select("COALESCE(SUM(CASE WHEN employee_tx_type = 'advance' THEN amount_pkr ELSE 0 END), 0) AS advance, "+
			"COALESCE(SUM(CASE WHEN employee_tx_type IN ('salary', 'per_work') OR employee_tx_type IS NULL THEN amount_pkr ELSE 0 END), 0) AS paid, "+
			"COUNT(id) AS count").
		Where("is_deleted = ?", false).
		Where("type = ?", TransactionTypeOutgoing).
		Where("employee_id = ? OR "+legacyNameClause, employeeId, employee.FullName).
		Scan(&row).Error
	if err != nil {
		return nil, err
	}

	advanceBalance := row.Advance - row.Paid
	if advanceBalance < 0 {
		advanceBalance = 0
	}
	return &EmployeeFinancialSummaryResult{
		Advance:        row.Advance,
		Paid:           row.Paid,
		AdvanceBalance: advanceBalance,
		Count:          row.Count,
	}, nil
}

// SyncEmployeesFromTransactions backfills employee profiles from the
// distinct payee names on outgoing transactions and links those rows
// by id. Best effort per name: one bad row does not stop the sweep.
func SyncEmployeesFromTransactions(ctx context.Context) (int, error) {

	db := config.GetDB()

	var rows []struct {
		Name     string
		Category string
	}
	err := db.WithContext(ctx).Model(&Transaction{}).
		Select("name, category").
		Where("is_deleted = ?", false).
		Where("type = ?", TransactionTypeOutgoing).
		Where("LENGTH(TRIM(name)) > 0").
		Distinct().
		Find(&rows).Error
	if err != nil {
		return 0, err
	}

	created := 0
	for _, row := range rows {
		name := strings.TrimSpace(row.Name)
		if name == "" {
			continue
		}

		var employee Employee
		err := db.WithContext(ctx).Model(&Employee{}).
			Where("LOWER(TRIM(full_name)) = LOWER(?)", name).
			Take(&employee).Error
		if err != nil {
			employee = Employee{
				FullName:    name,
				JoiningDate: utils.DateOnly(time.Now()),
				Status:      EmployeeStatusActive,
				Category:    categoryForOutgoing(row.Category),
				WorkType:    "daily",
			}
			if err := db.WithContext(ctx).Create(&employee).Error; err != nil {
				config.LogError(config.GetLogger(), "models", "SyncEmployeesFromTransactions", "create employee", name, err)
				continue
			}
			created++
		}

		err = db.WithContext(ctx).Model(&Transaction{}).
			Where("is_deleted = ?", false).
			Where("type = ?", TransactionTypeOutgoing).
			Where("employee_id IS NULL").
			Where("LOWER(TRIM(name)) = LOWER(?)", name).
			Updates(map[string]interface{}{
				"employee_id":      employee.ID,
				"employee_tx_type": gorm.Expr("COALESCE(employee_tx_type, 'salary')"),
			}).Error
		if err != nil {
			config.LogError(config.GetLogger(), "models", "SyncEmployeesFromTransactions", "link transactions", name, err)
		}
	}

	return created, nil
}

// categoryForOutgoing is the reverse of EmployeeOutgoingCategory: it
// picks a profile category for a worker discovered from ledger rows.
func categoryForOutgoing(txCategory string) string {
	category := strings.ToLower(txCategory)
	if strings.Contains(category, "karkhan") || strings.Contains(category, "factory") {
		return "Factory Worker (Karkhanay Wala)"
	}
	if strings.Contains(category, "polish") {
		return "Polish Worker"
	}
	if strings.Contains(category, "poshish") || strings.Contains(category, "upholstery") {
		return "Upholstery / Poshish Worker"
	}
	return "Helper / Mazdoor"
}
