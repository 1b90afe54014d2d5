package models

type TransactionType string

const (
	TransactionTypeIncoming TransactionType = "incoming"
	TransactionTypeOutgoing TransactionType = "outgoing"
)

func (t TransactionType) Valid() bool {
	return t == TransactionTypeIncoming || t == TransactionTypeOutgoing
}

type EmployeeTxType string

const (
	EmployeeTxTypeAdvance EmployeeTxType = "advance"
	EmployeeTxTypeSalary  EmployeeTxType = "salary"
	EmployeeTxTypePerWork EmployeeTxType = "per_work"
)

func (t EmployeeTxType) Valid() bool {
	return t == EmployeeTxTypeAdvance || t == EmployeeTxTypeSalary || t == EmployeeTxTypePerWork
}

type EmployeeStatus string

const (
	EmployeeStatusActive   EmployeeStatus = "active"
	EmployeeStatusInactive EmployeeStatus = "inactive"
)

func (s EmployeeStatus) Valid() bool {
	return s == EmployeeStatusActive || s == EmployeeStatusInactive
}

type AssignmentStatus string

const (
	AssignmentStatusPending    AssignmentStatus = "pending"
	AssignmentStatusInProgress AssignmentStatus = "in_progress"
	AssignmentStatusCompleted  AssignmentStatus = "completed"
)

func (s AssignmentStatus) Valid() bool {
	return s == AssignmentStatusPending || s == AssignmentStatusInProgress || s == AssignmentStatusCompleted
}

type CategoryType string

const (
	CategoryTypeFurniture CategoryType = "FURNITURE"
	CategoryTypeFoam      CategoryType = "FOAM"
)

func (t CategoryType) Valid() bool {
	return t == CategoryTypeFurniture || t == CategoryTypeFoam
}

type FurnitureStatus string

const (
	FurnitureStatusInStock     FurnitureStatus = "IN_STOCK"
	FurnitureStatusOutOfStock  FurnitureStatus = "OUT_OF_STOCK"
	FurnitureStatusMadeToOrder FurnitureStatus = "MADE_TO_ORDER"
)

func (s FurnitureStatus) Valid() bool {
	return s == FurnitureStatusInStock || s == FurnitureStatusOutOfStock || s == FurnitureStatusMadeToOrder
}

type InventoryKind string

const (
	InventoryKindFurnitureVariant InventoryKind = "FURNITURE_VARIANT"
	InventoryKindFoamVariant      InventoryKind = "FOAM_VARIANT"
	InventoryKindSofaItem         InventoryKind = "SOFA_ITEM"
	InventoryKindHardwareMaterial InventoryKind = "HARDWARE_MATERIAL"
	InventoryKindPoshishMaterial  InventoryKind = "POSHISH_MATERIAL"
)

func (k InventoryKind) Valid() bool {
	switch k {
	case InventoryKindFurnitureVariant, InventoryKindFoamVariant, InventoryKindSofaItem,
		InventoryKindHardwareMaterial, InventoryKindPoshishMaterial:
		return true
	}
	return false
}

// IncomingCategories and OutgoingCategories are the ledger form choices.
// Outgoing worker categories line up with EmployeeOutgoingCategory below.
var IncomingCategories = []string{
	"Client",
	"Advance",
	"Shop Sale",
	"Other Income",
}

var OutgoingCategories = []string{
	"Karkhanay Wala",
	"Polish Wala",
	"Poshish Wala",
	"Employee",
	"Wood",
	"Hardware",
	"Foam",
	"Fabric / Poshish Material",
	"Transport",
	"Utilities",
	"Misc",
}

var EmployeeCategories = []string{
	"Factory Worker (Karkhanay Wala)",
	"Polish Worker",
	"Upholstery / Poshish Worker",
	"Helper / Mazdoor",
	"Supervisor / Office Staff",
}

var EmployeeWorkTypes = []string{
	"daily",
	"monthly",
	"per_work",
	"contract",
}

var PaymentMethods = []string{
	"Cash",
	"Bank Transfer",
	"JazzCash",
	"Easypaisa",
	"Cheque",
}

func InList(list []string, value string) bool {
	for _, v := range list {
		if v == value {
			return true
		}
	}
	return false
}
