package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ExpenseCategory enum constants
const (
	ExpenseMaintenance   = "MAINTENANCE"
	ExpenseBodywork      = "BODYWORK"
	ExpenseTires         = "TIRES"
	ExpenseDocumentation = "DOCUMENTATION"
	ExpenseMarketing     = "MARKETING"
	ExpenseCommission    = "COMMISSION"
	ExpenseOther         = "OTHER"
)

// ExpenseCategories lists every valid category, for request validation.
var ExpenseCategories = []string{
	ExpenseMaintenance,
	ExpenseBodywork,
	ExpenseTires,
	ExpenseDocumentation,
	ExpenseMarketing,
	ExpenseCommission,
	ExpenseOther,
}

// Expense is a single cost line item owned by exactly one vehicle.
// Payee is only meaningful for the COMMISSION category.
type Expense struct {
	ID        uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	VehicleID uuid.UUID       `gorm:"type:uuid;not null;index" json:"vehicle_id"`
	StoreID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"store_id"`
	Category  string          `gorm:"type:varchar(20);not null;index" json:"category"`
	Amount    decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"amount"`
	Payee     string          `gorm:"type:varchar(255)" json:"payee,omitempty"`

	Description string    `gorm:"type:text" json:"description"`
	ExpenseDate time.Time `json:"expense_date"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
