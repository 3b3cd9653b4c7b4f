package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	ActionCreateVehicle  = "CREATE_VEHICLE"
	ActionUpdateVehicle  = "UPDATE_VEHICLE"
	ActionDeleteVehicle  = "DELETE_VEHICLE"
	ActionReserveVehicle = "RESERVE_VEHICLE"
	ActionSellVehicle    = "SELL_VEHICLE"
	ActionTradeInIntake  = "TRADE_IN_INTAKE"
	ActionCreateExpense  = "CREATE_EXPENSE"
	ActionDeleteExpense  = "DELETE_EXPENSE"
	ActionCreateCustomer = "CREATE_CUSTOMER"
	ActionUpdateCustomer = "UPDATE_CUSTOMER"
	ActionDeleteCustomer = "DELETE_CUSTOMER"
	ActionBillingEvent   = "BILLING_EVENT"
)

// AuditLog tracks Who, What, and When for critical store changes
type AuditLog struct {
	ID         uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	StoreID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"store_id"`
	UserID     *uuid.UUID `gorm:"type:uuid;index" json:"user_id"` // Nullable for webhook-driven changes
	User       *User      `gorm:"foreignKey:UserID" json:"user"`
	Action     string     `gorm:"type:varchar(50);not null;index" json:"action"`
	EntityID   string     `gorm:"type:varchar(50);index" json:"entity_id"`
	EntityName string     `gorm:"type:varchar(255)" json:"entity_name,omitempty"`
	Details    string     `gorm:"type:jsonb" json:"details"` // Serialized JSON payload of the action
	CreatedAt  time.Time  `gorm:"index" json:"created_at"`
}
