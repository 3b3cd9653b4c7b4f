package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// VehicleStatus enum constants
const (
	VehicleStatusAvailable   = "AVAILABLE"
	VehicleStatusReserved    = "RESERVED"
	VehicleStatusPreparation = "PREPARATION"
	VehicleStatusSold        = "SOLD"
)

// PaymentMethod enum constants. Unknown values are stored as-is; these are
// the ones the UI offers.
const (
	PaymentCash        = "CASH"
	PaymentPix         = "PIX"
	PaymentFinancing   = "FINANCING"
	PaymentCard        = "CARD"
	PaymentTradeInPlus = "TRADE_IN_PLUS_CASH"
	PaymentOther       = "OTHER"
)

// Vehicle is the aggregate root for all financial computation. Sale fields
// are written once when the vehicle is sold and treated as frozen from then
// on (enforced by the services, not by the database).
type Vehicle struct {
	ID      uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	StoreID uuid.UUID `gorm:"type:uuid;not null;index" json:"store_id"`

	Brand   string `gorm:"type:varchar(100);not null;index" json:"brand"`
	Model   string `gorm:"type:varchar(100);not null;index" json:"model"`
	Year    int    `gorm:"type:int" json:"year"`
	Plate   string `gorm:"type:varchar(10)" json:"plate"`
	Color   string `gorm:"type:varchar(50)" json:"color"`
	Mileage int    `gorm:"type:int;default:0" json:"mileage"`

	// Acquisition
	PurchasePrice decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"purchase_price"`
	PurchaseDate  *time.Time      `json:"purchase_date"`

	// Listing. ReferencePrice is the third-party table price, advisory
	// only, never part of profit math.
	ExpectedSalePrice decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"expected_sale_price"`
	ReferencePrice    decimal.Decimal `gorm:"type:decimal(18,2);default:0" json:"reference_price"`

	Status string `gorm:"type:varchar(20);not null;default:'AVAILABLE';index" json:"status"`

	// Reservation metadata, cleared whenever status leaves RESERVED
	ReservedFor   string     `gorm:"type:varchar(255)" json:"reserved_for,omitempty"`
	ReservedUntil *time.Time `json:"reserved_until,omitempty"`

	Expenses []Expense `gorm:"foreignKey:VehicleID;constraint:OnDelete:CASCADE" json:"expenses"`

	// Sale facts, present only once Status = SOLD
	SoldPrice          *decimal.Decimal `gorm:"type:decimal(18,2)" json:"sold_price"`
	SaleDate           *time.Time       `json:"sale_date"`
	PaymentMethod      string           `gorm:"type:varchar(30)" json:"payment_method"`
	BuyerID            *uuid.UUID       `gorm:"type:uuid;index" json:"buyer_id"`
	Buyer              *Customer        `gorm:"foreignKey:BuyerID" json:"buyer,omitempty"`
	TradeInValue       *decimal.Decimal `gorm:"type:decimal(18,2)" json:"trade_in_value"`
	TradeInDescription string           `gorm:"type:text" json:"trade_in_description"`
	SaleCommission     *decimal.Decimal `gorm:"type:decimal(18,2)" json:"sale_commission"`
	CommissionPayee    string           `gorm:"type:varchar(255)" json:"commission_payee"`
	WarrantyTerms      string           `gorm:"type:text" json:"warranty_terms"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
