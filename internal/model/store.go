package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SubscriptionStatus enum constants, mirroring the payment provider's
// subscription lifecycle.
const (
	SubscriptionTrialing = "TRIALING"
	SubscriptionActive   = "ACTIVE"
	SubscriptionPastDue  = "PAST_DUE"
	SubscriptionCanceled = "CANCELED"
)

// Store is the tenant. Every aggregate carries its store_id and every
// repository query is scoped to it.
type Store struct {
	ID   uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name string    `gorm:"type:varchar(255);not null" json:"name"`
	CNPJ string    `gorm:"type:varchar(18)" json:"cnpj"`

	// Subscription state, updated only by the billing webhook
	SubscriptionID     string     `gorm:"type:varchar(100);index" json:"subscription_id"`
	PlanID             string     `gorm:"type:varchar(100)" json:"plan_id"`
	SubscriptionStatus string     `gorm:"type:varchar(20);not null;default:'TRIALING'" json:"subscription_status"`
	CurrentPeriodEnd   *time.Time `json:"current_period_end"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
