package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Customer represents a buyer or prospect registered by a store.
type Customer struct {
	ID      uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	StoreID uuid.UUID `gorm:"type:uuid;not null;index" json:"store_id"`

	Name  string `gorm:"type:varchar(255);not null" json:"name"`
	CPF   string `gorm:"type:varchar(14)" json:"cpf"`
	Phone string `gorm:"type:varchar(20)" json:"phone"`
	Email string `gorm:"type:varchar(255)" json:"email"`

	// Address
	CEP          string `gorm:"type:varchar(9)" json:"cep"`
	Street       string `gorm:"type:varchar(255)" json:"street"`
	Number       string `gorm:"type:varchar(20)" json:"number"`
	Neighborhood string `gorm:"type:varchar(100)" json:"neighborhood"`
	City         string `gorm:"type:varchar(100)" json:"city"`
	State        string `gorm:"type:varchar(2)" json:"state"`

	Notes     string         `gorm:"type:text" json:"notes"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
