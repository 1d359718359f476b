package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SalesReturn represents goods a customer brought back into stock
type SalesReturn struct {
	ID             uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	ProductID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"product_id"`
	ReturnQuantity int            `gorm:"not null" json:"return_quantity"`
	Reason         *string        `gorm:"type:text" json:"reason,omitempty"`
	Date           string         `gorm:"size:10;not null" json:"date"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new sales return
func (r *SalesReturn) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the SalesReturn model
func (SalesReturn) TableName() string {
	return "sales_returns"
}
