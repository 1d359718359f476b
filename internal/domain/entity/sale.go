package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/salesdesk-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Sale represents a recorded sale of one product.
// UnitPrice and TotalAmount are fixed two-decimal strings ("20.00"),
// Date is the UTC calendar date in YYYY-MM-DD form.
type Sale struct {
	ID           uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	ProductID    uuid.UUID       `gorm:"type:uuid;not null;index" json:"product_id"`
	ProductName  string          `gorm:"size:255;not null" json:"product_name"`
	Quantity     int             `gorm:"not null" json:"quantity"`
	UnitPrice    string          `gorm:"size:32;not null" json:"unit_price"`
	TotalAmount  string          `gorm:"size:32;not null" json:"total_amount"`
	Date         string          `gorm:"size:10;not null;index" json:"date"`
	Status       enum.SaleStatus `gorm:"default:0" json:"status"`
	CustomerName *string         `gorm:"size:255" json:"customer_name,omitempty"`
	Notes        *string         `gorm:"type:text" json:"notes,omitempty"`
	CreatedByID  *uuid.UUID      `gorm:"type:uuid;column:created_by;index" json:"created_by,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
	DeletedAt    gorm.DeletedAt  `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new sale
func (s *Sale) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Sale model
func (Sale) TableName() string {
	return "sales"
}
