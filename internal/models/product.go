package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a sellable menu item
type Product struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Name        string          `gorm:"size:100;not null" json:"name"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Description string          `gorm:"size:500" json:"description"`
	ImageURL    string          `gorm:"size:250" json:"image_url"`
	Active      bool            `gorm:"not null;default:true" json:"active"`
	CategoryID  uint            `gorm:"not null;index" json:"category_id"`
	Category    *Category       `gorm:"foreignKey:CategoryID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
