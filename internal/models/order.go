package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order is a customer's submitted cart with delivery terms and total
type Order struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	CreatedAt    time.Time       `gorm:"index" json:"created_at"`
	DeliveryType string          `gorm:"size:50;not null" json:"delivery_type"`
	DeliveryFee  decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"delivery_fee"`
	Total        decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total"`
	Lines        []OrderLine     `gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"lines"`
}

// Subtotal is the sum of quantity times unit price over all lines
func (o Order) Subtotal() decimal.Decimal {
	sum := decimal.Zero
	for _, l := range o.Lines {
		sum = sum.Add(l.Amount())
	}
	return sum
}

// ComputedTotal is the subtotal plus the delivery fee. It can differ from Total,
// which is recorded as the client reported it.
func (o Order) ComputedTotal() decimal.Decimal {
	return o.Subtotal().Add(o.DeliveryFee)
}

// OrderLine is a snapshot of one product within an order.
// Name and price are copied at order time and never follow later product edits.
type OrderLine struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	OrderID     uint            `gorm:"not null;index" json:"order_id"`
	ProductName string          `gorm:"size:100;not null" json:"product_name"`
	Quantity    int             `gorm:"not null" json:"quantity"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"unit_price"`
}

// Amount is quantity times unit price
func (l OrderLine) Amount() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// OrderRequest is the JSON body accepted by the checkout API
type OrderRequest struct {
	Cart     map[string]CartItem `json:"cart" validate:"required,min=1"`
	Delivery *Delivery           `json:"delivery" validate:"required"`
	Total    decimal.Decimal     `json:"total"`
}

// CartItem is one cart entry keyed by product name
type CartItem struct {
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

// Delivery describes how the order is delivered and what it costs
type Delivery struct {
	Type string          `json:"type" validate:"required,max=50"`
	Fee  decimal.Decimal `json:"fee"`
}
