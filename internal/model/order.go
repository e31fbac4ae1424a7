package model

import (
	"time"

	"github.com/google/uuid"
)

// OrderDetails is the order header. Orders are only ever created by the
// place-order workflow and are immutable afterwards.
type OrderDetails struct {
	BaseModel
	CustomerID uuid.UUID `gorm:"type:uuid;not null;index" json:"customer_id"`
	Customer   *Customer `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`

	StoreID uuid.UUID `gorm:"type:uuid;not null;index" json:"store_id"`
	Store   *Store    `gorm:"foreignKey:StoreID" json:"-"`

	TotalPrice float64   `gorm:"not null" json:"total_price"`
	PlacedAt   time.Time `gorm:"not null" json:"placed_at"`

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items"`
}

// TableName keeps the historical table name.
func (OrderDetails) TableName() string {
	return "order_details"
}

// OrderItem is one product line within an order. Price is the product's
// price at the moment the order was placed; later catalog price changes
// never touch it.
type OrderItem struct {
	BaseModel
	OrderID uuid.UUID `gorm:"type:uuid;not null;index" json:"order_id"`

	ProductID uuid.UUID `gorm:"type:uuid;not null" json:"product_id"`
	Product   *Product  `gorm:"foreignKey:ProductID" json:"product,omitempty"`

	Quantity int     `gorm:"not null" json:"quantity" validate:"required,gt=0"`
	Price    float64 `gorm:"not null" json:"price"`
}

// LineTotal is quantity times the frozen unit price.
func (i *OrderItem) LineTotal() float64 {
	return float64(i.Quantity) * i.Price
}

// PlaceOrderRequest is the payload accepted by POST /store/placeOrder.
// TotalPrice is optional; when absent the workflow computes the sum of line
// totals.
type PlaceOrderRequest struct {
	StoreID       uuid.UUID      `json:"store_id" validate:"uuid_required"`
	CustomerName  string         `json:"customer_name" validate:"required"`
	CustomerEmail string         `json:"customer_email" validate:"required,email"`
	CustomerPhone string         `json:"customer_phone"`
	TotalPrice    *float64       `json:"total_price,omitempty"`
	Items         []PurchaseItem `json:"items" validate:"required,min=1,dive"`
}

// PurchaseItem is one (product, quantity) line request.
type PurchaseItem struct {
	ProductID uuid.UUID `json:"product_id" validate:"uuid_required"`
	Quantity  int       `json:"quantity" validate:"required,gt=0"`
}
