package model

import "github.com/google/uuid"

// Inventory is the stock level of one product at one store. The (product,
// store) pair is unique; that uniqueness is enforced by the validation
// service, not by a storage constraint. StockLevel never goes below zero:
// the order workflow decrements it only through a guarded conditional update.
type Inventory struct {
	BaseModel
	ProductID uuid.UUID `gorm:"type:uuid;not null;index:idx_inventory_product_store" json:"product_id" validate:"uuid_required"`
	Product   *Product  `gorm:"foreignKey:ProductID" json:"product,omitempty" validate:"-"`

	StoreID uuid.UUID `gorm:"type:uuid;not null;index:idx_inventory_product_store" json:"store_id" validate:"uuid_required"`
	// Back-reference kept for lookups only, never serialized (cycle with Store.Inventories).
	Store *Store `gorm:"foreignKey:StoreID" json:"-" validate:"-"`

	StockLevel int `gorm:"not null;default:0" json:"stock_level" validate:"gte=0"`
}
