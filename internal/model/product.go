package model

// Product is a catalog entry. Name and SKU are both unique across the catalog;
// the per-store stock lives in Inventory rows, never on the product itself.
type Product struct {
	BaseModel
	Name     string  `gorm:"type:varchar(255);uniqueIndex;not null" json:"name" validate:"required"`
	SKU      string  `gorm:"type:varchar(50);uniqueIndex;not null" json:"sku" validate:"required"`
	Category string  `gorm:"type:varchar(100);index" json:"category"`
	Price    float64 `gorm:"not null;default:0" json:"price" validate:"gte=0"`
}
