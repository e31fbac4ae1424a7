package model

// Store is a physical location holding Inventory rows. Deleting a store
// removes its inventory rows in the same transaction (see StoreService).
type Store struct {
	BaseModel
	Name    string `gorm:"type:varchar(255);uniqueIndex;not null" json:"name" validate:"required"`
	Address string `gorm:"type:varchar(500);not null" json:"address" validate:"required"`

	Inventories []Inventory `gorm:"foreignKey:StoreID" json:"inventories,omitempty"`
}
