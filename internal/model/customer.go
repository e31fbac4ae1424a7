package model

// Customer places orders. Email acts as the natural key: the order workflow
// resolves customers by email and creates one on first contact.
type Customer struct {
	BaseModel
	Name  string `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Email string `gorm:"type:varchar(255);index;not null" json:"email" validate:"required,email"`
	Phone string `gorm:"type:varchar(30)" json:"phone"`

	Orders []OrderDetails `gorm:"foreignKey:CustomerID" json:"orders,omitempty"`
}
