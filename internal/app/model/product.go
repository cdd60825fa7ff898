package model

import (
	"time"

	"gorm.io/gorm"
)

type Product struct {
	ID            uint           `gorm:"primarykey" json:"id"`
	Name          string         `gorm:"not null" json:"name"`
	Description   string         `gorm:"type:text" json:"description"`
	Price         float64        `gorm:"not null" json:"price"`
	Unit          string         `gorm:"type:varchar(20);default:'kg'" json:"unit"` // display unit, e.g. "kg", "bunch", "dozen"
	ImageURL      string         `json:"image_url"`
	StockQuantity int            `gorm:"default:0" json:"stock_quantity"`
	IsAvailable   bool           `json:"is_available"`
	CategoryID    *uint          `gorm:"index" json:"category_id,omitempty"`
	FarmerID      uint           `gorm:"not null;index" json:"farmer_id"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Farmer   Farmer    `gorm:"foreignKey:FarmerID" json:"farmer,omitempty"`
	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

func (Product) TableName() string {
	return "products"
}
