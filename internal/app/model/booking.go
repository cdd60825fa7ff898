package model

import (
	"time"

	"gorm.io/gorm"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusRejected  BookingStatus = "rejected"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// Booking reserves a quantity of a product for fulfillment on a future
// harvest date. Unit price and total are snapshotted at creation so later
// price changes do not move an accepted reservation.
type Booking struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	UserID      uint           `gorm:"not null;index" json:"user_id"`
	ProductID   uint           `gorm:"not null;index" json:"product_id"`
	FarmerID    uint           `gorm:"not null;index" json:"farmer_id"`
	BookingDate time.Time      `gorm:"not null;index" json:"booking_date"`
	Quantity    int            `gorm:"not null" json:"quantity"`
	UnitPrice   float64        `gorm:"not null" json:"unit_price"`
	TotalPrice  float64        `gorm:"not null" json:"total_price"`
	Status      BookingStatus  `gorm:"type:varchar(20);default:'pending';index" json:"status"`
	Notes       string         `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	User    User    `gorm:"foreignKey:UserID" json:"-"`
	Product Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Farmer  Farmer  `gorm:"foreignKey:FarmerID" json:"farmer,omitempty"`
}

func (Booking) TableName() string {
	return "bookings"
}
