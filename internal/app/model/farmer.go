package model

import (
	"time"

	"gorm.io/gorm"
)

// FarmerStatus is the review state of a farmer application. A user with no
// farmer row has no status at all.
type FarmerStatus string

const (
	FarmerStatusPending  FarmerStatus = "pending"
	FarmerStatusApproved FarmerStatus = "approved"
	FarmerStatusRejected FarmerStatus = "rejected"
)

type Farmer struct {
	ID              uint           `gorm:"primarykey" json:"id"`
	UserID          uint           `gorm:"uniqueIndex;not null" json:"user_id"`
	FarmName        string         `gorm:"not null" json:"farm_name"`
	FarmDescription string         `gorm:"type:text" json:"farm_description"`
	FarmLocation    string         `json:"farm_location"`
	ImageURL        string         `json:"image_url"`
	Status          FarmerStatus   `gorm:"type:varchar(20);default:'pending';index" json:"status"`
	ReviewedAt      *time.Time     `json:"reviewed_at,omitempty"`
	ReviewedBy      *uint          `json:"reviewed_by,omitempty"`
	RejectionReason string         `gorm:"type:text" json:"rejection_reason,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	User     User      `gorm:"foreignKey:UserID" json:"-"`
	Products []Product `gorm:"foreignKey:FarmerID" json:"products,omitempty"`
}

func (Farmer) TableName() string {
	return "farmers"
}
