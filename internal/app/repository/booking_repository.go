package repository

import (
	"time"

	"github.com/greenharvest/greenharvest-backend/internal/app/model"
	"github.com/greenharvest/greenharvest-backend/pkg/logger"
	"gorm.io/gorm"
)

type BookingRepository interface {
	Create(booking *model.Booking) error
	FindByID(id uint) (*model.Booking, error)
	FindByUserID(userID uint) ([]model.Booking, error)
	FindByFarmerID(farmerID uint, status model.BookingStatus) ([]model.Booking, error)
	FindPastDated(before time.Time, statuses []model.BookingStatus) ([]model.Booking, error)
	Update(booking *model.Booking) error
}

type bookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) BookingRepository {
	return &bookingRepository{db: db}
}

func (r *bookingRepository) Create(booking *model.Booking) error {
	logger.Debug("Creating booking in database", map[string]interface{}{
		"user_id":      booking.UserID,
		"product_id":   booking.ProductID,
		"booking_date": booking.BookingDate,
	})

	if err := r.db.Create(booking).Error; err != nil {
		logger.Error("Failed to create booking in database", err, map[string]interface{}{
			"user_id":    booking.UserID,
			"product_id": booking.ProductID,
		})
		return err
	}
	return nil
}

func (r *bookingRepository) FindByID(id uint) (*model.Booking, error) {
	var booking model.Booking
	err := r.db.Preload("Product").Preload("Farmer").First(&booking, id).Error
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) FindByUserID(userID uint) ([]model.Booking, error) {
	var bookings []model.Booking
	err := r.db.Where("user_id = ?", userID).
		Preload("Product").
		Preload("Farmer").
		Order("booking_date ASC").
		Find(&bookings).Error
	if err != nil {
		logger.Error("Failed to find bookings by user", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}
	return bookings, nil
}

func (r *bookingRepository) FindByFarmerID(farmerID uint, status model.BookingStatus) ([]model.Booking, error) {
	query := r.db.Where("farmer_id = ?", farmerID)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var bookings []model.Booking
	err := query.Preload("Product").Order("booking_date ASC").Find(&bookings).Error
	if err != nil {
		logger.Error("Failed to find bookings by farmer", err, map[string]interface{}{
			"farmer_id": farmerID,
		})
		return nil, err
	}
	return bookings, nil
}

func (r *bookingRepository) FindPastDated(before time.Time, statuses []model.BookingStatus) ([]model.Booking, error) {
	var bookings []model.Booking
	err := r.db.Where("booking_date < ? AND status IN ?", before, statuses).
		Find(&bookings).Error
	if err != nil {
		logger.Error("Failed to find past-dated bookings", err, nil)
		return nil, err
	}
	return bookings, nil
}

func (r *bookingRepository) Update(booking *model.Booking) error {
	if err := r.db.Save(booking).Error; err != nil {
		logger.Error("Failed to update booking in database", err, map[string]interface{}{
			"booking_id": booking.ID,
		})
		return err
	}
	return nil
}
