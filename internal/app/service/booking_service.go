package service

import (
	"errors"
	"time"

	"github.com/greenharvest/greenharvest-backend/internal/app/model"
	"github.com/greenharvest/greenharvest-backend/internal/app/repository"
	"github.com/greenharvest/greenharvest-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrBookingNotFound        = errors.New("booking not found")
	ErrBookingDateInvalid     = errors.New("booking date is outside the allowed window")
	ErrBookingNotCancellable  = errors.New("booking can no longer be cancelled")
	ErrBookingNotPending      = errors.New("booking is not pending")
	ErrProductUnavailable     = errors.New("product is not available for booking")
	ErrBookingQuantityInvalid = errors.New("booking quantity must be positive")
)

type BookingService interface {
	CreateBooking(userID, productID uint, bookingDate time.Time, quantity int, notes string) (*model.Booking, error)
	ListUserBookings(userID uint) ([]model.Booking, error)
	ListFarmerBookings(userID uint, status model.BookingStatus) ([]model.Booking, error)
	CancelBooking(userID, bookingID uint) (*model.Booking, error)
	ConfirmBooking(userID, bookingID uint) (*model.Booking, error)
	RejectBooking(userID, bookingID uint) (*model.Booking, error)
	CompleteBooking(userID, bookingID uint) (*model.Booking, error)
	SweepPastBookings() (int, error)
}

type bookingService struct {
	bookingRepo repository.BookingRepository
	productRepo repository.ProductRepository
	farmerRepo  repository.FarmerRepository
	now         func() time.Time
}

func NewBookingService(
	bookingRepo repository.BookingRepository,
	productRepo repository.ProductRepository,
	farmerRepo repository.FarmerRepository,
) BookingService {
	return &bookingService{
		bookingRepo: bookingRepo,
		productRepo: productRepo,
		farmerRepo:  farmerRepo,
		now:         time.Now,
	}
}

// withinBookingWindow reports whether date falls in the allowed pickup
// window: from tomorrow through three months out, both ends inclusive.
// Only the calendar day matters, not the time of day.
func withinBookingWindow(date, now time.Time) bool {
	day := truncateToDay(date)
	min := truncateToDay(now).AddDate(0, 0, 1)
	max := truncateToDay(now).AddDate(0, 3, 0)
	return !day.Before(min) && !day.After(max)
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func (s *bookingService) CreateBooking(userID, productID uint, bookingDate time.Time, quantity int, notes string) (*model.Booking, error) {
	logger.Info("Creating booking", map[string]interface{}{
		"user_id":      userID,
		"product_id":   productID,
		"booking_date": bookingDate.Format("2006-01-02"),
		"quantity":     quantity,
	})

	if quantity <= 0 {
		return nil, ErrBookingQuantityInvalid
	}

	if !withinBookingWindow(bookingDate, s.now()) {
		logger.Warn("Booking rejected: date outside window", map[string]interface{}{
			"user_id":      userID,
			"booking_date": bookingDate.Format("2006-01-02"),
		})
		return nil, ErrBookingDateInvalid
	}

	product, err := s.productRepo.FindByID(productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		logger.Error("Failed to fetch product for booking", err, map[string]interface{}{
			"product_id": productID,
		})
		return nil, err
	}

	if !product.IsAvailable {
		return nil, ErrProductUnavailable
	}

	// Snapshot the unit price so later catalog edits do not change what
	// the customer agreed to pay.
	booking := &model.Booking{
		UserID:      userID,
		ProductID:   productID,
		FarmerID:    product.FarmerID,
		BookingDate: truncateToDay(bookingDate),
		Quantity:    quantity,
		UnitPrice:   product.Price,
		TotalPrice:  product.Price * float64(quantity),
		Status:      model.BookingStatusPending,
		Notes:       notes,
	}

	if err := s.bookingRepo.Create(booking); err != nil {
		return nil, err
	}

	logger.Info("Booking created", map[string]interface{}{
		"booking_id":  booking.ID,
		"user_id":     userID,
		"total_price": booking.TotalPrice,
	})

	return booking, nil
}

func (s *bookingService) ListUserBookings(userID uint) ([]model.Booking, error) {
	return s.bookingRepo.FindByUserID(userID)
}

func (s *bookingService) ListFarmerBookings(userID uint, status model.BookingStatus) ([]model.Booking, error) {
	farmer, err := s.farmerRepo.FindByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFarmerNotFound
		}
		return nil, err
	}
	return s.bookingRepo.FindByFarmerID(farmer.ID, status)
}

// CancelBooking lets a customer cancel their own booking while it is
// still pending or confirmed and the pickup date has not passed.
func (s *bookingService) CancelBooking(userID, bookingID uint) (*model.Booking, error) {
	booking, err := s.bookingRepo.FindByID(bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}

	if booking.UserID != userID {
		return nil, ErrBookingNotFound
	}

	cancellable := booking.Status == model.BookingStatusPending ||
		booking.Status == model.BookingStatusConfirmed
	if !cancellable || booking.BookingDate.Before(truncateToDay(s.now())) {
		logger.Warn("Booking cancel rejected", map[string]interface{}{
			"booking_id":   bookingID,
			"status":       booking.Status,
			"booking_date": booking.BookingDate.Format("2006-01-02"),
		})
		return nil, ErrBookingNotCancellable
	}

	booking.Status = model.BookingStatusCancelled
	if err := s.bookingRepo.Update(booking); err != nil {
		return nil, err
	}

	logger.Info("Booking cancelled", map[string]interface{}{
		"booking_id": bookingID,
		"user_id":    userID,
	})

	return booking, nil
}

func (s *bookingService) ConfirmBooking(userID, bookingID uint) (*model.Booking, error) {
	return s.decideBooking(userID, bookingID, model.BookingStatusConfirmed)
}

func (s *bookingService) RejectBooking(userID, bookingID uint) (*model.Booking, error) {
	return s.decideBooking(userID, bookingID, model.BookingStatusRejected)
}

// CompleteBooking marks a confirmed booking as picked up.
func (s *bookingService) CompleteBooking(userID, bookingID uint) (*model.Booking, error) {
	booking, err := s.farmerBooking(userID, bookingID)
	if err != nil {
		return nil, err
	}

	if booking.Status != model.BookingStatusConfirmed {
		return nil, ErrBookingNotPending
	}

	booking.Status = model.BookingStatusCompleted
	if err := s.bookingRepo.Update(booking); err != nil {
		return nil, err
	}

	logger.Info("Booking completed", map[string]interface{}{
		"booking_id": bookingID,
	})

	return booking, nil
}

func (s *bookingService) decideBooking(userID, bookingID uint, decision model.BookingStatus) (*model.Booking, error) {
	booking, err := s.farmerBooking(userID, bookingID)
	if err != nil {
		return nil, err
	}

	if booking.Status != model.BookingStatusPending {
		logger.Warn("Booking decision rejected: not pending", map[string]interface{}{
			"booking_id": bookingID,
			"status":     booking.Status,
		})
		return nil, ErrBookingNotPending
	}

	booking.Status = decision
	if err := s.bookingRepo.Update(booking); err != nil {
		return nil, err
	}

	logger.Info("Booking decided", map[string]interface{}{
		"booking_id": bookingID,
		"decision":   decision,
	})

	return booking, nil
}

// farmerBooking loads a booking and verifies it belongs to the farmer
// profile of the calling user.
func (s *bookingService) farmerBooking(userID, bookingID uint) (*model.Booking, error) {
	farmer, err := s.farmerRepo.FindByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFarmerNotFound
		}
		return nil, err
	}

	booking, err := s.bookingRepo.FindByID(bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}

	if booking.FarmerID != farmer.ID {
		return nil, ErrBookingNotFound
	}

	return booking, nil
}

// SweepPastBookings settles bookings whose pickup date has passed:
// pending ones are cancelled, confirmed ones are assumed picked up and
// marked completed. Returns the number of bookings updated.
func (s *bookingService) SweepPastBookings() (int, error) {
	today := truncateToDay(s.now())

	past, err := s.bookingRepo.FindPastDated(today, []model.BookingStatus{
		model.BookingStatusPending,
		model.BookingStatusConfirmed,
	})
	if err != nil {
		return 0, err
	}

	updated := 0
	for i := range past {
		booking := &past[i]
		switch booking.Status {
		case model.BookingStatusPending:
			booking.Status = model.BookingStatusCancelled
		case model.BookingStatusConfirmed:
			booking.Status = model.BookingStatusCompleted
		default:
			continue
		}

		if err := s.bookingRepo.Update(booking); err != nil {
			logger.Error("Failed to sweep booking", err, map[string]interface{}{
				"booking_id": booking.ID,
			})
			return updated, err
		}
		updated++
	}

	if updated > 0 {
		logger.Info("Past bookings swept", map[string]interface{}{
			"updated": updated,
		})
	}

	return updated, nil
}
