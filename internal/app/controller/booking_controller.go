package controller

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/greenharvest/greenharvest-backend/internal/app/model"
	"github.com/greenharvest/greenharvest-backend/internal/app/service"
	apperrors "github.com/greenharvest/greenharvest-backend/internal/errors"
	"github.com/greenharvest/greenharvest-backend/internal/middleware"
)

type BookingController struct {
	bookingService service.BookingService
}

func NewBookingController(bookingService service.BookingService) *BookingController {
	return &BookingController{bookingService: bookingService}
}

type CreateBookingRequest struct {
	ProductID   uint   `json:"product_id" binding:"required"`
	BookingDate string `json:"booking_date" binding:"required"` // YYYY-MM-DD
	Quantity    int    `json:"quantity" binding:"required,gt=0"`
	Notes       string `json:"notes"`
}

// CreateBooking reserves produce for a future pickup date
// POST /api/v1/bookings
func (ctrl *BookingController) CreateBooking(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid booking request", map[string]interface{}{
			"user_id": userID,
			"error":   err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Please check the submitted fields")
		return
	}

	bookingDate, err := time.ParseInLocation("2006-01-02", req.BookingDate, time.Local)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidFormat, "Booking date must be YYYY-MM-DD")
		return
	}

	booking, err := ctrl.bookingService.CreateBooking(userID, req.ProductID, bookingDate, req.Quantity, req.Notes)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBookingDateInvalid):
			apperrors.BadRequest(c, apperrors.BookingDateInvalid, "Booking date must be between tomorrow and three months from now")
		case errors.Is(err, service.ErrBookingQuantityInvalid):
			apperrors.BadRequest(c, apperrors.ValidationInvalidRange, "Quantity must be positive")
		case errors.Is(err, service.ErrProductNotFound):
			apperrors.NotFound(c, apperrors.ProductNotFound, "Product not found")
		case errors.Is(err, service.ErrProductUnavailable):
			apperrors.Conflict(c, apperrors.ProductUnavailable, "This product is not available for booking")
		default:
			log.Error("Failed to create booking", err, map[string]interface{}{
				"user_id":    userID,
				"product_id": req.ProductID,
			})
			apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "create booking")
		}
		return
	}

	log.Info("Booking created", map[string]interface{}{
		"booking_id": booking.ID,
		"user_id":    userID,
	})

	c.JSON(http.StatusCreated, gin.H{
		"message": "Booking created successfully",
		"booking": booking,
	})
}

// ListMyBookings returns the caller's bookings ordered by pickup date
// GET /api/v1/bookings
func (ctrl *BookingController) ListMyBookings(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	bookings, err := ctrl.bookingService.ListUserBookings(userID)
	if err != nil {
		log.Error("Failed to list bookings", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "list bookings")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"bookings": bookings,
		"count":    len(bookings),
	})
}

// ListFarmBookings returns bookings made against the caller's farm
// GET /api/v1/farmers/me/bookings?status=
func (ctrl *BookingController) ListFarmBookings(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	status := model.BookingStatus(c.Query("status"))

	bookings, err := ctrl.bookingService.ListFarmerBookings(userID, status)
	if err != nil {
		if errors.Is(err, service.ErrFarmerNotFound) {
			apperrors.Forbidden(c, "A registered farm is required")
			return
		}
		log.Error("Failed to list farm bookings", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "list farm bookings")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"bookings": bookings,
		"count":    len(bookings),
	})
}

// CancelBooking cancels the caller's own booking
// POST /api/v1/bookings/:id/cancel
func (ctrl *BookingController) CancelBooking(c *gin.Context) {
	ctrl.transition(c, func(userID, bookingID uint) (*model.Booking, error) {
		return ctrl.bookingService.CancelBooking(userID, bookingID)
	}, "Booking cancelled")
}

// ConfirmBooking lets the farmer accept a pending booking
// POST /api/v1/farmers/me/bookings/:id/confirm
func (ctrl *BookingController) ConfirmBooking(c *gin.Context) {
	ctrl.transition(c, func(userID, bookingID uint) (*model.Booking, error) {
		return ctrl.bookingService.ConfirmBooking(userID, bookingID)
	}, "Booking confirmed")
}

// RejectBooking lets the farmer decline a pending booking
// POST /api/v1/farmers/me/bookings/:id/reject
func (ctrl *BookingController) RejectBooking(c *gin.Context) {
	ctrl.transition(c, func(userID, bookingID uint) (*model.Booking, error) {
		return ctrl.bookingService.RejectBooking(userID, bookingID)
	}, "Booking rejected")
}

// CompleteBooking marks a confirmed booking as picked up
// POST /api/v1/farmers/me/bookings/:id/complete
func (ctrl *BookingController) CompleteBooking(c *gin.Context) {
	ctrl.transition(c, func(userID, bookingID uint) (*model.Booking, error) {
		return ctrl.bookingService.CompleteBooking(userID, bookingID)
	}, "Booking completed")
}

func (ctrl *BookingController) transition(c *gin.Context, fn func(userID, bookingID uint) (*model.Booking, error), message string) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	bookingID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid booking id")
		return
	}

	booking, err := fn(userID, uint(bookingID))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBookingNotFound):
			apperrors.NotFound(c, apperrors.BookingNotFound, "Booking not found")
		case errors.Is(err, service.ErrBookingNotCancellable):
			apperrors.Conflict(c, apperrors.BookingNotCancellable, "This booking can no longer be cancelled")
		case errors.Is(err, service.ErrBookingNotPending):
			apperrors.Conflict(c, apperrors.BookingNotPending, "This booking is not in a state that allows this action")
		case errors.Is(err, service.ErrFarmerNotFound):
			apperrors.Forbidden(c, "A registered farm is required")
		default:
			log.Error("Booking transition failed", err, map[string]interface{}{
				"user_id":    userID,
				"booking_id": bookingID,
			})
			apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "update booking")
		}
		return
	}

	log.Info(message, map[string]interface{}{
		"booking_id": booking.ID,
		"user_id":    userID,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": message,
		"booking": booking,
	})
}
