package scheduler

import (
	"github.com/greenharvest/greenharvest-backend/internal/app/service"
	"github.com/greenharvest/greenharvest-backend/pkg/logger"
	"github.com/robfig/cron/v3"
)

// BookingScheduler settles past-dated bookings once a day.
type BookingScheduler struct {
	cron           *cron.Cron
	bookingService service.BookingService
}

func NewBookingScheduler(bookingService service.BookingService) *BookingScheduler {
	return &BookingScheduler{
		cron:           cron.New(),
		bookingService: bookingService,
	}
}

// Start registers the daily sweep. It runs shortly after midnight so
// bookings dated yesterday are settled before the morning.
func (s *BookingScheduler) Start() error {
	_, err := s.cron.AddFunc("10 0 * * *", func() {
		logger.Info("Starting scheduled booking sweep", nil)

		updated, err := s.bookingService.SweepPastBookings()
		if err != nil {
			logger.Error("Failed to sweep past bookings from scheduler", err)
			return
		}

		logger.Info("Scheduled booking sweep finished", map[string]interface{}{
			"updated": updated,
		})
	})

	if err != nil {
		logger.Error("Failed to add cron job for booking sweep", err)
		return err
	}

	s.cron.Start()
	logger.Info("Booking scheduler started successfully (daily at 00:10)", nil)

	return nil
}

// Stop stops the scheduler
func (s *BookingScheduler) Stop() {
	logger.Info("Stopping booking scheduler...", nil)
	s.cron.Stop()
	logger.Info("Booking scheduler stopped", nil)
}
