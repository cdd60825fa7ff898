package service

import (
	"testing"
	"time"

	"github.com/greenharvest/greenharvest-backend/internal/app/model"
	"github.com/greenharvest/greenharvest-backend/internal/app/repository"
	"github.com/greenharvest/greenharvest-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupBookingServiceTest(t *testing.T) (*bookingService, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	svc := NewBookingService(
		repository.NewBookingRepository(testDB),
		repository.NewProductRepository(testDB),
		repository.NewFarmerRepository(testDB),
	).(*bookingService)

	return svc, testDB
}

// createBookingFixtures seeds a customer, an approved farmer and one of
// the farmer's products.
func createBookingFixtures(t *testing.T, testDB *gorm.DB) (customer model.User, farmer model.Farmer, product model.Product) {
	customer = model.User{
		Email:        "customer@example.com",
		PasswordHash: "hash",
		FullName:     "Customer",
		Role:         model.RoleCustomer,
	}
	require.NoError(t, testDB.Create(&customer).Error)

	owner := model.User{
		Email:        "owner@example.com",
		PasswordHash: "hash",
		FullName:     "Owner",
		Role:         model.RoleFarmer,
	}
	require.NoError(t, testDB.Create(&owner).Error)

	farmer = model.Farmer{
		UserID:       owner.ID,
		FarmName:     "Sunny Acres",
		FarmLocation: "Valley Road 3",
		Status:       model.FarmerStatusApproved,
	}
	require.NoError(t, testDB.Create(&farmer).Error)

	product = model.Product{
		Name:          "Heirloom Tomatoes",
		Price:         4.50,
		Unit:          "kg",
		StockQuantity: 100,
		IsAvailable:   true,
		FarmerID:      farmer.ID,
	}
	require.NoError(t, testDB.Create(&product).Error)

	return customer, farmer, product
}

func TestBookingService_CreateBooking_Window(t *testing.T) {
	svc, testDB := setupBookingServiceTest(t)
	customer, _, product := createBookingFixtures(t, testDB)

	now := time.Date(2026, 3, 15, 14, 30, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	tests := []struct {
		name    string
		date    time.Time
		wantErr error
	}{
		{
			name:    "Tomorrow is allowed",
			date:    time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC),
			wantErr: nil,
		},
		{
			name:    "Today is rejected",
			date:    time.Date(2026, 3, 15, 23, 59, 0, 0, time.UTC),
			wantErr: ErrBookingDateInvalid,
		},
		{
			name:    "Past date is rejected",
			date:    time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
			wantErr: ErrBookingDateInvalid,
		},
		{
			name:    "Three months out is allowed",
			date:    time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC),
			wantErr: nil,
		},
		{
			name:    "Past three months is rejected",
			date:    time.Date(2026, 6, 16, 0, 0, 0, 0, time.UTC),
			wantErr: ErrBookingDateInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			booking, err := svc.CreateBooking(customer.ID, product.ID, tt.date, 2, "")

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, booking)
			} else {
				require.NoError(t, err)
				require.NotNil(t, booking)
				assert.Equal(t, model.BookingStatusPending, booking.Status)
				// Only the calendar day is stored
				assert.Equal(t, 0, booking.BookingDate.Hour())
			}
		})
	}
}

func TestBookingService_CreateBooking_PriceSnapshot(t *testing.T) {
	svc, testDB := setupBookingServiceTest(t)
	customer, _, product := createBookingFixtures(t, testDB)

	svc.now = func() time.Time { return time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC) }
	date := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)

	booking, err := svc.CreateBooking(customer.ID, product.ID, date, 3, "morning pickup")
	require.NoError(t, err)
	assert.Equal(t, 4.50, booking.UnitPrice)
	assert.Equal(t, 13.50, booking.TotalPrice)
	assert.Equal(t, "morning pickup", booking.Notes)

	// Raising the catalog price does not touch the existing booking
	require.NoError(t, testDB.Model(&model.Product{}).Where("id = ?", product.ID).Update("price", 9.99).Error)

	reloaded, err := svc.bookingRepo.FindByID(booking.ID)
	require.NoError(t, err)
	assert.Equal(t, 4.50, reloaded.UnitPrice)
	assert.Equal(t, 13.50, reloaded.TotalPrice)
}

func TestBookingService_CreateBooking_Validation(t *testing.T) {
	svc, testDB := setupBookingServiceTest(t)
	customer, _, product := createBookingFixtures(t, testDB)

	svc.now = func() time.Time { return time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC) }
	date := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)

	_, err := svc.CreateBooking(customer.ID, product.ID, date, 0, "")
	assert.ErrorIs(t, err, ErrBookingQuantityInvalid)

	_, err = svc.CreateBooking(customer.ID, 99999, date, 1, "")
	assert.ErrorIs(t, err, ErrProductNotFound)

	require.NoError(t, testDB.Model(&model.Product{}).Where("id = ?", product.ID).Update("is_available", false).Error)
	_, err = svc.CreateBooking(customer.ID, product.ID, date, 1, "")
	assert.ErrorIs(t, err, ErrProductUnavailable)
}

func TestBookingService_Transitions(t *testing.T) {
	svc, testDB := setupBookingServiceTest(t)
	customer, farmer, product := createBookingFixtures(t, testDB)

	svc.now = func() time.Time { return time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC) }
	date := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)

	t.Run("Farmer confirms then completes", func(t *testing.T) {
		booking, err := svc.CreateBooking(customer.ID, product.ID, date, 1, "")
		require.NoError(t, err)

		confirmed, err := svc.ConfirmBooking(farmer.UserID, booking.ID)
		require.NoError(t, err)
		assert.Equal(t, model.BookingStatusConfirmed, confirmed.Status)

		// confirming twice fails
		_, err = svc.ConfirmBooking(farmer.UserID, booking.ID)
		assert.ErrorIs(t, err, ErrBookingNotPending)

		completed, err := svc.CompleteBooking(farmer.UserID, booking.ID)
		require.NoError(t, err)
		assert.Equal(t, model.BookingStatusCompleted, completed.Status)
	})

	t.Run("Farmer rejects pending booking", func(t *testing.T) {
		booking, err := svc.CreateBooking(customer.ID, product.ID, date, 1, "")
		require.NoError(t, err)

		rejected, err := svc.RejectBooking(farmer.UserID, booking.ID)
		require.NoError(t, err)
		assert.Equal(t, model.BookingStatusRejected, rejected.Status)
	})

	t.Run("Customer cancels pending booking", func(t *testing.T) {
		booking, err := svc.CreateBooking(customer.ID, product.ID, date, 1, "")
		require.NoError(t, err)

		cancelled, err := svc.CancelBooking(customer.ID, booking.ID)
		require.NoError(t, err)
		assert.Equal(t, model.BookingStatusCancelled, cancelled.Status)

		_, err = svc.CancelBooking(customer.ID, booking.ID)
		assert.ErrorIs(t, err, ErrBookingNotCancellable)
	})

	t.Run("Another customer cannot cancel", func(t *testing.T) {
		booking, err := svc.CreateBooking(customer.ID, product.ID, date, 1, "")
		require.NoError(t, err)

		_, err = svc.CancelBooking(customer.ID+1000, booking.ID)
		assert.ErrorIs(t, err, ErrBookingNotFound)
	})

	t.Run("Completing a pending booking fails", func(t *testing.T) {
		booking, err := svc.CreateBooking(customer.ID, product.ID, date, 1, "")
		require.NoError(t, err)

		_, err = svc.CompleteBooking(farmer.UserID, booking.ID)
		assert.ErrorIs(t, err, ErrBookingNotPending)
	})
}

func TestBookingService_ListFarmerBookings(t *testing.T) {
	svc, testDB := setupBookingServiceTest(t)
	customer, farmer, product := createBookingFixtures(t, testDB)

	svc.now = func() time.Time { return time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC) }

	_, err := svc.CreateBooking(customer.ID, product.ID, time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC), 1, "")
	require.NoError(t, err)
	booking, err := svc.CreateBooking(customer.ID, product.ID, time.Date(2026, 4, 2, 0, 0, 0, 0, time.UTC), 1, "")
	require.NoError(t, err)
	_, err = svc.ConfirmBooking(farmer.UserID, booking.ID)
	require.NoError(t, err)

	all, err := svc.ListFarmerBookings(farmer.UserID, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	confirmed, err := svc.ListFarmerBookings(farmer.UserID, model.BookingStatusConfirmed)
	require.NoError(t, err)
	assert.Len(t, confirmed, 1)

	_, err = svc.ListFarmerBookings(customer.ID, "")
	assert.ErrorIs(t, err, ErrFarmerNotFound)
}

func TestBookingService_SweepPastBookings(t *testing.T) {
	svc, testDB := setupBookingServiceTest(t)
	customer, farmer, product := createBookingFixtures(t, testDB)

	svc.now = func() time.Time { return time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC) }

	pending, err := svc.CreateBooking(customer.ID, product.ID, time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC), 1, "")
	require.NoError(t, err)
	confirmed, err := svc.CreateBooking(customer.ID, product.ID, time.Date(2026, 3, 21, 0, 0, 0, 0, time.UTC), 1, "")
	require.NoError(t, err)
	_, err = svc.ConfirmBooking(farmer.UserID, confirmed.ID)
	require.NoError(t, err)
	future, err := svc.CreateBooking(customer.ID, product.ID, time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC), 1, "")
	require.NoError(t, err)

	// Advance the clock past the first two pickup dates
	svc.now = func() time.Time { return time.Date(2026, 3, 25, 0, 10, 0, 0, time.UTC) }

	updated, err := svc.SweepPastBookings()
	require.NoError(t, err)
	assert.Equal(t, 2, updated)

	swept, err := svc.bookingRepo.FindByID(pending.ID)
	require.NoError(t, err)
	assert.Equal(t, model.BookingStatusCancelled, swept.Status)

	swept, err = svc.bookingRepo.FindByID(confirmed.ID)
	require.NoError(t, err)
	assert.Equal(t, model.BookingStatusCompleted, swept.Status)

	swept, err = svc.bookingRepo.FindByID(future.ID)
	require.NoError(t, err)
	assert.Equal(t, model.BookingStatusPending, swept.Status)

	// A second sweep finds nothing left to settle
	updated, err = svc.SweepPastBookings()
	require.NoError(t, err)
	assert.Equal(t, 0, updated)
}
