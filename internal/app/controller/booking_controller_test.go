package controller

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/greenharvest/greenharvest-backend/internal/app/model"
	"github.com/greenharvest/greenharvest-backend/internal/app/repository"
	"github.com/greenharvest/greenharvest-backend/internal/app/service"
	"github.com/greenharvest/greenharvest-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupBookingControllerTest(t *testing.T) (*BookingController, *gin.Engine, *model.User, *model.Farmer, *model.Product) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	bookingService := service.NewBookingService(
		repository.NewBookingRepository(testDB),
		repository.NewProductRepository(testDB),
		repository.NewFarmerRepository(testDB),
	)
	bookingController := NewBookingController(bookingService)

	user := &model.User{
		Email:        "customer@example.com",
		PasswordHash: "hash",
		FullName:     "Customer",
		Role:         model.RoleCustomer,
	}
	require.NoError(t, testDB.Create(user).Error)

	owner := &model.User{
		Email:        "owner@example.com",
		PasswordHash: "hash",
		FullName:     "Owner",
		Role:         model.RoleFarmer,
	}
	require.NoError(t, testDB.Create(owner).Error)

	farmer := &model.Farmer{
		UserID:   owner.ID,
		FarmName: "Sunny Acres",
		Status:   model.FarmerStatusApproved,
	}
	require.NoError(t, testDB.Create(farmer).Error)

	product := &model.Product{
		Name:          "Strawberries",
		Price:         6.00,
		Unit:          "kg",
		StockQuantity: 50,
		IsAvailable:   true,
		FarmerID:      farmer.ID,
	}
	require.NoError(t, testDB.Create(product).Error)

	gin.SetMode(gin.TestMode)
	router := gin.New()

	return bookingController, router, user, farmer, product
}

func TestBookingController_CreateBooking(t *testing.T) {
	controller, router, user, _, product := setupBookingControllerTest(t)

	router.POST("/bookings", func(c *gin.Context) {
		setUserIDInContext(c, user.ID)
		controller.CreateBooking(c)
	})

	t.Run("Valid booking", func(t *testing.T) {
		body, _ := json.Marshal(CreateBookingRequest{
			ProductID:   product.ID,
			BookingDate: time.Now().AddDate(0, 0, 7).Format("2006-01-02"),
			Quantity:    2,
			Notes:       "morning pickup",
		})
		req := httptest.NewRequest(http.MethodPost, "/bookings", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)

		var response map[string]interface{}
		err := json.Unmarshal(w.Body.Bytes(), &response)
		require.NoError(t, err)

		booking := response["booking"].(map[string]interface{})
		assert.Equal(t, "pending", booking["status"])
		assert.Equal(t, float64(12), booking["total_price"])
	})

	t.Run("Date outside the window", func(t *testing.T) {
		body, _ := json.Marshal(CreateBookingRequest{
			ProductID:   product.ID,
			BookingDate: time.Now().Format("2006-01-02"),
			Quantity:    1,
		})
		req := httptest.NewRequest(http.MethodPost, "/bookings", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Malformed date", func(t *testing.T) {
		body, _ := json.Marshal(CreateBookingRequest{
			ProductID:   product.ID,
			BookingDate: "next tuesday",
			Quantity:    1,
		})
		req := httptest.NewRequest(http.MethodPost, "/bookings", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Unknown product", func(t *testing.T) {
		body, _ := json.Marshal(CreateBookingRequest{
			ProductID:   99999,
			BookingDate: time.Now().AddDate(0, 0, 7).Format("2006-01-02"),
			Quantity:    1,
		})
		req := httptest.NewRequest(http.MethodPost, "/bookings", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestBookingController_ListMyBookings(t *testing.T) {
	controller, router, user, _, product := setupBookingControllerTest(t)

	router.POST("/bookings", func(c *gin.Context) {
		setUserIDInContext(c, user.ID)
		controller.CreateBooking(c)
	})
	router.GET("/bookings", func(c *gin.Context) {
		setUserIDInContext(c, user.ID)
		controller.ListMyBookings(c)
	})

	body, _ := json.Marshal(CreateBookingRequest{
		ProductID:   product.ID,
		BookingDate: time.Now().AddDate(0, 0, 7).Format("2006-01-02"),
		Quantity:    1,
	})
	req := httptest.NewRequest(http.MethodPost, "/bookings", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/bookings", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)
	assert.Equal(t, float64(1), response["count"])
}

func TestBookingController_ListFarmBookings_RequiresFarm(t *testing.T) {
	controller, router, user, _, _ := setupBookingControllerTest(t)

	router.GET("/farmers/me/bookings", func(c *gin.Context) {
		setUserIDInContext(c, user.ID)
		controller.ListFarmBookings(c)
	})

	req := httptest.NewRequest(http.MethodGet, "/farmers/me/bookings", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestBookingController_FarmerDecides(t *testing.T) {
	controller, router, user, farmer, product := setupBookingControllerTest(t)

	router.POST("/bookings", func(c *gin.Context) {
		setUserIDInContext(c, user.ID)
		controller.CreateBooking(c)
	})
	router.POST("/farmers/me/bookings/:id/confirm", func(c *gin.Context) {
		setUserIDInContext(c, farmer.UserID)
		controller.ConfirmBooking(c)
	})
	router.POST("/bookings/:id/cancel", func(c *gin.Context) {
		setUserIDInContext(c, user.ID)
		controller.CancelBooking(c)
	})

	body, _ := json.Marshal(CreateBookingRequest{
		ProductID:   product.ID,
		BookingDate: time.Now().AddDate(0, 0, 7).Format("2006-01-02"),
		Quantity:    1,
	})
	req := httptest.NewRequest(http.MethodPost, "/bookings", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	var created map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	bookingID := created["booking"].(map[string]interface{})["id"].(float64)
	idPath := strconv.Itoa(int(bookingID))

	req = httptest.NewRequest(http.MethodPost, "/farmers/me/bookings/"+idPath+"/confirm", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "confirmed")

	// The customer can still cancel a confirmed booking before pickup
	req = httptest.NewRequest(http.MethodPost, "/bookings/"+idPath+"/cancel", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "cancelled")
}
