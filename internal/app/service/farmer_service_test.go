package service

import (
	"testing"

	"github.com/greenharvest/greenharvest-backend/internal/app/model"
	"github.com/greenharvest/greenharvest-backend/internal/app/repository"
	"github.com/greenharvest/greenharvest-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupFarmerServiceTest(t *testing.T) (FarmerService, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	return NewFarmerService(repository.NewFarmerRepository(testDB)), testDB
}

func createFarmerWithStatus(t *testing.T, testDB *gorm.DB, email, farmName string, status model.FarmerStatus) model.Farmer {
	user := model.User{
		Email:        email,
		PasswordHash: "hash",
		FullName:     "Owner",
		Role:         model.RoleFarmer,
	}
	require.NoError(t, testDB.Create(&user).Error)

	farmer := model.Farmer{
		UserID:       user.ID,
		FarmName:     farmName,
		FarmLocation: "Valley Road 3",
		Status:       status,
	}
	require.NoError(t, testDB.Create(&farmer).Error)
	return farmer
}

func TestFarmerService_ListApprovedFarmers(t *testing.T) {
	svc, testDB := setupFarmerServiceTest(t)

	createFarmerWithStatus(t, testDB, "a@example.com", "Sunny Acres", model.FarmerStatusApproved)
	createFarmerWithStatus(t, testDB, "b@example.com", "Green Valley", model.FarmerStatusApproved)
	createFarmerWithStatus(t, testDB, "c@example.com", "Hidden Hollow", model.FarmerStatusPending)

	farmers, err := svc.ListApprovedFarmers("")
	require.NoError(t, err)
	assert.Len(t, farmers, 2)

	farmers, err = svc.ListApprovedFarmers("Valley")
	require.NoError(t, err)
	require.Len(t, farmers, 1)
	assert.Equal(t, "Green Valley", farmers[0].FarmName)
}

func TestFarmerService_GetFarmerByID(t *testing.T) {
	svc, testDB := setupFarmerServiceTest(t)

	approved := createFarmerWithStatus(t, testDB, "a@example.com", "Sunny Acres", model.FarmerStatusApproved)
	pending := createFarmerWithStatus(t, testDB, "b@example.com", "Hidden Hollow", model.FarmerStatusPending)

	farmer, err := svc.GetFarmerByID(approved.ID)
	require.NoError(t, err)
	assert.Equal(t, "Sunny Acres", farmer.FarmName)

	// Pending applicants are not publicly visible
	_, err = svc.GetFarmerByID(pending.ID)
	assert.ErrorIs(t, err, ErrFarmerNotFound)

	_, err = svc.GetFarmerByID(99999)
	assert.ErrorIs(t, err, ErrFarmerNotFound)
}

func TestFarmerService_ReviewApplication(t *testing.T) {
	svc, testDB := setupFarmerServiceTest(t)
	reviewerID := uint(42)

	t.Run("Approve pending application", func(t *testing.T) {
		pending := createFarmerWithStatus(t, testDB, "approve@example.com", "Sunny Acres", model.FarmerStatusPending)

		farmer, err := svc.ApproveApplication(pending.ID, reviewerID)
		require.NoError(t, err)
		assert.Equal(t, model.FarmerStatusApproved, farmer.Status)
		require.NotNil(t, farmer.ReviewedBy)
		assert.Equal(t, reviewerID, *farmer.ReviewedBy)
		assert.NotNil(t, farmer.ReviewedAt)

		// Re-reviewing a decided application fails
		_, err = svc.ApproveApplication(pending.ID, reviewerID)
		assert.ErrorIs(t, err, ErrFarmerReviewNotPending)
	})

	t.Run("Reject with reason", func(t *testing.T) {
		pending := createFarmerWithStatus(t, testDB, "reject@example.com", "Dodgy Farm", model.FarmerStatusPending)

		farmer, err := svc.RejectApplication(pending.ID, reviewerID, "incomplete paperwork")
		require.NoError(t, err)
		assert.Equal(t, model.FarmerStatusRejected, farmer.Status)
		assert.Equal(t, "incomplete paperwork", farmer.RejectionReason)
	})

	t.Run("Unknown application", func(t *testing.T) {
		_, err := svc.ApproveApplication(99999, reviewerID)
		assert.ErrorIs(t, err, ErrFarmerNotFound)
	})
}

func TestFarmerService_ListApplications(t *testing.T) {
	svc, testDB := setupFarmerServiceTest(t)

	createFarmerWithStatus(t, testDB, "a@example.com", "Sunny Acres", model.FarmerStatusPending)
	createFarmerWithStatus(t, testDB, "b@example.com", "Green Valley", model.FarmerStatusApproved)

	// Empty status defaults to pending
	apps, err := svc.ListApplications("")
	require.NoError(t, err)
	require.Len(t, apps, 1)
	assert.Equal(t, "Sunny Acres", apps[0].FarmName)

	apps, err = svc.ListApplications(model.FarmerStatusApproved)
	require.NoError(t, err)
	assert.Len(t, apps, 1)
}
