package service

import (
	"testing"

	"github.com/greenharvest/greenharvest-backend/internal/app/repository"
	"github.com/greenharvest/greenharvest-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupWishlistServiceTest(t *testing.T) (WishlistService, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	svc := NewWishlistService(
		repository.NewWishlistRepository(testDB),
		repository.NewProductRepository(testDB),
	)

	return svc, testDB
}

func TestWishlistService_AddAndGet(t *testing.T) {
	svc, testDB := setupWishlistServiceTest(t)
	customer, _, product := createBookingFixtures(t, testDB)

	item, err := svc.AddToWishlist(customer.ID, product.ID)
	require.NoError(t, err)
	assert.Equal(t, product.ID, item.ProductID)

	// Saving the same product twice is rejected
	_, err = svc.AddToWishlist(customer.ID, product.ID)
	assert.ErrorIs(t, err, ErrWishlistItemAlreadyExists)

	_, err = svc.AddToWishlist(customer.ID, 99999)
	assert.ErrorIs(t, err, ErrProductNotFound)

	items, err := svc.GetWishlist(customer.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Heirloom Tomatoes", items[0].Product.Name)

	// Another user's wishlist is independent
	items, err = svc.GetWishlist(customer.ID + 1000)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestWishlistService_Remove(t *testing.T) {
	svc, testDB := setupWishlistServiceTest(t)
	customer, _, product := createBookingFixtures(t, testDB)

	_, err := svc.AddToWishlist(customer.ID, product.ID)
	require.NoError(t, err)

	require.NoError(t, svc.RemoveFromWishlist(customer.ID, product.ID))

	items, err := svc.GetWishlist(customer.ID)
	require.NoError(t, err)
	assert.Empty(t, items)

	err = svc.RemoveFromWishlist(customer.ID, product.ID)
	assert.ErrorIs(t, err, ErrWishlistItemNotFound)
}
