package service

import (
	"testing"
	"time"

	"github.com/greenharvest/greenharvest-backend/internal/app/model"
	"github.com/greenharvest/greenharvest-backend/internal/app/repository"
	"github.com/greenharvest/greenharvest-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupAuthServiceTest(t *testing.T) AuthService {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	userRepo := repository.NewUserRepository(testDB)
	farmerRepo := repository.NewFarmerRepository(testDB)

	return NewAuthService(
		userRepo,
		farmerRepo,
		"test-jwt-secret",
		15*time.Minute,
		7*24*time.Hour,
	)
}

func TestAuthService_Register(t *testing.T) {
	authService := setupAuthServiceTest(t)

	tests := []struct {
		name     string
		email    string
		password string
		fullName string
		phone    string
		wantErr  error
	}{
		{
			name:     "Valid registration",
			email:    "test@example.com",
			password: "password123",
			fullName: "Test User",
			phone:    "070-1234-5678",
			wantErr:  nil,
		},
		{
			name:     "Duplicate email",
			email:    "test@example.com",
			password: "password456",
			fullName: "Another User",
			phone:    "070-8765-4321",
			wantErr:  ErrEmailAlreadyExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, tokens, err := authService.Register(
				tt.email,
				tt.password,
				tt.fullName,
				tt.phone,
			)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, user)
				assert.Nil(t, tokens)
			} else {
				require.NoError(t, err)
				require.NotNil(t, user)
				require.NotNil(t, tokens)
				assert.Equal(t, tt.email, user.Email)
				assert.Equal(t, tt.fullName, user.FullName)
				assert.Equal(t, model.RoleCustomer, user.Role)
				assert.NotEmpty(t, tokens.AccessToken)
				assert.NotEmpty(t, tokens.RefreshToken)
			}
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	authService := setupAuthServiceTest(t)

	email := "login@example.com"
	password := "password123"
	_, _, err := authService.Register(email, password, "Login User", "")
	require.NoError(t, err)

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{
			name:     "Valid credentials",
			email:    email,
			password: password,
			wantErr:  nil,
		},
		{
			name:     "Wrong password",
			email:    email,
			password: "wrong-password",
			wantErr:  ErrInvalidCredentials,
		},
		{
			name:     "Unknown email",
			email:    "nobody@example.com",
			password: password,
			wantErr:  ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, tokens, err := authService.Login(tt.email, tt.password)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, user)
				assert.Nil(t, tokens)
			} else {
				require.NoError(t, err)
				require.NotNil(t, user)
				assert.NotEmpty(t, tokens.AccessToken)
			}
		})
	}
}

func TestAuthService_UpdateProfile(t *testing.T) {
	authService := setupAuthServiceTest(t)

	user, _, err := authService.Register("profile@example.com", "password123", "Before", "")
	require.NoError(t, err)

	updated, err := authService.UpdateProfile(user.ID, ProfileUpdate{
		FullName: "After",
		City:     "Lisbon",
		Address:  "Rua das Flores 1",
	})
	require.NoError(t, err)
	assert.Equal(t, "After", updated.FullName)
	assert.Equal(t, "Lisbon", updated.City)
	assert.Equal(t, "Rua das Flores 1", updated.Address)

	// Empty fields leave existing values untouched
	updated, err = authService.UpdateProfile(user.ID, ProfileUpdate{Phone: "070-0000-0000"})
	require.NoError(t, err)
	assert.Equal(t, "After", updated.FullName)
	assert.Equal(t, "070-0000-0000", updated.Phone)

	_, err = authService.UpdateProfile(99999, ProfileUpdate{FullName: "Ghost"})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestAuthService_RegisterFarmer(t *testing.T) {
	authService := setupAuthServiceTest(t)

	user, _, err := authService.Register("farm@example.com", "password123", "Farm Owner", "")
	require.NoError(t, err)
	require.Equal(t, model.RoleCustomer, user.Role)

	farmer, err := authService.RegisterFarmer(user.ID, "Sunny Acres", "Organic vegetables", "Valley Road 3")
	require.NoError(t, err)
	assert.Equal(t, model.FarmerStatusPending, farmer.Status)
	assert.Equal(t, "Sunny Acres", farmer.FarmName)

	// Role is promoted once the application is filed
	reloaded, err := authService.GetUserByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, model.RoleFarmer, reloaded.Role)
	require.NotNil(t, reloaded.Farmer)
	assert.Equal(t, model.FarmerStatusPending, reloaded.Farmer.Status)

	// A second application is rejected
	_, err = authService.RegisterFarmer(user.ID, "Second Farm", "", "Elsewhere")
	assert.ErrorIs(t, err, ErrFarmerAlreadyRegistered)
}

func TestAuthService_RefreshTokens(t *testing.T) {
	authService := setupAuthServiceTest(t)

	_, tokens, err := authService.Register("refresh@example.com", "password123", "Refresh User", "")
	require.NoError(t, err)

	refreshed, err := authService.RefreshTokens(tokens.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.NotEmpty(t, refreshed.RefreshToken)

	_, err = authService.RefreshTokens("not-a-token")
	assert.Error(t, err)
}
