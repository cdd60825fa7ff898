package service

import (
	"errors"
	"time"

	"github.com/greenharvest/greenharvest-backend/internal/app/model"
	"github.com/greenharvest/greenharvest-backend/internal/app/repository"
	"github.com/greenharvest/greenharvest-backend/pkg/logger"
	"github.com/greenharvest/greenharvest-backend/pkg/util"
	"gorm.io/gorm"
)

var (
	ErrEmailAlreadyExists      = errors.New("email already exists")
	ErrInvalidCredentials      = errors.New("invalid email or password")
	ErrUserNotFound            = errors.New("user not found")
	ErrFarmerAlreadyRegistered = errors.New("a farm is already registered for this account")
)

// ProfileUpdate carries the optional account fields a user may change.
// Empty strings mean "leave unchanged".
type ProfileUpdate struct {
	FullName  string
	Phone     string
	City      string
	Address   string
	AvatarURL string
}

type AuthService interface {
	Register(email, password, fullName, phone string) (*model.User, *util.TokenPair, error)
	Login(email, password string) (*model.User, *util.TokenPair, error)
	RefreshTokens(refreshToken string) (*util.TokenPair, error)
	GetUserByID(id uint) (*model.User, error)
	UpdateProfile(userID uint, update ProfileUpdate) (*model.User, error)
	RegisterFarmer(userID uint, farmName, farmDescription, farmLocation string) (*model.Farmer, error)
}

type authService struct {
	userRepo      repository.UserRepository
	farmerRepo    repository.FarmerRepository
	jwtSecret     string
	accessExpiry  time.Duration
	refreshExpiry time.Duration
}

func NewAuthService(
	userRepo repository.UserRepository,
	farmerRepo repository.FarmerRepository,
	jwtSecret string,
	accessExpiry, refreshExpiry time.Duration,
) AuthService {
	return &authService{
		userRepo:      userRepo,
		farmerRepo:    farmerRepo,
		jwtSecret:     jwtSecret,
		accessExpiry:  accessExpiry,
		refreshExpiry: refreshExpiry,
	}
}

func (s *authService) Register(email, password, fullName, phone string) (*model.User, *util.TokenPair, error) {
	logger.Info("Attempting user registration", map[string]interface{}{
		"email":     email,
		"full_name": fullName,
	})

	// Check if user already exists
	existingUser, err := s.userRepo.FindByEmail(email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		logger.Error("Failed to check existing user", err, map[string]interface{}{
			"email": email,
		})
		return nil, nil, err
	}
	if existingUser != nil {
		logger.Warn("Registration failed: email already exists", map[string]interface{}{
			"email": email,
		})
		return nil, nil, ErrEmailAlreadyExists
	}

	// Hash password
	hashedPassword, err := util.HashPassword(password)
	if err != nil {
		logger.Error("Failed to hash password", err, map[string]interface{}{
			"email": email,
		})
		return nil, nil, err
	}

	// New accounts always start as customers. The farmer role is granted
	// through RegisterFarmer.
	user := &model.User{
		Email:        email,
		PasswordHash: hashedPassword,
		FullName:     fullName,
		Phone:        phone,
		Role:         model.RoleCustomer,
	}

	if err := s.userRepo.Create(user); err != nil {
		logger.Error("Failed to create user in database", err, map[string]interface{}{
			"email": email,
		})
		return nil, nil, err
	}

	// Generate tokens
	tokens, err := util.GenerateTokenPair(
		user.ID,
		user.Email,
		string(user.Role),
		s.jwtSecret,
		s.accessExpiry,
		s.refreshExpiry,
	)
	if err != nil {
		logger.Error("Failed to generate tokens", err, map[string]interface{}{
			"user_id": user.ID,
			"email":   email,
		})
		return nil, nil, err
	}

	logger.Info("User registered successfully", map[string]interface{}{
		"user_id": user.ID,
		"email":   email,
		"role":    user.Role,
	})

	return user, tokens, nil
}

func (s *authService) Login(email, password string) (*model.User, *util.TokenPair, error) {
	logger.Info("Login attempt", map[string]interface{}{
		"email": email,
	})

	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Login failed: user not found", map[string]interface{}{
				"email": email,
			})
			return nil, nil, ErrInvalidCredentials
		}
		logger.Error("Failed to find user", err, map[string]interface{}{
			"email": email,
		})
		return nil, nil, err
	}

	if !util.VerifyPassword(user.PasswordHash, password) {
		logger.Warn("Login failed: invalid password", map[string]interface{}{
			"email":   email,
			"user_id": user.ID,
		})
		return nil, nil, ErrInvalidCredentials
	}

	tokens, err := util.GenerateTokenPair(
		user.ID,
		user.Email,
		string(user.Role),
		s.jwtSecret,
		s.accessExpiry,
		s.refreshExpiry,
	)
	if err != nil {
		logger.Error("Failed to generate tokens", err, map[string]interface{}{
			"user_id": user.ID,
			"email":   email,
		})
		return nil, nil, err
	}

	logger.Info("User logged in successfully", map[string]interface{}{
		"user_id": user.ID,
		"email":   email,
		"role":    user.Role,
	})

	return user, tokens, nil
}

func (s *authService) RefreshTokens(refreshToken string) (*util.TokenPair, error) {
	claims, err := util.ValidateToken(refreshToken, s.jwtSecret)
	if err != nil {
		logger.Warn("Token refresh failed: invalid refresh token", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, err
	}

	// Re-read the user so a role change since issuance is reflected in
	// the new tokens.
	user, err := s.userRepo.FindByID(claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		logger.Error("Failed to fetch user for token refresh", err, map[string]interface{}{
			"user_id": claims.UserID,
		})
		return nil, err
	}

	tokens, err := util.GenerateTokenPair(
		user.ID,
		user.Email,
		string(user.Role),
		s.jwtSecret,
		s.accessExpiry,
		s.refreshExpiry,
	)
	if err != nil {
		logger.Error("Failed to generate refreshed tokens", err, map[string]interface{}{
			"user_id": user.ID,
		})
		return nil, err
	}

	logger.Info("Tokens refreshed", map[string]interface{}{
		"user_id": user.ID,
	})

	return tokens, nil
}

func (s *authService) GetUserByID(id uint) (*model.User, error) {
	logger.Debug("Fetching user by ID", map[string]interface{}{
		"user_id": id,
	})

	user, err := s.userRepo.FindByIDWithFarmer(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("User not found", map[string]interface{}{
				"user_id": id,
			})
			return nil, ErrUserNotFound
		}
		logger.Error("Failed to fetch user", err, map[string]interface{}{
			"user_id": id,
		})
		return nil, err
	}

	return user, nil
}

func (s *authService) UpdateProfile(userID uint, update ProfileUpdate) (*model.User, error) {
	logger.Info("Updating user profile", map[string]interface{}{
		"user_id": userID,
	})

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("User not found for profile update", map[string]interface{}{
				"user_id": userID,
			})
			return nil, ErrUserNotFound
		}
		logger.Error("Failed to fetch user for profile update", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	// Update fields if provided
	updated := false
	if update.FullName != "" && update.FullName != user.FullName {
		user.FullName = update.FullName
		updated = true
	}
	if update.Phone != "" && update.Phone != user.Phone {
		user.Phone = update.Phone
		updated = true
	}
	if update.City != "" && update.City != user.City {
		user.City = update.City
		updated = true
	}
	if update.Address != "" && update.Address != user.Address {
		user.Address = update.Address
		updated = true
	}
	if update.AvatarURL != "" && update.AvatarURL != user.AvatarURL {
		user.AvatarURL = update.AvatarURL
		updated = true
	}

	if !updated {
		logger.Debug("No changes detected for user profile", map[string]interface{}{
			"user_id": userID,
		})
		return user, nil
	}

	if err := s.userRepo.Update(user); err != nil {
		logger.Error("Failed to update user profile", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	logger.Info("User profile updated successfully", map[string]interface{}{
		"user_id": user.ID,
	})

	return user, nil
}

// RegisterFarmer files a farm application for the user. The farmer row
// starts in pending status and the account role is promoted to farmer so
// the user can see their application state.
func (s *authService) RegisterFarmer(userID uint, farmName, farmDescription, farmLocation string) (*model.Farmer, error) {
	logger.Info("Registering farmer profile", map[string]interface{}{
		"user_id":   userID,
		"farm_name": farmName,
	})

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		logger.Error("Failed to fetch user for farmer registration", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	existing, err := s.farmerRepo.FindByUserID(userID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		logger.Error("Failed to check existing farmer profile", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}
	if existing != nil {
		logger.Warn("Farmer registration rejected: profile already exists", map[string]interface{}{
			"user_id":   userID,
			"farmer_id": existing.ID,
			"status":    existing.Status,
		})
		return nil, ErrFarmerAlreadyRegistered
	}

	farmer := &model.Farmer{
		UserID:          userID,
		FarmName:        farmName,
		FarmDescription: farmDescription,
		FarmLocation:    farmLocation,
		Status:          model.FarmerStatusPending,
	}

	if err := s.farmerRepo.Create(farmer); err != nil {
		logger.Error("Failed to create farmer profile", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	if user.Role == model.RoleCustomer {
		user.Role = model.RoleFarmer
		if err := s.userRepo.Update(user); err != nil {
			logger.Error("Failed to promote user role to farmer", err, map[string]interface{}{
				"user_id": userID,
			})
			return nil, err
		}
	}

	logger.Info("Farmer profile registered", map[string]interface{}{
		"user_id":   userID,
		"farmer_id": farmer.ID,
		"status":    farmer.Status,
	})

	return farmer, nil
}
