package repository

import (
	"github.com/greenharvest/greenharvest-backend/internal/app/model"
	"github.com/greenharvest/greenharvest-backend/pkg/logger"
	"gorm.io/gorm"
)

type FarmerRepository interface {
	Create(farmer *model.Farmer) error
	FindByID(id uint) (*model.Farmer, error)
	FindByIDWithProducts(id uint) (*model.Farmer, error)
	FindByUserID(userID uint) (*model.Farmer, error)
	FindApproved(search string) ([]model.Farmer, error)
	FindByStatus(status model.FarmerStatus) ([]model.Farmer, error)
	Update(farmer *model.Farmer) error
}

type farmerRepository struct {
	db *gorm.DB
}

func NewFarmerRepository(db *gorm.DB) FarmerRepository {
	return &farmerRepository{db: db}
}

func (r *farmerRepository) Create(farmer *model.Farmer) error {
	if err := r.db.Create(farmer).Error; err != nil {
		logger.Error("Failed to create farmer in database", err, map[string]interface{}{
			"user_id":   farmer.UserID,
			"farm_name": farmer.FarmName,
		})
		return err
	}
	return nil
}

func (r *farmerRepository) FindByID(id uint) (*model.Farmer, error) {
	var farmer model.Farmer
	if err := r.db.First(&farmer, id).Error; err != nil {
		return nil, err
	}
	return &farmer, nil
}

func (r *farmerRepository) FindByIDWithProducts(id uint) (*model.Farmer, error) {
	var farmer model.Farmer
	err := r.db.
		Preload("Products", "is_available = ?", true).
		Preload("Products.Category").
		First(&farmer, id).Error
	if err != nil {
		return nil, err
	}
	return &farmer, nil
}

func (r *farmerRepository) FindByUserID(userID uint) (*model.Farmer, error) {
	var farmer model.Farmer
	if err := r.db.Where("user_id = ?", userID).First(&farmer).Error; err != nil {
		return nil, err
	}
	return &farmer, nil
}

func (r *farmerRepository) FindApproved(search string) ([]model.Farmer, error) {
	query := r.db.Where("status = ?", model.FarmerStatusApproved)
	if search != "" {
		like := "%" + search + "%"
		query = query.Where("farm_name LIKE ? OR farm_location LIKE ?", like, like)
	}

	var farmers []model.Farmer
	if err := query.Order("farm_name").Find(&farmers).Error; err != nil {
		logger.Error("Failed to list approved farmers", err, map[string]interface{}{
			"search": search,
		})
		return nil, err
	}
	return farmers, nil
}

func (r *farmerRepository) FindByStatus(status model.FarmerStatus) ([]model.Farmer, error) {
	var farmers []model.Farmer
	err := r.db.Where("status = ?", status).Order("created_at").Find(&farmers).Error
	if err != nil {
		logger.Error("Failed to list farmers by status", err, map[string]interface{}{
			"status": status,
		})
		return nil, err
	}
	return farmers, nil
}

func (r *farmerRepository) Update(farmer *model.Farmer) error {
	if err := r.db.Save(farmer).Error; err != nil {
		logger.Error("Failed to update farmer in database", err, map[string]interface{}{
			"farmer_id": farmer.ID,
		})
		return err
	}
	return nil
}
