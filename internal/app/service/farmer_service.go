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
	ErrFarmerNotFound         = errors.New("farmer not found")
	ErrFarmerReviewNotPending = errors.New("farmer application is not pending")
)

type FarmerService interface {
	ListApprovedFarmers(search string) ([]model.Farmer, error)
	GetFarmerByID(id uint) (*model.Farmer, error)
	ListApplications(status model.FarmerStatus) ([]model.Farmer, error)
	ApproveApplication(farmerID, reviewerID uint) (*model.Farmer, error)
	RejectApplication(farmerID, reviewerID uint, reason string) (*model.Farmer, error)
}

type farmerService struct {
	farmerRepo repository.FarmerRepository
}

func NewFarmerService(farmerRepo repository.FarmerRepository) FarmerService {
	return &farmerService{farmerRepo: farmerRepo}
}

func (s *farmerService) ListApprovedFarmers(search string) ([]model.Farmer, error) {
	farmers, err := s.farmerRepo.FindApproved(search)
	if err != nil {
		logger.Error("Failed to list approved farmers", err, map[string]interface{}{
			"search": search,
		})
		return nil, err
	}
	return farmers, nil
}

// GetFarmerByID returns an approved farmer with their available products.
// Pending and rejected farmers are not publicly visible.
func (s *farmerService) GetFarmerByID(id uint) (*model.Farmer, error) {
	farmer, err := s.farmerRepo.FindByIDWithProducts(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFarmerNotFound
		}
		logger.Error("Failed to fetch farmer", err, map[string]interface{}{
			"farmer_id": id,
		})
		return nil, err
	}

	if farmer.Status != model.FarmerStatusApproved {
		logger.Debug("Farmer hidden from public view", map[string]interface{}{
			"farmer_id": id,
			"status":    farmer.Status,
		})
		return nil, ErrFarmerNotFound
	}

	return farmer, nil
}

func (s *farmerService) ListApplications(status model.FarmerStatus) ([]model.Farmer, error) {
	if status == "" {
		status = model.FarmerStatusPending
	}

	farmers, err := s.farmerRepo.FindByStatus(status)
	if err != nil {
		logger.Error("Failed to list farmer applications", err, map[string]interface{}{
			"status": status,
		})
		return nil, err
	}
	return farmers, nil
}

func (s *farmerService) ApproveApplication(farmerID, reviewerID uint) (*model.Farmer, error) {
	return s.reviewApplication(farmerID, reviewerID, model.FarmerStatusApproved, "")
}

func (s *farmerService) RejectApplication(farmerID, reviewerID uint, reason string) (*model.Farmer, error) {
	return s.reviewApplication(farmerID, reviewerID, model.FarmerStatusRejected, reason)
}

func (s *farmerService) reviewApplication(farmerID, reviewerID uint, decision model.FarmerStatus, reason string) (*model.Farmer, error) {
	logger.Info("Reviewing farmer application", map[string]interface{}{
		"farmer_id":   farmerID,
		"reviewer_id": reviewerID,
		"decision":    decision,
	})

	farmer, err := s.farmerRepo.FindByID(farmerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFarmerNotFound
		}
		logger.Error("Failed to fetch farmer application", err, map[string]interface{}{
			"farmer_id": farmerID,
		})
		return nil, err
	}

	if farmer.Status != model.FarmerStatusPending {
		logger.Warn("Review rejected: application already decided", map[string]interface{}{
			"farmer_id": farmerID,
			"status":    farmer.Status,
		})
		return nil, ErrFarmerReviewNotPending
	}

	now := time.Now()
	farmer.Status = decision
	farmer.ReviewedAt = &now
	farmer.ReviewedBy = &reviewerID
	farmer.RejectionReason = reason

	if err := s.farmerRepo.Update(farmer); err != nil {
		logger.Error("Failed to save farmer review", err, map[string]interface{}{
			"farmer_id": farmerID,
		})
		return nil, err
	}

	logger.Info("Farmer application reviewed", map[string]interface{}{
		"farmer_id": farmerID,
		"decision":  decision,
	})

	return farmer, nil
}
