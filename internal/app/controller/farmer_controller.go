package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/greenharvest/greenharvest-backend/internal/app/model"
	"github.com/greenharvest/greenharvest-backend/internal/app/service"
	apperrors "github.com/greenharvest/greenharvest-backend/internal/errors"
	"github.com/greenharvest/greenharvest-backend/internal/middleware"
)

type FarmerController struct {
	farmerService service.FarmerService
	authService   service.AuthService
}

func NewFarmerController(farmerService service.FarmerService, authService service.AuthService) *FarmerController {
	return &FarmerController{
		farmerService: farmerService,
		authService:   authService,
	}
}

type FarmerApplicationRequest struct {
	FarmName        string `json:"farm_name" binding:"required"`
	FarmDescription string `json:"farm_description"`
	FarmLocation    string `json:"farm_location" binding:"required"`
}

type ReviewApplicationRequest struct {
	Decision string `json:"decision" binding:"required,oneof=approve reject"`
	Reason   string `json:"reason"`
}

// ListFarmers returns approved farmers, optionally filtered by search
// GET /api/v1/farmers?search=
func (ctrl *FarmerController) ListFarmers(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	search := c.Query("search")

	farmers, err := ctrl.farmerService.ListApprovedFarmers(search)
	if err != nil {
		log.Error("Failed to list farmers", err, map[string]interface{}{
			"search": search,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "list farmers")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"farmers": farmers,
		"count":   len(farmers),
	})
}

// GetFarmer returns one approved farmer with their products
// GET /api/v1/farmers/:id
func (ctrl *FarmerController) GetFarmer(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid farmer id")
		return
	}

	farmer, err := ctrl.farmerService.GetFarmerByID(uint(id))
	if err != nil {
		if errors.Is(err, service.ErrFarmerNotFound) {
			apperrors.NotFound(c, apperrors.FarmerNotFound, "Farmer not found")
			return
		}
		log.Error("Failed to get farmer", err, map[string]interface{}{
			"farmer_id": id,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "get farmer")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"farmer": farmer,
	})
}

// Apply files a farm application for the authenticated user
// POST /api/v1/farmers/apply
func (ctrl *FarmerController) Apply(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	var req FarmerApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid farmer application request", map[string]interface{}{
			"user_id": userID,
			"error":   err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Please check the submitted fields")
		return
	}

	farmer, err := ctrl.authService.RegisterFarmer(userID, req.FarmName, req.FarmDescription, req.FarmLocation)
	if err != nil {
		if errors.Is(err, service.ErrFarmerAlreadyRegistered) {
			apperrors.Conflict(c, apperrors.FarmerAlreadyRegistered, "A farm is already registered for this account")
			return
		}
		log.Error("Failed to register farmer", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "create farmer application")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Farm application submitted",
		"farmer":  farmer,
	})
}

// ListApplications returns farmer applications for admin review
// GET /api/v1/admin/farmers?status=
func (ctrl *FarmerController) ListApplications(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	status := model.FarmerStatus(c.Query("status"))

	farmers, err := ctrl.farmerService.ListApplications(status)
	if err != nil {
		log.Error("Failed to list farmer applications", err, map[string]interface{}{
			"status": status,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "list farmer applications")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"farmers": farmers,
		"count":   len(farmers),
	})
}

// ReviewApplication approves or rejects a pending application
// POST /api/v1/admin/farmers/:id/review
func (ctrl *FarmerController) ReviewApplication(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	reviewerID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	farmerID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid farmer id")
		return
	}

	var req ReviewApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Decision must be approve or reject")
		return
	}

	var farmer *model.Farmer
	if req.Decision == "approve" {
		farmer, err = ctrl.farmerService.ApproveApplication(uint(farmerID), reviewerID)
	} else {
		farmer, err = ctrl.farmerService.RejectApplication(uint(farmerID), reviewerID, req.Reason)
	}
	if err != nil {
		if errors.Is(err, service.ErrFarmerNotFound) {
			apperrors.NotFound(c, apperrors.FarmerNotFound, "Farmer application not found")
			return
		}
		if errors.Is(err, service.ErrFarmerReviewNotPending) {
			apperrors.Conflict(c, apperrors.FarmerReviewNotPending, "This application has already been reviewed")
			return
		}
		log.Error("Failed to review farmer application", err, map[string]interface{}{
			"farmer_id": farmerID,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "review farmer application")
		return
	}

	log.Info("Farmer application reviewed", map[string]interface{}{
		"farmer_id": farmer.ID,
		"decision":  req.Decision,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Application reviewed",
		"farmer":  farmer,
	})
}
