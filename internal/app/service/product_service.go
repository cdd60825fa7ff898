package service

import (
	"errors"

	"github.com/greenharvest/greenharvest-backend/internal/app/model"
	"github.com/greenharvest/greenharvest-backend/internal/app/repository"
	"github.com/greenharvest/greenharvest-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrProductNotFound   = errors.New("product not found")
	ErrProductNotOwned   = errors.New("product belongs to another farmer")
	ErrFarmerNotApproved = errors.New("farmer is not approved")
)

const relatedProductLimit = 4

// ProductInput holds the fields a farmer supplies when creating or
// updating a listing.
type ProductInput struct {
	Name          string
	Description   string
	Price         float64
	Unit          string
	ImageURL      string
	StockQuantity int
	IsAvailable   *bool
	CategoryID    *uint
}

type ProductService interface {
	ListProducts(filter repository.ProductFilter) ([]model.Product, error)
	GetProductByID(id uint) (*model.Product, error)
	GetRelatedProducts(id uint) ([]model.Product, error)
	ListFarmerProducts(farmerID uint) ([]model.Product, error)
	ListOwnProducts(userID uint) ([]model.Product, error)
	CreateProduct(userID uint, input ProductInput) (*model.Product, error)
	UpdateProduct(userID uint, role model.UserRole, productID uint, input ProductInput) (*model.Product, error)
	DeleteProduct(userID uint, role model.UserRole, productID uint) error
}

type productService struct {
	productRepo repository.ProductRepository
	farmerRepo  repository.FarmerRepository
}

func NewProductService(productRepo repository.ProductRepository, farmerRepo repository.FarmerRepository) ProductService {
	return &productService{
		productRepo: productRepo,
		farmerRepo:  farmerRepo,
	}
}

func (s *productService) ListProducts(filter repository.ProductFilter) ([]model.Product, error) {
	products, err := s.productRepo.FindWithFilter(filter)
	if err != nil {
		logger.Error("Failed to list products", err, map[string]interface{}{
			"category": filter.CategorySlug,
			"search":   filter.Search,
		})
		return nil, err
	}
	return products, nil
}

func (s *productService) GetProductByID(id uint) (*model.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		logger.Error("Failed to fetch product", err, map[string]interface{}{
			"product_id": id,
		})
		return nil, err
	}
	return product, nil
}

// GetRelatedProducts returns other available products from the same
// category, capped at a small fixed number for detail pages.
func (s *productService) GetRelatedProducts(id uint) ([]model.Product, error) {
	product, err := s.GetProductByID(id)
	if err != nil {
		return nil, err
	}

	related, err := s.productRepo.FindRelated(product, relatedProductLimit)
	if err != nil {
		logger.Error("Failed to fetch related products", err, map[string]interface{}{
			"product_id": id,
		})
		return nil, err
	}
	return related, nil
}

func (s *productService) ListFarmerProducts(farmerID uint) ([]model.Product, error) {
	products, err := s.productRepo.FindByFarmerID(farmerID)
	if err != nil {
		logger.Error("Failed to list farmer products", err, map[string]interface{}{
			"farmer_id": farmerID,
		})
		return nil, err
	}
	return products, nil
}

// ListOwnProducts returns every listing of the caller's farm, including
// unavailable ones, regardless of application status.
func (s *productService) ListOwnProducts(userID uint) ([]model.Product, error) {
	farmer, err := s.farmerRepo.FindByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFarmerNotFound
		}
		logger.Error("Failed to resolve farmer for user", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}
	return s.ListFarmerProducts(farmer.ID)
}

// CreateProduct adds a listing to the caller's own farm. Unlike update
// and delete there is no admin path: every product needs an owning
// farmer, which only the farmer themselves can be.
func (s *productService) CreateProduct(userID uint, input ProductInput) (*model.Product, error) {
	farmer, err := s.approvedFarmerForUser(userID)
	if err != nil {
		return nil, err
	}

	product := &model.Product{
		Name:          input.Name,
		Description:   input.Description,
		Price:         input.Price,
		Unit:          input.Unit,
		ImageURL:      input.ImageURL,
		StockQuantity: input.StockQuantity,
		IsAvailable:   true,
		CategoryID:    input.CategoryID,
		FarmerID:      farmer.ID,
	}
	if input.Unit == "" {
		product.Unit = "kg"
	}
	if input.IsAvailable != nil {
		product.IsAvailable = *input.IsAvailable
	}

	if err := s.productRepo.Create(product); err != nil {
		return nil, err
	}

	logger.Info("Product created", map[string]interface{}{
		"product_id": product.ID,
		"farmer_id":  farmer.ID,
		"name":       product.Name,
	})

	return product, nil
}

func (s *productService) UpdateProduct(userID uint, role model.UserRole, productID uint, input ProductInput) (*model.Product, error) {
	product, err := s.GetProductByID(productID)
	if err != nil {
		return nil, err
	}

	if err := s.authorizeProductAccess(userID, role, product); err != nil {
		return nil, err
	}

	if input.Name != "" {
		product.Name = input.Name
	}
	if input.Description != "" {
		product.Description = input.Description
	}
	if input.Price > 0 {
		product.Price = input.Price
	}
	if input.Unit != "" {
		product.Unit = input.Unit
	}
	if input.ImageURL != "" {
		product.ImageURL = input.ImageURL
	}
	if input.StockQuantity >= 0 {
		product.StockQuantity = input.StockQuantity
	}
	if input.IsAvailable != nil {
		product.IsAvailable = *input.IsAvailable
	}
	if input.CategoryID != nil {
		product.CategoryID = input.CategoryID
	}

	if err := s.productRepo.Update(product); err != nil {
		return nil, err
	}

	logger.Info("Product updated", map[string]interface{}{
		"product_id": product.ID,
	})

	return product, nil
}

func (s *productService) DeleteProduct(userID uint, role model.UserRole, productID uint) error {
	product, err := s.GetProductByID(productID)
	if err != nil {
		return err
	}

	if err := s.authorizeProductAccess(userID, role, product); err != nil {
		return err
	}

	if err := s.productRepo.Delete(productID); err != nil {
		return err
	}

	logger.Info("Product deleted", map[string]interface{}{
		"product_id": productID,
	})

	return nil
}

// approvedFarmerForUser resolves the user's farmer profile and requires
// approved status before any listing can be managed.
func (s *productService) approvedFarmerForUser(userID uint) (*model.Farmer, error) {
	farmer, err := s.farmerRepo.FindByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFarmerNotFound
		}
		logger.Error("Failed to resolve farmer for user", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	if farmer.Status != model.FarmerStatusApproved {
		logger.Warn("Product management rejected: farmer not approved", map[string]interface{}{
			"user_id":   userID,
			"farmer_id": farmer.ID,
			"status":    farmer.Status,
		})
		return nil, ErrFarmerNotApproved
	}

	return farmer, nil
}

// authorizeProductAccess allows admins to manage any product and farmers
// only their own.
func (s *productService) authorizeProductAccess(userID uint, role model.UserRole, product *model.Product) error {
	if role == model.RoleAdmin {
		return nil
	}

	farmer, err := s.approvedFarmerForUser(userID)
	if err != nil {
		return err
	}

	if product.FarmerID != farmer.ID {
		logger.Warn("Product access denied: ownership mismatch", map[string]interface{}{
			"user_id":    userID,
			"farmer_id":  farmer.ID,
			"product_id": product.ID,
		})
		return ErrProductNotOwned
	}

	return nil
}
