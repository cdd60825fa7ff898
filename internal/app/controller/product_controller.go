package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/greenharvest/greenharvest-backend/internal/app/repository"
	"github.com/greenharvest/greenharvest-backend/internal/app/service"
	apperrors "github.com/greenharvest/greenharvest-backend/internal/errors"
	"github.com/greenharvest/greenharvest-backend/internal/middleware"
)

type ProductController struct {
	productService  service.ProductService
	categoryService service.CategoryService
}

func NewProductController(productService service.ProductService, categoryService service.CategoryService) *ProductController {
	return &ProductController{
		productService:  productService,
		categoryService: categoryService,
	}
}

type ProductRequest struct {
	Name          string  `json:"name" binding:"required"`
	Description   string  `json:"description"`
	Price         float64 `json:"price" binding:"required,gt=0"`
	Unit          string  `json:"unit"`
	ImageURL      string  `json:"image_url"`
	StockQuantity int     `json:"stock_quantity" binding:"gte=0"`
	IsAvailable   *bool   `json:"is_available"`
	CategoryID    *uint   `json:"category_id"`
}

type ProductUpdateRequest struct {
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	Price         float64 `json:"price"`
	Unit          string  `json:"unit"`
	ImageURL      string  `json:"image_url"`
	StockQuantity int     `json:"stock_quantity"`
	IsAvailable   *bool   `json:"is_available"`
	CategoryID    *uint   `json:"category_id"`
}

// ListProducts returns the product catalog with filtering and sorting
// GET /api/v1/products?category=&search=&sort=&limit=&offset=
func (ctrl *ProductController) ListProducts(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	filter := repository.ProductFilter{
		CategorySlug:  c.Query("category"),
		Search:        c.Query("search"),
		AvailableOnly: true,
		Sort:          repository.ProductSort(c.DefaultQuery("sort", "newest")),
		Limit:         limit,
		Offset:        offset,
	}

	products, err := ctrl.productService.ListProducts(filter)
	if err != nil {
		log.Error("Failed to list products", err, map[string]interface{}{
			"category": filter.CategorySlug,
			"search":   filter.Search,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "list products")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"products": products,
		"count":    len(products),
	})
}

// ListCategories returns all product categories
// GET /api/v1/categories
func (ctrl *ProductController) ListCategories(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	categories, err := ctrl.categoryService.ListCategories()
	if err != nil {
		log.Error("Failed to list categories", err, nil)
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "list categories")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"categories": categories,
	})
}

// GetProduct returns one product with its farmer and category
// GET /api/v1/products/:id
func (ctrl *ProductController) GetProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid product id")
		return
	}

	product, err := ctrl.productService.GetProductByID(uint(id))
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			apperrors.NotFound(c, apperrors.ProductNotFound, "Product not found")
			return
		}
		log.Error("Failed to get product", err, map[string]interface{}{
			"product_id": id,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "get product")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"product": product,
	})
}

// GetRelatedProducts returns products from the same category
// GET /api/v1/products/:id/related
func (ctrl *ProductController) GetRelatedProducts(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid product id")
		return
	}

	related, err := ctrl.productService.GetRelatedProducts(uint(id))
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			apperrors.NotFound(c, apperrors.ProductNotFound, "Product not found")
			return
		}
		log.Error("Failed to get related products", err, map[string]interface{}{
			"product_id": id,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "get related products")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"products": related,
	})
}

// CreateProduct creates a listing for the caller's farm
// POST /api/v1/products
func (ctrl *ProductController) CreateProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid product request", map[string]interface{}{
			"user_id": userID,
			"error":   err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Please check the submitted fields")
		return
	}

	product, err := ctrl.productService.CreateProduct(userID, service.ProductInput{
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		Unit:          req.Unit,
		ImageURL:      req.ImageURL,
		StockQuantity: req.StockQuantity,
		IsAvailable:   req.IsAvailable,
		CategoryID:    req.CategoryID,
	})
	if err != nil {
		ctrl.respondProductError(c, err, "create product")
		return
	}

	log.Info("Product created", map[string]interface{}{
		"product_id": product.ID,
		"user_id":    userID,
	})

	c.JSON(http.StatusCreated, gin.H{
		"message": "Product created successfully",
		"product": product,
	})
}

// UpdateProduct updates a listing owned by the caller's farm
// PUT /api/v1/products/:id
func (ctrl *ProductController) UpdateProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}
	role, _ := middleware.GetUserRole(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid product id")
		return
	}

	var req ProductUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Please check the submitted fields")
		return
	}

	product, err := ctrl.productService.UpdateProduct(userID, role, uint(id), service.ProductInput{
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		Unit:          req.Unit,
		ImageURL:      req.ImageURL,
		StockQuantity: req.StockQuantity,
		IsAvailable:   req.IsAvailable,
		CategoryID:    req.CategoryID,
	})
	if err != nil {
		ctrl.respondProductError(c, err, "update product")
		return
	}

	log.Info("Product updated", map[string]interface{}{
		"product_id": product.ID,
		"user_id":    userID,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Product updated successfully",
		"product": product,
	})
}

// DeleteProduct removes a listing owned by the caller's farm
// DELETE /api/v1/products/:id
func (ctrl *ProductController) DeleteProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}
	role, _ := middleware.GetUserRole(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid product id")
		return
	}

	if err := ctrl.productService.DeleteProduct(userID, role, uint(id)); err != nil {
		ctrl.respondProductError(c, err, "delete product")
		return
	}

	log.Info("Product deleted", map[string]interface{}{
		"product_id": id,
		"user_id":    userID,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Product deleted successfully",
	})
}

// MyProducts returns all listings of the caller's farm, including
// unavailable ones
// GET /api/v1/farmers/me/products
func (ctrl *ProductController) MyProducts(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	products, err := ctrl.productService.ListOwnProducts(userID)
	if err != nil {
		if errors.Is(err, service.ErrFarmerNotFound) {
			apperrors.Forbidden(c, "A registered farm is required")
			return
		}
		log.Error("Failed to list own products", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "list own products")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"products": products,
		"count":    len(products),
	})
}

func (ctrl *ProductController) respondProductError(c *gin.Context, err error, context string) {
	log := middleware.GetLoggerFromContext(c)

	switch {
	case errors.Is(err, service.ErrProductNotFound):
		apperrors.NotFound(c, apperrors.ProductNotFound, "Product not found")
	case errors.Is(err, service.ErrFarmerNotFound):
		apperrors.Forbidden(c, "A registered farm is required")
	case errors.Is(err, service.ErrFarmerNotApproved):
		apperrors.RespondWithError(c, http.StatusForbidden, apperrors.FarmerNotApproved, "Your farm application has not been approved yet")
	case errors.Is(err, service.ErrProductNotOwned):
		apperrors.RespondWithError(c, http.StatusForbidden, apperrors.ProductNotOwned, "This product belongs to another farm")
	default:
		log.Error("Product operation failed", err, nil)
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, context)
	}
}
