package repository

import (
	"github.com/greenharvest/greenharvest-backend/internal/app/model"
	"github.com/greenharvest/greenharvest-backend/pkg/logger"
	"gorm.io/gorm"
)

type ProductSort string

const (
	SortNewest    ProductSort = "newest"
	SortPriceAsc  ProductSort = "price_asc"
	SortPriceDesc ProductSort = "price_desc"
	SortName      ProductSort = "name"
)

type ProductFilter struct {
	CategorySlug  string
	Search        string
	AvailableOnly bool
	Sort          ProductSort
	Limit         int
	Offset        int
}

type ProductRepository interface {
	Create(product *model.Product) error
	FindByID(id uint) (*model.Product, error)
	FindWithFilter(filter ProductFilter) ([]model.Product, error)
	FindRelated(product *model.Product, limit int) ([]model.Product, error)
	FindByFarmerID(farmerID uint) ([]model.Product, error)
	Update(product *model.Product) error
	Delete(id uint) error
	UpdateStock(tx *gorm.DB, id uint, delta int) error
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) baseQuery() *gorm.DB {
	return r.db.Preload("Farmer").Preload("Category")
}

func (r *productRepository) Create(product *model.Product) error {
	logger.Debug("Creating product in database", map[string]interface{}{
		"name":      product.Name,
		"farmer_id": product.FarmerID,
	})

	if err := r.db.Create(product).Error; err != nil {
		logger.Error("Failed to create product in database", err, map[string]interface{}{
			"name":      product.Name,
			"farmer_id": product.FarmerID,
		})
		return err
	}
	return nil
}

func (r *productRepository) FindByID(id uint) (*model.Product, error) {
	var product model.Product
	if err := r.baseQuery().First(&product, id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) FindWithFilter(filter ProductFilter) ([]model.Product, error) {
	query := r.baseQuery()

	if filter.CategorySlug != "" {
		query = query.
			Joins("JOIN categories ON categories.id = products.category_id").
			Where("categories.slug = ?", filter.CategorySlug)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("products.name LIKE ? OR products.description LIKE ?", like, like)
	}
	if filter.AvailableOnly {
		query = query.Where("products.is_available = ?", true)
	}

	switch filter.Sort {
	case SortPriceAsc:
		query = query.Order("products.price ASC")
	case SortPriceDesc:
		query = query.Order("products.price DESC")
	case SortName:
		query = query.Order("products.name ASC")
	default:
		query = query.Order("products.created_at DESC")
	}

	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var products []model.Product
	if err := query.Find(&products).Error; err != nil {
		logger.Error("Failed to find products with filter", err, map[string]interface{}{
			"category": filter.CategorySlug,
			"search":   filter.Search,
		})
		return nil, err
	}
	return products, nil
}

func (r *productRepository) FindRelated(product *model.Product, limit int) ([]model.Product, error) {
	if product.CategoryID == nil {
		return nil, nil
	}

	var products []model.Product
	err := r.baseQuery().
		Where("category_id = ? AND id != ? AND is_available = ?", *product.CategoryID, product.ID, true).
		Limit(limit).
		Find(&products).Error
	if err != nil {
		logger.Error("Failed to find related products", err, map[string]interface{}{
			"product_id": product.ID,
		})
		return nil, err
	}
	return products, nil
}

func (r *productRepository) FindByFarmerID(farmerID uint) ([]model.Product, error) {
	var products []model.Product
	err := r.baseQuery().
		Where("farmer_id = ?", farmerID).
		Order("created_at DESC").
		Find(&products).Error
	if err != nil {
		logger.Error("Failed to find products by farmer", err, map[string]interface{}{
			"farmer_id": farmerID,
		})
		return nil, err
	}
	return products, nil
}

func (r *productRepository) Update(product *model.Product) error {
	if err := r.db.Save(product).Error; err != nil {
		logger.Error("Failed to update product in database", err, map[string]interface{}{
			"product_id": product.ID,
		})
		return err
	}
	return nil
}

func (r *productRepository) Delete(id uint) error {
	if err := r.db.Delete(&model.Product{}, id).Error; err != nil {
		logger.Error("Failed to delete product from database", err, map[string]interface{}{
			"product_id": id,
		})
		return err
	}
	return nil
}

// UpdateStock applies a stock delta inside the caller's transaction.
func (r *productRepository) UpdateStock(tx *gorm.DB, id uint, delta int) error {
	if tx == nil {
		tx = r.db
	}
	err := tx.Model(&model.Product{}).
		Where("id = ?", id).
		UpdateColumn("stock_quantity", gorm.Expr("stock_quantity + ?", delta)).Error
	if err != nil {
		logger.Error("Failed to update product stock", err, map[string]interface{}{
			"product_id": id,
			"delta":      delta,
		})
		return err
	}
	return nil
}
