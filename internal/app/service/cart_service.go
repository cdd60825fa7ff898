package service

import (
	"errors"
	"strconv"
	"sync"

	"github.com/greenharvest/greenharvest-backend/internal/app/repository"
	"github.com/greenharvest/greenharvest-backend/internal/cart"
	"github.com/greenharvest/greenharvest-backend/pkg/logger"
	"gorm.io/gorm"
)

var ErrCartItemNotFound = errors.New("cart item not found")

type CartService interface {
	GetCart(userID uint) ([]cart.Item, float64, error)
	AddItem(userID, productID uint, quantity int) ([]cart.Item, error)
	UpdateQuantity(userID uint, itemID string, quantity int) ([]cart.Item, error)
	RemoveItem(userID uint, itemID string) ([]cart.Item, error)
	ClearCart(userID uint) error
}

// StorageFactory builds the persistence slot backing one user's cart.
type StorageFactory func(userID uint) cart.Storage

type cartService struct {
	mu          sync.Mutex
	stores      map[uint]*cart.Store
	newStorage  StorageFactory
	productRepo repository.ProductRepository
}

func NewCartService(productRepo repository.ProductRepository, newStorage StorageFactory) CartService {
	return &cartService{
		stores:      make(map[uint]*cart.Store),
		newStorage:  newStorage,
		productRepo: productRepo,
	}
}

// storeFor returns the user's cart store, hydrating it from the backing
// slot on first access.
func (s *cartService) storeFor(userID uint) *cart.Store {
	s.mu.Lock()
	defer s.mu.Unlock()

	if store, ok := s.stores[userID]; ok {
		return store
	}

	store := cart.NewStore(s.newStorage(userID))
	s.stores[userID] = store
	return store
}

func (s *cartService) GetCart(userID uint) ([]cart.Item, float64, error) {
	store := s.storeFor(userID)
	return store.Items(), store.Total(), nil
}

// AddItem resolves the product and merges it into the cart. Adding the
// same product again sums quantities instead of duplicating the line.
func (s *cartService) AddItem(userID, productID uint, quantity int) ([]cart.Item, error) {
	if quantity <= 0 {
		quantity = 1
	}

	product, err := s.productRepo.FindByID(productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		logger.Error("Failed to fetch product for cart", err, map[string]interface{}{
			"product_id": productID,
		})
		return nil, err
	}

	if !product.IsAvailable {
		return nil, ErrProductUnavailable
	}

	item := cart.Item{
		ID:       strconv.FormatUint(uint64(product.ID), 10),
		Name:     product.Name,
		Price:    product.Price,
		Unit:     product.Unit,
		Quantity: quantity,
		ImageURL: product.ImageURL,
	}
	if product.Farmer.ID != 0 {
		item.FarmerName = product.Farmer.FarmName
	}

	store := s.storeFor(userID)
	store.AddItem(item)

	logger.Debug("Cart item added", map[string]interface{}{
		"user_id":    userID,
		"product_id": productID,
		"quantity":   quantity,
	})

	return store.Items(), nil
}

func (s *cartService) UpdateQuantity(userID uint, itemID string, quantity int) ([]cart.Item, error) {
	store := s.storeFor(userID)

	if !store.HasItem(itemID) {
		return nil, ErrCartItemNotFound
	}

	store.UpdateQuantity(itemID, quantity)
	return store.Items(), nil
}

func (s *cartService) RemoveItem(userID uint, itemID string) ([]cart.Item, error) {
	store := s.storeFor(userID)

	if !store.HasItem(itemID) {
		return nil, ErrCartItemNotFound
	}

	store.RemoveItem(itemID)
	return store.Items(), nil
}

func (s *cartService) ClearCart(userID uint) error {
	s.storeFor(userID).Clear()
	return nil
}
