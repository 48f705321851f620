// internal/services/cart_service.go
package services

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/alluracouro/allura-backend/internal/models"
	"github.com/alluracouro/allura-backend/internal/utils"
)

// CartSubscriber receives a notification whenever any cart row changes for a
// user. Subscribers refetch the whole cart on notify rather than merging
// incremental changes.
type CartSubscriber func(userID uuid.UUID)

type CartService struct {
	db *gorm.DB

	mu          sync.RWMutex
	subscribers map[uuid.UUID][]CartSubscriber
}

type AddToCartRequest struct {
	ProductID  uuid.UUID              `json:"product_id" validate:"required"`
	Quantity   int                    `json:"quantity" validate:"required,min=1"`
	Attributes map[string]interface{} `json:"attributes,omitempty"`
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" validate:"min=0"`
}

type CartSummary struct {
	Items    []models.CartItem `json:"items"`
	Subtotal float64           `json:"subtotal"`
	Count    int               `json:"count"`
}

func NewCartService(db *gorm.DB) *CartService {
	return &CartService{
		db:          db,
		subscribers: make(map[uuid.UUID][]CartSubscriber),
	}
}

// Subscribe registers a callback fired after every cart mutation for userID.
func (s *CartService) Subscribe(userID uuid.UUID, fn CartSubscriber) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers[userID] = append(s.subscribers[userID], fn)
}

// Unsubscribe drops all callbacks for userID.
func (s *CartService) Unsubscribe(userID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.subscribers, userID)
}

func (s *CartService) notify(userID uuid.UUID) {
	s.mu.RLock()
	subs := make([]CartSubscriber, len(s.subscribers[userID]))
	copy(subs, s.subscribers[userID])
	s.mu.RUnlock()

	for _, fn := range subs {
		fn(userID)
	}
}

func (s *CartService) GetCart(userID uuid.UUID) (*CartSummary, error) {
	var items []models.CartItem
	if err := s.db.Where("user_id = ?", userID).
		Preload("Product").
		Order("created_at ASC").
		Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch cart: %w", err)
	}

	summary := &CartSummary{Items: items}
	for i := range items {
		summary.Subtotal += items[i].Subtotal()
		summary.Count += items[i].Quantity
	}
	summary.Subtotal = utils.RoundMoney(summary.Subtotal)
	return summary, nil
}

// AddItem inserts a cart row or bumps quantity when the product is already in
// the bag.
func (s *CartService) AddItem(userID uuid.UUID, req *AddToCartRequest) (*models.CartItem, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var product models.Product
	if err := s.db.Where("id = ? AND is_active = ?", req.ProductID, true).
		First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("product not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if !product.IsAvailable(req.Quantity) {
		return nil, errors.New("product out of stock")
	}

	var item models.CartItem
	err := s.db.Where("user_id = ? AND product_id = ?", userID, req.ProductID).
		First(&item).Error
	switch {
	case err == nil:
		newQuantity := item.Quantity + req.Quantity
		if !product.IsAvailable(newQuantity) {
			return nil, errors.New("product out of stock")
		}
		if err := s.db.Model(&item).Update("quantity", newQuantity).Error; err != nil {
			return nil, fmt.Errorf("failed to update cart item: %w", err)
		}
		item.Quantity = newQuantity
	case errors.Is(err, gorm.ErrRecordNotFound):
		item = models.CartItem{
			UserID:     userID,
			ProductID:  req.ProductID,
			Quantity:   req.Quantity,
			Attributes: models.JSONB(req.Attributes),
		}
		if err := s.db.Create(&item).Error; err != nil {
			return nil, fmt.Errorf("failed to add cart item: %w", err)
		}
	default:
		return nil, fmt.Errorf("database error: %w", err)
	}

	s.db.Preload("Product").First(&item, item.ID)
	s.notify(userID)
	return &item, nil
}

// UpdateItemQuantity sets the quantity of one cart row. Zero removes the row.
func (s *CartService) UpdateItemQuantity(userID, itemID uuid.UUID, req *UpdateCartItemRequest) error {
	if err := utils.ValidateStruct(req); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	var item models.CartItem
	if err := s.db.Where("id = ? AND user_id = ?", itemID, userID).
		First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("cart item not found")
		}
		return fmt.Errorf("database error: %w", err)
	}

	if req.Quantity == 0 {
		if err := s.db.Delete(&item).Error; err != nil {
			return fmt.Errorf("failed to remove cart item: %w", err)
		}
	} else {
		if err := s.db.Model(&item).Update("quantity", req.Quantity).Error; err != nil {
			return fmt.Errorf("failed to update cart item: %w", err)
		}
	}

	s.notify(userID)
	return nil
}

func (s *CartService) RemoveItem(userID, itemID uuid.UUID) error {
	result := s.db.Where("id = ? AND user_id = ?", itemID, userID).
		Delete(&models.CartItem{})
	if result.Error != nil {
		return fmt.Errorf("failed to remove cart item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.New("cart item not found")
	}

	s.notify(userID)
	return nil
}

func (s *CartService) ClearCart(userID uuid.UUID) error {
	if err := s.db.Where("user_id = ?", userID).
		Delete(&models.CartItem{}).Error; err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}

	s.notify(userID)
	return nil
}
