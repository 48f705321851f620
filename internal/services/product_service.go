// internal/services/product_service.go
package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/alluracouro/allura-backend/internal/models"
	"github.com/alluracouro/allura-backend/internal/utils"
)

type ProductService struct {
	db *gorm.DB
}

type CreateProductRequest struct {
	Name              string                 `json:"name" validate:"required,min=3,max=255"`
	SKU               string                 `json:"sku,omitempty"`
	Description       string                 `json:"description,omitempty"`
	Price             float64                `json:"price" validate:"required,gt=0"`
	OriginalPrice     *float64               `json:"original_price,omitempty"`
	CostPrice         *float64               `json:"cost_price,omitempty"`
	StockQuantity     int                    `json:"stock_quantity" validate:"min=0"`
	LowStockThreshold int                    `json:"low_stock_threshold,omitempty"`
	AllowBackorder    bool                   `json:"allow_backorder"`
	IsActive          bool                   `json:"is_active"`
	IsFeatured        bool                   `json:"is_featured"`
	Images            []string               `json:"images,omitempty"`
	Attributes        map[string]interface{} `json:"attributes,omitempty"`
	BrandID           *uuid.UUID             `json:"brand_id,omitempty"`
	CategoryID        *uuid.UUID             `json:"category_id,omitempty"`
	CollectionID      *uuid.UUID             `json:"collection_id,omitempty"`
	WeightGrams       int                    `json:"weight_grams,omitempty"`
	WidthCM           float64                `json:"width_cm,omitempty"`
	HeightCM          float64                `json:"height_cm,omitempty"`
	DepthCM           float64                `json:"depth_cm,omitempty"`
}

type UpdateProductRequest struct {
	Name              string                 `json:"name,omitempty" validate:"omitempty,min=3,max=255"`
	SKU               *string                `json:"sku,omitempty"`
	Description       *string                `json:"description,omitempty"`
	Price             *float64               `json:"price,omitempty" validate:"omitempty,gt=0"`
	OriginalPrice     *float64               `json:"original_price,omitempty"`
	CostPrice         *float64               `json:"cost_price,omitempty"`
	StockQuantity     *int                   `json:"stock_quantity,omitempty" validate:"omitempty,min=0"`
	LowStockThreshold *int                   `json:"low_stock_threshold,omitempty"`
	AllowBackorder    *bool                  `json:"allow_backorder,omitempty"`
	IsActive          *bool                  `json:"is_active,omitempty"`
	IsFeatured        *bool                  `json:"is_featured,omitempty"`
	Images            []string               `json:"images,omitempty"`
	Attributes        map[string]interface{} `json:"attributes,omitempty"`
	BrandID           *uuid.UUID             `json:"brand_id,omitempty"`
	CategoryID        *uuid.UUID             `json:"category_id,omitempty"`
	CollectionID      *uuid.UUID             `json:"collection_id,omitempty"`
}

type ProductSearchParams struct {
	utils.PaginationParams
	BrandID      *uuid.UUID `json:"brand_id,omitempty"`
	CategoryID   *uuid.UUID `json:"category_id,omitempty"`
	CollectionID *uuid.UUID `json:"collection_id,omitempty"`
	PriceMin     *float64   `json:"price_min,omitempty"`
	PriceMax     *float64   `json:"price_max,omitempty"`
	IsActive     *bool      `json:"is_active,omitempty"`
	IsFeatured   *bool      `json:"is_featured,omitempty"`
	InStock      *bool      `json:"in_stock,omitempty"`
}

func NewProductService(db *gorm.DB) *ProductService {
	return &ProductService{db: db}
}

func (s *ProductService) CreateProduct(req *CreateProductRequest) (*models.Product, error) {
	// Validate request
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	slug, err := s.uniqueSlug(req.Name, uuid.Nil)
	if err != nil {
		return nil, err
	}

	product := &models.Product{
		Name:              req.Name,
		Slug:              slug,
		SKU:               req.SKU,
		Description:       req.Description,
		Price:             utils.RoundMoney(req.Price),
		OriginalPrice:     req.OriginalPrice,
		CostPrice:         req.CostPrice,
		StockQuantity:     req.StockQuantity,
		LowStockThreshold: req.LowStockThreshold,
		AllowBackorder:    req.AllowBackorder,
		IsActive:          req.IsActive,
		IsFeatured:        req.IsFeatured,
		Images:            req.Images,
		Attributes:        models.JSONB(req.Attributes),
		BrandID:           req.BrandID,
		CategoryID:        req.CategoryID,
		CollectionID:      req.CollectionID,
		WeightGrams:       req.WeightGrams,
		WidthCM:           req.WidthCM,
		HeightCM:          req.HeightCM,
		DepthCM:           req.DepthCM,
	}
	if product.LowStockThreshold == 0 {
		product.LowStockThreshold = 3
	}

	if err := s.db.Create(product).Error; err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.db.Preload("Brand").Preload("Category").Preload("Collection").First(product, product.ID)
	return product, nil
}

func (s *ProductService) GetProduct(id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := s.db.Preload("Brand").Preload("Category").Preload("Collection").
		First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("product not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &product, nil
}

// GetProductBySlug serves the public product page. Inactive products are not
// visible to the storefront.
func (s *ProductService) GetProductBySlug(slug string) (*models.Product, error) {
	var product models.Product
	if err := s.db.Where("slug = ? AND is_active = ?", slug, true).
		Preload("Brand").Preload("Category").Preload("Collection").
		First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("product not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &product, nil
}

func (s *ProductService) UpdateProduct(id uuid.UUID, req *UpdateProductRequest) (*models.Product, error) {
	// Validate request
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var product models.Product
	if err := s.db.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("product not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	updates := make(map[string]interface{})
	if req.Name != "" && req.Name != product.Name {
		slug, err := s.uniqueSlug(req.Name, id)
		if err != nil {
			return nil, err
		}
		updates["name"] = req.Name
		updates["slug"] = slug
	}
	if req.SKU != nil {
		updates["sku"] = *req.SKU
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Price != nil {
		updates["price"] = utils.RoundMoney(*req.Price)
	}
	if req.OriginalPrice != nil {
		updates["original_price"] = *req.OriginalPrice
	}
	if req.CostPrice != nil {
		updates["cost_price"] = *req.CostPrice
	}
	if req.StockQuantity != nil {
		updates["stock_quantity"] = *req.StockQuantity
	}
	if req.LowStockThreshold != nil {
		updates["low_stock_threshold"] = *req.LowStockThreshold
	}
	if req.AllowBackorder != nil {
		updates["allow_backorder"] = *req.AllowBackorder
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if req.IsFeatured != nil {
		updates["is_featured"] = *req.IsFeatured
	}
	if req.Images != nil {
		updates["images"] = req.Images
	}
	if req.Attributes != nil {
		updates["attributes"] = models.JSONB(req.Attributes)
	}
	if req.BrandID != nil {
		updates["brand_id"] = req.BrandID
	}
	if req.CategoryID != nil {
		updates["category_id"] = req.CategoryID
	}
	if req.CollectionID != nil {
		updates["collection_id"] = req.CollectionID
	}

	if err := s.db.Model(&product).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	s.db.Preload("Brand").Preload("Category").Preload("Collection").First(&product, id)
	return &product, nil
}

func (s *ProductService) DeleteProduct(id uuid.UUID) error {
	var product models.Product
	if err := s.db.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("product not found")
		}
		return fmt.Errorf("database error: %w", err)
	}

	// Soft delete
	if err := s.db.Delete(&product).Error; err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	return nil
}

func (s *ProductService) SearchProducts(params ProductSearchParams) ([]models.Product, int64, error) {
	query := s.db.Model(&models.Product{}).
		Preload("Brand").Preload("Category").Preload("Collection")

	// Apply filters
	if params.IsActive != nil {
		query = query.Where("is_active = ?", *params.IsActive)
	} else {
		// Storefront defaults to active products only
		query = query.Where("is_active = ?", true)
	}

	if params.BrandID != nil {
		query = query.Where("brand_id = ?", *params.BrandID)
	}
	if params.CategoryID != nil {
		query = query.Where("category_id = ?", *params.CategoryID)
	}
	if params.CollectionID != nil {
		query = query.Where("collection_id = ?", *params.CollectionID)
	}
	if params.IsFeatured != nil {
		query = query.Where("is_featured = ?", *params.IsFeatured)
	}
	if params.PriceMin != nil {
		query = query.Where("price >= ?", *params.PriceMin)
	}
	if params.PriceMax != nil {
		query = query.Where("price <= ?", *params.PriceMax)
	}
	if params.InStock != nil && *params.InStock {
		query = query.Where("stock_quantity > 0 OR allow_backorder = ?", true)
	}

	if params.Search != "" {
		searchTerm := "%" + strings.ToLower(params.Search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", searchTerm, searchTerm)
	}

	// Get total count
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	// Apply sorting
	allowedSortFields := []string{"created_at", "updated_at", "name", "price", "stock_quantity"}
	query = utils.ApplySort(query, params.PaginationParams, allowedSortFields)

	// Apply pagination
	query = utils.ApplyPagination(query, params.PaginationParams)

	var products []models.Product
	if err := query.Find(&products).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch products: %w", err)
	}

	return products, total, nil
}

func (s *ProductService) GetFeaturedProducts(limit int) ([]models.Product, error) {
	var products []models.Product
	if err := s.db.Where("is_active = ? AND is_featured = ?", true, true).
		Order("created_at DESC").
		Limit(limit).
		Preload("Brand").Preload("Category").Preload("Collection").
		Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch featured products: %w", err)
	}

	return products, nil
}

// GetLowStockProducts feeds the admin inventory warning list.
func (s *ProductService) GetLowStockProducts() ([]models.Product, error) {
	var products []models.Product
	if err := s.db.Where("is_active = ? AND stock_quantity <= low_stock_threshold", true).
		Order("stock_quantity ASC").
		Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch low stock products: %w", err)
	}

	return products, nil
}

// AdjustStock moves stock_quantity by delta, which may be negative. Backorder
// products are allowed to go below zero; everything else is floored at zero
// availability before the write.
func (s *ProductService) AdjustStock(id uuid.UUID, delta int) (*models.Product, error) {
	var product models.Product
	if err := s.db.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("product not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	newQuantity := product.StockQuantity + delta
	if newQuantity < 0 && !product.AllowBackorder {
		return nil, errors.New("insufficient stock")
	}

	if err := s.db.Model(&product).
		UpdateColumn("stock_quantity", gorm.Expr("stock_quantity + ?", delta)).Error; err != nil {
		return nil, fmt.Errorf("failed to adjust stock: %w", err)
	}

	product.StockQuantity = newQuantity
	return &product, nil
}

// uniqueSlug derives a slug from name, appending a numeric suffix while the
// candidate collides with another product.
func (s *ProductService) uniqueSlug(name string, selfID uuid.UUID) (string, error) {
	base := utils.Slugify(name)
	if base == "" {
		return "", errors.New("product name yields an empty slug")
	}

	slug := base
	for i := 2; ; i++ {
		var count int64
		query := s.db.Model(&models.Product{}).Where("slug = ?", slug)
		if selfID != uuid.Nil {
			query = query.Where("id <> ?", selfID)
		}
		if err := query.Count(&count).Error; err != nil {
			return "", fmt.Errorf("failed to check slug: %w", err)
		}
		if count == 0 {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, i)
	}
}
