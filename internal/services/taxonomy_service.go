// internal/services/taxonomy_service.go
package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/alluracouro/allura-backend/internal/models"
	"github.com/alluracouro/allura-backend/internal/utils"
)

// TaxonomyService manages the three merchandising taxonomies (brands,
// categories, collections). They share the same CRUD shape and differ only in
// the collection's display window.
type TaxonomyService struct {
	db *gorm.DB
}

type TaxonomyRequest struct {
	Name         string `json:"name" validate:"required,min=2,max=120"`
	Description  string `json:"description,omitempty"`
	ImageURL     string `json:"image_url,omitempty"`
	DisplayOrder int    `json:"display_order"`
	IsActive     bool   `json:"is_active"`
}

type CollectionRequest struct {
	TaxonomyRequest
	HighlightOnHome bool       `json:"highlight_on_home"`
	StartsAt        *time.Time `json:"starts_at,omitempty"`
	EndsAt          *time.Time `json:"ends_at,omitempty"`
}

// ReorderRequest maps entity ids onto new display positions.
type ReorderRequest struct {
	Order []uuid.UUID `json:"order" validate:"required,min=1"`
}

func NewTaxonomyService(db *gorm.DB) *TaxonomyService {
	return &TaxonomyService{db: db}
}

// Brands

func (s *TaxonomyService) ListBrands(activeOnly bool) ([]models.Brand, error) {
	var brands []models.Brand
	query := s.db.Order("display_order ASC, name ASC")
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	if err := query.Find(&brands).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch brands: %w", err)
	}
	return brands, nil
}

func (s *TaxonomyService) CreateBrand(req *TaxonomyRequest) (*models.Brand, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	brand := &models.Brand{
		Name:         req.Name,
		Slug:         utils.Slugify(req.Name),
		Description:  req.Description,
		LogoURL:      req.ImageURL,
		DisplayOrder: req.DisplayOrder,
		IsActive:     req.IsActive,
	}
	if err := s.db.Create(brand).Error; err != nil {
		return nil, fmt.Errorf("failed to create brand: %w", err)
	}
	return brand, nil
}

func (s *TaxonomyService) UpdateBrand(id uuid.UUID, req *TaxonomyRequest) (*models.Brand, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var brand models.Brand
	if err := s.db.First(&brand, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("brand not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	updates := map[string]interface{}{
		"name":          req.Name,
		"slug":          utils.Slugify(req.Name),
		"description":   req.Description,
		"logo_url":      req.ImageURL,
		"display_order": req.DisplayOrder,
		"is_active":     req.IsActive,
	}
	if err := s.db.Model(&brand).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update brand: %w", err)
	}
	return &brand, nil
}

func (s *TaxonomyService) DeleteBrand(id uuid.UUID) error {
	return s.deleteTaxonomyRow(&models.Brand{}, id, "brand")
}

// Categories

func (s *TaxonomyService) ListCategories(activeOnly bool) ([]models.Category, error) {
	var categories []models.Category
	query := s.db.Order("display_order ASC, name ASC")
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	if err := query.Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch categories: %w", err)
	}
	return categories, nil
}

func (s *TaxonomyService) CreateCategory(req *TaxonomyRequest) (*models.Category, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	category := &models.Category{
		Name:         req.Name,
		Slug:         utils.Slugify(req.Name),
		Description:  req.Description,
		ImageURL:     req.ImageURL,
		DisplayOrder: req.DisplayOrder,
		IsActive:     req.IsActive,
	}
	if err := s.db.Create(category).Error; err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return category, nil
}

func (s *TaxonomyService) UpdateCategory(id uuid.UUID, req *TaxonomyRequest) (*models.Category, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var category models.Category
	if err := s.db.First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("category not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	updates := map[string]interface{}{
		"name":          req.Name,
		"slug":          utils.Slugify(req.Name),
		"description":   req.Description,
		"image_url":     req.ImageURL,
		"display_order": req.DisplayOrder,
		"is_active":     req.IsActive,
	}
	if err := s.db.Model(&category).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	}
	return &category, nil
}

func (s *TaxonomyService) DeleteCategory(id uuid.UUID) error {
	return s.deleteTaxonomyRow(&models.Category{}, id, "category")
}

// Collections

func (s *TaxonomyService) ListCollections(activeOnly bool) ([]models.Collection, error) {
	var collections []models.Collection
	query := s.db.Order("display_order ASC, name ASC")
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	if err := query.Find(&collections).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch collections: %w", err)
	}
	return collections, nil
}

// GetHighlightedCollections returns home-page collections currently inside
// their display window.
func (s *TaxonomyService) GetHighlightedCollections(now time.Time) ([]models.Collection, error) {
	collections, err := s.ListCollections(true)
	if err != nil {
		return nil, err
	}

	visible := make([]models.Collection, 0, len(collections))
	for _, c := range collections {
		if c.HighlightOnHome && c.CurrentlyVisible(now) {
			visible = append(visible, c)
		}
	}
	return visible, nil
}

func (s *TaxonomyService) CreateCollection(req *CollectionRequest) (*models.Collection, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	collection := &models.Collection{
		Name:            req.Name,
		Slug:            utils.Slugify(req.Name),
		Description:     req.Description,
		BannerURL:       req.ImageURL,
		DisplayOrder:    req.DisplayOrder,
		IsActive:        req.IsActive,
		HighlightOnHome: req.HighlightOnHome,
		StartsAt:        req.StartsAt,
		EndsAt:          req.EndsAt,
	}
	if err := s.db.Create(collection).Error; err != nil {
		return nil, fmt.Errorf("failed to create collection: %w", err)
	}
	return collection, nil
}

func (s *TaxonomyService) UpdateCollection(id uuid.UUID, req *CollectionRequest) (*models.Collection, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var collection models.Collection
	if err := s.db.First(&collection, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("collection not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	updates := map[string]interface{}{
		"name":              req.Name,
		"slug":              utils.Slugify(req.Name),
		"description":       req.Description,
		"banner_url":        req.ImageURL,
		"display_order":     req.DisplayOrder,
		"is_active":         req.IsActive,
		"highlight_on_home": req.HighlightOnHome,
		"starts_at":         req.StartsAt,
		"ends_at":           req.EndsAt,
	}
	if err := s.db.Model(&collection).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update collection: %w", err)
	}
	return &collection, nil
}

func (s *TaxonomyService) DeleteCollection(id uuid.UUID) error {
	return s.deleteTaxonomyRow(&models.Collection{}, id, "collection")
}

// Reorder rewrites display_order to the position of each id in the request.
// Each row is updated independently; the first failure aborts.
func (s *TaxonomyService) Reorder(model interface{}, req *ReorderRequest) error {
	if err := utils.ValidateStruct(req); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	for position, id := range req.Order {
		if err := s.db.Model(model).Where("id = ?", id).
			Update("display_order", position).Error; err != nil {
			return fmt.Errorf("failed to reorder %s: %w", id, err)
		}
	}
	return nil
}

func (s *TaxonomyService) deleteTaxonomyRow(model interface{}, id uuid.UUID, name string) error {
	result := s.db.Delete(model, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete %s: %w", name, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%s not found", name)
	}
	return nil
}
