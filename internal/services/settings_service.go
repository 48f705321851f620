// internal/services/settings_service.go
package services

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/alluracouro/allura-backend/internal/models"
	"github.com/alluracouro/allura-backend/internal/utils"
)

// SettingsService reads the site settings map through a TTL cache and
// invalidates it on every write. The clock is injected so expiry is testable.
type SettingsService struct {
	db    *gorm.DB
	ttl   time.Duration
	clock func() time.Time

	mu       sync.RWMutex
	cache    map[string][]models.SiteSetting // keyed by category
	cachedAt map[string]time.Time
}

type UpdateSettingRequest struct {
	Value       map[string]interface{} `json:"value" validate:"required"`
	Description string                 `json:"description,omitempty"`
}

func NewSettingsService(db *gorm.DB, ttl time.Duration, clock func() time.Time) *SettingsService {
	if clock == nil {
		clock = time.Now
	}
	return &SettingsService{
		db:       db,
		ttl:      ttl,
		clock:    clock,
		cache:    make(map[string][]models.SiteSetting),
		cachedAt: make(map[string]time.Time),
	}
}

// GetCategory returns all settings in a category, served from cache while the
// TTL holds. Callers always get their own copy; the cached slice is never
// handed out.
func (s *SettingsService) GetCategory(category string) ([]models.SiteSetting, error) {
	s.mu.RLock()
	settings, ok := s.cache[category]
	cachedAt := s.cachedAt[category]
	if ok && s.clock().Sub(cachedAt) < s.ttl {
		out := make([]models.SiteSetting, len(settings))
		copy(out, settings)
		s.mu.RUnlock()
		return out, nil
	}
	s.mu.RUnlock()

	var fresh []models.SiteSetting
	if err := s.db.Where("category = ?", category).
		Order("key ASC").
		Find(&fresh).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch settings: %w", err)
	}

	s.mu.Lock()
	s.cache[category] = fresh
	s.cachedAt[category] = s.clock()
	s.mu.Unlock()

	out := make([]models.SiteSetting, len(fresh))
	copy(out, fresh)
	return out, nil
}

// GetValue returns one setting's JSON value, or nil when absent.
func (s *SettingsService) GetValue(category, key string) (models.JSONB, error) {
	settings, err := s.GetCategory(category)
	if err != nil {
		return nil, err
	}
	for i := range settings {
		if settings[i].Key == key {
			return settings[i].Value, nil
		}
	}
	return nil, nil
}

// Upsert writes one setting and invalidates its category cache.
func (s *SettingsService) Upsert(category, key string, req *UpdateSettingRequest, updatedBy *uuid.UUID) (*models.SiteSetting, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var setting models.SiteSetting
	err := s.db.Where("category = ? AND key = ?", category, key).First(&setting).Error
	switch {
	case err == nil:
		updates := map[string]interface{}{
			"value":      models.JSONB(req.Value),
			"updated_by": updatedBy,
		}
		if req.Description != "" {
			updates["description"] = req.Description
		}
		if err := s.db.Model(&setting).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update setting: %w", err)
		}
	case err == gorm.ErrRecordNotFound:
		setting = models.SiteSetting{
			Category:    category,
			Key:         key,
			Value:       models.JSONB(req.Value),
			Description: req.Description,
			UpdatedBy:   updatedBy,
		}
		if err := s.db.Create(&setting).Error; err != nil {
			return nil, fmt.Errorf("failed to create setting: %w", err)
		}
	default:
		return nil, fmt.Errorf("database error: %w", err)
	}

	s.Invalidate(category)
	return &setting, nil
}

// Invalidate drops one category from the cache.
func (s *SettingsService) Invalidate(category string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.cache, category)
	delete(s.cachedAt, category)
}

// ListAll serves the admin settings screen without touching the cache.
func (s *SettingsService) ListAll() ([]models.SiteSetting, error) {
	var settings []models.SiteSetting
	if err := s.db.Order("category ASC, key ASC").Find(&settings).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch settings: %w", err)
	}
	return settings, nil
}
