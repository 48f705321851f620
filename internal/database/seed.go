// internal/database/seed.go
package database

import (
	"fmt"
	"log"

	"gorm.io/gorm"

	"github.com/alluracouro/allura-backend/internal/models"
)

type operatorSeed struct {
	Name     string
	Email    string
	Password string
}

// Operator accounts provisioned on first boot. Re-running the seed treats an
// already-registered email as success, never as failure.
var defaultOperators = []operatorSeed{
	{Name: "Ana Allura", Email: "ana@allura.com.br", Password: "TrocarSenha123!"},
	{Name: "Marcos Allura", Email: "marcos@allura.com.br", Password: "TrocarSenha123!"},
}

// SeedInitialData bootstraps operator accounts, default site settings and the
// home page layout. Every step is idempotent.
func SeedInitialData(db *gorm.DB) error {
	log.Println("Seeding initial data...")

	for _, op := range defaultOperators {
		var count int64
		db.Model(&models.User{}).Where("email = ?", op.Email).Count(&count)
		if count > 0 {
			log.Printf("Operator %s already registered, skipping", op.Email)
			continue
		}

		admin := &models.User{
			Name:   op.Name,
			Email:  op.Email,
			Role:   models.UserRoleAdmin,
			Status: models.UserStatusActive,
		}
		if err := admin.SetPassword(op.Password); err != nil {
			return fmt.Errorf("failed to set operator password: %w", err)
		}
		if err := db.Create(admin).Error; err != nil {
			if IsDuplicate(err) {
				log.Printf("Operator %s already registered, skipping", op.Email)
				continue
			}
			return fmt.Errorf("failed to create operator %s: %w", op.Email, err)
		}
		log.Printf("Operator account %s created", op.Email)
	}

	defaultSettings := []models.SiteSetting{
		{
			Category:    "identity",
			Key:         "store_name",
			Value:       models.JSONB{"value": "Allura"},
			Description: "Store name displayed across the site",
		},
		{
			Category:    "identity",
			Key:         "tagline",
			Value:       models.JSONB{"value": "Couro legítimo, feito no Brasil"},
			Description: "Tagline shown under the logo",
		},
		{
			Category:    "home",
			Key:         "hero_title",
			Value:       models.JSONB{"value": "Nova coleção em couro"},
			Description: "Hero banner headline",
		},
		{
			Category:    "home",
			Key:         "highlight_collections",
			Value:       models.JSONB{"value": true},
			Description: "Show highlighted collections on the home page",
		},
		{
			Category:    "contact",
			Key:         "whatsapp",
			Value:       models.JSONB{"value": "+55 11 99999-0000"},
			Description: "WhatsApp contact number",
		},
		{
			Category:    "checkout",
			Key:         "max_installments",
			Value:       models.JSONB{"value": 3},
			Description: "Maximum interest-free installments",
		},
	}

	for _, setting := range defaultSettings {
		var count int64
		db.Model(&models.SiteSetting{}).
			Where("category = ? AND key = ?", setting.Category, setting.Key).
			Count(&count)

		if count == 0 {
			if err := db.Create(&setting).Error; err != nil {
				log.Printf("Warning: Failed to create setting %s.%s: %v", setting.Category, setting.Key, err)
			}
		}
	}

	// Default home layout matches the storefront's section order
	var layoutCount int64
	db.Model(&models.PageLayout{}).Where("page = ?", "home").Count(&layoutCount)
	if layoutCount == 0 {
		layout := &models.PageLayout{
			Page:  "home",
			Theme: "classic",
			Sections: models.JSONB{
				"sections": []map[string]interface{}{
					{"id": "navbar", "visible": true},
					{"id": "hero", "visible": true},
					{"id": "benefits", "visible": true},
					{"id": "products", "visible": true},
					{"id": "newsletter", "visible": true},
					{"id": "banner", "visible": true},
					{"id": "footer", "visible": true},
				},
			},
		}
		if err := db.Create(layout).Error; err != nil {
			log.Printf("Warning: Failed to create default home layout: %v", err)
		}
	}

	log.Println("Initial data seeding completed")
	return nil
}
