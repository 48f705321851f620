// internal/handlers/settings.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/alluracouro/allura-backend/internal/i18n"
	"github.com/alluracouro/allura-backend/internal/services"
	"github.com/alluracouro/allura-backend/internal/utils"
)

type SettingsHandler struct {
	settingsService *services.SettingsService
}

func NewSettingsHandler(settingsService *services.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// GET /settings/:category
// Public read used by the storefront; served from the TTL cache.
func (h *SettingsHandler) GetCategory(c *gin.Context) {
	settings, err := h.settingsService.GetCategory(c.Param("category"))
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	// Collapse to a key -> value map for the storefront
	values := gin.H{}
	for i := range settings {
		values[settings[i].Key] = settings[i].Value
	}
	utils.SuccessResponse(c, gin.H{"settings": values})
}

// GET /admin/settings
func (h *SettingsHandler) ListAll(c *gin.Context) {
	settings, err := h.settingsService.ListAll()
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}
	utils.SuccessResponse(c, gin.H{"settings": settings})
}

// PUT /admin/settings/:category/:key
func (h *SettingsHandler) UpsertSetting(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.UpdateSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	var updatedBy *uuid.UUID
	if userID, ok := currentUserID(c); ok {
		updatedBy = &userID
	}

	setting, err := h.settingsService.Upsert(c.Param("category"), c.Param("key"), &req, updatedBy)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeySettingsUpdated),
		"setting": setting,
	})
}
