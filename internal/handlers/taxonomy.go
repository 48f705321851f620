// internal/handlers/taxonomy.go
package handlers

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/alluracouro/allura-backend/internal/database"
	"github.com/alluracouro/allura-backend/internal/i18n"
	"github.com/alluracouro/allura-backend/internal/models"
	"github.com/alluracouro/allura-backend/internal/services"
	"github.com/alluracouro/allura-backend/internal/utils"
)

type TaxonomyHandler struct {
	taxonomyService *services.TaxonomyService
}

func NewTaxonomyHandler(taxonomyService *services.TaxonomyService) *TaxonomyHandler {
	return &TaxonomyHandler{taxonomyService: taxonomyService}
}

// activeOnly is true for the storefront, false when an admin asks for all rows.
func activeOnly(c *gin.Context) bool {
	if role, _ := utils.GetUserRoleFromContext(c); role == "admin" {
		if all, err := strconv.ParseBool(c.DefaultQuery("all", "false")); err == nil && all {
			return false
		}
	}
	return true
}

// GET /brands
func (h *TaxonomyHandler) GetBrands(c *gin.Context) {
	brands, err := h.taxonomyService.ListBrands(activeOnly(c))
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}
	utils.SuccessResponse(c, gin.H{"brands": brands})
}

// POST /brands
func (h *TaxonomyHandler) CreateBrand(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.TaxonomyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	brand, err := h.taxonomyService.CreateBrand(&req)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}
	utils.CreatedResponse(c, gin.H{"brand": brand})
}

// PUT /brands/:id
func (h *TaxonomyHandler) UpdateBrand(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid brand ID", nil)
		return
	}

	var req services.TaxonomyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	brand, err := h.taxonomyService.UpdateBrand(id, &req)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			utils.NotFoundResponse(c, "brand")
			return
		}
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}
	utils.SuccessResponse(c, gin.H{"brand": brand})
}

// DELETE /brands/:id
func (h *TaxonomyHandler) DeleteBrand(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid brand ID", nil)
		return
	}

	if err := h.taxonomyService.DeleteBrand(id); err != nil {
		if strings.Contains(err.Error(), "not found") {
			utils.NotFoundResponse(c, "brand")
			return
		}
		// Brands referenced by products fail the FK constraint
		utils.BadRequestResponse(c, database.TranslateError(lang, err), nil)
		return
	}
	utils.SuccessResponse(c, gin.H{"deleted": true})
}

// POST /brands/reorder
func (h *TaxonomyHandler) ReorderBrands(c *gin.Context) {
	h.reorder(c, &models.Brand{})
}

// GET /categories
func (h *TaxonomyHandler) GetCategories(c *gin.Context) {
	categories, err := h.taxonomyService.ListCategories(activeOnly(c))
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}
	utils.SuccessResponse(c, gin.H{"categories": categories})
}

// POST /categories
func (h *TaxonomyHandler) CreateCategory(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.TaxonomyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	category, err := h.taxonomyService.CreateCategory(&req)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}
	utils.CreatedResponse(c, gin.H{"category": category})
}

// PUT /categories/:id
func (h *TaxonomyHandler) UpdateCategory(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid category ID", nil)
		return
	}

	var req services.TaxonomyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	category, err := h.taxonomyService.UpdateCategory(id, &req)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			utils.NotFoundResponse(c, "category")
			return
		}
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}
	utils.SuccessResponse(c, gin.H{"category": category})
}

// DELETE /categories/:id
func (h *TaxonomyHandler) DeleteCategory(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid category ID", nil)
		return
	}

	if err := h.taxonomyService.DeleteCategory(id); err != nil {
		if strings.Contains(err.Error(), "not found") {
			utils.NotFoundResponse(c, "category")
			return
		}
		utils.BadRequestResponse(c, database.TranslateError(lang, err), nil)
		return
	}
	utils.SuccessResponse(c, gin.H{"deleted": true})
}

// POST /categories/reorder
func (h *TaxonomyHandler) ReorderCategories(c *gin.Context) {
	h.reorder(c, &models.Category{})
}

// GET /collections
func (h *TaxonomyHandler) GetCollections(c *gin.Context) {
	collections, err := h.taxonomyService.ListCollections(activeOnly(c))
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}
	utils.SuccessResponse(c, gin.H{"collections": collections})
}

// GET /collections/highlighted
func (h *TaxonomyHandler) GetHighlightedCollections(c *gin.Context) {
	collections, err := h.taxonomyService.GetHighlightedCollections(time.Now())
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}
	utils.SuccessResponse(c, gin.H{"collections": collections})
}

// POST /collections
func (h *TaxonomyHandler) CreateCollection(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.CollectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	collection, err := h.taxonomyService.CreateCollection(&req)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}
	utils.CreatedResponse(c, gin.H{"collection": collection})
}

// PUT /collections/:id
func (h *TaxonomyHandler) UpdateCollection(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid collection ID", nil)
		return
	}

	var req services.CollectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	collection, err := h.taxonomyService.UpdateCollection(id, &req)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			utils.NotFoundResponse(c, "collection")
			return
		}
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}
	utils.SuccessResponse(c, gin.H{"collection": collection})
}

// DELETE /collections/:id
func (h *TaxonomyHandler) DeleteCollection(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid collection ID", nil)
		return
	}

	if err := h.taxonomyService.DeleteCollection(id); err != nil {
		if strings.Contains(err.Error(), "not found") {
			utils.NotFoundResponse(c, "collection")
			return
		}
		utils.BadRequestResponse(c, database.TranslateError(lang, err), nil)
		return
	}
	utils.SuccessResponse(c, gin.H{"deleted": true})
}

// POST /collections/reorder
func (h *TaxonomyHandler) ReorderCollections(c *gin.Context) {
	h.reorder(c, &models.Collection{})
}

func (h *TaxonomyHandler) reorder(c *gin.Context, model interface{}) {
	lang := utils.GetLangFromContext(c)

	var req services.ReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if err := h.taxonomyService.Reorder(model, &req); err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}
	utils.SuccessResponse(c, gin.H{"reordered": true})
}
