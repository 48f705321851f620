// internal/handlers/layout.go
package handlers

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/alluracouro/allura-backend/internal/editor"
	"github.com/alluracouro/allura-backend/internal/i18n"
	"github.com/alluracouro/allura-backend/internal/services"
	"github.com/alluracouro/allura-backend/internal/utils"
)

// LayoutHandler exposes the visual page editor: a draft session per page with
// move/visibility/theme edits, undo/redo, and publish.
type LayoutHandler struct {
	layoutService *services.LayoutService
}

func NewLayoutHandler(layoutService *services.LayoutService) *LayoutHandler {
	return &LayoutHandler{layoutService: layoutService}
}

func layoutPage(c *gin.Context) string {
	page := c.Param("page")
	if page == "" {
		page = "home"
	}
	return page
}

// GET /layouts/:page
// Published layout, read by the storefront.
func (h *LayoutHandler) GetLayout(c *gin.Context) {
	layout, err := h.layoutService.GetLayout(layoutPage(c))
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}
	utils.SuccessResponse(c, gin.H{"layout": layout})
}

// GET /admin/layouts/:page/session
func (h *LayoutHandler) GetSession(c *gin.Context) {
	state, history, err := h.layoutService.SessionState(layoutPage(c))
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}
	utils.SuccessResponse(c, gin.H{"state": state, "history": history})
}

// POST /admin/layouts/:page/move
func (h *LayoutHandler) MoveSection(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req struct {
		ActiveID string `json:"active_id" binding:"required"`
		OverID   string `json:"over_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	state, history, err := h.layoutService.Move(layoutPage(c), req.ActiveID, req.OverID)
	if err != nil {
		h.editorError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"state": state, "history": history})
}

// POST /admin/layouts/:page/visibility
func (h *LayoutHandler) SetVisibility(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req struct {
		SectionID string `json:"section_id" binding:"required"`
		Visible   *bool  `json:"visible" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	state, history, err := h.layoutService.SetVisibility(layoutPage(c), req.SectionID, *req.Visible)
	if err != nil {
		h.editorError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"state": state, "history": history})
}

// POST /admin/layouts/:page/theme
func (h *LayoutHandler) SetTheme(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req struct {
		Theme string `json:"theme" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	state, history, err := h.layoutService.SetTheme(layoutPage(c), req.Theme)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}
	utils.SuccessResponse(c, gin.H{"state": state, "history": history})
}

// POST /admin/layouts/:page/undo
func (h *LayoutHandler) Undo(c *gin.Context) {
	state, history, ok, err := h.layoutService.Undo(layoutPage(c))
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}
	utils.SuccessResponse(c, gin.H{"state": state, "history": history, "applied": ok})
}

// POST /admin/layouts/:page/redo
func (h *LayoutHandler) Redo(c *gin.Context) {
	state, history, ok, err := h.layoutService.Redo(layoutPage(c))
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}
	utils.SuccessResponse(c, gin.H{"state": state, "history": history, "applied": ok})
}

// POST /admin/layouts/:page/publish
func (h *LayoutHandler) Publish(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	layout, err := h.layoutService.Publish(layoutPage(c))
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyLayoutSaved),
		"layout":  layout,
	})
}

// POST /admin/layouts/:page/discard
func (h *LayoutHandler) Discard(c *gin.Context) {
	h.layoutService.Discard(layoutPage(c))
	utils.SuccessResponse(c, gin.H{"discarded": true})
}

func (h *LayoutHandler) editorError(c *gin.Context, err error) {
	if errors.Is(err, editor.ErrSectionNotFound) || strings.Contains(err.Error(), "not found") {
		utils.NotFoundResponse(c, "layout")
		return
	}
	utils.BadRequestResponse(c, err.Error(), nil)
}
