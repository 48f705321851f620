// internal/handlers/admin.go
package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/alluracouro/allura-backend/internal/services"
	"github.com/alluracouro/allura-backend/internal/utils"
)

type AdminHandler struct {
	adminService *services.AdminService
}

func NewAdminHandler(adminService *services.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// GET /admin/dashboard
func (h *AdminHandler) GetDashboard(c *gin.Context) {
	stats, err := h.adminService.GetDashboardStats()
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}
	utils.SuccessResponse(c, gin.H{"stats": stats})
}

// GET /admin/dashboard/revenue?months=6
func (h *AdminHandler) GetRevenueSeries(c *gin.Context) {
	months, err := strconv.Atoi(c.DefaultQuery("months", "6"))
	if err != nil || months < 1 || months > 24 {
		months = 6
	}

	series, err := h.adminService.GetRevenueSeries(months)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}
	utils.SuccessResponse(c, gin.H{"series": series})
}

// GET /admin/customers
func (h *AdminHandler) GetCustomers(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	customers, total, err := h.adminService.ListCustomers(params)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	result := utils.CreatePaginationResult(customers, total, params)
	utils.PaginatedResponse(c, result)
}
