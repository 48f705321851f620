// internal/services/admin_service.go
package services

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/alluracouro/allura-backend/internal/models"
	"github.com/alluracouro/allura-backend/internal/utils"
)

type AdminService struct {
	db *gorm.DB
}

// DashboardStats powers the admin home screen.
type DashboardStats struct {
	TotalProducts   int64   `json:"total_products"`
	ActiveProducts  int64   `json:"active_products"`
	LowStockCount   int64   `json:"low_stock_count"`
	TotalCustomers  int64   `json:"total_customers"`
	TotalOrders     int64   `json:"total_orders"`
	PendingOrders   int64   `json:"pending_orders"`
	RevenueTotal    float64 `json:"revenue_total"`
	RevenueMonth    float64 `json:"revenue_month"`
	ExpensesMonth   float64 `json:"expenses_month"`
	ActiveCoupons   int64   `json:"active_coupons"`
	CouponsRedeemed int64   `json:"coupons_redeemed"`
}

type MonthlyRevenuePoint struct {
	Month   string  `json:"month"`
	Revenue float64 `json:"revenue"`
	Orders  int64   `json:"orders"`
}

func NewAdminService(db *gorm.DB) *AdminService {
	return &AdminService{db: db}
}

func (s *AdminService) GetDashboardStats() (*DashboardStats, error) {
	stats := &DashboardStats{}

	s.db.Model(&models.Product{}).Count(&stats.TotalProducts)
	s.db.Model(&models.Product{}).Where("is_active = ?", true).Count(&stats.ActiveProducts)
	s.db.Model(&models.Product{}).
		Where("stock_quantity <= low_stock_threshold").
		Count(&stats.LowStockCount)

	s.db.Model(&models.User{}).Where("role = ?", models.UserRoleCustomer).Count(&stats.TotalCustomers)

	s.db.Model(&models.Order{}).Count(&stats.TotalOrders)
	s.db.Model(&models.Order{}).Where("status = ?", models.OrderStatusPending).Count(&stats.PendingOrders)

	if err := s.db.Model(&models.Order{}).
		Where("status = ?", models.OrderStatusPaid).
		Select("COALESCE(SUM(total), 0)").
		Scan(&stats.RevenueTotal).Error; err != nil {
		return nil, fmt.Errorf("failed to compute revenue: %w", err)
	}

	monthStart := startOfMonth(time.Now())
	s.db.Model(&models.Order{}).
		Where("status = ? AND created_at >= ?", models.OrderStatusPaid, monthStart).
		Select("COALESCE(SUM(total), 0)").
		Scan(&stats.RevenueMonth)

	s.db.Model(&models.Expense{}).
		Where("incurred_at >= ?", monthStart).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&stats.ExpensesMonth)

	s.db.Model(&models.Coupon{}).Where("is_active = ?", true).Count(&stats.ActiveCoupons)
	s.db.Model(&models.Coupon{}).
		Select("COALESCE(SUM(used_count), 0)").
		Scan(&stats.CouponsRedeemed)

	stats.RevenueTotal = utils.RoundMoney(stats.RevenueTotal)
	stats.RevenueMonth = utils.RoundMoney(stats.RevenueMonth)
	stats.ExpensesMonth = utils.RoundMoney(stats.ExpensesMonth)

	return stats, nil
}

// GetRevenueSeries returns paid revenue bucketed per month for the last
// `months` months, oldest first.
func (s *AdminService) GetRevenueSeries(months int) ([]MonthlyRevenuePoint, error) {
	if months < 1 {
		months = 6
	}
	since := startOfMonth(time.Now()).AddDate(0, -(months - 1), 0)

	var rows []struct {
		Month   time.Time
		Revenue float64
		Orders  int64
	}
	if err := s.db.Model(&models.Order{}).
		Select("DATE_TRUNC('month', created_at) as month, COALESCE(SUM(total), 0) as revenue, COUNT(*) as orders").
		Where("status = ? AND created_at >= ?", models.OrderStatusPaid, since).
		Group("month").
		Order("month ASC").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to compute revenue series: %w", err)
	}

	series := make([]MonthlyRevenuePoint, 0, len(rows))
	for _, row := range rows {
		series = append(series, MonthlyRevenuePoint{
			Month:   row.Month.Format("2006-01"),
			Revenue: utils.RoundMoney(row.Revenue),
			Orders:  row.Orders,
		})
	}
	return series, nil
}

func (s *AdminService) ListCustomers(params utils.PaginationParams) ([]models.User, int64, error) {
	query := s.db.Model(&models.User{}).Where("role = ?", models.UserRoleCustomer)

	if params.Search != "" {
		search := "%" + params.Search + "%"
		query = query.Where("name ILIKE ? OR email ILIKE ?", search, search)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count customers: %w", err)
	}

	allowedSortFields := []string{"created_at", "name", "email", "last_login_at"}
	query = utils.ApplySort(query, params, allowedSortFields)
	query = utils.ApplyPagination(query, params)

	var users []models.User
	if err := query.Find(&users).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch customers: %w", err)
	}
	return users, total, nil
}

func startOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}
