// internal/services/expense_service.go
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

type ExpenseService struct {
	db *gorm.DB
}

type ExpenseRequest struct {
	Description string    `json:"description" validate:"required,min=2,max=255"`
	Amount      float64   `json:"amount" validate:"required,gt=0"`
	Category    string    `json:"category" validate:"required"`
	IncurredAt  time.Time `json:"incurred_at" validate:"required"`
	Notes       string    `json:"notes,omitempty"`
}

type ExpenseSummary struct {
	Total      float64            `json:"total"`
	ByCategory map[string]float64 `json:"by_category"`
	Count      int64              `json:"count"`
}

func NewExpenseService(db *gorm.DB) *ExpenseService {
	return &ExpenseService{db: db}
}

func (s *ExpenseService) ListExpenses(params utils.PaginationParams) ([]models.Expense, int64, error) {
	query := s.db.Model(&models.Expense{})

	if params.Category != "" {
		query = query.Where("category = ?", params.Category)
	}
	if params.Search != "" {
		query = query.Where("LOWER(description) LIKE ?", "%"+params.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count expenses: %w", err)
	}

	allowedSortFields := []string{"created_at", "incurred_at", "amount", "category"}
	query = utils.ApplySort(query, params, allowedSortFields)
	query = utils.ApplyPagination(query, params)

	var expenses []models.Expense
	if err := query.Find(&expenses).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch expenses: %w", err)
	}

	return expenses, total, nil
}

func (s *ExpenseService) CreateExpense(req *ExpenseRequest) (*models.Expense, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	expense := &models.Expense{
		Description: req.Description,
		Amount:      utils.RoundMoney(req.Amount),
		Category:    req.Category,
		IncurredAt:  req.IncurredAt,
		Notes:       req.Notes,
	}
	if err := s.db.Create(expense).Error; err != nil {
		return nil, fmt.Errorf("failed to create expense: %w", err)
	}
	return expense, nil
}

func (s *ExpenseService) UpdateExpense(id uuid.UUID, req *ExpenseRequest) (*models.Expense, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var expense models.Expense
	if err := s.db.First(&expense, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("expense not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	updates := map[string]interface{}{
		"description": req.Description,
		"amount":      utils.RoundMoney(req.Amount),
		"category":    req.Category,
		"incurred_at": req.IncurredAt,
		"notes":       req.Notes,
	}
	if err := s.db.Model(&expense).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update expense: %w", err)
	}
	return &expense, nil
}

func (s *ExpenseService) DeleteExpense(id uuid.UUID) error {
	result := s.db.Delete(&models.Expense{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete expense: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.New("expense not found")
	}
	return nil
}

// Summarize aggregates expenses inside [from, to) per category.
func (s *ExpenseService) Summarize(from, to time.Time) (*ExpenseSummary, error) {
	var rows []struct {
		Category string
		Total    float64
		Count    int64
	}
	if err := s.db.Model(&models.Expense{}).
		Select("category, COALESCE(SUM(amount), 0) as total, COUNT(*) as count").
		Where("incurred_at >= ? AND incurred_at < ?", from, to).
		Group("category").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to summarize expenses: %w", err)
	}

	summary := &ExpenseSummary{ByCategory: make(map[string]float64)}
	for _, row := range rows {
		summary.ByCategory[row.Category] = utils.RoundMoney(row.Total)
		summary.Total += row.Total
		summary.Count += row.Count
	}
	summary.Total = utils.RoundMoney(summary.Total)
	return summary, nil
}
