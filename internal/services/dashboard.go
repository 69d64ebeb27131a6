package services

import (
	"context"
	"fmt"

	"grana/internal/core"
	"grana/internal/storage"
)

// DashboardService serves the read-only monthly aggregations. All of them are
// cash-basis: only paid transactions count.
type DashboardService struct {
	transactions storage.TransactionRepository
}

func NewDashboardService(transactions storage.TransactionRepository) *DashboardService {
	return &DashboardService{transactions: transactions}
}

func (s *DashboardService) MonthlySum(ctx context.Context, userID string, year, month int) (core.MonthlySummary, error) {
	sum, err := s.transactions.MonthlySum(ctx, userID, year, month)
	if err != nil {
		return core.MonthlySummary{}, fmt.Errorf("monthly sum: %w", err)
	}
	return sum, nil
}

func (s *DashboardService) SumByCategory(ctx context.Context, userID string, year, month int) ([]core.CategorySummary, error) {
	sums, err := s.transactions.SumByCategory(ctx, userID, year, month)
	if err != nil {
		return nil, fmt.Errorf("sum by category: %w", err)
	}
	return sums, nil
}

func (s *DashboardService) SumByPaymentMethod(ctx context.Context, userID string, year, month int) ([]core.PaymentMethodSummary, error) {
	sums, err := s.transactions.SumByPaymentMethod(ctx, userID, year, month)
	if err != nil {
		return nil, fmt.Errorf("sum by payment method: %w", err)
	}
	return sums, nil
}
