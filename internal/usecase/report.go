package usecase

import (
	"context"

	"github.com/polkiloo/vouchermart/internal/domain/model"
	"github.com/polkiloo/vouchermart/internal/domain/repository"
)

// ReportUseCase builds the admin sales report.
type ReportUseCase struct {
	orders repository.OrderRepository
}

// NewReportUseCase constructs ReportUseCase.
func NewReportUseCase(orders repository.OrderRepository) *ReportUseCase {
	return &ReportUseCase{orders: orders}
}

// Sales aggregates order counts and revenue per product over paid and fulfilled orders.
func (u *ReportUseCase) Sales(ctx context.Context) (*model.Report, error) {
	sales, err := u.orders.SalesByProduct(ctx, model.RevenueStatuses)
	if err != nil {
		return nil, err
	}
	counts, err := u.orders.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	report := &model.Report{Products: sales, StatusCounts: counts}
	for _, s := range sales {
		report.TotalOrders += s.Orders
		report.TotalRevenue += s.Revenue
	}
	return report, nil
}
