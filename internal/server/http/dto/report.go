package dto

import "github.com/polkiloo/vouchermart/internal/domain/model"

// ProductSalesResponse is one row of the sales report.
type ProductSalesResponse struct {
	Slug    string `json:"slug"`
	Name    string `json:"name"`
	Orders  int64  `json:"orders"`
	Revenue string `json:"revenue"`
}

// ReportResponse is the admin sales summary.
type ReportResponse struct {
	Products     []ProductSalesResponse `json:"products"`
	TotalOrders  int64                  `json:"total_orders"`
	TotalRevenue string                 `json:"total_revenue"`
	StatusCounts map[string]int64       `json:"status_counts"`
}

// NewReportResponse maps a report to its public representation.
func NewReportResponse(r model.Report) ReportResponse {
	resp := ReportResponse{
		Products:     make([]ProductSalesResponse, 0, len(r.Products)),
		TotalOrders:  r.TotalOrders,
		TotalRevenue: FormatAmount(r.TotalRevenue),
		StatusCounts: make(map[string]int64, len(r.StatusCounts)),
	}
	for _, p := range r.Products {
		resp.Products = append(resp.Products, ProductSalesResponse{
			Slug:    p.Slug,
			Name:    p.Name,
			Orders:  p.Orders,
			Revenue: FormatAmount(p.Revenue),
		})
	}
	for status, n := range r.StatusCounts {
		resp.StatusCounts[string(status)] = n
	}
	return resp
}
