package model

// ProductSales aggregates settled orders of one product.
type ProductSales struct {
	ProductID int64
	Slug      string
	Name      string
	Orders    int64
	Revenue   int64
}

// Report summarises sales for the admin dashboard.
type Report struct {
	Products     []ProductSales
	TotalOrders  int64
	TotalRevenue int64
	StatusCounts map[OrderStatus]int64
}

// RevenueStatuses lists statuses whose amounts count as revenue.
var RevenueStatuses = []OrderStatus{OrderStatusPaid, OrderStatusFulfilled}
