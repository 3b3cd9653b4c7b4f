package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/eujoaosantiago/velohub/internal/finance"
	"github.com/eujoaosantiago/velohub/internal/model"
	"github.com/eujoaosantiago/velohub/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// --- DTOs ---

type DashboardResponse struct {
	AvailableCount   int `json:"available_count"`
	ReservedCount    int `json:"reserved_count"`
	PreparationCount int `json:"preparation_count"`
	SoldCount        int `json:"sold_count"`

	StockValue        string `json:"stock_value"` // invested in unsold inventory
	StockValueDisplay string `json:"stock_value_display"`

	PotentialProfit        string `json:"potential_profit"` // projected, unsold inventory
	PotentialProfitDisplay string `json:"potential_profit_display"`

	RealizedProfit        string                `json:"realized_profit"` // within the month range
	RealizedProfitDisplay string                `json:"realized_profit_display"`
	MonthlyProfit         []finance.MonthBucket `json:"monthly_profit"`
}

type SalesReportRequest struct {
	StartDate     string `form:"start_date"` // RFC3339
	EndDate       string `form:"end_date"`
	Brand         string `form:"brand"`
	Model         string `form:"model"`
	PaymentMethod string `form:"payment_method"`
	MinProfit     string `form:"min_profit"`
	MaxProfit     string `form:"max_profit"`
}

type SaleSummary struct {
	VehicleID     string `json:"vehicle_id"`
	Brand         string `json:"brand"`
	Model         string `json:"model"`
	Year          int    `json:"year"`
	SaleDate      string `json:"sale_date"`
	PaymentMethod string `json:"payment_method"`

	GrossRevenue string `json:"gross_revenue"`
	CashReceived string `json:"cash_received"`
	TotalCost    string `json:"total_cost"`
	Profit       string `json:"profit"`
	ROI          string `json:"roi"`
}

type SalesReportResponse struct {
	Sales       []SaleSummary         `json:"sales"`
	TotalProfit string                `json:"total_profit"`
	MonthlyData []finance.MonthBucket `json:"monthly_data"`
	Brands      []string              `json:"brands"`
	Models      []string              `json:"models"`
}

// --- Interface ---

type ReportService interface {
	GetDashboard(ctx context.Context, storeID string, months int) (DashboardResponse, error)
	GetSalesReport(ctx context.Context, storeID string, req SalesReportRequest) (SalesReportResponse, error)
}

type reportService struct {
	vehicleRepo repository.VehicleRepository
}

func NewReportService(vehicleRepo repository.VehicleRepository) ReportService {
	return &reportService{vehicleRepo: vehicleRepo}
}

// --- Implementation ---

// GetDashboard and GetSalesReport both derive every figure from the same
// finance package over the same inventory snapshot, so the two screens can
// never disagree on what a vehicle earned.
func (s *reportService) GetDashboard(ctx context.Context, storeID string, months int) (DashboardResponse, error) {
	storeUUID, err := uuid.Parse(storeID)
	if err != nil {
		return DashboardResponse{}, errors.New("invalid store id")
	}
	if months <= 0 {
		months = 6
	}

	vehicles, err := s.vehicleRepo.ListAll(ctx, storeUUID)
	if err != nil {
		return DashboardResponse{}, fmt.Errorf("failed to fetch inventory: %w", err)
	}

	var resp DashboardResponse
	stockValue := decimal.Zero
	potential := decimal.Zero

	for _, v := range vehicles {
		switch v.Status {
		case model.VehicleStatusAvailable:
			resp.AvailableCount++
		case model.VehicleStatusReserved:
			resp.ReservedCount++
		case model.VehicleStatusPreparation:
			resp.PreparationCount++
		case model.VehicleStatusSold:
			resp.SoldCount++
		}
		if v.Status != model.VehicleStatusSold {
			stockValue = stockValue.Add(finance.TotalCost(v))
			potential = potential.Add(finance.ProjectedProfit(v))
		}
	}

	now := time.Now().UTC()
	start := now.AddDate(0, -(months - 1), 0)
	buckets := finance.BucketByMonth(vehicles, start, now)

	realized := decimal.Zero
	for _, b := range buckets {
		realized = realized.Add(b.Profit)
	}

	resp.StockValue = stockValue.StringFixed(2)
	resp.StockValueDisplay = finance.FormatBRL(stockValue)
	resp.PotentialProfit = potential.StringFixed(2)
	resp.PotentialProfitDisplay = finance.FormatBRL(potential)
	resp.RealizedProfit = realized.StringFixed(2)
	resp.RealizedProfitDisplay = finance.FormatBRL(realized)
	resp.MonthlyProfit = buckets

	return resp, nil
}

func (s *reportService) GetSalesReport(ctx context.Context, storeID string, req SalesReportRequest) (SalesReportResponse, error) {
	storeUUID, err := uuid.Parse(storeID)
	if err != nil {
		return SalesReportResponse{}, errors.New("invalid store id")
	}

	filter, err := buildSaleFilter(req)
	if err != nil {
		return SalesReportResponse{}, err
	}

	vehicles, err := s.vehicleRepo.ListAll(ctx, storeUUID)
	if err != nil {
		return SalesReportResponse{}, fmt.Errorf("failed to fetch inventory: %w", err)
	}

	sold := finance.FilterSales(vehicles, filter)

	sales := make([]SaleSummary, 0, len(sold))
	totalProfit := decimal.Zero
	for _, v := range sold {
		settlement := finance.SettleSale(v)
		totalProfit = totalProfit.Add(settlement.Profit)

		summary := SaleSummary{
			VehicleID:     v.ID.String(),
			Brand:         v.Brand,
			Model:         v.Model,
			Year:          v.Year,
			PaymentMethod: v.PaymentMethod,
			GrossRevenue:  settlement.GrossRevenue.StringFixed(2),
			CashReceived:  settlement.CashReceived.StringFixed(2),
			TotalCost:     settlement.TotalCost.StringFixed(2),
			Profit:        settlement.Profit.StringFixed(2),
			ROI:           settlement.ROI.StringFixed(2),
		}
		if v.SaleDate != nil {
			summary.SaleDate = v.SaleDate.Format(time.RFC3339)
		}
		sales = append(sales, summary)
	}

	resp := SalesReportResponse{
		Sales:       sales,
		TotalProfit: totalProfit.StringFixed(2),
		Brands:      finance.DistinctBrands(vehicles),
		Models:      finance.DistinctModels(vehicles, req.Brand),
	}

	if filter.Start != nil && filter.End != nil {
		resp.MonthlyData = finance.BucketByMonth(sold, *filter.Start, *filter.End)
	}

	return resp, nil
}

// --- Helpers ---

func buildSaleFilter(req SalesReportRequest) (finance.SaleFilter, error) {
	filter := finance.SaleFilter{
		Brand:         req.Brand,
		Model:         req.Model,
		PaymentMethod: req.PaymentMethod,
	}

	if req.StartDate != "" {
		start, err := time.Parse(time.RFC3339, req.StartDate)
		if err != nil {
			return finance.SaleFilter{}, fmt.Errorf("invalid start_date: %w", err)
		}
		filter.Start = &start
	}
	if req.EndDate != "" {
		end, err := time.Parse(time.RFC3339, req.EndDate)
		if err != nil {
			return finance.SaleFilter{}, fmt.Errorf("invalid end_date: %w", err)
		}
		filter.End = &end
	}
	if req.MinProfit != "" {
		min := parseMoney(req.MinProfit)
		filter.MinProfit = &min
	}
	if req.MaxProfit != "" {
		max := parseMoney(req.MaxProfit)
		filter.MaxProfit = &max
	}

	return filter, nil
}
