package service

import (
	"context"
	"testing"
	"time"

	"github.com/eujoaosantiago/velohub/internal/model"
	"github.com/eujoaosantiago/velohub/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubVehicleRepo serves a fixed inventory snapshot so report figures can be
// checked without a database.
type stubVehicleRepo struct {
	vehicles []model.Vehicle
}

func (s *stubVehicleRepo) Create(ctx context.Context, vehicle *model.Vehicle) error { return nil }
func (s *stubVehicleRepo) FindByID(ctx context.Context, storeID, id uuid.UUID) (*model.Vehicle, error) {
	return nil, nil
}
func (s *stubVehicleRepo) List(ctx context.Context, storeID uuid.UUID, filter repository.VehicleFilter, page, limit int) ([]model.Vehicle, int64, error) {
	return s.vehicles, int64(len(s.vehicles)), nil
}
func (s *stubVehicleRepo) ListAll(ctx context.Context, storeID uuid.UUID) ([]model.Vehicle, error) {
	return s.vehicles, nil
}
func (s *stubVehicleRepo) Update(ctx context.Context, vehicle *model.Vehicle) error { return nil }
func (s *stubVehicleRepo) Delete(ctx context.Context, storeID, id uuid.UUID) error  { return nil }

func reportInventory() []model.Vehicle {
	saleDate := time.Now().UTC().AddDate(0, -1, 0)
	soldPrice := decimal.NewFromInt(35000)
	commission := decimal.NewFromInt(1000)

	return []model.Vehicle{
		{
			ID:                uuid.New(),
			Brand:             "Fiat",
			Model:             "Argo",
			Status:            model.VehicleStatusAvailable,
			PurchasePrice:     decimal.NewFromInt(20000),
			ExpectedSalePrice: decimal.NewFromInt(25000),
			Expenses: []model.Expense{
				{Category: model.ExpenseMaintenance, Amount: decimal.NewFromInt(1000)},
			},
		},
		{
			ID:             uuid.New(),
			Brand:          "Honda",
			Model:          "Civic",
			Status:         model.VehicleStatusSold,
			PurchasePrice:  decimal.NewFromInt(30000),
			SoldPrice:      &soldPrice,
			SaleDate:       &saleDate,
			SaleCommission: &commission,
			PaymentMethod:  model.PaymentCash,
			Expenses: []model.Expense{
				{Category: model.ExpenseMaintenance, Amount: decimal.NewFromInt(500)},
			},
		},
	}
}

func TestGetDashboardFigures(t *testing.T) {
	svc := NewReportService(&stubVehicleRepo{vehicles: reportInventory()})

	dashboard, err := svc.GetDashboard(context.Background(), uuid.NewString(), 6)
	require.NoError(t, err)

	assert.Equal(t, 1, dashboard.AvailableCount)
	assert.Equal(t, 1, dashboard.SoldCount)
	assert.Equal(t, 0, dashboard.ReservedCount)

	// Unsold: purchase 20000 + expense 1000 invested, projected 25000 - 21000
	assert.Equal(t, "21000.00", dashboard.StockValue)
	assert.Equal(t, "4000.00", dashboard.PotentialProfit)

	// Sold a month ago: 35000 - (30000 + 500 + 1000)
	assert.Equal(t, "3500.00", dashboard.RealizedProfit)
	assert.Len(t, dashboard.MonthlyProfit, 6)
}

func TestGetDashboardRejectsBadStoreID(t *testing.T) {
	svc := NewReportService(&stubVehicleRepo{})

	_, err := svc.GetDashboard(context.Background(), "not-a-uuid", 6)
	assert.Error(t, err)
}

func TestGetSalesReportUsesSettlementFigures(t *testing.T) {
	svc := NewReportService(&stubVehicleRepo{vehicles: reportInventory()})

	report, err := svc.GetSalesReport(context.Background(), uuid.NewString(), SalesReportRequest{})
	require.NoError(t, err)

	require.Len(t, report.Sales, 1)
	sale := report.Sales[0]
	assert.Equal(t, "Honda", sale.Brand)
	assert.Equal(t, "35000.00", sale.GrossRevenue)
	assert.Equal(t, "31500.00", sale.TotalCost)
	assert.Equal(t, "3500.00", sale.Profit)
	assert.Equal(t, "3500.00", report.TotalProfit)

	// Both inventory brands appear behind the sentinel
	assert.Equal(t, []string{"all", "Fiat", "Honda"}, report.Brands)
}

func TestGetSalesReportFiltersByBrand(t *testing.T) {
	svc := NewReportService(&stubVehicleRepo{vehicles: reportInventory()})

	report, err := svc.GetSalesReport(context.Background(), uuid.NewString(), SalesReportRequest{Brand: "Fiat"})
	require.NoError(t, err)
	assert.Empty(t, report.Sales)
	assert.Equal(t, "0.00", report.TotalProfit)
}

func TestBuildSaleFilter(t *testing.T) {
	filter, err := buildSaleFilter(SalesReportRequest{
		StartDate: "2026-01-01T00:00:00Z",
		EndDate:   "2026-06-30T00:00:00Z",
		MinProfit: "1000",
	})
	require.NoError(t, err)
	require.NotNil(t, filter.Start)
	require.NotNil(t, filter.End)
	require.NotNil(t, filter.MinProfit)
	assert.True(t, filter.MinProfit.Equal(decimal.NewFromInt(1000)))

	_, err = buildSaleFilter(SalesReportRequest{StartDate: "30/01/2026"})
	assert.Error(t, err)
}
