package finance

import (
	"testing"
	"time"

	"github.com/eujoaosantiago/velohub/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func soldVehicle(brand, mdl, payment string, saleDate time.Time, purchase, sold int64) model.Vehicle {
	return model.Vehicle{
		Brand:         brand,
		Model:         mdl,
		PaymentMethod: payment,
		Status:        model.VehicleStatusSold,
		SaleDate:      &saleDate,
		PurchasePrice: decimal.NewFromInt(purchase),
		SoldPrice:     decPtr(sold),
	}
}

func TestBucketByMonthZeroFills(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)

	vehicles := []model.Vehicle{
		soldVehicle("Fiat", "Uno", model.PaymentCash, time.Date(2025, 2, 14, 0, 0, 0, 0, time.UTC), 20000, 23000),
		soldVehicle("Fiat", "Toro", model.PaymentPix, time.Date(2025, 5, 3, 0, 0, 0, 0, time.UTC), 80000, 85000),
	}

	buckets := BucketByMonth(vehicles, start, end)
	require.Len(t, buckets, 6)

	zeroes := 0
	for _, b := range buckets {
		if b.Profit.IsZero() {
			zeroes++
		}
	}
	assert.Equal(t, 4, zeroes)

	assert.Equal(t, "2025-01", buckets[0].Month)
	assert.Equal(t, "2025-02", buckets[1].Month)
	assert.Equal(t, "3000", buckets[1].Profit.String())
	assert.Equal(t, "5000", buckets[4].Profit.String())
	assert.Equal(t, "2025-06", buckets[5].Month)
}

func TestBucketByMonthSkipsBadDates(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)

	noDate := soldVehicle("VW", "Gol", model.PaymentCash, time.Time{}, 10000, 12000)
	noDate.SaleDate = nil
	zeroDate := soldVehicle("VW", "Gol", model.PaymentCash, time.Time{}, 10000, 12000)
	outside := soldVehicle("VW", "Gol", model.PaymentCash, time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC), 10000, 12000)

	buckets := BucketByMonth([]model.Vehicle{noDate, zeroDate, outside}, start, end)
	require.Len(t, buckets, 3)
	for _, b := range buckets {
		assert.True(t, b.Profit.IsZero())
	}
}

func TestBucketByMonthInvertedRange(t *testing.T) {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.Empty(t, BucketByMonth(nil, start, end))
}

func TestFilterSalesConjunctive(t *testing.T) {
	feb := time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC)
	mar := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	unoCash := soldVehicle("Fiat", "Uno", model.PaymentCash, feb, 20000, 23000)    // profit 3000
	toroPix := soldVehicle("Fiat", "Toro", model.PaymentPix, mar, 80000, 85000)    // profit 5000
	golCard := soldVehicle("VW", "Gol", model.PaymentCard, mar, 30000, 31000)      // profit 1000
	unsold := model.Vehicle{Brand: "Fiat", Status: model.VehicleStatusAvailable}

	vehicles := []model.Vehicle{unoCash, toroPix, golCard, unsold}

	// no criteria: every completed sale, never unsold inventory
	assert.Len(t, FilterSales(vehicles, SaleFilter{}), 3)

	// sentinel behaves like unset
	assert.Len(t, FilterSales(vehicles, SaleFilter{Brand: FilterAll}), 3)

	assert.Len(t, FilterSales(vehicles, SaleFilter{Brand: "Fiat"}), 2)
	assert.Len(t, FilterSales(vehicles, SaleFilter{Brand: "Fiat", Model: "Toro"}), 1)
	assert.Len(t, FilterSales(vehicles, SaleFilter{PaymentMethod: model.PaymentCard}), 1)

	min := decimal.NewFromInt(2000)
	max := decimal.NewFromInt(4000)
	byProfit := FilterSales(vehicles, SaleFilter{MinProfit: &min, MaxProfit: &max})
	require.Len(t, byProfit, 1)
	assert.Equal(t, "Uno", byProfit[0].Model)

	from := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	assert.Len(t, FilterSales(vehicles, SaleFilter{Start: &from}), 2)
	assert.Len(t, FilterSales(vehicles, SaleFilter{Start: &from, Brand: "VW"}), 1)
}

func TestDistinctBrandsAndModels(t *testing.T) {
	feb := time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC)
	vehicles := []model.Vehicle{
		soldVehicle("VW", "Gol", model.PaymentCash, feb, 1, 2),
		soldVehicle("Fiat", "Uno", model.PaymentCash, feb, 1, 2),
		soldVehicle("Fiat", "Toro", model.PaymentCash, feb, 1, 2),
		soldVehicle("Fiat", "Uno", model.PaymentCash, feb, 1, 2),
	}

	assert.Equal(t, []string{FilterAll, "Fiat", "VW"}, DistinctBrands(vehicles))
	assert.Equal(t, []string{FilterAll, "Toro", "Uno"}, DistinctModels(vehicles, "Fiat"))
	assert.Equal(t, []string{FilterAll, "Gol"}, DistinctModels(vehicles, "VW"))
	assert.Equal(t, []string{FilterAll, "Gol", "Toro", "Uno"}, DistinctModels(vehicles, FilterAll))
	assert.Equal(t, []string{FilterAll}, DistinctBrands(nil))
}
