package finance

import (
	"sort"
	"time"

	"github.com/eujoaosantiago/velohub/internal/model"
	"github.com/shopspring/decimal"
)

// FilterAll is the sentinel prepended to distinct-value lists and accepted
// by FilterSales as "no restriction".
const FilterAll = "all"

// MonthBucket is one point of the monthly profit series.
type MonthBucket struct {
	Month  string          `json:"month"` // "2006-01"
	Profit decimal.Decimal `json:"profit"`
}

// BucketByMonth accumulates realized profit per sale month. Every month in
// [start, end] appears in the result, zero-filled, in chronological order.
// Vehicles without a usable sale date, or sold outside the range, are
// skipped rather than skewing a bucket.
func BucketByMonth(vehicles []model.Vehicle, start, end time.Time) []MonthBucket {
	first := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, time.UTC)
	last := time.Date(end.Year(), end.Month(), 1, 0, 0, 0, 0, time.UTC)
	if last.Before(first) {
		return []MonthBucket{}
	}

	var buckets []MonthBucket
	index := make(map[string]int)
	for m := first; !m.After(last); m = m.AddDate(0, 1, 0) {
		key := m.Format("2006-01")
		index[key] = len(buckets)
		buckets = append(buckets, MonthBucket{Month: key, Profit: decimal.Zero})
	}

	for _, v := range vehicles {
		if v.SaleDate == nil || v.SaleDate.IsZero() {
			continue
		}
		i, ok := index[v.SaleDate.Format("2006-01")]
		if !ok {
			continue
		}
		buckets[i].Profit = buckets[i].Profit.Add(RealizedProfit(v))
	}

	return buckets
}

// SaleFilter is a conjunctive filter over completed sales. Nil/empty fields
// are no-ops; the "all" sentinel is equivalent to empty. MinProfit and
// MaxProfit bound the realized profit, not gross revenue.
type SaleFilter struct {
	Start         *time.Time
	End           *time.Time
	Brand         string
	Model         string
	PaymentMethod string
	MinProfit     *decimal.Decimal
	MaxProfit     *decimal.Decimal
}

// FilterSales returns the sold vehicles matching every set criterion.
func FilterSales(vehicles []model.Vehicle, f SaleFilter) []model.Vehicle {
	matched := make([]model.Vehicle, 0, len(vehicles))
	for _, v := range vehicles {
		if v.Status != model.VehicleStatusSold {
			continue
		}
		if f.Start != nil || f.End != nil {
			if v.SaleDate == nil || v.SaleDate.IsZero() {
				continue
			}
			if f.Start != nil && v.SaleDate.Before(*f.Start) {
				continue
			}
			if f.End != nil && v.SaleDate.After(*f.End) {
				continue
			}
		}
		if !matchesValue(f.Brand, v.Brand) {
			continue
		}
		if !matchesValue(f.Model, v.Model) {
			continue
		}
		if !matchesValue(f.PaymentMethod, v.PaymentMethod) {
			continue
		}
		if f.MinProfit != nil || f.MaxProfit != nil {
			profit := RealizedProfit(v)
			if f.MinProfit != nil && profit.LessThan(*f.MinProfit) {
				continue
			}
			if f.MaxProfit != nil && profit.GreaterThan(*f.MaxProfit) {
				continue
			}
		}
		matched = append(matched, v)
	}
	return matched
}

func matchesValue(want, got string) bool {
	return want == "" || want == FilterAll || want == got
}

// DistinctBrands lists every brand present, alphabetically, with the "all"
// sentinel prepended for filter controls.
func DistinctBrands(vehicles []model.Vehicle) []string {
	return distinct(vehicles, func(v model.Vehicle) string { return v.Brand })
}

// DistinctModels lists the models of one brand (or of every brand when the
// sentinel is passed), alphabetically, with the "all" sentinel prepended.
func DistinctModels(vehicles []model.Vehicle, brand string) []string {
	return distinct(vehicles, func(v model.Vehicle) string {
		if !matchesValue(brand, v.Brand) {
			return ""
		}
		return v.Model
	})
}

func distinct(vehicles []model.Vehicle, pick func(model.Vehicle) string) []string {
	seen := make(map[string]bool)
	for _, v := range vehicles {
		if val := pick(v); val != "" {
			seen[val] = true
		}
	}
	values := make([]string, 0, len(seen)+1)
	for val := range seen {
		values = append(values, val)
	}
	sort.Strings(values)
	return append([]string{FilterAll}, values...)
}
