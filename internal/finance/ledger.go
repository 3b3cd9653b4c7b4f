package finance

import (
	"github.com/eujoaosantiago/velohub/internal/model"
	"github.com/shopspring/decimal"
)

// TotalExpenses sums every expense line regardless of category.
func TotalExpenses(expenses []model.Expense) decimal.Decimal {
	total := decimal.Zero
	for _, e := range expenses {
		total = total.Add(e.Amount)
	}
	return total
}

// TotalByCategory sums expense lines restricted to one category.
func TotalByCategory(expenses []model.Expense, category string) decimal.Decimal {
	total := decimal.Zero
	for _, e := range expenses {
		if e.Category == category {
			total = total.Add(e.Amount)
		}
	}
	return total
}

// OperatingCost sums every expense line except commission ones. Commission
// enters profit math only through EffectiveCommission.
func OperatingCost(expenses []model.Expense) decimal.Decimal {
	total := decimal.Zero
	for _, e := range expenses {
		if e.Category != model.ExpenseCommission {
			total = total.Add(e.Amount)
		}
	}
	return total
}

// EffectiveCommission is the single source of truth for the commission a
// vehicle's profit carries: the explicitly recorded sale commission when it
// is positive, otherwise the sum of COMMISSION-category expense lines.
// The two are never added together.
func EffectiveCommission(v model.Vehicle) decimal.Decimal {
	if v.SaleCommission != nil && v.SaleCommission.IsPositive() {
		return *v.SaleCommission
	}
	return TotalByCategory(v.Expenses, model.ExpenseCommission)
}
