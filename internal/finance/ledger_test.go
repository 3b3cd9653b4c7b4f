package finance

import (
	"testing"

	"github.com/eujoaosantiago/velohub/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func exp(category string, amount int64) model.Expense {
	return model.Expense{Category: category, Amount: decimal.NewFromInt(amount)}
}

func decPtr(amount int64) *decimal.Decimal {
	d := decimal.NewFromInt(amount)
	return &d
}

func TestTotalExpenses(t *testing.T) {
	assert.True(t, TotalExpenses(nil).IsZero())
	assert.True(t, TotalExpenses([]model.Expense{}).IsZero())

	ledger := []model.Expense{
		exp(model.ExpenseMaintenance, 500),
		exp(model.ExpenseTires, 300),
		exp(model.ExpenseCommission, 1000),
	}
	assert.Equal(t, "1800", TotalExpenses(ledger).String())
}

func TestTotalByCategory(t *testing.T) {
	ledger := []model.Expense{
		exp(model.ExpenseCommission, 300),
		exp(model.ExpenseMaintenance, 500),
		exp(model.ExpenseCommission, 500),
	}
	assert.Equal(t, "800", TotalByCategory(ledger, model.ExpenseCommission).String())
	assert.Equal(t, "500", TotalByCategory(ledger, model.ExpenseMaintenance).String())
	assert.True(t, TotalByCategory(ledger, model.ExpenseBodywork).IsZero())
}

func TestOperatingCost(t *testing.T) {
	ledger := []model.Expense{
		exp(model.ExpenseMaintenance, 500),
		exp(model.ExpenseCommission, 1000),
		exp(model.ExpenseOther, 100),
	}
	assert.Equal(t, "600", OperatingCost(ledger).String())
}

func TestEffectiveCommissionExplicitWins(t *testing.T) {
	v := model.Vehicle{
		SaleCommission: decPtr(500),
		Expenses: []model.Expense{
			exp(model.ExpenseCommission, 300),
			exp(model.ExpenseCommission, 200),
			exp(model.ExpenseCommission, 300),
		},
	}
	// explicit field wins outright: not 1300, not 800
	assert.Equal(t, "500", EffectiveCommission(v).String())
}

func TestEffectiveCommissionFallsBackToLedger(t *testing.T) {
	ledger := []model.Expense{
		exp(model.ExpenseCommission, 300),
		exp(model.ExpenseCommission, 500),
	}

	v := model.Vehicle{Expenses: ledger}
	assert.Equal(t, "800", EffectiveCommission(v).String())

	// an explicit zero is treated as unset
	v.SaleCommission = decPtr(0)
	assert.Equal(t, "800", EffectiveCommission(v).String())
}

func TestEffectiveCommissionEmpty(t *testing.T) {
	assert.True(t, EffectiveCommission(model.Vehicle{}).IsZero())
}
