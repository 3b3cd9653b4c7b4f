package finance

import (
	"testing"

	"github.com/eujoaosantiago/velohub/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRealizedProfitVoidSaleGuard(t *testing.T) {
	v := model.Vehicle{
		PurchasePrice: decimal.NewFromInt(30000),
		Expenses:      []model.Expense{exp(model.ExpenseMaintenance, 500)},
	}

	// no sold price at all
	assert.True(t, RealizedProfit(v).IsZero())

	// zero and negative sold prices report exactly zero, never a loss
	v.SoldPrice = decPtr(0)
	assert.True(t, RealizedProfit(v).IsZero())
	v.SoldPrice = decPtr(-100)
	assert.True(t, RealizedProfit(v).IsZero())
}

func TestRealizedProfitLossClamp(t *testing.T) {
	v := model.Vehicle{
		PurchasePrice: decimal.NewFromInt(30000),
		SoldPrice:     decPtr(25000),
	}
	assert.Equal(t, "-5000", RealizedProfit(v).String())

	// a negative-amount expense row (malformed data) must not flip a
	// below-cost sale into a profit
	bad := decimal.NewFromInt(-10000)
	v.Expenses = []model.Expense{{Category: model.ExpenseMaintenance, Amount: bad}}
	assert.True(t, RealizedProfit(v).IsZero())
}

func TestRealizedProfitEndToEnd(t *testing.T) {
	v := model.Vehicle{
		PurchasePrice: decimal.NewFromInt(30000),
		SoldPrice:     decPtr(35000),
		Expenses: []model.Expense{
			exp(model.ExpenseMaintenance, 500),
			exp(model.ExpenseCommission, 1000),
		},
	}

	assert.Equal(t, "31500", TotalCost(v).String())
	profit := RealizedProfit(v)
	assert.Equal(t, "3500", profit.String())
	assert.Equal(t, "11.1", ROI(profit, TotalCost(v)).StringFixed(1))
}

func TestRealizedProfitNoExpensesNoCommission(t *testing.T) {
	v := model.Vehicle{
		PurchasePrice: decimal.NewFromInt(20000),
		SoldPrice:     decPtr(23000),
	}
	assert.Equal(t, "3000", RealizedProfit(v).String())
}

func TestROIZeroInvested(t *testing.T) {
	assert.True(t, ROI(decimal.NewFromInt(5000), decimal.Zero).IsZero())
	assert.True(t, ROI(decimal.Zero, decimal.Zero).IsZero())
}

func TestProjectedProfit(t *testing.T) {
	v := model.Vehicle{
		PurchasePrice:     decimal.NewFromInt(30000),
		ExpectedSalePrice: decimal.NewFromInt(36000),
		Expenses: []model.Expense{
			exp(model.ExpenseBodywork, 1200),
			exp(model.ExpenseCommission, 800),
		},
	}
	// 36000 - (30000 + 1200 + 800)
	assert.Equal(t, "4000", ProjectedProfit(v).String())

	// draft commission on the live form replaces the ledger fallback
	v.SaleCommission = decPtr(500)
	assert.Equal(t, "4300", ProjectedProfit(v).String())
}

func TestSettleSaleTradeIn(t *testing.T) {
	v := model.Vehicle{
		PurchasePrice: decimal.NewFromInt(25000),
		SoldPrice:     decPtr(30000), // 20000 cash + 10000 trade-in
		TradeInValue:  decPtr(10000),
		PaymentMethod: model.PaymentTradeInPlus,
	}

	s := SettleSale(v)
	assert.Equal(t, "30000", s.GrossRevenue.String())
	assert.Equal(t, "10000", s.TradeInValue.String())
	assert.Equal(t, "20000", s.CashReceived.String())
	assert.Equal(t, "5000", s.Profit.String())
	assert.Equal(t, "20", s.ROI.StringFixed(0))
}

func TestSettleSaleNoTradeIn(t *testing.T) {
	v := model.Vehicle{
		PurchasePrice: decimal.NewFromInt(30000),
		SoldPrice:     decPtr(35000),
		Expenses: []model.Expense{
			exp(model.ExpenseMaintenance, 500),
			exp(model.ExpenseCommission, 1000),
		},
	}

	s := SettleSale(v)
	assert.Equal(t, "35000", s.CashReceived.String())
	assert.Equal(t, "31500", s.TotalCost.String())
	assert.Equal(t, "3500", s.Profit.String())
}

// The clamp compares gross revenue, not cash received, against purchase
// cost. A trade-in-heavy sale whose cash portion is below cost but whose
// gross is above it stays unclamped.
func TestSettleSaleTradeInHeavySkipsClamp(t *testing.T) {
	v := model.Vehicle{
		PurchasePrice: decimal.NewFromInt(25000),
		SoldPrice:     decPtr(26000), // 6000 cash + 20000 trade-in
		TradeInValue:  decPtr(20000),
	}

	s := SettleSale(v)
	assert.Equal(t, "6000", s.CashReceived.String())
	assert.Equal(t, "1000", s.Profit.String())
}
