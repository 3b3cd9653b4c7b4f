package finance

import (
	"github.com/eujoaosantiago/velohub/internal/model"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// ProjectedProfit values unsold inventory: the expected sale price minus
// acquisition, operating cost, and the commission recorded so far. A draft
// commission on the live form is included, matching what the dashboard's
// "potential profit" has always shown.
func ProjectedProfit(v model.Vehicle) decimal.Decimal {
	invested := v.PurchasePrice.
		Add(OperatingCost(v.Expenses)).
		Add(EffectiveCommission(v))
	return v.ExpectedSalePrice.Sub(invested)
}

// TotalCost is everything invested in a vehicle: purchase price, operating
// expenses, and the effective commission counted exactly once.
func TotalCost(v model.Vehicle) decimal.Decimal {
	return v.PurchasePrice.
		Add(OperatingCost(v.Expenses)).
		Add(EffectiveCommission(v))
}

// RealizedProfit computes the profit of a completed sale.
//
// Two guards apply:
//   - sold price <= 0 reports exactly zero (void or training sale);
//   - a sale below acquisition cost is clamped to min(raw, 0) so that a
//     data-entry error in the expenses can never turn a loss into a profit.
func RealizedProfit(v model.Vehicle) decimal.Decimal {
	gross := decimal.Zero
	if v.SoldPrice != nil {
		gross = *v.SoldPrice
	}
	if !gross.IsPositive() {
		return decimal.Zero
	}

	raw := gross.Sub(TotalCost(v))

	if gross.LessThan(v.PurchasePrice) && raw.IsPositive() {
		return decimal.Zero
	}
	return raw
}

// ROI returns profit over invested as a percentage. Zero invested yields
// zero rather than a division error.
func ROI(profit, invested decimal.Decimal) decimal.Decimal {
	if invested.IsZero() {
		return decimal.Zero
	}
	return profit.Div(invested).Mul(hundred)
}

// Settlement is the full financial breakdown of a sale, decomposing a
// trade-in-inclusive price into its cash and trade-in portions.
type Settlement struct {
	GrossRevenue decimal.Decimal `json:"gross_revenue"`
	TradeInValue decimal.Decimal `json:"trade_in_value"`
	CashReceived decimal.Decimal `json:"cash_received"`
	TotalCost    decimal.Decimal `json:"total_cost"`
	Profit       decimal.Decimal `json:"profit"`
	ROI          decimal.Decimal `json:"roi"`
}

// SettleSale reports the settlement of a sold vehicle. The trade-in value
// counts toward gross revenue for profit purposes; only the cash-received
// figure is affected by the decomposition.
func SettleSale(v model.Vehicle) Settlement {
	gross := decimal.Zero
	if v.SoldPrice != nil {
		gross = *v.SoldPrice
	}
	tradeIn := decimal.Zero
	if v.TradeInValue != nil {
		tradeIn = *v.TradeInValue
	}

	cost := TotalCost(v)
	profit := RealizedProfit(v)

	return Settlement{
		GrossRevenue: gross,
		TradeInValue: tradeIn,
		CashReceived: gross.Sub(tradeIn),
		TotalCost:    cost,
		Profit:       profit,
		ROI:          ROI(profit, cost),
	}
}
