// Package sharing computes and assembles product-sharing allocations: a fuel
// quantity split across destination stations at a cost rate and a sales rate.
package sharing

import (
	"github.com/shopspring/decimal"

	"github.com/mamadbah2/fuelshare/internal/domain/amount"
)

// Totals is the derived summary of an allocation.
type Totals struct {
	TotalQty       decimal.Decimal `json:"totalQty"`
	AmountCost     decimal.Decimal `json:"amountCost"`
	AmountSales    decimal.Decimal `json:"amountSales"`
	ExpectedProfit decimal.Decimal `json:"expectedProfit"`
}

// Formatted renders the totals the way the summary panel shows them.
func (t Totals) Formatted() map[string]string {
	return map[string]string{
		"totalQty":       t.TotalQty.String(),
		"amountCost":     amount.FormatMoney(t.AmountCost),
		"amountSales":    amount.FormatMoney(t.AmountSales),
		"expectedProfit": amount.FormatMoney(t.ExpectedProfit),
	}
}

// CalculateTotals sums the destination quantities and prices them at rate and salesRate.
// Malformed values count as zero and negative quantities are summed as-is.
func CalculateTotals(quantities map[string]string, rate, salesRate string) Totals {
	totalQty := decimal.Zero
	for _, q := range quantities {
		totalQty = totalQty.Add(amount.ParseOrZero(q))
	}
	return totalsFor(totalQty, amount.ParseOrZero(rate), amount.ParseOrZero(salesRate))
}

// TotalsFor prices an already summed quantity.
func TotalsFor(totalQty, rate, salesRate decimal.Decimal) Totals {
	return totalsFor(totalQty, rate, salesRate)
}

func totalsFor(totalQty, rate, salesRate decimal.Decimal) Totals {
	cost := amount.Money(totalQty.Mul(rate))
	sales := amount.Money(totalQty.Mul(salesRate))
	return Totals{
		TotalQty:       totalQty,
		AmountCost:     cost,
		AmountSales:    sales,
		ExpectedProfit: sales.Sub(cost),
	}
}
