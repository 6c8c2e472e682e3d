package sharing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCalculateTotals_TwoStations(t *testing.T) {
	totals := CalculateTotals(map[string]string{
		"StationA": "3000",
		"StationB": "2000",
	}, "7.20", "8.50")

	formatted := totals.Formatted()
	assert.Equal(t, "5000", formatted["totalQty"])
	assert.Equal(t, "36000.00", formatted["amountCost"])
	assert.Equal(t, "42500.00", formatted["amountSales"])
	assert.Equal(t, "6500.00", formatted["expectedProfit"])
}

func TestCalculateTotals_MalformedInputCountsAsZero(t *testing.T) {
	totals := CalculateTotals(map[string]string{
		"a": "",
		"b": "lots",
		"c": "150",
		"d": "0",
	}, "abc", "2")

	assert.True(t, totals.TotalQty.Equal(decimal.NewFromInt(150)))
	assert.True(t, totals.AmountCost.IsZero())
	assert.Equal(t, "300.00", totals.Formatted()["amountSales"])
	assert.Equal(t, "300.00", totals.Formatted()["expectedProfit"])
}

func TestCalculateTotals_NegativeQuantitiesAreSummed(t *testing.T) {
	totals := CalculateTotals(map[string]string{"a": "100", "b": "-40"}, "1", "1")
	assert.True(t, totals.TotalQty.Equal(decimal.NewFromInt(60)))
}

func TestCalculateTotals_NegativeProfit(t *testing.T) {
	totals := CalculateTotals(map[string]string{"a": "1000"}, "9.10", "8.75")
	assert.Equal(t, "-350.00", totals.Formatted()["expectedProfit"])
}

func TestCalculateTotals_ProfitIsResidual(t *testing.T) {
	inputs := []struct {
		qty       map[string]string
		rate      string
		salesRate string
	}{
		{map[string]string{"a": "1234.567"}, "7.333", "8.111"},
		{map[string]string{"a": "0.005", "b": "0.005"}, "1.005", "3.335"},
		{map[string]string{"a": "999999.99"}, "0.01", "0.019"},
		{map[string]string{}, "7", "8"},
	}
	for _, in := range inputs {
		totals := CalculateTotals(in.qty, in.rate, in.salesRate)
		assert.True(t, totals.AmountCost.Add(totals.ExpectedProfit).Equal(totals.AmountSales),
			"cost %s + profit %s != sales %s", totals.AmountCost, totals.ExpectedProfit, totals.AmountSales)
	}
}

func TestCalculateTotals_Idempotent(t *testing.T) {
	q := map[string]string{"a": "10.5", "b": "4"}
	assert.Equal(t, CalculateTotals(q, "1.1", "1.3"), CalculateTotals(q, "1.1", "1.3"))
}
